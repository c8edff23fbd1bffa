// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"time"

	"github.com/tomtom215/galleria/internal/client"
	"github.com/tomtom215/galleria/internal/middleware"
	"github.com/tomtom215/galleria/internal/views"
)

// readinessChecker is implemented by gallery clients that can report
// whether the backend is currently reachable, such as the circuit breaker.
type readinessChecker interface {
	Ready() error
}

// Handler serves the BFF endpoints.
type Handler struct {
	gallery   client.GalleryClient
	views     *views.Table
	perfMon   *middleware.PerformanceMonitor
	startTime time.Time
}

// NewHandler creates the BFF handler. A nil table uses views.Default() and a
// nil monitor disables the performance endpoint's data.
func NewHandler(gallery client.GalleryClient, table *views.Table, perfMon *middleware.PerformanceMonitor) *Handler {
	if table == nil {
		table = views.Default()
	}
	return &Handler{
		gallery:   gallery,
		views:     table,
		perfMon:   perfMon,
		startTime: time.Now(),
	}
}

// Views returns the route table used by the handler.
func (h *Handler) Views() *views.Table {
	return h.views
}

// PerformanceMonitor returns the monitor, possibly nil.
func (h *Handler) PerformanceMonitor() *middleware.PerformanceMonitor {
	return h.perfMon
}
