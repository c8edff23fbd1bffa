// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"
	"time"

	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/middleware"
)

// defaultRecentSamples is how many raw samples /health/performance returns.
const defaultRecentSamples = 20

// HealthStatus is the body of the liveness and readiness probes.
type HealthStatus struct {
	Status        string  `json:"status"`
	UptimeSeconds float64 `json:"uptime_seconds"`
	Backend       string  `json:"backend,omitempty"`
}

// PerformanceReport is the body of /health/performance.
type PerformanceReport struct {
	Endpoints []middleware.EndpointStats `json:"endpoints"`
	Recent    []middleware.RequestSample `json:"recent"`
}

// HealthLive reports that the process is serving requests.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, HealthStatus{
		Status:        "alive",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
	})
}

// HealthReady reports whether requests to the backend are currently
// admitted. It returns 503 while the circuit breaker is open.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	status := HealthStatus{
		Status:        "ready",
		UptimeSeconds: time.Since(h.startTime).Seconds(),
		Backend:       "available",
	}

	if rc, ok := h.gallery.(readinessChecker); ok {
		if err := rc.Ready(); err != nil {
			logging.Ctx(r.Context()).Debug().Err(err).Msg("Readiness check failed")
			NewResponseWriter(w, r).ErrorWithDetails(
				http.StatusServiceUnavailable,
				ErrCodeServiceUnavailable,
				"Gallery backend unavailable",
				HealthStatus{Status: "not_ready", UptimeSeconds: status.UptimeSeconds, Backend: "circuit_open"},
			)
			return
		}
	}

	WriteSuccess(w, r, status)
}

// HealthPerformance returns per-endpoint latency percentiles and the most
// recent request samples. ?recent=N controls the sample count.
func (h *Handler) HealthPerformance(w http.ResponseWriter, r *http.Request) {
	recent, err := queryIntDefault(r, "recent", defaultRecentSamples)
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	req := PerformanceRequest{Recent: recent}
	if !validateRequest(w, r, &req) {
		return
	}

	report := PerformanceReport{
		Endpoints: []middleware.EndpointStats{},
		Recent:    []middleware.RequestSample{},
	}
	if h.perfMon != nil {
		report.Endpoints = h.perfMon.Stats()
		report.Recent = h.perfMon.Recent(req.Recent)
	}
	WriteSuccess(w, r, report)
}
