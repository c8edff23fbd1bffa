// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/galleria/internal/validation"
)

// BucketRequest holds the query of GET /api/v1/timeline/bucket.
type BucketRequest struct {
	Year  int `validate:"gte=1,lte=9999"`
	Month int `validate:"month"`
}

// RouteMatchRequest holds the query of GET /api/v1/routes/match.
type RouteMatchRequest struct {
	Path string `validate:"required,max=2048,startswith=/"`
}

// PerformanceRequest holds the query of GET /api/v1/health/performance.
type PerformanceRequest struct {
	Recent int `validate:"gte=0,lte=1000"`
}

// queryInt parses a required integer query parameter.
func queryInt(r *http.Request, name string) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(name))
	if raw == "" {
		return 0, fmt.Errorf("%s is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer", name)
	}
	return v, nil
}

// queryIntDefault parses an optional integer query parameter.
func queryIntDefault(r *http.Request, name string, def int) (int, error) {
	if strings.TrimSpace(r.URL.Query().Get(name)) == "" {
		return def, nil
	}
	return queryInt(r, name)
}

// urlParam returns a chi URL parameter with percent-escapes decoded.
// chi routes on RawPath when it is set, so only then is the segment
// still escaped. Otherwise it was decoded once already.
func urlParam(r *http.Request, key string) string {
	value := chi.URLParam(r, key)
	if r.URL.RawPath == "" {
		return value
	}
	if unescaped, err := url.PathUnescape(value); err == nil {
		return unescaped
	}
	return value
}

// validateRequest runs struct validation and writes a 400 on failure.
// Returns false when a response has been written.
func validateRequest(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	if verr := validation.ValidateStruct(req); verr != nil {
		apiErr := verr.ToAPIError()
		var details interface{}
		if len(apiErr.Details) > 0 {
			details = apiErr.Details
		}
		NewResponseWriter(w, r).ValidationError(apiErr.Message, details)
		return false
	}
	return true
}
