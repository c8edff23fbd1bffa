// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/galleria/internal/metrics"
)

var (
	// ErrNotFound matches any *APIError describing a 404.
	ErrNotFound = errors.New("gallery backend: not found")

	// ErrRateLimited matches an *APIError returned after 429 retries are exhausted.
	ErrRateLimited = errors.New("gallery backend: rate limited")

	// ErrDecode wraps response bodies that could not be decoded.
	ErrDecode = errors.New("gallery backend: malformed response")

	// ErrInvalidArgument is returned before any request is made when a
	// required path segment is empty.
	ErrInvalidArgument = errors.New("invalid argument")
)

// APIError describes a failed backend call: a non-2xx status, or a 2xx
// response whose envelope reported failure.
type APIError struct {
	StatusCode int    // HTTP status
	Path       string // request path relative to the base URL
	Body       string // response body, truncated to maxErrorBodySize

	// Code and Message are set when an envelope reported the failure.
	Code    int
	Message string
}

func (e *APIError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("GET %s: status %d code %d: %s", e.Path, e.StatusCode, e.Code, e.Message)
	}
	if e.Body != "" {
		return fmt.Sprintf("GET %s: status %d: %s", e.Path, e.StatusCode, e.Body)
	}
	return fmt.Sprintf("GET %s: status %d", e.Path, e.StatusCode)
}

// Is lets errors.Is match ErrNotFound and ErrRateLimited.
func (e *APIError) Is(target error) bool {
	switch target {
	case ErrNotFound:
		return e.StatusCode == http.StatusNotFound || e.Code == http.StatusNotFound
	case ErrRateLimited:
		return e.StatusCode == http.StatusTooManyRequests
	}
	return false
}

// Status returns the most specific status for err, or 0 when err is not an *APIError.
func Status(err error) int {
	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		return 0
	}
	if apiErr.Code >= 400 && apiErr.Code < 600 {
		return apiErr.Code
	}
	return apiErr.StatusCode
}

// IsClientError reports whether err is a 4xx from the backend, other than 429.
func IsClientError(err error) bool {
	s := Status(err)
	return s >= 400 && s < 500 && s != http.StatusTooManyRequests
}

// IsUnavailable reports whether err came from an open or saturated circuit breaker.
func IsUnavailable(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests)
}

// outcome classifies err for the backend_requests_total metric.
func outcome(err error) string {
	if err == nil {
		return metrics.OutcomeSuccess
	}
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return metrics.OutcomeCanceled
	}
	if errors.Is(err, ErrDecode) {
		return metrics.OutcomeDecode
	}
	switch s := Status(err); {
	case s == 0:
		return metrics.OutcomeNetwork
	case s == http.StatusNotFound:
		return metrics.OutcomeNotFound
	case s == http.StatusTooManyRequests:
		return metrics.OutcomeRateLimited
	case s >= 500, s < 400:
		// s < 400 is an envelope failure on a 2xx response
		return metrics.OutcomeServerError
	default:
		return metrics.OutcomeClientError
	}
}
