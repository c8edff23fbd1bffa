// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/galleria/internal/client"
	"github.com/tomtom215/galleria/internal/logging"
)

// backendService names the gallery backend in error responses and logs.
const backendService = "gallery backend"

// respondBackendError maps an accessor error onto an HTTP response.
func respondBackendError(w http.ResponseWriter, r *http.Request, err error) {
	rw := NewResponseWriter(w, r)
	log := logging.Ctx(r.Context())

	var apiErr *client.APIError
	switch {
	case errors.Is(err, client.ErrInvalidArgument):
		rw.ValidationError(err.Error(), nil)

	case errors.Is(err, client.ErrNotFound):
		rw.NotFound("Resource not found")

	case client.IsUnavailable(err):
		log.Warn().Err(err).Msg("Gallery backend circuit open")
		rw.ServiceUnavailable("Gallery backend temporarily unavailable")

	case errors.Is(err, client.ErrRateLimited):
		log.Warn().Err(err).Msg("Gallery backend rate limit exhausted")
		rw.ServiceUnavailable("Gallery backend is throttling requests")

	case errors.Is(err, context.DeadlineExceeded):
		log.Warn().Err(err).Msg("Gallery backend timed out")
		rw.Error(http.StatusGatewayTimeout, ErrCodeGatewayTimeout, "Gallery backend timed out")

	case errors.Is(err, context.Canceled):
		// Client went away; nobody reads this response.
		log.Debug().Err(err).Msg("Request canceled")
		rw.Error(http.StatusServiceUnavailable, ErrCodeServiceUnavailable, "Request canceled")

	case client.IsClientError(err) && errors.As(err, &apiErr):
		log.Info().Err(err).Msg("Gallery backend rejected request")
		message := apiErr.Message
		if message == "" {
			message = "Gallery backend rejected the request"
		}
		rw.ErrorWithDetails(http.StatusBadRequest, ErrCodeBadRequest, message, map[string]interface{}{
			"backend_status": client.Status(err),
		})

	default:
		rw.ExternalServiceError(backendService, err)
	}
}
