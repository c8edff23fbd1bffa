// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"

	"github.com/tomtom215/galleria/internal/views"
)

// RouteMatchResponse is the result of GET /api/v1/routes/match.
type RouteMatchResponse struct {
	Path    string            `json:"path"`
	Matched bool              `json:"matched"`
	Route   views.Route       `json:"route"`
	Params  map[string]string `json:"params"`
}

// Routes handles GET /api/v1/routes.
func (h *Handler) Routes(w http.ResponseWriter, r *http.Request) {
	WriteSuccess(w, r, h.views.Routes())
}

// RouteMatch handles GET /api/v1/routes/match?path=.
// path is in escaped form, as the browser reports location.pathname.
// An unknown path is not an error: it resolves to the NotFound view.
func (h *Handler) RouteMatch(w http.ResponseWriter, r *http.Request) {
	req := RouteMatchRequest{Path: r.URL.Query().Get("path")}
	if !validateRequest(w, r, &req) {
		return
	}

	m := h.views.Match(req.Path)
	WriteSuccess(w, r, RouteMatchResponse{
		Path:    req.Path,
		Matched: m.Matched(),
		Route:   m.Route,
		Params:  m.Params,
	})
}
