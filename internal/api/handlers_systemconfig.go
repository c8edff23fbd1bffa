// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"
)

// SystemConfig handles GET /api/v1/system-config/{category}/{key}.
func (h *Handler) SystemConfig(w http.ResponseWriter, r *http.Request) {
	cfg, err := h.gallery.GetSystemConfig(r.Context(), urlParam(r, "category"), urlParam(r, "key"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, cfg)
}

// SystemConfigsByCategory handles GET /api/v1/system-config/{category}.
func (h *Handler) SystemConfigsByCategory(w http.ResponseWriter, r *http.Request) {
	configs, err := h.gallery.GetSystemConfigsByCategory(r.Context(), urlParam(r, "category"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, configs)
}
