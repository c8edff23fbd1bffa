// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"
)

// VideoSources handles GET /api/v1/video/{uuid}/sources.
func (h *Handler) VideoSources(w http.ResponseWriter, r *http.Request) {
	sources, err := h.gallery.GetVideoURL(r.Context(), urlParam(r, "uuid"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, sources)
}

// VideoInfo handles GET /api/v1/video/{uuid}/info.
func (h *Handler) VideoInfo(w http.ResponseWriter, r *http.Request) {
	info, err := h.gallery.GetVideoInfo(r.Context(), urlParam(r, "uuid"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, info)
}

// VideoPlayer handles GET /api/v1/video/{uuid}/player.
func (h *Handler) VideoPlayer(w http.ResponseWriter, r *http.Request) {
	props, err := h.gallery.GetVideoPlayerProps(r.Context(), urlParam(r, "uuid"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, props)
}

// VideoCard handles GET /api/v1/video/{uuid}/card.
func (h *Handler) VideoCard(w http.ResponseWriter, r *http.Request) {
	item, err := h.gallery.GetVideoListItem(r.Context(), urlParam(r, "uuid"))
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	WriteSuccess(w, r, item)
}
