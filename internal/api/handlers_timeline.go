// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"

	"github.com/tomtom215/galleria/internal/logging"
)

// TimelineStatistics handles GET /api/v1/timeline/statistics.
func (h *Handler) TimelineStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.gallery.GetTimelineStatistics(r.Context())
	if err != nil {
		respondBackendError(w, r, err)
		return
	}

	// Served as-is; the monthly counts are the backend's business.
	if !stats.Reconciled() {
		logging.Ctx(r.Context()).Debug().
			Int64("total_count", stats.TotalCount).
			Int64("distribution_total", stats.DistributionTotal()).
			Msg("Timeline monthly distribution does not sum to total")
	}

	WriteSuccess(w, r, stats)
}

// TimelineBucket handles GET /api/v1/timeline/bucket?year=&month=.
func (h *Handler) TimelineBucket(w http.ResponseWriter, r *http.Request) {
	year, err := queryInt(r, "year")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}
	month, err := queryInt(r, "month")
	if err != nil {
		NewResponseWriter(w, r).BadRequest(err.Error())
		return
	}

	req := BucketRequest{Year: year, Month: month}
	if !validateRequest(w, r, &req) {
		return
	}

	bucket, err := h.gallery.GetTimelineBucket(r.Context(), req.Year, req.Month)
	if err != nil {
		respondBackendError(w, r, err)
		return
	}
	if bucket.Truncated() {
		logging.Ctx(r.Context()).Debug().
			Int("year", req.Year).
			Int("month", req.Month).
			Int64("count", bucket.Count).
			Int("photos", len(bucket.Photos)).
			Msg("Timeline bucket truncated by backend")
	}
	WriteSuccess(w, r, bucket)
}
