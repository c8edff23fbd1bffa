// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"net/url"
	"strconv"

	"github.com/tomtom215/galleria/internal/models"
)

// GetTimelineStatistics fetches the timeline bounds and per-month histogram.
// The result is a snapshot; callers re-fetch to refresh.
func (c *Client) GetTimelineStatistics(ctx context.Context) (*models.TimelineStatistics, error) {
	stats, err := Get[models.TimelineStatistics](ctx, c, OpGetTimelineStatistics, "/timeline/statistics", nil)
	if err != nil {
		return nil, err
	}
	if stats.MonthlyDistribution == nil {
		stats.MonthlyDistribution = []models.MonthlyCount{}
	}
	return &stats, nil
}

// GetTimelineBucket fetches the photos of one calendar month.
// month is forwarded as given; the backend decides what out-of-range means.
func (c *Client) GetTimelineBucket(ctx context.Context, year, month int) (*models.TimelineBucket, error) {
	query := url.Values{}
	query.Set("year", strconv.Itoa(year))
	query.Set("month", strconv.Itoa(month))

	bucket, err := Get[models.TimelineBucket](ctx, c, OpGetTimelineBucket, "/timeline/bucket", query)
	if err != nil {
		return nil, err
	}
	if bucket.Photos == nil {
		bucket.Photos = []models.BucketPhoto{}
	}
	return &bucket, nil
}

