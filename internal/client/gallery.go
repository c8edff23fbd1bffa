// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/tomtom215/galleria/internal/models"
)

// GalleryClient is the accessor surface consumed by the HTTP layer.
// Implemented by *Client and *CircuitBreakerClient.
type GalleryClient interface {
	GetSystemConfig(ctx context.Context, category, key string) (*models.SystemConfig, error)
	GetSystemConfigsByCategory(ctx context.Context, category string) ([]models.SystemConfig, error)

	GetTimelineStatistics(ctx context.Context) (*models.TimelineStatistics, error)
	GetTimelineBucket(ctx context.Context, year, month int) (*models.TimelineBucket, error)

	GetVideoURL(ctx context.Context, uuid string) ([]models.VideoSource, error)
	GetVideoInfo(ctx context.Context, uuid string) (*models.VideoInfo, error)
	GetVideoPlayerProps(ctx context.Context, uuid string) (*models.VideoPlayerProps, error)
	GetVideoListItem(ctx context.Context, uuid string) (*models.VideoListItem, error)
}

// Operation names used as metric labels.
const (
	OpGetSystemConfig            = "get_system_config"
	OpGetSystemConfigsByCategory = "get_system_configs_by_category"
	OpGetTimelineStatistics      = "get_timeline_statistics"
	OpGetTimelineBucket          = "get_timeline_bucket"
	OpGetVideoURL                = "get_video_url"
	OpGetVideoInfo               = "get_video_info"
)

// segment escapes one path segment, rejecting blank input.
func segment(name, value string) (string, error) {
	if strings.TrimSpace(value) == "" {
		return "", fmt.Errorf("%w: %s must not be empty", ErrInvalidArgument, name)
	}
	return url.PathEscape(value), nil
}
