// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package client

import (
	"context"
	"net/http"

	"github.com/tomtom215/galleria/internal/models"
)

// GetSystemConfig fetches one configuration entry.
// A missing entry is returned as an *APIError matching ErrNotFound.
func (c *Client) GetSystemConfig(ctx context.Context, category, key string) (*models.SystemConfig, error) {
	cat, err := segment("category", category)
	if err != nil {
		return nil, err
	}
	k, err := segment("key", key)
	if err != nil {
		return nil, err
	}

	path := "/system-config/" + cat + "/" + k
	cfg, err := Get[*models.SystemConfig](ctx, c, OpGetSystemConfig, path, nil)
	if err != nil {
		return nil, err
	}
	if cfg == nil {
		// some backends answer an unknown key with 200 and a null body
		return nil, &APIError{StatusCode: http.StatusNotFound, Path: path, Body: "null"}
	}
	return cfg, nil
}

// GetSystemConfigsByCategory fetches every entry in category, in backend order.
// An empty category yields an empty, non-nil slice.
func (c *Client) GetSystemConfigsByCategory(ctx context.Context, category string) ([]models.SystemConfig, error) {
	cat, err := segment("category", category)
	if err != nil {
		return nil, err
	}

	configs, err := Get[[]models.SystemConfig](ctx, c, OpGetSystemConfigsByCategory, "/system-config/"+cat, nil)
	if err != nil {
		return nil, err
	}
	if configs == nil {
		configs = []models.SystemConfig{}
	}
	return configs, nil
}
