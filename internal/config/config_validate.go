// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"fmt"
	"time"

	"github.com/tomtom215/galleria/internal/validation"
)

// Rate limit bounds for the inbound limiter.
const (
	maxRateLimitRequests = 100000
	minRateLimitWindow   = time.Second
	maxRateLimitWindow   = time.Hour
)

// Validate checks that the configuration is usable.
// Field-level constraints come from the validate struct tags, cross-field
// checks follow.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	if err := c.validateBackend(); err != nil {
		return err
	}

	return c.validateRateLimits()
}

func (c *Config) validateBackend() error {
	if err := validation.CheckHTTPURL(c.Backend.URL); err != nil {
		return fmt.Errorf("GALLERY_BACKEND_URL %w", err)
	}
	if c.Backend.RateLimitRPS > 0 && c.Backend.RateLimitBurst < 1 {
		return fmt.Errorf("GALLERY_BACKEND_RATE_BURST must be at least 1 when the outbound rate limit is enabled")
	}
	return nil
}

func (c *Config) validateRateLimits() error {
	if c.Security.RateLimitDisabled {
		return nil
	}
	if c.Security.RateLimitReqs > maxRateLimitRequests {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be at most %d, got %d", maxRateLimitRequests, c.Security.RateLimitReqs)
	}
	if c.Security.RateLimitWindow < minRateLimitWindow || c.Security.RateLimitWindow > maxRateLimitWindow {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be between %v and %v, got %v",
			minRateLimitWindow, maxRateLimitWindow, c.Security.RateLimitWindow)
	}
	return nil
}

func (c *Config) hasWildcardCORS() bool {
	for _, origin := range c.Security.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}

// ShouldWarnAboutCORS reports whether the wildcard origin is used in
// production, which is logged at startup.
func (c *Config) ShouldWarnAboutCORS() bool {
	return c.IsProduction() && c.hasWildcardCORS()
}
