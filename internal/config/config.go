// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"fmt"
	"time"
)

// Config holds all application configuration loaded from defaults, an optional
// config file and environment variables.
type Config struct {
	Backend  BackendConfig  `koanf:"backend"`
	Server   ServerConfig   `koanf:"server"`
	Web      WebConfig      `koanf:"web"`
	Security SecurityConfig `koanf:"security"`
	Logging  LoggingConfig  `koanf:"logging"`
}

// BackendConfig describes how the transport reaches the gallery backend.
//
// URL is the base every accessor path is appended to, so it may carry an API
// prefix such as http://gallery:8080/api.
type BackendConfig struct {
	URL            string        `koanf:"url" validate:"required"`
	Timeout        time.Duration `koanf:"timeout" validate:"gt=0"`
	MaxRetries     int           `koanf:"max_retries" validate:"gte=0,lte=10"`
	RetryBaseDelay time.Duration `koanf:"retry_base_delay" validate:"gte=0"`

	// RateLimitRPS caps outbound requests per second. Zero disables the limiter.
	RateLimitRPS   float64 `koanf:"rate_limit_rps" validate:"gte=0"`
	RateLimitBurst int     `koanf:"rate_limit_burst" validate:"gte=0"`

	// Envelope enables unwrapping of {"code","message","data"} responses.
	Envelope bool `koanf:"envelope"`

	CircuitBreaker CircuitBreakerConfig `koanf:"circuit_breaker"`
}

// CircuitBreakerConfig tunes the sony/gobreaker wrapper around the client.
type CircuitBreakerConfig struct {
	Enabled      bool          `koanf:"enabled"`
	MaxRequests  uint32        `koanf:"max_requests" validate:"gte=1"`   // allowed in half-open state
	Interval     time.Duration `koanf:"interval" validate:"gte=0"`       // closed-state count reset
	Timeout      time.Duration `koanf:"timeout" validate:"gt=0"`         // open -> half-open delay
	MinRequests  uint32        `koanf:"min_requests" validate:"gte=1"`   // before the ratio is evaluated
	FailureRatio float64       `koanf:"failure_ratio" validate:"gt=0,lte=1"`
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port" validate:"gte=1,lte=65535"`
	Timeout         time.Duration `koanf:"timeout" validate:"gt=0"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout" validate:"gt=0"`
	Environment     string        `koanf:"environment" validate:"oneof=development production"`
}

// WebConfig locates the built single-page app served for every view route.
type WebConfig struct {
	DistDir   string `koanf:"dist_dir" validate:"required"`
	IndexFile string `koanf:"index_file" validate:"required"`
	AppTitle  string `koanf:"app_title"`
}

// SecurityConfig holds CORS and inbound rate limit settings.
type SecurityConfig struct {
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"gte=1"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"gt=0"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// LoggingConfig holds zerolog settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error fatal panic disabled"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// Load reads configuration from all sources and validates it.
func Load() (*Config, error) {
	return LoadWithKoanf()
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// IsProduction reports whether ENVIRONMENT=production.
func (c *Config) IsProduction() bool {
	return c.Server.Environment == "production"
}

// IsDevelopment reports whether the server runs in development mode.
func (c *Config) IsDevelopment() bool {
	return !c.IsProduction()
}
