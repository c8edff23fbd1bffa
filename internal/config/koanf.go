// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"

	"github.com/tomtom215/galleria/internal/logging"
)

// DefaultConfigPaths lists the paths searched for a config file, in order.
// The first file found is used.
var DefaultConfigPaths = []string{
	"config.yaml",
	"config.yml",
	"/etc/galleria/config.yaml",
	"/etc/galleria/config.yml",
}

// ConfigPathEnvVar is the environment variable that overrides the config file path.
const ConfigPathEnvVar = "CONFIG_PATH"

// DefaultBackendURL is used when no backend URL is configured.
const DefaultBackendURL = "http://localhost:8080/api"

func defaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			URL:            DefaultBackendURL,
			Timeout:        30 * time.Second,
			MaxRetries:     3,
			RetryBaseDelay: time.Second,
			RateLimitRPS:   0, // unlimited
			RateLimitBurst: 10,
			Envelope:       false,
			CircuitBreaker: CircuitBreakerConfig{
				Enabled:      true,
				MaxRequests:  3,
				Interval:     time.Minute,
				Timeout:      30 * time.Second,
				MinRequests:  10,
				FailureRatio: 0.6,
			},
		},
		Server: ServerConfig{
			Host:            "0.0.0.0",
			Port:            5173,
			Timeout:         30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			Environment:     "development",
		},
		Web: WebConfig{
			DistDir:   "./web/dist",
			IndexFile: "index.html",
			AppTitle:  "Galleria",
		},
		Security: SecurityConfig{
			CORSOrigins:       []string{"*"},
			RateLimitReqs:     300,
			RateLimitWindow:   time.Minute,
			RateLimitDisabled: false,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
			Caller: false,
		},
	}
}

// LoadWithKoanf loads configuration with Koanf v2 from layered sources:
//  1. Defaults
//  2. Config file (optional)
//  3. Environment variables
//
// Later layers override earlier ones.
func LoadWithKoanf() (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(structs.Provider(defaultConfig(), "koanf"), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if configPath := findConfigFile(); configPath != "" {
		if err := k.Load(file.Provider(configPath), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", configPath, err)
		}
	}

	// GALLERY_BACKEND_URL -> backend.url, HTTP_PORT -> server.port
	if err := k.Load(env.Provider("", ".", envTransformFunc), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment variables: %w", err)
	}

	if err := processSliceFields(k); err != nil {
		return nil, fmt.Errorf("failed to process slice fields: %w", err)
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal configuration: %w", err)
	}
	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("configuration validation failed: %w", err)
	}

	return cfg, nil
}

// normalize trims values that are commonly pasted with stray characters.
func (c *Config) normalize() {
	c.Backend.URL = strings.TrimSpace(c.Backend.URL)
	c.Server.Environment = strings.ToLower(strings.TrimSpace(c.Server.Environment))
	c.Logging.Level = strings.ToLower(strings.TrimSpace(c.Logging.Level))
	c.Logging.Format = strings.ToLower(strings.TrimSpace(c.Logging.Format))
}

// findConfigFile returns the first existing config file, or "" when none exists.
func findConfigFile() string {
	if envPath := os.Getenv(ConfigPathEnvVar); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath
		}
	}

	for _, path := range DefaultConfigPaths {
		if _, err := os.Stat(path); err == nil {
			return path
		}
	}

	return ""
}

// sliceConfigPaths are parsed as comma-separated lists when set from the environment.
var sliceConfigPaths = []string{
	"security.cors_origins",
}

// processSliceFields converts comma-separated string values to slices.
// YAML already yields slices and is left alone.
func processSliceFields(k *koanf.Koanf) error {
	for _, path := range sliceConfigPaths {
		strVal, ok := k.Get(path).(string)
		if !ok || strVal == "" {
			continue
		}

		parts := strings.Split(strVal, ",")
		trimmed := make([]string, 0, len(parts))
		for _, p := range parts {
			if p = strings.TrimSpace(p); p != "" {
				trimmed = append(trimmed, p)
			}
		}
		if len(trimmed) == 0 {
			continue
		}
		if err := k.Set(path, trimmed); err != nil {
			return fmt.Errorf("failed to set %s: %w", path, err)
		}
	}
	return nil
}

var envMappings = map[string]string{
	// Backend
	"gallery_backend_url":         "backend.url",
	"backend_url":                 "backend.url",
	"gallery_backend_timeout":     "backend.timeout",
	"gallery_backend_max_retries": "backend.max_retries",
	"gallery_backend_retry_delay": "backend.retry_base_delay",
	"gallery_backend_rate_limit":  "backend.rate_limit_rps",
	"gallery_backend_rate_burst":  "backend.rate_limit_burst",
	"gallery_backend_envelope":    "backend.envelope",

	// Circuit breaker
	"gallery_breaker_enabled":       "backend.circuit_breaker.enabled",
	"gallery_breaker_max_requests":  "backend.circuit_breaker.max_requests",
	"gallery_breaker_interval":      "backend.circuit_breaker.interval",
	"gallery_breaker_timeout":       "backend.circuit_breaker.timeout",
	"gallery_breaker_min_requests":  "backend.circuit_breaker.min_requests",
	"gallery_breaker_failure_ratio": "backend.circuit_breaker.failure_ratio",

	// Server
	"http_host":             "server.host",
	"http_port":             "server.port",
	"http_timeout":          "server.timeout",
	"http_shutdown_timeout": "server.shutdown_timeout",
	"environment":           "server.environment",

	// Web
	"web_dist_dir":   "web.dist_dir",
	"web_index_file": "web.index_file",
	"web_app_title":  "web.app_title",

	// Security
	"cors_origins":        "security.cors_origins",
	"rate_limit_requests": "security.rate_limit_reqs",
	"rate_limit_window":   "security.rate_limit_window",
	"disable_rate_limit":  "security.rate_limit_disabled",

	// Logging
	"log_level":  "logging.level",
	"log_format": "logging.format",
	"log_caller": "logging.caller",
}

// envTransformFunc maps environment variable names to koanf config paths.
// Unmapped variables return "" and are skipped so unrelated environment
// does not leak into the config.
//
// Examples:
//   - GALLERY_BACKEND_URL -> backend.url
//   - HTTP_PORT -> server.port
//   - CORS_ORIGINS -> security.cors_origins
func envTransformFunc(key string) string {
	return envMappings[strings.ToLower(key)]
}

// FilePath returns the config file LoadWithKoanf reads, or "" when none exists.
func FilePath() string {
	return findConfigFile()
}

// WatchConfigFile invokes callback whenever the file at path changes.
// The returned stop func ends the watch. The caller is responsible for
// synchronizing access to a reloaded Config.
func WatchConfigFile(path string, callback func()) (stop func() error, err error) {
	fp := file.Provider(path)
	err = fp.Watch(func(_ interface{}, err error) {
		if err != nil {
			logging.Warn().Err(err).Str("path", path).Msg("Config file watch error")
			return
		}
		callback()
	})
	if err != nil {
		return nil, fmt.Errorf("failed to watch config file %s: %w", path, err)
	}
	return fp.Unwatch, nil
}
