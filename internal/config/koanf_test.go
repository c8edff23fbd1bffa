// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

// clearConfigEnv isolates a test from the caller's environment.
func clearConfigEnv(t *testing.T) {
	t.Helper()
	t.Setenv(ConfigPathEnvVar, "")
	for envKey := range envMappings {
		name := strings.ToUpper(envKey)
		t.Setenv(name, "")
		os.Unsetenv(name)
	}
}

// chdirTemp runs the test from an empty directory so no default config file is found.
func chdirTemp(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func TestDefaultConfig(t *testing.T) {
	cfg := defaultConfig()

	if cfg.Backend.URL != DefaultBackendURL {
		t.Errorf("Backend.URL = %q, want %q", cfg.Backend.URL, DefaultBackendURL)
	}
	if cfg.Backend.Timeout != 30*time.Second {
		t.Errorf("Backend.Timeout = %v, want 30s", cfg.Backend.Timeout)
	}
	if cfg.Backend.MaxRetries != 3 {
		t.Errorf("Backend.MaxRetries = %d, want 3", cfg.Backend.MaxRetries)
	}
	if cfg.Backend.RateLimitRPS != 0 {
		t.Errorf("Backend.RateLimitRPS = %v, want 0 (unlimited)", cfg.Backend.RateLimitRPS)
	}
	if cfg.Backend.Envelope {
		t.Error("Backend.Envelope should be false by default")
	}
	if !cfg.Backend.CircuitBreaker.Enabled {
		t.Error("Backend.CircuitBreaker.Enabled should be true by default")
	}
	if cfg.Server.Port != 5173 {
		t.Errorf("Server.Port = %d, want 5173", cfg.Server.Port)
	}
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0", cfg.Server.Host)
	}
	if cfg.Web.IndexFile != "index.html" {
		t.Errorf("Web.IndexFile = %q, want index.html", cfg.Web.IndexFile)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "*" {
		t.Errorf("Security.CORSOrigins = %v, want [*]", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "info" {
		t.Errorf("Logging.Level = %q, want info", cfg.Logging.Level)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaultConfig().Validate() = %v, want nil", err)
	}
}

func TestEnvTransformFunc(t *testing.T) {
	t.Parallel()

	tests := []struct {
		input    string
		expected string
	}{
		{"GALLERY_BACKEND_URL", "backend.url"},
		{"BACKEND_URL", "backend.url"},
		{"GALLERY_BACKEND_TIMEOUT", "backend.timeout"},
		{"GALLERY_BACKEND_ENVELOPE", "backend.envelope"},
		{"GALLERY_BREAKER_FAILURE_RATIO", "backend.circuit_breaker.failure_ratio"},
		{"HTTP_PORT", "server.port"},
		{"ENVIRONMENT", "server.environment"},
		{"WEB_DIST_DIR", "web.dist_dir"},
		{"CORS_ORIGINS", "security.cors_origins"},
		{"DISABLE_RATE_LIMIT", "security.rate_limit_disabled"},
		{"LOG_LEVEL", "logging.level"},
		{"log_format", "logging.format"},
		{"PATH", ""},
		{"HOME", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			t.Parallel()
			if got := envTransformFunc(tt.input); got != tt.expected {
				t.Errorf("envTransformFunc(%q) = %q, want %q", tt.input, got, tt.expected)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	t.Run("no config file exists", func(t *testing.T) {
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})

	t.Run("config.yaml exists", func(t *testing.T) {
		path := filepath.Join(tmpDir, "config.yaml")
		if err := os.WriteFile(path, []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		defer os.Remove(path)

		if got := findConfigFile(); got != "config.yaml" {
			t.Errorf("findConfigFile() = %q, want config.yaml", got)
		}
	})

	t.Run("CONFIG_PATH takes precedence", func(t *testing.T) {
		custom := filepath.Join(tmpDir, "custom.yaml")
		if err := os.WriteFile(custom, []byte("server: {}"), 0o644); err != nil {
			t.Fatalf("Failed to create config file: %v", err)
		}
		t.Setenv(ConfigPathEnvVar, custom)

		if got := findConfigFile(); got != custom {
			t.Errorf("findConfigFile() = %q, want %q", got, custom)
		}
	})

	t.Run("CONFIG_PATH with missing file falls back", func(t *testing.T) {
		t.Setenv(ConfigPathEnvVar, "/non/existent/config.yaml")
		if got := findConfigFile(); got != "" {
			t.Errorf("findConfigFile() = %q, want empty string", got)
		}
	})
}

func TestLoadWithKoanfEnvVars(t *testing.T) {
	clearConfigEnv(t)
	chdirTemp(t)

	t.Setenv("GALLERY_BACKEND_URL", "http://gallery.local:9090/api")
	t.Setenv("GALLERY_BACKEND_TIMEOUT", "5s")
	t.Setenv("GALLERY_BACKEND_ENVELOPE", "true")
	t.Setenv("GALLERY_BACKEND_RATE_LIMIT", "2.5")
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("LOG_LEVEL", "DEBUG")
	t.Setenv("CORS_ORIGINS", "https://a.example, https://b.example ,")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Backend.URL != "http://gallery.local:9090/api" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.Timeout != 5*time.Second {
		t.Errorf("Backend.Timeout = %v, want 5s", cfg.Backend.Timeout)
	}
	if !cfg.Backend.Envelope {
		t.Error("Backend.Envelope = false, want true")
	}
	if cfg.Backend.RateLimitRPS != 2.5 {
		t.Errorf("Backend.RateLimitRPS = %v, want 2.5", cfg.Backend.RateLimitRPS)
	}
	if cfg.Server.Port != 9000 {
		t.Errorf("Server.Port = %d, want 9000", cfg.Server.Port)
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want debug", cfg.Logging.Level)
	}
	want := []string{"https://a.example", "https://b.example"}
	if len(cfg.Security.CORSOrigins) != len(want) {
		t.Fatalf("Security.CORSOrigins = %v, want %v", cfg.Security.CORSOrigins, want)
	}
	for i := range want {
		if cfg.Security.CORSOrigins[i] != want[i] {
			t.Errorf("CORSOrigins[%d] = %q, want %q", i, cfg.Security.CORSOrigins[i], want[i])
		}
	}

	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want 0.0.0.0 (default)", cfg.Server.Host)
	}
}

func TestLoadWithKoanfConfigFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	content := `
backend:
  url: "https://photos.example.com/api"
  max_retries: 5
  circuit_breaker:
    enabled: false

server:
  port: 8888
  host: "127.0.0.1"

web:
  dist_dir: "/srv/galleria"

security:
  cors_origins:
    - "https://photos.example.com"

logging:
  level: "warn"
`
	path := filepath.Join(tmpDir, "gallery.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}
	t.Setenv(ConfigPathEnvVar, path)

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}

	if cfg.Backend.URL != "https://photos.example.com/api" {
		t.Errorf("Backend.URL = %q", cfg.Backend.URL)
	}
	if cfg.Backend.MaxRetries != 5 {
		t.Errorf("Backend.MaxRetries = %d, want 5", cfg.Backend.MaxRetries)
	}
	if cfg.Backend.CircuitBreaker.Enabled {
		t.Error("Backend.CircuitBreaker.Enabled = true, want false from file")
	}
	if cfg.Backend.CircuitBreaker.FailureRatio != 0.6 {
		t.Errorf("FailureRatio = %v, want 0.6 (default)", cfg.Backend.CircuitBreaker.FailureRatio)
	}
	if cfg.Server.Port != 8888 || cfg.Server.Host != "127.0.0.1" {
		t.Errorf("Server = %s, want 127.0.0.1:8888", cfg.Server.Addr())
	}
	if cfg.Web.DistDir != "/srv/galleria" {
		t.Errorf("Web.DistDir = %q", cfg.Web.DistDir)
	}
	if len(cfg.Security.CORSOrigins) != 1 || cfg.Security.CORSOrigins[0] != "https://photos.example.com" {
		t.Errorf("Security.CORSOrigins = %v", cfg.Security.CORSOrigins)
	}
	if cfg.Logging.Level != "warn" {
		t.Errorf("Logging.Level = %q, want warn", cfg.Logging.Level)
	}
}

func TestLoadWithKoanfEnvOverridesFile(t *testing.T) {
	clearConfigEnv(t)
	tmpDir := chdirTemp(t)

	content := `
backend:
  url: "http://from-file:8080/api"
server:
  port: 7000
`
	path := filepath.Join(tmpDir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	t.Setenv("GALLERY_BACKEND_URL", "http://from-env:8080/api")

	cfg, err := LoadWithKoanf()
	if err != nil {
		t.Fatalf("LoadWithKoanf() error = %v", err)
	}
	if cfg.Backend.URL != "http://from-env:8080/api" {
		t.Errorf("Backend.URL = %q, want env value", cfg.Backend.URL)
	}
	if cfg.Server.Port != 7000 {
		t.Errorf("Server.Port = %d, want 7000 from file", cfg.Server.Port)
	}
}

func TestLoadWithKoanfValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "backend url without scheme", env: map[string]string{"GALLERY_BACKEND_URL": "gallery:8080"}},
		{name: "backend url with query", env: map[string]string{"GALLERY_BACKEND_URL": "http://gallery/api?x=1"}},
		{name: "port out of range", env: map[string]string{"HTTP_PORT": "70000"}},
		{name: "unknown environment", env: map[string]string{"ENVIRONMENT": "staging"}},
		{name: "unknown log format", env: map[string]string{"LOG_FORMAT": "xml"}},
		{name: "zero backend timeout", env: map[string]string{"GALLERY_BACKEND_TIMEOUT": "0s"}},
		{name: "failure ratio above one", env: map[string]string{"GALLERY_BREAKER_FAILURE_RATIO": "1.5"}},
		{name: "rate limit window too long", env: map[string]string{"RATE_LIMIT_WINDOW": "2h"}},
		{name: "outbound limit without burst", env: map[string]string{
			"GALLERY_BACKEND_RATE_LIMIT": "5",
			"GALLERY_BACKEND_RATE_BURST": "0",
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearConfigEnv(t)
			chdirTemp(t)
			for k, v := range tt.env {
				t.Setenv(k, v)
			}

			if _, err := LoadWithKoanf(); err == nil {
				t.Error("LoadWithKoanf() expected validation error, got nil")
			}
		})
	}
}
