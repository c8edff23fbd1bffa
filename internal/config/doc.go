// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package config provides centralized configuration management for Galleria.

Configuration is loaded with Koanf v2 from three layers, highest priority last:

 1. Built-in defaults (defaultConfig)
 2. Optional YAML file (CONFIG_PATH, ./config.yaml, /etc/galleria/config.yaml)
 3. Environment variables

# Configuration Structure

  - BackendConfig: gallery backend base URL, timeouts, retries, outbound rate
    limit, response envelope and circuit breaker settings
  - ServerConfig: HTTP listen address, timeouts, environment
  - WebConfig: location of the built single-page app
  - SecurityConfig: CORS origins and inbound rate limiting
  - LoggingConfig: zerolog level, format and caller info

# Environment Variables

Backend (BackendConfig):
  - GALLERY_BACKEND_URL: backend base URL including API prefix (default: http://localhost:8080/api)
  - GALLERY_BACKEND_TIMEOUT: per-request timeout (default: 30s)
  - GALLERY_BACKEND_MAX_RETRIES: retries on HTTP 429 (default: 3)
  - GALLERY_BACKEND_RETRY_DELAY: base backoff delay (default: 1s)
  - GALLERY_BACKEND_RATE_LIMIT: outbound requests per second, 0 disables (default: 0)
  - GALLERY_BACKEND_RATE_BURST: outbound burst size (default: 10)
  - GALLERY_BACKEND_ENVELOPE: unwrap {code,message,data} responses (default: false)
  - GALLERY_BREAKER_ENABLED: wrap the client in a circuit breaker (default: true)

HTTP Server (ServerConfig):
  - HTTP_HOST: bind address (default: 0.0.0.0)
  - HTTP_PORT: listen port (default: 5173)
  - HTTP_TIMEOUT: read/write timeout (default: 30s)
  - ENVIRONMENT: development or production (default: development)

Web (WebConfig):
  - WEB_DIST_DIR: built app directory (default: ./web/dist)

Security (SecurityConfig):
  - CORS_ORIGINS: comma-separated allowed origins
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging (LoggingConfig):
  - LOG_LEVEL, LOG_FORMAT, LOG_CALLER

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
	client := client.New(&cfg.Backend)

Config is immutable after Load() and safe for concurrent reads.
*/
package config
