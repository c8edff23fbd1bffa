// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package main is the entry point of the Galleria front-end server.

Galleria serves the single-page app of a personal photo and video gallery and
a small JSON backend-for-frontend that reads the gallery backend through typed
accessors. No gallery data is stored here.

Startup order:

 1. Configuration: koanf v2 layers defaults, config.yaml and environment.
 2. Logging: zerolog, JSON or console.
 3. Gallery client: HTTP transport with 429 backoff and an optional outbound
    rate limiter, wrapped in a sony/gobreaker circuit breaker.
 4. Route table and chi router: BFF, app shell, health, /metrics.
 5. Supervisor tree: suture v4 runs the HTTP server and, when a config file
    is present, a watcher that applies log level changes live.

Environment:

	GALLERY_BACKEND_URL   backend base URL (default http://localhost:8080/api)
	HTTP_PORT             listen port (default 5173)
	WEB_DIST_DIR          built app directory (default ./web/dist)
	CORS_ORIGINS          comma-separated allowed origins
	LOG_LEVEL, LOG_FORMAT zerolog settings
	CONFIG_PATH           YAML config file

SIGINT and SIGTERM cancel the tree; the HTTP server drains within
server.shutdown_timeout.
*/
package main
