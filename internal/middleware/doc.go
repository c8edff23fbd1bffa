// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package middleware provides HTTP middleware for the gallery server.

All middleware uses the chi signature func(http.Handler) http.Handler and is
mounted by the api router.

Key Components:

  - RequestID: accepts or generates X-Request-ID and seeds the logging context
  - PrometheusMetrics: request totals, latency and in-flight gauge, labelled by
    chi route pattern so path parameters do not explode cardinality
  - Compress: gzip/deflate for JSON, HTML and static text assets (chi middleware)
  - PerformanceMonitor: sliding window of request latencies with percentiles,
    exposed by the health endpoints

Typical stack:

	r.Use(middleware.RequestID)
	r.Use(middleware.Compress())
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(perfMon.Middleware)
	    ...
	})
*/
package middleware
