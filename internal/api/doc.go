// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package api provides the HTTP layer of the gallery front-end server.

It serves three things from one chi router:

 1. A JSON backend-for-frontend under /api/v1 that exposes the typed gallery
    accessors (system config, timeline, video) to the view layer.
 2. The single-page app shell: every view route of the route table gets the
    index document with HTTP 200, unknown paths get it with HTTP 404, and
    files under the dist directory are served as static assets.
 3. Operational endpoints: health probes, latency stats and /metrics.

Endpoints:

	GET /api/v1/system-config/{category}        []SystemConfig
	GET /api/v1/system-config/{category}/{key}  SystemConfig
	GET /api/v1/timeline/statistics             TimelineStatistics
	GET /api/v1/timeline/bucket?year=&month=    TimelineBucket
	GET /api/v1/video/{uuid}/sources            []VideoSource
	GET /api/v1/video/{uuid}/info               VideoInfo
	GET /api/v1/video/{uuid}/player             VideoPlayerProps
	GET /api/v1/video/{uuid}/card               VideoListItem
	GET /api/v1/routes                          route table
	GET /api/v1/routes/match?path=              route match
	GET /api/v1/health/live                     liveness
	GET /api/v1/health/ready                    readiness (breaker state)
	GET /api/v1/health/performance              latency percentiles
	GET /metrics                                Prometheus

Every JSON response uses the envelope

	{"success": bool, "data": ..., "error": {"code","message","details","request_id"},
	 "meta": {"request_id","timestamp","duration_ms"}}

Backend failures map to statuses as follows: not found is 404 NOT_FOUND, an
open circuit breaker or backend throttling is 503 SERVICE_UNAVAILABLE, a
backend timeout is 504 GATEWAY_TIMEOUT, other backend 4xx are 400
BAD_REQUEST, and everything else is 502 EXTERNAL_SERVICE_FAILED.

Usage:

	handler := api.NewHandler(gallery, views.Default(), perfMon)
	router := api.NewRouter(handler, cfg)
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.SetupChi()}
*/
package api
