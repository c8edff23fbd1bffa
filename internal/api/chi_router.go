// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/middleware"
)

// ErrCodeMethodNotAllowed is returned for a known API path with the wrong method.
const ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED"

// Router assembles the HTTP surface.
type Router struct {
	handler       *Handler
	chiMiddleware *ChiMiddleware
	shell         *Shell
}

// NewRouter creates a router serving handler and the app shell of cfg.Web.
func NewRouter(handler *Handler, cfg *config.Config) *Router {
	return &Router{
		handler:       handler,
		chiMiddleware: NewChiMiddleware(ChiMiddlewareConfigFromSecurity(&cfg.Security)),
		shell:         NewShell(&cfg.Web, handler.Views()),
	}
}

// SetupChi builds the chi router.
//
// Middleware order, outermost first: request id, real ip, panic recovery,
// CORS, compression. The BFF adds rate limiting, security headers,
// Prometheus metrics and the latency monitor per group.
func (router *Router) SetupChi() http.Handler {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(router.chiMiddleware.CORS())
	r.Use(middleware.Compress())

	h := router.handler

	r.Route("/api/v1", func(r chi.Router) {
		r.NotFound(apiNotFound)
		r.MethodNotAllowed(apiMethodNotAllowed)

		r.Route("/health", func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimitHealth())
			r.Use(APISecurityHeaders)

			r.Get("/live", h.HealthLive)
			r.Get("/ready", h.HealthReady)
			r.Get("/performance", h.HealthPerformance)
		})

		r.Group(func(r chi.Router) {
			r.Use(router.chiMiddleware.RateLimit())
			r.Use(APISecurityHeaders)
			r.Use(middleware.PrometheusMetrics)
			if pm := h.PerformanceMonitor(); pm != nil {
				r.Use(pm.Middleware)
			}

			r.Get("/system-config/{category}", h.SystemConfigsByCategory)
			r.Get("/system-config/{category}/{key}", h.SystemConfig)

			r.Get("/timeline/statistics", h.TimelineStatistics)
			r.Get("/timeline/bucket", h.TimelineBucket)

			r.Get("/video/{uuid}/sources", h.VideoSources)
			r.Get("/video/{uuid}/info", h.VideoInfo)
			r.Get("/video/{uuid}/player", h.VideoPlayer)
			r.Get("/video/{uuid}/card", h.VideoCard)

			r.Get("/routes", h.Routes)
			r.Get("/routes/match", h.RouteMatch)
		})
	})

	r.Handle("/metrics", promhttp.Handler())

	r.Group(func(r chi.Router) {
		r.Use(ShellSecurityHeaders)
		r.Get("/*", router.shell.ServeHTTP)
		r.Head("/*", router.shell.ServeHTTP)
	})

	return r
}

func apiNotFound(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).NotFound("No such API endpoint")
}

func apiMethodNotAllowed(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Error(http.StatusMethodNotAllowed, ErrCodeMethodNotAllowed, "Method not allowed")
}
