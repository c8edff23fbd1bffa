// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/tomtom215/galleria/internal/api"
	"github.com/tomtom215/galleria/internal/client"
	"github.com/tomtom215/galleria/internal/config"
	"github.com/tomtom215/galleria/internal/logging"
	"github.com/tomtom215/galleria/internal/middleware"
	"github.com/tomtom215/galleria/internal/supervisor"
	"github.com/tomtom215/galleria/internal/supervisor/services"
	"github.com/tomtom215/galleria/internal/views"
)

// perfMonCapacity is how many recent requests the latency monitor keeps.
const perfMonCapacity = 1000

// app is the assembled server.
type app struct {
	gallery client.GalleryClient
	handler http.Handler
	server  *http.Server
	tree    *supervisor.SupervisorTree
}

// newApp wires every component from cfg. configPath is the file to watch
// for log level changes; "" disables the watcher.
func newApp(cfg *config.Config, configPath string) (*app, error) {
	gallery := newGalleryClient(&cfg.Backend)

	table, err := views.New(views.DefaultRoutes())
	if err != nil {
		return nil, fmt.Errorf("route table: %w", err)
	}

	perfMon := middleware.NewPerformanceMonitor(perfMonCapacity, middleware.DefaultSlowRequestThreshold)
	handler := api.NewHandler(gallery, table, perfMon)
	router := api.NewRouter(handler, cfg).SetupChi()

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       cfg.Server.Timeout,
		WriteTimeout:      cfg.Server.Timeout,
		IdleTimeout:       60 * time.Second,
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger("supervisor"),
		supervisor.TreeConfigFromServer(&cfg.Server),
	)
	if err != nil {
		return nil, fmt.Errorf("supervisor tree: %w", err)
	}

	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout))
	if configPath != "" {
		tree.AddOpsService(services.NewConfigWatchService(configPath, reloadLogging))
	}

	return &app{
		gallery: gallery,
		handler: router,
		server:  server,
		tree:    tree,
	}, nil
}

// newGalleryClient builds the transport client, behind a circuit breaker
// when enabled.
func newGalleryClient(cfg *config.BackendConfig) client.GalleryClient {
	base := client.New(cfg)
	if !cfg.CircuitBreaker.Enabled {
		logging.Info().Str("backend_url", base.BaseURL()).Msg("Gallery client ready (circuit breaker disabled)")
		return base
	}
	logging.Info().
		Str("backend_url", base.BaseURL()).
		Float64("failure_ratio", cfg.CircuitBreaker.FailureRatio).
		Dur("open_timeout", cfg.CircuitBreaker.Timeout).
		Msg("Gallery client ready")
	return client.NewCircuitBreakerClient(base, &cfg.CircuitBreaker, client.DefaultBreakerName)
}

// reloadLogging re-reads the configuration and applies the logging section.
// Other settings need a restart.
func reloadLogging() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logging.Init(loggingConfig(cfg))
	logging.Info().Str("level", cfg.Logging.Level).Str("format", cfg.Logging.Format).Msg("Logging settings applied")
	return nil
}
