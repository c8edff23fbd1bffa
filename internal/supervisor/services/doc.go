// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package services adapts server components to suture.Service.

HTTPServerService wraps *http.Server. Serve blocks in ListenAndServe; when
the supervisor cancels the context the server is shut down gracefully within
the configured timeout and Serve returns ctx.Err(). A listen failure is
returned so the supervisor restarts the server with backoff.

ConfigWatchService watches the YAML config file through koanf's file
provider and calls a reload func after edits settle. The composition root
uses it to apply a new log level without a restart:

	svc := services.NewConfigWatchService(path, func() error {
	    cfg, err := config.Load()
	    if err != nil {
	        return err
	    }
	    logging.Init(logging.Config{Level: cfg.Logging.Level, Format: cfg.Logging.Format})
	    return nil
	})
	tree.AddOpsService(svc)

Return values follow suture v4: an error means restart with backoff,
suture.ErrDoNotRestart removes the service, and ctx.Err() after
cancellation is a normal stop. Every service implements fmt.Stringer so
supervisor events name it.
*/
package services
