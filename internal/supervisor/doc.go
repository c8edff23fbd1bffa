// Galleria - Personal Media Gallery
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/galleria

/*
Package supervisor runs the long-lived parts of the gallery server under a
suture v4 supervisor tree.

The tree has two layers:

	RootSupervisor ("galleria")
	├── APISupervisor ("api-layer")
	│   └── HTTPServerService
	└── OpsSupervisor ("ops-layer")
	    └── ConfigWatchService (when a config file is in use)

A crash in the ops layer never restarts the HTTP server. Crashed services are
restarted with suture's decaying failure counter; once FailureThreshold is
exceeded restarts wait FailureBackoff.

Supervisor events (start, stop, panic, backoff) are logged through
sutureslog, backed by the zerolog bridge of internal/logging:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(server, 10*time.Second))
	return tree.Serve(ctx)

Serve blocks until ctx is canceled. Services that do not stop within
ShutdownTimeout are listed by UnstoppedServiceReport.
*/
package supervisor
