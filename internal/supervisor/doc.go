// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package supervisor provides process supervision for Marquee using suture v4.

The tree separates the data layer (catalog loading and index builds) from
the API layer (the HTTP server), so a crashing reload loop never takes the
HTTP server down with it:

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── CatalogService
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with backoff. When a layer exceeds
FailureThreshold failures (decaying at FailureDecay per second) it backs
off for FailureBackoff before restarting again. Supervisor events are
logged through the sutureslog adapter.

# Usage

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger(), supervisor.TreeConfigFrom(cfg.Supervisor))
	if err != nil {
	    return err
	}
	tree.AddDataService(catalogSvc)
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Supervisor.ShutdownTimeout, logger))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := tree.Serve(ctx); err != nil && !errors.Is(err, context.Canceled) {
	    return err
	}

On shutdown, UnstoppedServiceReport lists services that did not stop within
ShutdownTimeout.
*/
package supervisor
