// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package supervisor runs the server's long-lived services under a suture v4
supervision tree.

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── MaintenanceService (poster cache and result cache expiry)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Crashed services are restarted with suture's backoff. Each layer counts
failures on its own, so a maintenance loop that keeps failing does not take
the HTTP listener down with it.

Supervisor events go through sutureslog into the zerolog stream:

	tree, err := supervisor.NewSupervisorTree(logging.NewSlogLogger("supervisor"), supervisor.TreeConfig{
	    FailureThreshold: cfg.Supervisor.FailureThreshold,
	    ShutdownTimeout:  cfg.Supervisor.ShutdownTimeout,
	})
	tree.AddDataService(maintenance)
	tree.AddAPIService(httpService)
	err = tree.Serve(ctx)

Canceling ctx stops the tree. Services that do not return within
ShutdownTimeout show up in UnstoppedServiceReport.
*/
package supervisor
