// Marquee - Hybrid Movie Recommendation Service
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/marquee

/*
Package main is the entry point for the Marquee recommendation server.

Marquee loads a movie catalog from a CSV file or URL, builds a TF-IDF and
metadata index over it, and serves hybrid recommendations over HTTP.

# Application Architecture

	RootSupervisor ("marquee")
	├── DataSupervisor ("data-layer")
	│   └── CatalogService (load, build index, publish, snapshot)
	└── APISupervisor ("api-layer")
	    └── HTTP Server (chi router, /api/v1 and /metrics)

Initialization order:

 1. Configuration: .env via godotenv, then Koanf v2 defaults, config file and environment
 2. Logging: zerolog, with an slog bridge for the supervisor
 3. Engine: hybrid signals and the optional result cache
 4. Catalog: primary source plus the badger snapshot
 5. Supervisor tree: catalog service and HTTP server

The HTTP server starts before the first catalog load finishes; recommendation
endpoints answer 503 until the index is ready.

# Configuration

Common environment variables:

	CATALOG_PATH=data/movies.csv       # CSV catalog on disk
	CATALOG_URL=https://...            # or a remote CSV (wins over the path)
	SNAPSHOT_PATH=data/snapshot
	CATALOG_RELOAD_INTERVAL=1h
	HTTP_PORT=8080
	LOG_LEVEL=info
	LOG_FORMAT=json

# Signal Handling

SIGINT and SIGTERM cancel the supervisor context. The HTTP server drains
in-flight requests for up to HTTP_SHUTDOWN_TIMEOUT and the snapshot store is
closed before exit.

# Example Usage

	export CATALOG_PATH=./movies.csv
	export LOG_FORMAT=console
	./marquee-server

	curl 'http://localhost:8080/api/v1/recommendations?movie=Heat'
*/
package main
