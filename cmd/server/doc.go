// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package main is the ReelMatch HTTP server.

It loads a movie catalog and its precomputed similarity matrix, then serves
top-K similar movies with TMDB poster URLs over a JSON API.

# Startup

 1. Configuration: koanf v2 (defaults, config.yaml, environment)
 2. Logging: zerolog, JSON or console
 3. Dataset: catalog and similarity artifacts, downloaded when missing
 4. Engine: dimension check against the catalog, result cache
 5. Posters: TMDB client, circuit breaker, cache (none, memory or badger)
 6. Supervisor tree: HTTP server plus cache maintenance

A dataset that cannot be loaded is fatal. A missing TMDB_API_KEY is not:
every poster then resolves to the placeholder image.

# Supervision

	RootSupervisor ("reelmatch")
	├── DataSupervisor ("data-layer")
	│   └── cache-maintenance
	└── APISupervisor ("api-layer")
	    └── http-server

# Signals

SIGINT and SIGTERM cancel the root context. The HTTP server drains for
SHUTDOWN_TIMEOUT before the process exits.

# Example

	export TMDB_API_KEY=your-key
	export CATALOG_PATH=data/movie_list.json
	export SIMILARITY_PATH=data/similarity.bin
	./reelmatch-server

	curl 'http://localhost:8501/api/v1/recommendations?title=Avatar&k=5'
*/
package main
