// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package config loads ReelMatch configuration.

Values are layered with Koanf v2: built-in defaults, then an optional YAML
file, then environment variables. The file is taken from CONFIG_PATH when
set, otherwise the first of DefaultConfigPaths that exists.

# Environment Variables

Only mapped variables are read; see envMappings for the full list.

Server:
  - HTTP_PORT / PORT: Listen port (default: 8501)
  - HTTP_HOST: Bind address (default: 0.0.0.0)

Data:
  - CATALOG_PATH, CATALOG_URL: Movie list location and download source
  - SIMILARITY_PATH, SIMILARITY_URL: Similarity matrix location and source
  - DUPLICATE_TITLES: first or reject (default: first)

TMDB:
  - TMDB_API_KEY: API key; without it every poster is the placeholder
  - TMDB_LANGUAGE: Response language (default: en-US)

Posters:
  - POSTER_CACHE: none, memory or badger (default: memory)
  - POSTER_CACHE_DIR: Badger directory
  - POSTER_CONCURRENCY: Parallel lookups per batch (default: 5)

Security:
  - CORS_ORIGINS: Comma-separated allowed origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

# Usage

	cfg, err := config.Load()
	if err != nil {
	    logging.Fatal().Err(err).Msg("Failed to load configuration")
	}
*/
package config
