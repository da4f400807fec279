// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package metrics defines the Prometheus collectors exported by ReelMatch.
//
// Collectors are registered on the default registry at package init via
// promauto and exposed by the HTTP server at /metrics. Record* helpers keep
// label values consistent across callers.
//
// Metric families:
//   - reelmatch_api_*: request count, latency and in-flight gauge
//   - reelmatch_recommendation*: ranking outcomes, latency and result size
//   - reelmatch_poster_*: poster lookups by result and remote latency
//   - reelmatch_cache_*: poster cache hits and misses per backend
//   - reelmatch_circuit_breaker_*: TMDB breaker state and transitions
//   - reelmatch_artifact_*: dataset decode time and downloads
package metrics
