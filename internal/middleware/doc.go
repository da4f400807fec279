// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package middleware provides HTTP middleware for the ReelMatch API.

All middleware has the chi signature func(http.Handler) http.Handler:

  - RequestID: X-Request-ID propagation plus request and correlation IDs
    in the logging context
  - PrometheusMetrics: request count, latency and in-flight gauge labelled
    by chi route pattern
  - Compression: gzip for clients that accept it
  - PerformanceMonitor.Middleware: sliding-window latency percentiles
    served by the stats endpoint

Typical wiring:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Route("/api/v1", func(r chi.Router) {
	    r.Use(middleware.PrometheusMetrics)
	    r.Use(perf.Middleware)
	    r.Use(middleware.Compression)
	    r.Get("/movies", h.Movies)
	})
*/
package middleware
