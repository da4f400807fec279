// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_api_active_requests",
			Help: "Number of API requests currently being processed",
		},
	)

	// Recommendation Metrics
	RecommendationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_recommendations_total",
			Help: "Total number of recommendation requests by outcome",
		},
		[]string{"outcome"}, // ok, not_found
	)

	RecommendationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_duration_seconds",
			Help:    "Time spent ranking a similarity row",
			Buckets: []float64{.00005, .0001, .00025, .0005, .001, .0025, .005, .01, .025, .05},
		},
	)

	RecommendationResultSize = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_recommendation_result_size",
			Help:    "Number of recommendations returned per request",
			Buckets: []float64{0, 1, 2, 5, 10, 20, 50},
		},
	)

	// Poster Metrics
	PosterLookups = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_poster_lookups_total",
			Help: "Total number of poster lookups by result",
		},
		[]string{"result"}, // found, placeholder, failure
	)

	PosterLookupDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "reelmatch_poster_lookup_duration_seconds",
			Help:    "Remote poster metadata lookup duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	// Cache Metrics
	CacheHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_hits_total",
			Help: "Total number of cache hits",
		},
		[]string{"cache_type"},
	)

	CacheMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_cache_misses_total",
			Help: "Total number of cache misses",
		},
		[]string{"cache_type"},
	)

	// Circuit Breaker Metrics
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_requests_total",
			Help: "Total number of requests through circuit breaker",
		},
		[]string{"name", "result"}, // result: "success", "failure", "rejected"
	)

	CircuitBreakerConsecutiveFailures = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "reelmatch_circuit_breaker_consecutive_failures",
			Help: "Current number of consecutive failures",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_circuit_breaker_state_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from_state", "to_state"},
	)

	// Artifact Metrics
	ArtifactLoadDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "reelmatch_artifact_load_duration_seconds",
			Help:    "Time spent decoding a dataset artifact",
			Buckets: []float64{.01, .05, .1, .5, 1, 2.5, 5, 10, 30},
		},
		[]string{"artifact"},
	)

	ArtifactDownloads = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "reelmatch_artifact_downloads_total",
			Help: "Total number of artifact downloads by result",
		},
		[]string{"artifact", "result"}, // result: success, failure
	)

	CatalogSize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "reelmatch_catalog_movies",
			Help: "Number of movies in the loaded catalog",
		},
	)
)

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordRecommendation records one ranking call. found is false when the
// query title or id was not in the catalog.
func RecordRecommendation(duration time.Duration, results int, found bool) {
	if !found {
		RecommendationsTotal.WithLabelValues("not_found").Inc()
		return
	}
	RecommendationsTotal.WithLabelValues("ok").Inc()
	RecommendationDuration.Observe(duration.Seconds())
	RecommendationResultSize.Observe(float64(results))
}

// RecordPosterLookup records a resolved poster. result is one of
// found, placeholder or failure.
func RecordPosterLookup(result string, duration time.Duration) {
	PosterLookups.WithLabelValues(result).Inc()
	if duration > 0 {
		PosterLookupDuration.Observe(duration.Seconds())
	}
}

// RecordCacheAccess increments the hit or miss counter for cacheType.
func RecordCacheAccess(cacheType string, hit bool) {
	if hit {
		CacheHits.WithLabelValues(cacheType).Inc()
		return
	}
	CacheMisses.WithLabelValues(cacheType).Inc()
}

// RecordArtifactDownload records a download attempt for an artifact.
func RecordArtifactDownload(artifact string, err error) {
	result := "success"
	if err != nil {
		result = "failure"
	}
	ArtifactDownloads.WithLabelValues(artifact, result).Inc()
}
