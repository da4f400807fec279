// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package middleware

import (
	"net/http"
	"sort"
	"sync"
	"time"

	"github.com/tomtom215/reelmatch/internal/logging"
)

// DefaultSlowThreshold is the latency above which a request is logged.
const DefaultSlowThreshold = time.Second

// RequestMetrics is one observed request.
type RequestMetrics struct {
	Route      string
	Method     string
	Duration   time.Duration
	StatusCode int
	Timestamp  time.Time
}

// EndpointStats contains aggregated latency statistics for one route.
type EndpointStats struct {
	Endpoint     string  `json:"endpoint"`
	RequestCount int64   `json:"request_count"`
	ErrorCount   int64   `json:"error_count"`
	AvgMS        float64 `json:"avg_ms"`
	P50MS        float64 `json:"p50_ms"`
	P95MS        float64 `json:"p95_ms"`
	P99MS        float64 `json:"p99_ms"`
	MinMS        float64 `json:"min_ms"`
	MaxMS        float64 `json:"max_ms"`
}

// PerformanceMonitor keeps a sliding window of recent requests and serves
// per-route percentiles from it.
type PerformanceMonitor struct {
	mu            sync.RWMutex
	window        []RequestMetrics
	next          int
	full          bool
	slowThreshold time.Duration
	now           func() time.Time
}

// NewPerformanceMonitor creates a monitor remembering the last windowSize
// requests. A non-positive slowThreshold uses DefaultSlowThreshold.
func NewPerformanceMonitor(windowSize int, slowThreshold time.Duration) *PerformanceMonitor {
	if windowSize < 1 {
		windowSize = 1000
	}
	if slowThreshold <= 0 {
		slowThreshold = DefaultSlowThreshold
	}
	return &PerformanceMonitor{
		window:        make([]RequestMetrics, windowSize),
		slowThreshold: slowThreshold,
		now:           time.Now,
	}
}

// RecordRequest adds a request to the window, evicting the oldest entry
// once the window is full.
func (pm *PerformanceMonitor) RecordRequest(m RequestMetrics) {
	pm.mu.Lock()
	defer pm.mu.Unlock()

	pm.window[pm.next] = m
	pm.next++
	if pm.next == len(pm.window) {
		pm.next = 0
		pm.full = true
	}
}

// snapshot must be called with pm.mu held.
func (pm *PerformanceMonitor) snapshot() []RequestMetrics {
	if pm.full {
		out := make([]RequestMetrics, 0, len(pm.window))
		out = append(out, pm.window[pm.next:]...)
		return append(out, pm.window[:pm.next]...)
	}
	out := make([]RequestMetrics, pm.next)
	copy(out, pm.window[:pm.next])
	return out
}

// GetStats returns per-endpoint statistics sorted by request count
// descending, then endpoint name.
func (pm *PerformanceMonitor) GetStats() []EndpointStats {
	pm.mu.RLock()
	recent := pm.snapshot()
	pm.mu.RUnlock()

	durations := make(map[string][]time.Duration)
	errCounts := make(map[string]int64)
	for _, m := range recent {
		key := m.Method + " " + m.Route
		durations[key] = append(durations[key], m.Duration)
		if m.StatusCode >= http.StatusInternalServerError {
			errCounts[key]++
		}
	}

	stats := make([]EndpointStats, 0, len(durations))
	for endpoint, ds := range durations {
		sort.Slice(ds, func(i, j int) bool { return ds[i] < ds[j] })

		var sum time.Duration
		for _, d := range ds {
			sum += d
		}

		stats = append(stats, EndpointStats{
			Endpoint:     endpoint,
			RequestCount: int64(len(ds)),
			ErrorCount:   errCounts[endpoint],
			AvgMS:        ms(sum / time.Duration(len(ds))),
			P50MS:        ms(percentile(ds, 0.50)),
			P95MS:        ms(percentile(ds, 0.95)),
			P99MS:        ms(percentile(ds, 0.99)),
			MinMS:        ms(ds[0]),
			MaxMS:        ms(ds[len(ds)-1]),
		})
	}

	sort.Slice(stats, func(i, j int) bool {
		if stats[i].RequestCount != stats[j].RequestCount {
			return stats[i].RequestCount > stats[j].RequestCount
		}
		return stats[i].Endpoint < stats[j].Endpoint
	})

	return stats
}

// GetRecentMetrics returns the most recent n requests, oldest first.
func (pm *PerformanceMonitor) GetRecentMetrics(n int) []RequestMetrics {
	pm.mu.RLock()
	recent := pm.snapshot()
	pm.mu.RUnlock()

	if n > len(recent) {
		n = len(recent)
	}
	if n < 0 {
		n = 0
	}
	return recent[len(recent)-n:]
}

// Middleware records every request passing through and logs slow ones.
func (pm *PerformanceMonitor) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := pm.now()
		wrapper := newStatusRecorder(w)

		next.ServeHTTP(wrapper, r)

		duration := pm.now().Sub(start)
		route := routeLabel(r)
		pm.RecordRequest(RequestMetrics{
			Route:      route,
			Method:     r.Method,
			Duration:   duration,
			StatusCode: wrapper.statusCode,
			Timestamp:  start,
		})

		if duration > pm.slowThreshold {
			logging.Ctx(r.Context()).Warn().
				Str("method", r.Method).
				Str("route", route).
				Dur("duration", duration).
				Dur("threshold", pm.slowThreshold).
				Msg("Slow request detected")
		}
	})
}

// percentile picks the nearest-rank value from a sorted slice.
func percentile(sorted []time.Duration, p float64) time.Duration {
	if len(sorted) == 0 {
		return 0
	}
	index := int(float64(len(sorted)-1) * p)
	return sorted[index]
}

func ms(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
