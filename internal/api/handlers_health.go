// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"
	"time"
)

// HealthStatus is the payload of the health endpoints.
type HealthStatus struct {
	Status         string  `json:"status"`
	Version        string  `json:"version"`
	CatalogSize    int     `json:"catalog_size"`
	PostersEnabled bool    `json:"posters_enabled"`
	BreakerState   string  `json:"tmdb_breaker_state,omitempty"`
	UptimeSeconds  float64 `json:"uptime_seconds"`
}

// Health handles GET /api/v1/health
// The service is "degraded" while the TMDB breaker is open: recommendations
// still work but posters fall back to the placeholder.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(h.healthStatus())
}

// HealthLive handles GET /api/v1/health/live
// Liveness only proves the process is serving HTTP.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]string{"status": "alive"})
}

// HealthReady handles GET /api/v1/health/ready
// The handler only exists once the dataset is loaded, so readiness reduces
// to having a non-empty catalog.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil || h.engine.Catalog() == nil || h.engine.Catalog().Len() == 0 {
		rw.ServiceUnavailable("Dataset is not loaded")
		return
	}
	rw.Success(map[string]interface{}{
		"status":       "ready",
		"catalog_size": h.engine.Catalog().Len(),
	})
}

func (h *Handler) healthStatus() HealthStatus {
	status := HealthStatus{
		Status:         "healthy",
		Version:        h.config.Version,
		PostersEnabled: h.config.PostersEnabled,
		UptimeSeconds:  time.Since(h.startTime).Seconds(),
	}
	if h.engine != nil && h.engine.Catalog() != nil {
		status.CatalogSize = h.engine.Catalog().Len()
	}
	if h.breaker != nil {
		status.BreakerState = h.breaker()
		if status.BreakerState == "open" {
			status.Status = "degraded"
		}
	}
	return status
}
