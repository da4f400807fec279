// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// StatsResponse is the payload of the stats endpoint.
type StatsResponse struct {
	Engine    recommend.Metrics          `json:"engine"`
	Config    *recommend.Config          `json:"config"`
	Endpoints []middleware.EndpointStats `json:"endpoints"`
}

// Stats handles GET /api/v1/stats
// Returns engine counters, the engine settings in effect and per-route
// latency over the recent window.
func (h *Handler) Stats(w http.ResponseWriter, r *http.Request) {
	resp := StatsResponse{
		Engine:    h.engine.GetMetrics(),
		Config:    h.engine.GetConfig(),
		Endpoints: []middleware.EndpointStats{},
	}
	if h.perf != nil {
		resp.Endpoints = h.perf.GetStats()
	}
	NewResponseWriter(w, r).Success(resp)
}
