// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"time"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/middleware"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// Recommender ranks catalog movies by similarity. *recommend.Engine
// implements it.
type Recommender interface {
	Recommend(ctx context.Context, title string, k int) ([]recommend.Recommendation, error)
	RecommendByID(ctx context.Context, id catalog.ExternalID, k int) ([]recommend.Recommendation, error)
	Catalog() *catalog.Catalog
	DefaultK() int
	GetMetrics() recommend.Metrics
	GetConfig() *recommend.Config
}

// PosterResolver maps movie ids to poster URLs. *poster.Resolver
// implements it.
type PosterResolver interface {
	Resolve(ctx context.Context, id catalog.ExternalID) (string, error)
	ResolveAll(ctx context.Context, ids []catalog.ExternalID) []poster.Result
	Placeholder() string
}

// HandlerConfig holds request limits for the handlers.
type HandlerConfig struct {
	// MaxK is the largest k a client may request.
	MaxK int

	// MaxListLimit caps the movies listing. 0 means unlimited.
	MaxListLimit int

	// PostersEnabled reports whether a TMDB API key is configured. It is
	// surfaced in health output only; the resolver handles the fallback.
	PostersEnabled bool

	// Version is reported by the health endpoint.
	Version string
}

// Handler serves the ReelMatch HTTP API.
type Handler struct {
	engine    Recommender
	posters   PosterResolver
	config    HandlerConfig
	perf      *middleware.PerformanceMonitor
	breaker   func() string
	startTime time.Time
}

// HandlerOption configures a Handler.
type HandlerOption func(*Handler)

// WithPerformanceMonitor exposes the monitor's endpoint statistics on the
// stats endpoint.
func WithPerformanceMonitor(pm *middleware.PerformanceMonitor) HandlerOption {
	return func(h *Handler) {
		h.perf = pm
	}
}

// WithBreakerState reports the TMDB circuit breaker state in health output.
func WithBreakerState(state func() string) HandlerOption {
	return func(h *Handler) {
		h.breaker = state
	}
}

// NewHandler creates a Handler.
func NewHandler(engine Recommender, posters PosterResolver, cfg HandlerConfig, opts ...HandlerOption) *Handler {
	if cfg.MaxK < 1 {
		cfg.MaxK = recommend.DefaultConfig().MaxK
	}
	if cfg.Version == "" {
		cfg.Version = "dev"
	}
	h := &Handler{
		engine:    engine,
		posters:   posters,
		config:    cfg,
		startTime: time.Now(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}
