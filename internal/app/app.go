// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package app builds the recommendation engine and the poster resolver
// from configuration. Both binaries in cmd/ start here.
package app

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"golang.org/x/time/rate"

	"github.com/tomtom215/reelmatch/internal/artifact"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/config"
	"github.com/tomtom215/reelmatch/internal/dataset"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// DatasetConfig maps the data section onto dataset.Config.
func DatasetConfig(cfg *config.Config) dataset.Config {
	return dataset.Config{
		CatalogPath:      cfg.Data.CatalogPath,
		CatalogURL:       cfg.Data.CatalogURL,
		CatalogFormat:    cfg.Data.CatalogFormat,
		SimilarityPath:   cfg.Data.SimilarityPath,
		SimilarityURL:    cfg.Data.SimilarityURL,
		SimilarityFormat: cfg.Data.SimilarityFormat,
		DuplicatePolicy:  catalog.DuplicatePolicy(cfg.Data.DuplicateTitles),
	}
}

// EngineConfig maps the recommend section onto recommend.Config.
func EngineConfig(cfg *config.Config) *recommend.Config {
	return &recommend.Config{
		DefaultK: cfg.Recommend.DefaultK,
		MaxK:     cfg.Recommend.MaxK,
		Cache: recommend.CacheConfig{
			Enabled:    cfg.Recommend.CacheEnabled,
			MaxEntries: cfg.Recommend.CacheMaxEntries,
			TTL:        cfg.Recommend.CacheTTL,
		},
	}
}

// NewArtifactStore returns a store whose downloads time out after
// data.download_timeout.
func NewArtifactStore(cfg *config.Config) *artifact.Store {
	return artifact.NewStore(
		artifact.WithHTTPClient(&http.Client{Timeout: cfg.Data.DownloadTimeout}),
		artifact.WithLogger(logging.WithComponent("artifact")),
	)
}

// LoadEngine fetches and decodes the dataset and builds the engine on it.
func LoadEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	ds, err := dataset.Load(ctx, DatasetConfig(cfg), NewArtifactStore(cfg))
	if err != nil {
		return nil, err
	}
	return recommend.NewEngine(ds.Catalog, ds.Matrix, EngineConfig(cfg), logging.WithComponent("recommend"))
}

// PosterStack is the resolver together with the pieces the server needs
// for health and maintenance.
type PosterStack struct {
	Resolver *poster.Resolver

	// Breaker is nil when no API key is configured.
	Breaker *poster.BreakerClient

	// Cleaner expires cached URLs. Nil for cache=none.
	Cleaner func(ctx context.Context) (int, error)

	// Enabled reports whether real TMDB lookups happen.
	Enabled bool

	closers []func() error
}

// Close releases the persistent cache, if any.
func (p *PosterStack) Close() error {
	var errs []error
	for _, c := range p.closers {
		if err := c(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

// BreakerState reports the breaker state, or "" without a breaker.
func (p *PosterStack) BreakerState() string {
	if p.Breaker == nil {
		return ""
	}
	return p.Breaker.State()
}

// NewPosterStack builds the TMDB client, circuit breaker, cache and
// resolver from cfg. Without an API key every movie resolves to the
// placeholder and no cache is opened.
func NewPosterStack(cfg *config.Config) (*PosterStack, error) {
	log := logging.WithComponent("poster")
	resolverCfg := poster.Config{
		ImageBaseURL:   cfg.TMDB.ImageBaseURL,
		PlaceholderURL: cfg.TMDB.PlaceholderURL,
		Concurrency:    cfg.Poster.Concurrency,
		Timeout:        cfg.Poster.LookupTimeout,
		CacheTTL:       cfg.Poster.CacheTTL,
	}

	if cfg.TMDB.APIKey == "" {
		log.Warn().Msg("TMDB_API_KEY is not set, every poster resolves to the placeholder")
		return &PosterStack{
			Resolver: poster.NewResolver(poster.NoPosterFetcher{}, resolverCfg, poster.WithLogger(log)),
		}, nil
	}

	opts := []poster.Option{
		poster.WithHTTPClient(&http.Client{Timeout: cfg.TMDB.Timeout}),
		poster.WithRetries(cfg.TMDB.MaxRetries, cfg.TMDB.RetryDelay),
	}
	if cfg.TMDB.RateLimit > 0 {
		opts = append(opts, poster.WithRateLimiter(rate.NewLimiter(rate.Limit(cfg.TMDB.RateLimit), cfg.TMDB.RateBurst)))
	}
	client, err := poster.NewClient(cfg.TMDB.APIKey, cfg.TMDB.BaseURL, cfg.TMDB.Language, opts...)
	if err != nil {
		return nil, fmt.Errorf("create tmdb client: %w", err)
	}

	breaker := poster.NewBreakerClient(client, poster.BreakerConfig{
		MaxRequests:  cfg.Poster.Breaker.MaxRequests,
		Interval:     cfg.Poster.Breaker.Interval,
		Timeout:      cfg.Poster.Breaker.Timeout,
		MinRequests:  cfg.Poster.Breaker.MinRequests,
		FailureRatio: cfg.Poster.Breaker.FailureRatio,
	})

	stack := &PosterStack{Breaker: breaker, Enabled: true}
	resolverOpts := []poster.ResolverOption{poster.WithLogger(log)}

	switch cfg.Poster.Cache {
	case "memory":
		mc := poster.NewMemoryCache(cfg.Poster.CacheMaxEntries, cfg.Poster.CacheTTL)
		stack.Cleaner = mc.Cleanup
		resolverOpts = append(resolverOpts, poster.WithCache(mc))
	case "badger":
		bc, err := poster.OpenBadgerCache(cfg.Poster.CacheDir)
		if err != nil {
			return nil, err
		}
		stack.Cleaner = bc.Cleanup
		stack.closers = append(stack.closers, bc.Close)
		resolverOpts = append(resolverOpts, poster.WithCache(bc))
	}

	stack.Resolver = poster.NewResolver(breaker, resolverCfg, resolverOpts...)

	log.Info().
		Str("cache", cfg.Poster.Cache).
		Float64("rate_limit", cfg.TMDB.RateLimit).
		Int("concurrency", cfg.Poster.Concurrency).
		Msg("TMDB poster lookup enabled")
	return stack, nil
}
