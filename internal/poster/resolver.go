// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/metrics"
)

// Config tunes the Resolver.
type Config struct {
	// ImageBaseURL is joined with poster_path to form the image URL.
	ImageBaseURL string

	// PlaceholderURL is returned for movies without a poster and for
	// failed entries of a batch.
	PlaceholderURL string

	// Concurrency bounds simultaneous lookups in ResolveAll.
	Concurrency int

	// Timeout bounds each lookup. Zero means no per-lookup timeout.
	Timeout time.Duration

	// CacheTTL is the lifetime of cached URLs.
	CacheTTL time.Duration
}

// DefaultConfig returns the TMDB w500 image base and the standard
// placeholder.
func DefaultConfig() Config {
	return Config{
		ImageBaseURL:   DefaultImageBaseURL,
		PlaceholderURL: PlaceholderURL,
		Concurrency:    5,
		Timeout:        5 * time.Second,
		CacheTTL:       24 * time.Hour,
	}
}

// Result is the outcome of one batch entry.
type Result struct {
	MovieID catalog.ExternalID `json:"movie_id"`
	URL     string             `json:"url"`

	// Placeholder is true when URL is the placeholder image.
	Placeholder bool `json:"placeholder"`

	// Err is set when the lookup failed; URL is then the placeholder.
	Err error `json:"-"`
}

// Resolver maps movie ids to display-ready poster URLs.
type Resolver struct {
	fetcher DetailsFetcher
	config  Config
	cache   Cache
	logger  zerolog.Logger
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithCache puts c in front of lookups.
func WithCache(c Cache) ResolverOption {
	return func(r *Resolver) {
		r.cache = c
	}
}

// WithLogger sets the resolver logger.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func WithLogger(l zerolog.Logger) ResolverOption {
	return func(r *Resolver) {
		r.logger = l
	}
}

// NewResolver creates a resolver backed by fetcher.
func NewResolver(fetcher DetailsFetcher, cfg Config, opts ...ResolverOption) *Resolver {
	def := DefaultConfig()
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = def.ImageBaseURL
	}
	if cfg.PlaceholderURL == "" {
		cfg.PlaceholderURL = def.PlaceholderURL
	}
	if cfg.Concurrency <= 0 {
		cfg.Concurrency = def.Concurrency
	}
	if cfg.CacheTTL <= 0 {
		cfg.CacheTTL = def.CacheTTL
	}

	r := &Resolver{
		fetcher: fetcher,
		config:  cfg,
		logger:  zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Placeholder returns the configured placeholder URL.
func (r *Resolver) Placeholder() string {
	return r.config.PlaceholderURL
}

// Resolve returns the poster URL for id. A movie without a poster yields
// the placeholder URL and no error. Lookup failures return "" and an error
// matching ErrLookupFailure.
func (r *Resolver) Resolve(ctx context.Context, id catalog.ExternalID) (string, error) {
	start := time.Now()
	key := id.String()

	if r.cache != nil {
		if u, ok := r.cache.Get(ctx, key); ok {
			metrics.RecordCacheAccess("poster", true)
			return u, nil
		}
		metrics.RecordCacheAccess("poster", false)
	}

	if r.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.config.Timeout)
		defer cancel()
	}

	details, err := r.fetcher.MovieDetails(ctx, id)
	if err != nil {
		metrics.RecordPosterLookup("failure", time.Since(start))
		if !errors.Is(err, ErrLookupFailure) {
			err = lookupErr(id, 0, err)
		}
		return "", err
	}

	u, found := r.posterURL(details.PosterPath)
	if found {
		metrics.RecordPosterLookup("found", time.Since(start))
	} else {
		metrics.RecordPosterLookup("placeholder", time.Since(start))
	}

	if r.cache != nil {
		if err := r.cache.Set(ctx, key, u, r.config.CacheTTL); err != nil {
			r.logger.Warn().Err(err).Str("movie_id", key).Msg("failed to cache poster url")
		}
	}
	return u, nil
}

// ResolveAll resolves ids concurrently. The result has one entry per id in
// input order. Failed entries carry the placeholder URL and their error;
// the batch itself never fails.
func (r *Resolver) ResolveAll(ctx context.Context, ids []catalog.ExternalID) []Result {
	results := make([]Result, len(ids))
	sem := make(chan struct{}, r.config.Concurrency)
	var wg sync.WaitGroup

	for i, id := range ids {
		wg.Add(1)
		go func(i int, id catalog.ExternalID) {
			defer wg.Done()

			select {
			case sem <- struct{}{}:
				defer func() { <-sem }()
			case <-ctx.Done():
				results[i] = r.failed(id, lookupErr(id, 0, ctx.Err()))
				return
			}

			u, err := r.Resolve(ctx, id)
			if err != nil {
				results[i] = r.failed(id, err)
				return
			}
			results[i] = Result{MovieID: id, URL: u, Placeholder: u == r.config.PlaceholderURL}
		}(i, id)
	}
	wg.Wait()

	return results
}

func (r *Resolver) failed(id catalog.ExternalID, err error) Result {
	r.logger.Warn().Err(err).Str("movie_id", id.String()).Msg("poster lookup failed, using placeholder")
	return Result{MovieID: id, URL: r.config.PlaceholderURL, Placeholder: true, Err: err}
}

// posterURL joins the image base and path with exactly one slash.
func (r *Resolver) posterURL(path string) (string, bool) {
	path = strings.TrimSpace(path)
	if path == "" {
		return r.config.PlaceholderURL, false
	}
	return strings.TrimRight(r.config.ImageBaseURL, "/") + "/" + strings.TrimLeft(path, "/"), true
}
