// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"context"
	"fmt"
	"strconv"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/reelmatch/internal/cache"
	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/metrics"
	"github.com/tomtom215/reelmatch/internal/similarity"
)

// Engine ranks catalog movies by similarity to a query movie.
// The catalog and matrix are read-only; Engine is safe for concurrent use.
type Engine struct {
	config  *Config
	logger  zerolog.Logger
	catalog *catalog.Catalog
	matrix  *similarity.Matrix

	cache *cache.LRU[[]Recommendation]

	requestCount  atomic.Int64
	notFoundCount atomic.Int64
}

// NewEngine creates an engine over cat and m. The matrix must be exactly
// cat.Len() on each side.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(cat *catalog.Catalog, m *similarity.Matrix, cfg *Config, logger zerolog.Logger) (*Engine, error) {
	if cat == nil || m == nil {
		return nil, fmt.Errorf("catalog and similarity matrix are required")
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if m.Size() != cat.Len() {
		return nil, &DimensionMismatchError{CatalogSize: cat.Len(), MatrixSize: m.Size()}
	}

	e := &Engine{
		config:  cfg,
		logger:  logger.With().Str("component", "recommend").Logger(),
		catalog: cat,
		matrix:  m,
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[[]Recommendation](cfg.Cache.MaxEntries, cfg.Cache.TTL)
	}

	e.logger.Info().
		Int("movies", cat.Len()).
		Int("duplicate_titles", len(cat.Duplicates())).
		Msg("recommendation engine ready")

	return e, nil
}

// Recommend returns up to k movies most similar to the movie titled title.
// The title must match exactly. When several movies share the title the
// first one in catalog order is used.
func (e *Engine) Recommend(ctx context.Context, title string, k int) ([]Recommendation, error) {
	pos, ok := e.catalog.IndexOf(title)
	if !ok {
		e.requestCount.Add(1)
		return nil, e.notFound(ctx, &NotFoundError{Title: title})
	}
	return e.RecommendAt(ctx, pos, k)
}

// RecommendByID is Recommend keyed by external identifier.
func (e *Engine) RecommendByID(ctx context.Context, id catalog.ExternalID, k int) ([]Recommendation, error) {
	pos, ok := e.catalog.IndexOfID(id)
	if !ok {
		e.requestCount.Add(1)
		return nil, e.notFound(ctx, &NotFoundError{MovieID: id})
	}
	return e.RecommendAt(ctx, pos, k)
}

// RecommendAt ranks against the movie at catalog position pos. The result
// has min(k, N-1) entries, never includes pos, and is ordered by score
// descending with ties broken by ascending catalog position.
func (e *Engine) RecommendAt(ctx context.Context, pos, k int) ([]Recommendation, error) {
	start := time.Now()
	e.requestCount.Add(1)

	if k < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidK, k)
	}
	if pos < 0 || pos >= e.catalog.Len() {
		return nil, e.notFound(ctx, &NotFoundError{MovieID: catalog.ExternalID(strconv.Itoa(pos))})
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	key := strconv.Itoa(pos) + ":" + strconv.Itoa(k)
	if recs, ok := e.cachedResult(key); ok {
		metrics.RecordRecommendation(time.Since(start), len(recs), true)
		return recs, nil
	}

	row := e.matrix.Row(pos)
	positions := topK(row, pos, k)

	recs := make([]Recommendation, len(positions))
	for i, j := range positions {
		rec := e.catalog.At(j)
		recs[i] = Recommendation{
			Rank:     i + 1,
			Title:    rec.Title,
			MovieID:  rec.MovieID,
			Position: j,
			Score:    row[j],
		}
	}

	e.storeResult(key, recs)
	metrics.RecordRecommendation(time.Since(start), len(recs), true)

	e.logger.Debug().
		Str("title", e.catalog.At(pos).Title).
		Int("k", k).
		Int("returned", len(recs)).
		Dur("duration", time.Since(start)).
		Msg("recommendation complete")

	return recs, nil
}

// Catalog returns the catalog the engine ranks over.
func (e *Engine) Catalog() *catalog.Catalog {
	return e.catalog
}

// Size returns the number of movies in the catalog.
func (e *Engine) Size() int {
	return e.catalog.Len()
}

// DefaultK returns the configured default result count.
func (e *Engine) DefaultK() int {
	return e.config.DefaultK
}

// GetMetrics returns the current engine counters.
func (e *Engine) GetMetrics() Metrics {
	m := Metrics{
		RequestCount:  e.requestCount.Load(),
		NotFoundCount: e.notFoundCount.Load(),
		CatalogSize:   e.catalog.Len(),
	}
	if e.cache != nil {
		m.CacheHits, m.CacheMisses, m.CacheEntries = e.cache.Stats()
	}
	return m
}

// GetConfig returns a copy of the engine configuration.
func (e *Engine) GetConfig() *Config {
	return e.config.Clone()
}

// CleanupCache drops expired cached results and returns how many were
// removed.
func (e *Engine) CleanupCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}

func (e *Engine) notFound(ctx context.Context, err *NotFoundError) error {
	e.notFoundCount.Add(1)
	metrics.RecordRecommendation(0, 0, false)
	e.logger.Debug().
		Str("title", err.Title).
		Str("movie_id", err.MovieID.String()).
		Str("request_id", logging.RequestIDFromContext(ctx)).
		Msg("movie not found")
	return err
}

// cachedResult returns a copy of a cached result.
func (e *Engine) cachedResult(key string) ([]Recommendation, bool) {
	if e.cache == nil {
		return nil, false
	}
	recs, ok := e.cache.Get(key)
	metrics.RecordCacheAccess("recommendations", ok)
	if !ok {
		return nil, false
	}
	out := make([]Recommendation, len(recs))
	copy(out, recs)
	return out, true
}

func (e *Engine) storeResult(key string, recs []Recommendation) {
	if e.cache == nil {
		return
	}
	stored := make([]Recommendation, len(recs))
	copy(stored, recs)
	e.cache.Add(key, stored)
}
