// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import "github.com/tomtom215/reelmatch/internal/catalog"

// Recommendation is one ranked result.
type Recommendation struct {
	// Rank is the 1-based position in the result list.
	Rank int `json:"rank"`

	// Title is the recommended movie's title.
	Title string `json:"title"`

	// MovieID is passed through verbatim from the catalog.
	MovieID catalog.ExternalID `json:"movie_id"`

	// Position is the catalog position of the movie.
	Position int `json:"position"`

	// Score is the similarity to the query movie.
	Score float64 `json:"score"`
}

// Metrics contains engine counters.
type Metrics struct {
	// RequestCount is the total number of recommendation requests.
	RequestCount int64 `json:"request_count"`

	// NotFoundCount is the number of requests for unknown movies.
	NotFoundCount int64 `json:"not_found_count"`

	// CacheHits is the number of cache hits.
	CacheHits int64 `json:"cache_hits"`

	// CacheMisses is the number of cache misses.
	CacheMisses int64 `json:"cache_misses"`

	// CacheEntries is the number of results currently cached.
	CacheEntries int `json:"cache_entries"`

	// CatalogSize is the number of movies the engine ranks over.
	CatalogSize int `json:"catalog_size"`
}
