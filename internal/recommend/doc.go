// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package recommend ranks movies by precomputed similarity.
//
// # Ranking
//
// Given a query movie at catalog position i, every other position j is a
// candidate scored by S[i][j]. Candidates are ordered by score descending,
// and equal scores are ordered by ascending catalog position, so results
// are fully deterministic. The query itself is never returned. Asking for
// more results than there are other movies returns all of them.
//
// Small k uses a bounded heap; k close to N falls back to a full sort.
//
// # Usage
//
//	engine, err := recommend.NewEngine(cat, matrix, recommend.DefaultConfig(), logger)
//	if err != nil {
//	    // *DimensionMismatchError when the matrix and catalog disagree
//	}
//	recs, err := engine.Recommend(ctx, "Avatar", 5)
//	if errors.Is(err, recommend.ErrNotFound) {
//	    ...
//	}
//
// # Thread Safety
//
// The engine holds no mutable ranking state. The optional result cache and
// counters are synchronized internally.
package recommend
