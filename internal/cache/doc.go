// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package cache provides an in-memory LRU cache with TTL expiry.

It backs the memory tier of the poster URL cache and the engine's
recommendation result cache:

	urls := cache.NewLRU[string](5000, 24*time.Hour)
	urls.Add("19995", "https://image.tmdb.org/t/p/w500/abc.jpg")
	if u, ok := urls.Get("19995"); ok {
		...
	}

A background sweep can call CleanupExpired to release memory held by
entries nobody asks for again.
*/
package cache
