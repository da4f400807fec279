// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package poster resolves movie identifiers to poster image URLs through the
TMDB API.

The lookup chain is Resolver -> optional Cache -> BreakerClient -> Client:

	client, err := poster.NewClient(apiKey, "", "en-US",
	    poster.WithRateLimiter(rate.NewLimiter(rate.Limit(20), 40)))
	fetcher := poster.NewBreakerClient(client, poster.DefaultBreakerConfig())
	resolver := poster.NewResolver(fetcher, poster.DefaultConfig(),
	    poster.WithCache(poster.NewMemoryCache(5000, 24*time.Hour)))

	url, err := resolver.Resolve(ctx, "19995")

A movie that TMDB knows but has no poster_path resolves to the placeholder
image; that is a normal outcome. Transport errors, timeouts, non-2xx
answers, malformed JSON and open-circuit rejections are failures matching
ErrLookupFailure. ResolveAll never fails as a whole: each failed entry gets
the placeholder URL and keeps its error.

Failures are never cached.
*/
package poster
