// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package catalog holds the ordered list of movies the recommender can answer
about.

Record positions are significant: position i in the catalog is row and
column i of the similarity matrix. A Catalog is immutable once built and is
safe for concurrent use.

Catalogs load from a JSON array of objects or a CSV file with a header row:

	[{"title": "Avatar", "movie_id": 19995}, ...]

	movie_id,title
	19995,Avatar

Identifiers may be numbers or strings; integral floats such as 19995.0 are
normalized to 19995.

Title lookups are exact and case-sensitive. When titles repeat, the first
position wins unless DuplicateReject is configured.
*/
package catalog
