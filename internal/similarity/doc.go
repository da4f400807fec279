// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

/*
Package similarity stores the precomputed pairwise similarity matrix.

Row i and column i belong to catalog position i. The matrix need not be
symmetric and its diagonal is never consulted. Two on-disk forms are
understood: a JSON array of arrays, and a compact little-endian binary form
with a 12-byte header (see WriteBinary). Binary is the default for any file
that is not named *.json.
*/
package similarity
