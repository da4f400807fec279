// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Command reelmatch queries the movie similarity dataset from a terminal.
//
//	reelmatch recommend "The Dark Knight" -k 5 --posters
//	reelmatch titles --search knight
//	reelmatch fetch
//	reelmatch convert similarity.json similarity.bin --float32
//
// Configuration is read the same way as the server: built-in defaults,
// then the --config file (or CONFIG_PATH, or config.yaml), then the
// environment.
package main
