// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package artifact makes the catalog and similarity files available on
// local disk and defines LoadError, the error every dataset decoder returns.
//
// A Store checks the configured path first. Files that turn out to be an
// HTML page (a download host's warning or quota page saved in place of the
// data) are deleted. Missing files are downloaded from their source URL into
// a temporary file and renamed into place after the payload is checked.
package artifact
