// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package poster

import (
	"errors"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// ErrLookupFailure marks a poster lookup that could not be completed:
// transport errors, timeouts, non-success status codes, malformed bodies
// and open-circuit rejections. A movie without a poster is not a failure.
var ErrLookupFailure = errors.New("poster lookup failed")

// LookupError carries the details of a failed lookup.
type LookupError struct {
	MovieID    catalog.ExternalID
	StatusCode int
	Err        error
}

// Error implements error.
func (e *LookupError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("poster lookup for movie %s: HTTP %d: %v", e.MovieID, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("poster lookup for movie %s: %v", e.MovieID, e.Err)
}

// Unwrap returns the underlying cause.
func (e *LookupError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLookupFailure.
func (e *LookupError) Is(target error) bool {
	return target == ErrLookupFailure
}

func lookupErr(id catalog.ExternalID, status int, err error) *LookupError {
	return &LookupError{MovieID: id, StatusCode: status, Err: err}
}
