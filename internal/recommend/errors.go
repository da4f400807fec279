// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"errors"
	"fmt"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// Sentinel errors. Use errors.Is against these; the concrete types carry
// details.
var (
	// ErrNotFound indicates the requested movie is not in the catalog.
	ErrNotFound = errors.New("movie not found")

	// ErrDimensionMismatch indicates the similarity matrix does not line up
	// with the catalog.
	ErrDimensionMismatch = errors.New("similarity matrix does not match catalog")

	// ErrInvalidK indicates a negative result count.
	ErrInvalidK = errors.New("k must not be negative")
)

// NotFoundError reports a title or identifier with no catalog entry.
type NotFoundError struct {
	Title   string
	MovieID catalog.ExternalID
}

// Error implements error.
func (e *NotFoundError) Error() string {
	if e.Title != "" {
		return fmt.Sprintf("movie not found: %q", e.Title)
	}
	return fmt.Sprintf("movie not found: id %s", e.MovieID)
}

// Is reports whether target is ErrNotFound.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DimensionMismatchError reports a matrix whose size differs from the
// catalog length.
type DimensionMismatchError struct {
	CatalogSize int
	MatrixSize  int
}

// Error implements error.
func (e *DimensionMismatchError) Error() string {
	return fmt.Sprintf("similarity matrix is %dx%d but catalog has %d movies",
		e.MatrixSize, e.MatrixSize, e.CatalogSize)
}

// Is reports whether target is ErrDimensionMismatch.
func (e *DimensionMismatchError) Is(target error) bool {
	return target == ErrDimensionMismatch
}
