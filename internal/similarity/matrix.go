// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package similarity

import (
	"errors"
	"fmt"
	"math"
)

// Sentinel errors for matrix construction.
var (
	// ErrEmpty indicates a matrix with no rows.
	ErrEmpty = errors.New("similarity: matrix is empty")

	// ErrNotSquare indicates a row whose length differs from the row count.
	ErrNotSquare = errors.New("similarity: matrix is not square")

	// ErrNonFinite indicates a NaN or infinite score. Scores are served as
	// JSON numbers, which cannot represent either.
	ErrNonFinite = errors.New("similarity: matrix contains NaN or Inf")
)

// Matrix is a dense N x N table of pairwise scores stored row-major.
// It is read-only after construction.
type Matrix struct {
	n    int
	data []float64
}

// New wraps data as an n x n matrix. data is used as-is and must not be
// modified afterwards.
func New(n int, data []float64) (*Matrix, error) {
	if n <= 0 {
		return nil, ErrEmpty
	}
	if len(data) != n*n {
		return nil, fmt.Errorf("%w: %d values for %d rows", ErrNotSquare, len(data), n)
	}
	for i, v := range data {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("%w: row %d column %d", ErrNonFinite, i/n, i%n)
		}
	}
	return &Matrix{n: n, data: data}, nil
}

// FromRows copies rows into a new Matrix.
func FromRows(rows [][]float64) (*Matrix, error) {
	n := len(rows)
	if n == 0 {
		return nil, ErrEmpty
	}
	data := make([]float64, 0, n*n)
	for i, row := range rows {
		if len(row) != n {
			return nil, fmt.Errorf("%w: row %d has %d values, want %d", ErrNotSquare, i, len(row), n)
		}
		data = append(data, row...)
	}
	return New(n, data)
}

// Size returns N.
func (m *Matrix) Size() int {
	return m.n
}

// At returns the score between items i and j.
func (m *Matrix) At(i, j int) float64 {
	return m.data[i*m.n+j]
}

// Row returns row i. The returned slice aliases the matrix and must not be
// modified.
func (m *Matrix) Row(i int) []float64 {
	return m.data[i*m.n : (i+1)*m.n]
}
