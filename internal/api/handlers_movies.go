// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// MovieItem is a catalog entry with its position.
type MovieItem struct {
	Position int                `json:"position"`
	Title    string             `json:"title"`
	MovieID  catalog.ExternalID `json:"movie_id"`
}

// Movies handles GET /api/v1/movies?search=&limit=
// Lists selectable titles in catalog order, optionally filtered by a
// case-insensitive substring.
func (h *Handler) Movies(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, apiErr := h.parseMoviesRequest(r)
	if apiErr != nil {
		respondValidation(rw, apiErr)
		return
	}

	cat := h.engine.Catalog()
	matches := cat.SearchPositions(req.Search, 0)
	total := len(matches)
	if req.Limit > 0 && len(matches) > req.Limit {
		matches = matches[:req.Limit]
	}

	items := make([]MovieItem, len(matches))
	for i, pos := range matches {
		m := cat.At(pos)
		items[i] = MovieItem{Position: pos, Title: m.Title, MovieID: m.MovieID}
	}

	rw.SuccessWithPagination(items, &PaginationMeta{
		Total:   total,
		Count:   len(items),
		Limit:   req.Limit,
		HasMore: len(items) < total,
	})
}

// Movie handles GET /api/v1/movies/{movieID}
func (h *Handler) Movie(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	id, ok := h.movieIDParam(rw, r)
	if !ok {
		return
	}

	cat := h.engine.Catalog()
	pos, found := cat.IndexOfID(id)
	if !found {
		respondError(rw, r, &recommend.NotFoundError{MovieID: id})
		return
	}

	m := cat.At(pos)
	rw.Success(MovieItem{Position: pos, Title: m.Title, MovieID: m.MovieID})
}

// movieIDParam validates the {movieID} path parameter, writing a 400 on
// failure.
func (h *Handler) movieIDParam(rw *ResponseWriter, r *http.Request) (catalog.ExternalID, bool) {
	req := MovieIDRequest{MovieID: pathMovieID(r)}
	if apiErr := validate(&req); apiErr != nil {
		respondValidation(rw, apiErr)
		return "", false
	}
	return catalog.ExternalID(req.MovieID), true
}
