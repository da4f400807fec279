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

// PosterResponse is the payload of the poster endpoint.
type PosterResponse struct {
	MovieID     catalog.ExternalID `json:"movie_id"`
	Title       string             `json:"title"`
	URL         string             `json:"url"`
	Placeholder bool               `json:"placeholder"`
}

// Poster handles GET /api/v1/movies/{movieID}/poster
// A movie without a poster returns the placeholder URL. A failed lookup is
// a 502 rather than a silent placeholder.
func (h *Handler) Poster(w http.ResponseWriter, r *http.Request) {
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
	if h.posters == nil {
		rw.ServiceUnavailable("Poster lookup is not configured")
		return
	}

	u, err := h.posters.Resolve(r.Context(), id)
	if err != nil {
		respondError(rw, r, err)
		return
	}

	rw.Success(PosterResponse{
		MovieID:     id,
		Title:       cat.At(pos).Title,
		URL:         u,
		Placeholder: u == h.posters.Placeholder(),
	})
}
