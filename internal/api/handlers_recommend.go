// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"net/http"

	"github.com/tomtom215/reelmatch/internal/catalog"
	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/recommend"
)

// RecommendationItem is one ranked movie, optionally with its poster.
type RecommendationItem struct {
	Rank     int                `json:"rank"`
	Title    string             `json:"title"`
	MovieID  catalog.ExternalID `json:"movie_id"`
	Position int                `json:"position"`
	Score    float64            `json:"score"`

	PosterURL         string `json:"poster_url,omitempty"`
	PosterPlaceholder bool   `json:"poster_placeholder,omitempty"`
	PosterError       string `json:"poster_error,omitempty"`
}

// RecommendationsResponse is the payload of the recommendation endpoints.
type RecommendationsResponse struct {
	Query MovieItem            `json:"query"`
	K     int                  `json:"k"`
	Count int                  `json:"count"`
	Items []RecommendationItem `json:"items"`
}

// Recommendations handles GET /api/v1/recommendations?title=&k=&posters=
// The title must match a catalog title exactly, including case.
func (h *Handler) Recommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, apiErr := h.parseRecommendRequest(r)
	if apiErr != nil {
		respondValidation(rw, apiErr)
		return
	}

	recs, err := h.engine.Recommend(r.Context(), req.Title, req.K)
	if err != nil {
		respondError(rw, r, err)
		return
	}

	cat := h.engine.Catalog()
	pos, _ := cat.IndexOf(req.Title)
	h.writeRecommendations(rw, r, cat, pos, req.K, recs, req.Posters)
}

// MovieRecommendations handles GET /api/v1/movies/{movieID}/recommendations?k=&posters=
func (h *Handler) MovieRecommendations(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)

	req, apiErr := h.parseSimilarRequest(r)
	if apiErr != nil {
		respondValidation(rw, apiErr)
		return
	}
	id := catalog.ExternalID(req.MovieID)

	recs, err := h.engine.RecommendByID(r.Context(), id, req.K)
	if err != nil {
		respondError(rw, r, err)
		return
	}

	cat := h.engine.Catalog()
	pos, _ := cat.IndexOfID(id)
	h.writeRecommendations(rw, r, cat, pos, req.K, recs, req.Posters)
}

func (h *Handler) writeRecommendations(rw *ResponseWriter, r *http.Request, cat *catalog.Catalog, pos, k int, recs []recommend.Recommendation, withPosters bool) {
	items := make([]RecommendationItem, len(recs))
	for i, rec := range recs {
		items[i] = RecommendationItem{
			Rank:     rec.Rank,
			Title:    rec.Title,
			MovieID:  rec.MovieID,
			Position: rec.Position,
			Score:    rec.Score,
		}
	}

	if withPosters && h.posters != nil && len(recs) > 0 {
		ids := make([]catalog.ExternalID, len(recs))
		for i, rec := range recs {
			ids[i] = rec.MovieID
		}
		failed := 0
		for i, res := range h.posters.ResolveAll(r.Context(), ids) {
			items[i].PosterURL = res.URL
			items[i].PosterPlaceholder = res.Placeholder
			if res.Err != nil {
				items[i].PosterError = res.Err.Error()
				failed++
			}
		}
		if failed > 0 {
			logging.Ctx(r.Context()).Warn().
				Int("failed", failed).
				Int("total", len(recs)).
				Msg("Some posters fell back to the placeholder")
		}
	}

	query := cat.At(pos)
	rw.Success(RecommendationsResponse{
		Query: MovieItem{Position: pos, Title: query.Title, MovieID: query.MovieID},
		K:     k,
		Count: len(items),
		Items: items,
	})
}
