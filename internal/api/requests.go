// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/tomtom215/reelmatch/internal/validation"
)

// RecommendRequest is the parsed query of the recommendation endpoints.
type RecommendRequest struct {
	Title   string `param:"title" validate:"required,notblank,max=500"`
	K       int    `param:"k" validate:"min=1"`
	Posters bool
}

// SimilarRequest is the parsed request of the by-id recommendation endpoint.
type SimilarRequest struct {
	MovieID string `param:"movieID" validate:"required,movieid"`
	K       int    `param:"k" validate:"min=1"`
	Posters bool
}

// MovieIDRequest is a movie id taken from the URL path.
type MovieIDRequest struct {
	MovieID string `param:"movieID" validate:"required,movieid"`
}

// MoviesRequest is the parsed query of the movie listing.
type MoviesRequest struct {
	Search string `param:"search" validate:"max=200"`
	Limit  int    `param:"limit" validate:"min=0"`
}

// pathMovieID returns the {movieID} path parameter, percent-decoded so
// that ids containing reserved characters can be addressed.
func pathMovieID(r *http.Request) string {
	raw := chi.URLParam(r, "movieID")
	if id, err := url.PathUnescape(raw); err == nil {
		return id
	}
	return raw
}

// paramError is a malformed query parameter.
type paramError struct {
	param string
	msg   string
}

func (e *paramError) Error() string {
	return fmt.Sprintf("%s %s", e.param, e.msg)
}

// intParam parses an optional integer query parameter.
func intParam(r *http.Request, key string, defaultValue int) (int, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, &paramError{param: key, msg: "must be an integer"}
	}
	return v, nil
}

// boolParam parses an optional boolean query parameter.
func boolParam(r *http.Request, key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultValue, nil
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, &paramError{param: key, msg: "must be true or false"}
	}
	return v, nil
}

// parseK reads k, applying defaultK when absent and enforcing 1..maxK.
func parseK(r *http.Request, defaultK, maxK int) (int, *validation.APIError) {
	k, err := intParam(r, "k", defaultK)
	if err != nil {
		return 0, paramAPIError(err)
	}
	if k > maxK {
		return 0, &validation.APIError{
			Code:    ErrCodeValidation,
			Message: fmt.Sprintf("k must be at most %d", maxK),
			Details: map[string]interface{}{"param": "k", "rule": "max"},
		}
	}
	return k, nil
}

// validate runs struct validation and converts failures to an APIError.
func validate(v interface{}) *validation.APIError {
	if verr := validation.ValidateStruct(v); verr != nil {
		return verr.ToAPIError()
	}
	return nil
}

func paramAPIError(err error) *validation.APIError {
	return &validation.APIError{
		Code:    ErrCodeValidation,
		Message: err.Error(),
	}
}

// parseRecommendRequest builds and validates a RecommendRequest from the
// query string.
func (h *Handler) parseRecommendRequest(r *http.Request) (*RecommendRequest, *validation.APIError) {
	k, apiErr := parseK(r, h.engine.DefaultK(), h.config.MaxK)
	if apiErr != nil {
		return nil, apiErr
	}
	posters, err := boolParam(r, "posters", true)
	if err != nil {
		return nil, paramAPIError(err)
	}

	req := &RecommendRequest{
		Title:   r.URL.Query().Get("title"),
		K:       k,
		Posters: posters,
	}
	if apiErr := validate(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// parseSimilarRequest builds and validates a SimilarRequest from the path
// and query string.
func (h *Handler) parseSimilarRequest(r *http.Request) (*SimilarRequest, *validation.APIError) {
	k, apiErr := parseK(r, h.engine.DefaultK(), h.config.MaxK)
	if apiErr != nil {
		return nil, apiErr
	}
	posters, err := boolParam(r, "posters", true)
	if err != nil {
		return nil, paramAPIError(err)
	}

	req := &SimilarRequest{
		MovieID: pathMovieID(r),
		K:       k,
		Posters: posters,
	}
	if apiErr := validate(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}

// parseMoviesRequest builds and validates a MoviesRequest.
func (h *Handler) parseMoviesRequest(r *http.Request) (*MoviesRequest, *validation.APIError) {
	limit, err := intParam(r, "limit", 0)
	if err != nil {
		return nil, paramAPIError(err)
	}
	if h.config.MaxListLimit > 0 && (limit == 0 || limit > h.config.MaxListLimit) {
		limit = h.config.MaxListLimit
	}

	req := &MoviesRequest{
		Search: strings.TrimSpace(r.URL.Query().Get("search")),
		Limit:  limit,
	}
	if apiErr := validate(req); apiErr != nil {
		return nil, apiErr
	}
	return req, nil
}
