// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package api

import (
	"context"
	"errors"
	"net/http"

	"github.com/tomtom215/reelmatch/internal/logging"
	"github.com/tomtom215/reelmatch/internal/poster"
	"github.com/tomtom215/reelmatch/internal/recommend"
	"github.com/tomtom215/reelmatch/internal/validation"
)

// respondValidation writes a VALIDATION_ERROR response.
func respondValidation(rw *ResponseWriter, apiErr *validation.APIError) {
	var details interface{}
	if apiErr.Details != nil {
		details = apiErr.Details
	}
	rw.ValidationError(apiErr.Message, details)
}

// respondError maps a domain error to its HTTP response:
//   - not found: 404 NOT_FOUND
//   - invalid k: 400 VALIDATION_ERROR
//   - poster lookup failure: 502 EXTERNAL_SERVICE_FAILED
//   - client gone or deadline hit: 503 SERVICE_UNAVAILABLE
//   - anything else: 500 INTERNAL_ERROR
func respondError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, recommend.ErrNotFound):
		rw.NotFound(err.Error())
	case errors.Is(err, recommend.ErrInvalidK):
		rw.ValidationError(err.Error(), nil)
	case errors.Is(err, poster.ErrLookupFailure):
		rw.ExternalServiceError("tmdb", err)
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		rw.ServiceUnavailable("Request was canceled or timed out")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Str("path", r.URL.Path).Msg("Unhandled API error")
		rw.InternalError("An internal error occurred")
	}
}
