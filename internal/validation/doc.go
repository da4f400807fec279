// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

// Package validation checks parsed API request parameters with
// go-playground/validator v10.
//
// Request structs name each field after the query or path parameter it
// came from, so messages speak the client's vocabulary:
//
//	type recommendQuery struct {
//	    Title string `param:"title" validate:"required,notblank,max=500"`
//	    K     int    `param:"k" validate:"min=1"`
//	}
//
//	if verr := validation.ValidateStruct(&q); verr != nil {
//	    apiErr := verr.ToAPIError() // "k must be at least 1"
//	}
//
// Two rules are added to the built-in ones: notblank (a non-whitespace
// character is required) and movieid (any id catalog.ValidExternalID
// accepts).
package validation
