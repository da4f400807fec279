// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"

	"github.com/tomtom215/reelmatch/internal/catalog"
)

// CodeValidation is the API error code for rejected request parameters.
const CodeValidation = "VALIDATION_ERROR"

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// FieldError is one rejected request parameter. Param is the name the
// client sent (the `param` struct tag), not the Go field name.
type FieldError struct {
	Param   string
	Rule    string
	Limit   string
	Message string
}

// Error is a failed request validation.
type Error struct {
	Fields []FieldError
}

// Error joins the field messages.
func (e *Error) Error() string {
	messages := make([]string, len(e.Fields))
	for i, f := range e.Fields {
		messages[i] = f.Message
	}
	return strings.Join(messages, "; ")
}

// APIError carries the code, message and details of an API error response.
// It lives here rather than in api to avoid an import cycle.
type APIError struct {
	Code    string
	Message string
	Details map[string]interface{}
}

// ToAPIError converts e to a VALIDATION_ERROR payload. Details name the
// offending parameter, or list every parameter when more than one failed.
func (e *Error) ToAPIError() *APIError {
	apiErr := &APIError{Code: CodeValidation, Message: e.Error()}
	switch len(e.Fields) {
	case 0:
		apiErr.Message = "invalid request"
	case 1:
		apiErr.Details = map[string]interface{}{
			"param": e.Fields[0].Param,
			"rule":  e.Fields[0].Rule,
		}
	default:
		params := make([]string, len(e.Fields))
		for i, f := range e.Fields {
			params[i] = f.Param
		}
		apiErr.Details = map[string]interface{}{"params": params}
	}
	return apiErr
}

// Validator returns the shared validator with the notblank and movieid
// rules registered and parameter names taken from `param` tags.
func Validator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		validate.RegisterTagNameFunc(func(f reflect.StructField) string {
			if name, _, _ := strings.Cut(f.Tag.Get("param"), ","); name != "" && name != "-" {
				return name
			}
			return f.Name
		})
		// Registration only fails for empty tags or nil functions.
		_ = validate.RegisterValidation("notblank", notBlank)
		_ = validate.RegisterValidation("movieid", movieID)
	})
	return validate
}

// ValidateStruct checks s against its `validate` tags. It returns nil when
// s is valid.
func ValidateStruct(s interface{}) *Error {
	err := Validator().Struct(s)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return &Error{Fields: []FieldError{{Param: "request", Rule: "invalid", Message: err.Error()}}}
	}

	out := &Error{Fields: make([]FieldError, len(fieldErrs))}
	for i, fe := range fieldErrs {
		out.Fields[i] = FieldError{
			Param:   fe.Field(),
			Rule:    fe.Tag(),
			Limit:   fe.Param(),
			Message: message(fe),
		}
	}
	return out
}

func message(fe validator.FieldError) string {
	name := fe.Field()
	text := fe.Kind() == reflect.String

	switch fe.Tag() {
	case "required":
		return name + " is required"
	case "notblank":
		return name + " must not be blank"
	case "movieid":
		return fmt.Sprintf("%s must be a movie id of at most %d bytes without control characters or surrounding spaces", name, catalog.MaxIDLength)
	case "min":
		if text {
			return fmt.Sprintf("%s must be at least %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at least %s", name, fe.Param())
	case "max":
		if text {
			return fmt.Sprintf("%s must be at most %s characters", name, fe.Param())
		}
		return fmt.Sprintf("%s must be at most %s", name, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid (%s)", name, fe.Tag())
	}
}

func notBlank(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.String && strings.TrimSpace(f.String()) != ""
}

// movieID accepts exactly the ids a catalog can hold.
func movieID(fl validator.FieldLevel) bool {
	f := fl.Field()
	return f.Kind() == reflect.String && catalog.ValidExternalID(f.String())
}
