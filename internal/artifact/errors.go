// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package artifact

import (
	"errors"
	"fmt"
)

// ErrLoad is matched by every *LoadError via errors.Is.
var ErrLoad = errors.New("artifact load failed")

// Reasons attached to a LoadError.
const (
	ReasonMissing  = "missing"
	ReasonHTML     = "html"
	ReasonDownload = "download"
	ReasonDecode   = "decode"
	ReasonInvalid  = "invalid"
)

// LoadError reports a catalog or similarity artifact that could not be
// turned into usable in-memory state. It is fatal at startup.
type LoadError struct {
	Artifact string
	Path     string
	Reason   string
	Err      error
}

// Error implements error.
func (e *LoadError) Error() string {
	msg := fmt.Sprintf("load %s", e.Artifact)
	if e.Path != "" {
		msg += fmt.Sprintf(" (%s)", e.Path)
	}
	msg += ": " + e.Reason
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

// Unwrap returns the underlying cause.
func (e *LoadError) Unwrap() error {
	return e.Err
}

// Is reports whether target is ErrLoad.
func (e *LoadError) Is(target error) bool {
	return target == ErrLoad
}

// NewLoadError builds a LoadError for the named artifact.
func NewLoadError(artifact, path, reason string, err error) *LoadError {
	return &LoadError{Artifact: artifact, Path: path, Reason: reason, Err: err}
}

// Reason returns the LoadError reason found in err's chain, or "".
func Reason(err error) string {
	var le *LoadError
	if errors.As(err, &le) {
		return le.Reason
	}
	return ""
}
