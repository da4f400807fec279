// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bytes"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/goccy/go-json"
)

// ExternalID is the opaque movie identifier used by the poster service.
// It is stored in its textual form and passed through verbatim.
type ExternalID string

// ParseExternalID normalizes a textual identifier. Integral float literals
// such as "19995.0" (a common artifact of dataframe exports) collapse to
// their integer form.
func ParseExternalID(s string) ExternalID {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	if strings.ContainsAny(s, ".eE") {
		if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e15 {
			return ExternalID(strconv.FormatInt(int64(f), 10))
		}
	}
	return ExternalID(s)
}

// MaxIDLength bounds the byte length of a movie id.
const MaxIDLength = 256

// ValidExternalID reports whether s can be a catalog movie id: non-empty
// UTF-8 of at most MaxIDLength bytes, without surrounding whitespace or
// control characters. Every catalog id passes, so every catalog movie is
// addressable by id.
func ValidExternalID(s string) bool {
	if s == "" || len(s) > MaxIDLength || !utf8.ValidString(s) {
		return false
	}
	if strings.TrimSpace(s) != s {
		return false
	}
	for _, r := range s {
		if unicode.IsControl(r) {
			return false
		}
	}
	return true
}

// String returns the identifier text.
func (id ExternalID) String() string {
	return string(id)
}

// IsZero reports whether the identifier is empty.
func (id ExternalID) IsZero() bool {
	return id == ""
}

// isCanonicalInteger reports whether id is exactly the base-10 form of an
// int64: no sign prefix, no leading zeros. Only those round-trip as JSON
// numbers.
func (id ExternalID) isCanonicalInteger() bool {
	v, err := strconv.ParseInt(string(id), 10, 64)
	return err == nil && strconv.FormatInt(v, 10) == string(id)
}

// UnmarshalJSON accepts a JSON number or string.
func (id *ExternalID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("movie id: %w", err)
		}
		*id = ExternalID(strings.TrimSpace(s))
		return nil
	}
	if _, err := strconv.ParseFloat(string(data), 64); err != nil {
		return fmt.Errorf("movie id: unsupported value %s", data)
	}
	*id = ParseExternalID(string(data))
	return nil
}

// MarshalJSON writes canonical integer identifiers as JSON numbers and
// everything else, including "007" and "+5", as strings.
func (id ExternalID) MarshalJSON() ([]byte, error) {
	if id.isCanonicalInteger() {
		return []byte(id), nil
	}
	return json.Marshal(string(id))
}

// MovieRecord is one catalog entry.
type MovieRecord struct {
	Title   string     `json:"title"`
	MovieID ExternalID `json:"movie_id"`
}
