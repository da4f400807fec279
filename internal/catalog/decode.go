// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/goccy/go-json"

	"github.com/tomtom215/reelmatch/internal/artifact"
)

// Format identifies a catalog serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatCSV  Format = "csv"
)

// FormatFromPath picks a format from the file extension. Anything that is
// not .csv is treated as JSON.
func FormatFromPath(path string) Format {
	if strings.EqualFold(filepath.Ext(path), ".csv") {
		return FormatCSV
	}
	return FormatJSON
}

// jsonRecord accepts either movie_id or id for the identifier column.
type jsonRecord struct {
	Title   string     `json:"title"`
	MovieID ExternalID `json:"movie_id"`
	ID      ExternalID `json:"id"`
}

// Decode reads catalog records from r. Errors are returned as
// *artifact.LoadError without a path; LoadFile fills it in.
func Decode(r io.Reader, format Format) ([]MovieRecord, error) {
	br := bufio.NewReader(r)
	head, _ := br.Peek(512)
	if artifact.LooksLikeHTML(head) {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonHTML,
			errors.New("catalog content is an HTML page"))
	}

	switch format {
	case FormatCSV:
		return decodeCSV(br)
	case FormatJSON, "":
		return decodeJSON(br)
	default:
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode,
			fmt.Errorf("unsupported catalog format %q", format))
	}
}

func decodeJSON(r io.Reader) ([]MovieRecord, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode, err)
	}
	// Unmarshal also rejects data after the array.
	var raw []jsonRecord
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode, err)
	}

	records := make([]MovieRecord, len(raw))
	for i, jr := range raw {
		id := jr.MovieID
		if id.IsZero() {
			id = jr.ID
		}
		records[i] = MovieRecord{Title: jr.Title, MovieID: id}
	}
	return records, nil
}

func decodeCSV(r io.Reader) ([]MovieRecord, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode,
			fmt.Errorf("read header: %w", err))
	}

	titleCol, idCol := -1, -1
	for i, name := range header {
		name = strings.ToLower(strings.TrimSpace(strings.TrimPrefix(name, "\ufeff")))
		switch name {
		case "title":
			if titleCol < 0 {
				titleCol = i
			}
		case "movie_id":
			idCol = i
		case "id":
			if idCol < 0 {
				idCol = i
			}
		}
	}
	if titleCol < 0 || idCol < 0 {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode,
			fmt.Errorf("header must contain title and movie_id columns, got %v", header))
	}

	var records []MovieRecord
	for line := 2; ; line++ {
		row, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode, err)
		}
		if titleCol >= len(row) || idCol >= len(row) {
			return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonDecode,
				fmt.Errorf("line %d: expected at least %d fields, got %d", line, max(titleCol, idCol)+1, len(row)))
		}
		records = append(records, MovieRecord{
			Title:   row[titleCol],
			MovieID: ParseExternalID(row[idCol]),
		})
	}
	return records, nil
}

// LoadFile reads and validates the catalog stored at path.
func LoadFile(path string, policy DuplicatePolicy) (*Catalog, error) {
	f, err := os.Open(path)
	if err != nil {
		reason := artifact.ReasonDecode
		if errors.Is(err, os.ErrNotExist) {
			reason = artifact.ReasonMissing
		}
		return nil, artifact.NewLoadError(artifactName, path, reason, err)
	}
	defer f.Close()

	records, err := Decode(f, FormatFromPath(path))
	if err != nil {
		return nil, withPath(err, path)
	}
	c, err := New(records, policy)
	if err != nil {
		return nil, withPath(err, path)
	}
	return c, nil
}

func withPath(err error, path string) error {
	var le *artifact.LoadError
	if errors.As(err, &le) && le.Path == "" {
		le.Path = path
	}
	return err
}
