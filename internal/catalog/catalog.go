// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"fmt"
	"strings"

	"github.com/tomtom215/reelmatch/internal/artifact"
)

// DuplicatePolicy decides what happens when two records share a title.
type DuplicatePolicy string

const (
	// DuplicateFirst keeps every record; title lookups resolve to the first
	// position carrying the title.
	DuplicateFirst DuplicatePolicy = "first"

	// DuplicateReject fails catalog construction with a LoadError.
	DuplicateReject DuplicatePolicy = "reject"
)

// Valid reports whether p is a known policy.
func (p DuplicatePolicy) Valid() bool {
	return p == DuplicateFirst || p == DuplicateReject
}

// artifactName labels catalog errors.
const artifactName = "catalog"

// Catalog is the ordered, read-only list of movies. Positions are aligned
// with the rows and columns of the similarity matrix.
type Catalog struct {
	records    []MovieRecord
	byTitle    map[string]int
	byID       map[ExternalID]int
	duplicates []string
}

// New builds a Catalog from records in order. The slice is copied.
func New(records []MovieRecord, policy DuplicatePolicy) (*Catalog, error) {
	if policy == "" {
		policy = DuplicateFirst
	}
	if !policy.Valid() {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid,
			fmt.Errorf("unknown duplicate policy %q", policy))
	}
	if len(records) == 0 {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid, errors.New("catalog is empty"))
	}

	c := &Catalog{
		records: make([]MovieRecord, len(records)),
		byTitle: make(map[string]int, len(records)),
		byID:    make(map[ExternalID]int, len(records)),
	}
	copy(c.records, records)

	seenDup := make(map[string]bool)
	for i, rec := range c.records {
		if rec.Title == "" {
			return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid,
				fmt.Errorf("record %d has an empty title", i))
		}
		if rec.MovieID.IsZero() {
			return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid,
				fmt.Errorf("record %d (%q) has an empty movie id", i, rec.Title))
		}
		if !ValidExternalID(string(rec.MovieID)) {
			return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid,
				fmt.Errorf("record %d (%q) has an invalid movie id %q", i, rec.Title, rec.MovieID))
		}

		if _, exists := c.byTitle[rec.Title]; exists {
			if !seenDup[rec.Title] {
				seenDup[rec.Title] = true
				c.duplicates = append(c.duplicates, rec.Title)
			}
		} else {
			c.byTitle[rec.Title] = i
		}
		if _, exists := c.byID[rec.MovieID]; !exists {
			c.byID[rec.MovieID] = i
		}
	}

	if policy == DuplicateReject && len(c.duplicates) > 0 {
		return nil, artifact.NewLoadError(artifactName, "", artifact.ReasonInvalid,
			fmt.Errorf("duplicate titles: %s", strings.Join(c.duplicates, ", ")))
	}

	return c, nil
}

// Len returns the number of records.
func (c *Catalog) Len() int {
	return len(c.records)
}

// At returns the record at position i. It panics if i is out of range.
func (c *Catalog) At(i int) MovieRecord {
	return c.records[i]
}

// IndexOf returns the first position whose title equals title exactly.
func (c *Catalog) IndexOf(title string) (int, bool) {
	i, ok := c.byTitle[title]
	return i, ok
}

// IndexOfID returns the first position carrying id.
func (c *Catalog) IndexOfID(id ExternalID) (int, bool) {
	i, ok := c.byID[id]
	return i, ok
}

// Titles returns every title in catalog order, duplicates included.
func (c *Catalog) Titles() []string {
	titles := make([]string, len(c.records))
	for i, rec := range c.records {
		titles[i] = rec.Title
	}
	return titles
}

// Records returns a copy of the records in catalog order.
func (c *Catalog) Records() []MovieRecord {
	out := make([]MovieRecord, len(c.records))
	copy(out, c.records)
	return out
}

// Duplicates returns the titles that appear more than once, in order of
// their first repeat.
func (c *Catalog) Duplicates() []string {
	out := make([]string, len(c.duplicates))
	copy(out, c.duplicates)
	return out
}

// Search returns up to limit records whose title contains query,
// case-insensitively, in catalog order. An empty query matches everything.
// limit <= 0 means no limit.
func (c *Catalog) Search(query string, limit int) []MovieRecord {
	positions := c.SearchPositions(query, limit)
	out := make([]MovieRecord, len(positions))
	for i, pos := range positions {
		out[i] = c.records[pos]
	}
	return out
}

// SearchPositions is Search returning catalog positions.
func (c *Catalog) SearchPositions(query string, limit int) []int {
	q := strings.ToLower(strings.TrimSpace(query))

	var out []int
	for i, rec := range c.records {
		if q != "" && !strings.Contains(strings.ToLower(rec.Title), q) {
			continue
		}
		out = append(out, i)
		if limit > 0 && len(out) >= limit {
			break
		}
	}
	return out
}
