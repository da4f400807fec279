// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"errors"
	"strings"
	"testing"

	"github.com/tomtom215/reelmatch/internal/artifact"
)

func sampleRecords() []MovieRecord {
	return []MovieRecord{
		{Title: "Avatar", MovieID: "19995"},
		{Title: "Spectre", MovieID: "206647"},
		{Title: "The Dark Knight Rises", MovieID: "49026"},
		{Title: "Avatar", MovieID: "76600"},
		{Title: "John Carter", MovieID: "49529"},
	}
}

func TestNew_FirstPolicy(t *testing.T) {
	t.Parallel()

	c, err := New(sampleRecords(), DuplicateFirst)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	if c.Len() != 5 {
		t.Errorf("Len() = %d, want 5", c.Len())
	}

	i, ok := c.IndexOf("Avatar")
	if !ok || i != 0 {
		t.Errorf("IndexOf(Avatar) = %d, %v, want 0, true", i, ok)
	}

	if _, ok := c.IndexOf("avatar"); ok {
		t.Error("IndexOf should be case-sensitive")
	}

	i, ok = c.IndexOfID("76600")
	if !ok || i != 3 {
		t.Errorf("IndexOfID(76600) = %d, %v, want 3, true", i, ok)
	}

	dups := c.Duplicates()
	if len(dups) != 1 || dups[0] != "Avatar" {
		t.Errorf("Duplicates() = %v, want [Avatar]", dups)
	}

	if got := c.At(2).Title; got != "The Dark Knight Rises" {
		t.Errorf("At(2).Title = %q, want %q", got, "The Dark Knight Rises")
	}
}

func TestNew_DefaultPolicyIsFirst(t *testing.T) {
	t.Parallel()

	if _, err := New(sampleRecords(), ""); err != nil {
		t.Fatalf("New() with empty policy error = %v", err)
	}
}

func TestNew_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		records []MovieRecord
		policy  DuplicatePolicy
	}{
		{"empty catalog", nil, DuplicateFirst},
		{"empty title", []MovieRecord{{Title: "", MovieID: "1"}}, DuplicateFirst},
		{"empty id", []MovieRecord{{Title: "A", MovieID: ""}}, DuplicateFirst},
		{"control character in id", []MovieRecord{{Title: "A", MovieID: "12\n3"}}, DuplicateFirst},
		{"padded id", []MovieRecord{{Title: "A", MovieID: " 12"}}, DuplicateFirst},
		{"id too long", []MovieRecord{{Title: "A", MovieID: ExternalID(strings.Repeat("9", MaxIDLength+1))}}, DuplicateFirst},
		{"duplicates rejected", sampleRecords(), DuplicateReject},
		{"unknown policy", sampleRecords(), DuplicatePolicy("last")},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, err := New(tt.records, tt.policy)
			if err == nil {
				t.Fatal("New() expected error")
			}
			if !errors.Is(err, artifact.ErrLoad) {
				t.Errorf("New() error = %v, want LoadError", err)
			}
			if got := artifact.Reason(err); got != artifact.ReasonInvalid {
				t.Errorf("Reason() = %q, want %q", got, artifact.ReasonInvalid)
			}
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	t.Parallel()

	records := sampleRecords()
	c, err := New(records, DuplicateFirst)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	records[0].Title = "Changed"
	if got := c.At(0).Title; got != "Avatar" {
		t.Errorf("At(0).Title = %q after caller mutation, want Avatar", got)
	}

	out := c.Records()
	out[1].Title = "Changed"
	if got := c.At(1).Title; got != "Spectre" {
		t.Errorf("At(1).Title = %q after Records mutation, want Spectre", got)
	}
}

func TestSearch(t *testing.T) {
	t.Parallel()

	c, err := New(sampleRecords(), DuplicateFirst)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	tests := []struct {
		name  string
		query string
		limit int
		want  []string
	}{
		{"case insensitive", "avatar", 0, []string{"Avatar", "Avatar"}},
		{"substring", "dark", 0, []string{"The Dark Knight Rises"}},
		{"limited", "", 2, []string{"Avatar", "Spectre"}},
		{"no match", "zzz", 0, nil},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := c.Search(tt.query, tt.limit)
			if len(got) != len(tt.want) {
				t.Fatalf("Search(%q) returned %d records, want %d", tt.query, len(got), len(tt.want))
			}
			for i := range got {
				if got[i].Title != tt.want[i] {
					t.Errorf("Search(%q)[%d] = %q, want %q", tt.query, i, got[i].Title, tt.want[i])
				}
			}
		})
	}
}

func TestTitles(t *testing.T) {
	t.Parallel()

	c, err := New(sampleRecords(), DuplicateFirst)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	titles := c.Titles()
	if len(titles) != 5 || titles[3] != "Avatar" {
		t.Errorf("Titles() = %v, want duplicates preserved in order", titles)
	}
}

func TestSearchPositions(t *testing.T) {
	t.Parallel()

	c, err := New(sampleRecords(), DuplicateFirst)
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}

	all := c.SearchPositions("", 0)
	if len(all) != c.Len() {
		t.Fatalf("empty query matched %d, want %d", len(all), c.Len())
	}
	for i, pos := range all {
		if pos != i {
			t.Errorf("position %d = %d, want catalog order", i, pos)
		}
	}

	if got := c.SearchPositions("no such movie", 0); len(got) != 0 {
		t.Errorf("unexpected matches %v", got)
	}
}
