// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package catalog

import (
	"strings"
	"testing"

	"github.com/goccy/go-json"
)

func TestParseExternalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want ExternalID
	}{
		{"19995", "19995"},
		{" 19995 ", "19995"},
		{"19995.0", "19995"},
		{"1.5", "1.5"},
		{"tt0499549", "tt0499549"},
		{"", ""},
	}

	for _, tt := range tests {
		if got := ParseExternalID(tt.in); got != tt.want {
			t.Errorf("ParseExternalID(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidExternalID(t *testing.T) {
	t.Parallel()

	tests := []struct {
		id   string
		want bool
	}{
		{"19995", true},
		{"tt0499549", true},
		{"007", true},
		{"+5", true},
		{"a/b c", true},
		{"アバター", true},
		{strings.Repeat("9", MaxIDLength), true},
		{"", false},
		{" 19995", false},
		{"19995\t", false},
		{"12\x003", false},
		{"\xff", false},
		{strings.Repeat("9", MaxIDLength+1), false},
	}

	for _, tt := range tests {
		if got := ValidExternalID(tt.id); got != tt.want {
			t.Errorf("ValidExternalID(%q) = %v, want %v", tt.id, got, tt.want)
		}
	}
}

func TestExternalID_UnmarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		input   string
		want    ExternalID
		wantErr bool
	}{
		{"integer", `19995`, "19995", false},
		{"integral float", `19995.0`, "19995", false},
		{"string", `"tt0499549"`, "tt0499549", false},
		{"null", `null`, "", false},
		{"bool", `true`, "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var id ExternalID
			err := json.Unmarshal([]byte(tt.input), &id)
			if (err != nil) != tt.wantErr {
				t.Fatalf("Unmarshal(%s) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if !tt.wantErr && id != tt.want {
				t.Errorf("Unmarshal(%s) = %q, want %q", tt.input, id, tt.want)
			}
		})
	}
}

func TestMovieRecord_MarshalJSON(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		id   ExternalID
		want string
	}{
		{"integer", "19995", `{"title":"Avatar","movie_id":19995}`},
		{"negative integer", "-42", `{"title":"Avatar","movie_id":-42}`},
		{"imdb id", "tt0499549", `{"title":"Avatar","movie_id":"tt0499549"}`},
		{"leading zero", "007", `{"title":"Avatar","movie_id":"007"}`},
		{"plus sign", "+5", `{"title":"Avatar","movie_id":"+5"}`},
		{"negative zero", "-0", `{"title":"Avatar","movie_id":"-0"}`},
		{"beyond int64", "99999999999999999999", `{"title":"Avatar","movie_id":"99999999999999999999"}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := json.Marshal(MovieRecord{Title: "Avatar", MovieID: tt.id})
			if err != nil {
				t.Fatalf("Marshal(%q) error = %v", tt.id, err)
			}
			if string(got) != tt.want {
				t.Errorf("Marshal(%q) = %s, want %s", tt.id, got, tt.want)
			}
		})
	}
}

func TestDecode_IDRoundTripIsValidJSON(t *testing.T) {
	t.Parallel()

	records, err := Decode(strings.NewReader(`[
		{"title":"A","movie_id":"007"},
		{"title":"B","movie_id":"+5"},
		{"title":"C","movie_id":12}
	]`), FormatJSON)
	if err != nil {
		t.Fatalf("Decode() error = %v", err)
	}

	out, err := json.Marshal(records)
	if err != nil {
		t.Fatalf("Marshal() error = %v", err)
	}

	var back []MovieRecord
	if err := json.Unmarshal(out, &back); err != nil {
		t.Fatalf("re-decode %s: %v", out, err)
	}
	for i := range records {
		if back[i].MovieID != records[i].MovieID {
			t.Errorf("record %d id = %q after round trip, want %q", i, back[i].MovieID, records[i].MovieID)
		}
	}
}
