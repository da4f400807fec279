// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"math/rand"
	"testing"
)

func TestTopK_MatchesFullSort(t *testing.T) {
	t.Parallel()

	rng := rand.New(rand.NewSource(42))
	row := make([]float64, 200)
	for i := range row {
		row[i] = float64(rng.Intn(20))
	}

	full := topK(row, 13, len(row))
	if len(full) != len(row)-1 {
		t.Fatalf("len(full) = %d, want %d", len(full), len(row)-1)
	}

	for _, k := range []int{1, 2, 10, 50, 198} {
		got := topK(row, 13, k)
		if len(got) != k {
			t.Fatalf("topK(k=%d) len = %d", k, len(got))
		}
		for i := range got {
			if got[i] != full[i] {
				t.Fatalf("topK(k=%d)[%d] = %d, want %d", k, i, got[i], full[i])
			}
		}
	}
}

func TestTopK_Edges(t *testing.T) {
	t.Parallel()

	if got := topK([]float64{1}, 0, 5); len(got) != 0 {
		t.Errorf("topK single = %v, want empty", got)
	}
	if got := topK([]float64{1, 2, 3}, 0, 0); len(got) != 0 {
		t.Errorf("topK k=0 = %v, want empty", got)
	}

	got := topK([]float64{0.5, 0.5, 0.5, 0.5}, 2, 2)
	if len(got) != 2 || got[0] != 0 || got[1] != 1 {
		t.Errorf("topK all ties = %v, want [0 1]", got)
	}
}
