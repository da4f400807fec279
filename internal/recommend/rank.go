// ReelMatch - Similar Movie Recommendations with Poster Lookup
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/reelmatch

package recommend

import (
	"container/heap"
	"sort"
)

// better reports whether candidate a ranks ahead of candidate b: higher
// score first, lower catalog position on ties.
func better(row []float64, a, b int) bool {
	if row[a] != row[b] {
		return row[a] > row[b]
	}
	return a < b
}

// worstFirst is a heap whose root is the weakest kept candidate.
type worstFirst struct {
	row []float64
	idx []int
}

func (h *worstFirst) Len() int           { return len(h.idx) }
func (h *worstFirst) Less(i, j int) bool { return better(h.row, h.idx[j], h.idx[i]) }
func (h *worstFirst) Swap(i, j int)      { h.idx[i], h.idx[j] = h.idx[j], h.idx[i] }
func (h *worstFirst) Push(x any)         { h.idx = append(h.idx, x.(int)) }
func (h *worstFirst) Pop() any {
	n := len(h.idx)
	x := h.idx[n-1]
	h.idx = h.idx[:n-1]
	return x
}

// topK returns the k best positions of row other than self, best first.
// k larger than the candidate count returns every candidate.
func topK(row []float64, self, k int) []int {
	candidates := len(row) - 1
	if k <= 0 || candidates <= 0 {
		return []int{}
	}

	if k >= candidates {
		out := make([]int, 0, candidates)
		for j := range row {
			if j != self {
				out = append(out, j)
			}
		}
		sortRanked(row, out)
		return out
	}

	h := &worstFirst{row: row, idx: make([]int, 0, k)}
	for j := range row {
		if j == self {
			continue
		}
		if h.Len() < k {
			heap.Push(h, j)
			continue
		}
		if better(row, j, h.idx[0]) {
			h.idx[0] = j
			heap.Fix(h, 0)
		}
	}

	out := h.idx
	sortRanked(row, out)
	return out
}

func sortRanked(row []float64, positions []int) {
	sort.Slice(positions, func(a, b int) bool {
		return better(row, positions[a], positions[b])
	})
}
