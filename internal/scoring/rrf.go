package scoring

import "sort"

// rrfK is the Reciprocal Rank Fusion constant (spec.md §4.4).
const rrfK = 60.0

// RankByScore returns file ordinals sorted descending by score, breaking
// ties by ordinal ascending so the ranking itself is deterministic before
// tieBreak (§4.4) is applied to the final totals.
func RankByScore(scores map[int]float64) []int {
	ordinals := make([]int, 0, len(scores))
	for ord := range scores {
		ordinals = append(ordinals, ord)
	}
	sort.Slice(ordinals, func(i, j int) bool {
		a, b := ordinals[i], ordinals[j]
		if scores[a] != scores[b] {
			return scores[a] > scores[b]
		}
		return a < b
	})
	return ordinals
}

// Fuse combines any number of ranked lists (each a slice of file ordinals
// in descending rank order) via Reciprocal Rank Fusion: for each file,
// rrf_score = sum(1/(k+rank_i)) across lists it appears in. A file absent
// from a list contributes zero for that list, per spec.md §4.4.
func Fuse(lists ...[]int) map[int]float64 {
	out := map[int]float64{}
	for _, list := range lists {
		for i, ord := range list {
			rank := i + 1
			out[ord] += 1.0 / (rrfK + float64(rank))
		}
	}
	return out
}
