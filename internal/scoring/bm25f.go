package scoring

import (
	"math"

	"github.com/dshills/repoindex/pkg/types"
)

// Field weights and BM25 parameters (spec.md §4.4).
const (
	weightFilename = 5.0
	weightSymbol   = 3.0
	weightBody     = 1.0

	bm25K1 = 1.2
	bm25B  = 0.75
)

// BM25F computes the raw (unnormalized) BM25F score for every candidate
// file that shares at least one query term, across the filename/symbol/
// body fields, combined per spec.md §4.4: field-weighted term frequency
// with per-field length normalization, summed before the BM25 saturation
// function is applied once per term.
func BM25F(idx *types.Index, queryTerms []string) map[int]float64 {
	scores := map[int]float64{}
	n := len(idx.FileRecords)
	if n == 0 {
		return scores
	}

	seenTerm := map[string]bool{}
	for _, term := range queryTerms {
		if seenTerm[term] {
			continue
		}
		seenTerm[term] = true

		filenamePostings := idx.FilenameIndex[term]
		symbolPostings := idx.SymbolIndex[term]
		bodyPostings := idx.BodyIndex[term]

		docSet := map[int]bool{}
		filenameFreq := postingMap(filenamePostings, docSet)
		symbolFreq := postingMap(symbolPostings, docSet)
		bodyFreq := postingMap(bodyPostings, docSet)

		df := len(docSet)
		if df == 0 {
			continue
		}
		idf := math.Log((float64(n)-float64(df)+0.5)/(float64(df)+0.5) + 1)

		for ord := range docSet {
			bag := idx.TermBags[ord]
			wtf := weightedTF(filenameFreq[ord], float64(bag.TotalTerms("filename")), idx.Stats.AvgFilenameLen, weightFilename) +
				weightedTF(symbolFreq[ord], float64(bag.TotalTerms("symbol")), idx.Stats.AvgSymbolLen, weightSymbol) +
				weightedTF(bodyFreq[ord], float64(bag.TotalTerms("body")), idx.Stats.AvgBodyLen, weightBody)

			saturated := wtf * (bm25K1 + 1) / (wtf + bm25K1)
			scores[ord] += idf * saturated
		}
	}
	return scores
}

func postingMap(postings []types.Posting, docSet map[int]bool) map[int]int {
	freq := make(map[int]int, len(postings))
	for _, p := range postings {
		freq[p.FileOrdinal] = p.Frequency
		docSet[p.FileOrdinal] = true
	}
	return freq
}

func weightedTF(freq int, fieldLen, avgFieldLen, weight float64) float64 {
	if freq == 0 {
		return 0
	}
	if avgFieldLen <= 0 {
		avgFieldLen = 1
	}
	norm := (1 - bm25B) + bm25B*(fieldLen/avgFieldLen)
	if norm <= 0 {
		norm = 1
	}
	return weight * float64(freq) / norm
}

// normalizeMinMax rescales values in m to [0,1] across the candidate set.
// A set with a single distinct value (including the empty/all-zero case)
// normalizes to 0 for every candidate.
func normalizeMinMax(m map[int]float64) map[int]float64 {
	out := make(map[int]float64, len(m))
	if len(m) == 0 {
		return out
	}
	min, max := math.Inf(1), math.Inf(-1)
	for _, v := range m {
		if v < min {
			min = v
		}
		if v > max {
			max = v
		}
	}
	if max == min {
		for k := range m {
			out[k] = 0
		}
		return out
	}
	for k, v := range m {
		out[k] = (v - min) / (max - min)
	}
	return out
}
