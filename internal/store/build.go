package store

import (
	"sort"

	"github.com/dshills/repoindex/pkg/types"
)

// Assemble builds a fresh Index from the pieces a build_or_refresh_index
// run has gathered: the path-sorted file records, the parallel per-file
// chunk and term-bag slices (index i belongs to records[i]), the resolved
// import edges, and the PageRank table. It recomputes corpus statistics and
// inverts the term bags, implementing step 4 of spec.md §4.3 ("Recompute
// corpus statistics, invert the term bags, resolve imports, and run
// PageRank against the new file set") for the parts that are this
// package's concern; import resolution and PageRank themselves are the
// caller's (internal/graph's) job.
func Assemble(records []types.FileRecord, chunks [][]types.Chunk, termBags []types.TermBag, edges []types.ResolvedEdge, pagerank types.PageRankTable) *types.Index {
	return &types.Index{
		Version:       types.CurrentIndexVersion,
		Stats:         computeCorpusStats(termBags),
		FileRecords:   records,
		Chunks:        chunks,
		TermBags:      termBags,
		FilenameIndex: invertField(termBags, func(b types.TermBag) map[string]int { return b.FilenameTerms }),
		SymbolIndex:   invertField(termBags, func(b types.TermBag) map[string]int { return b.SymbolTerms }),
		BodyIndex:     invertField(termBags, func(b types.TermBag) map[string]int { return b.BodyTerms }),
		ResolvedEdges: edges,
		PageRank:      pagerank,
	}
}

// computeCorpusStats derives the per-field average lengths and unique-term
// counts BM25F needs at query time (spec.md §3 "corpus statistics").
func computeCorpusStats(termBags []types.TermBag) types.CorpusStats {
	stats := types.CorpusStats{FileCount: len(termBags)}
	if len(termBags) == 0 {
		return stats
	}

	uniqueFilename := map[string]bool{}
	uniqueSymbol := map[string]bool{}
	uniqueBody := map[string]bool{}

	var totalFilename, totalSymbol, totalBody int
	for _, b := range termBags {
		totalFilename += b.TotalTerms("filename")
		totalSymbol += b.TotalTerms("symbol")
		totalBody += b.TotalTerms("body")
		for t := range b.FilenameTerms {
			uniqueFilename[t] = true
		}
		for t := range b.SymbolTerms {
			uniqueSymbol[t] = true
		}
		for t := range b.BodyTerms {
			uniqueBody[t] = true
		}
	}

	n := float64(len(termBags))
	stats.AvgFilenameLen = float64(totalFilename) / n
	stats.AvgSymbolLen = float64(totalSymbol) / n
	stats.AvgBodyLen = float64(totalBody) / n
	stats.UniqueFilenameTerms = len(uniqueFilename)
	stats.UniqueSymbolTerms = len(uniqueSymbol)
	stats.UniqueBodyTerms = len(uniqueBody)
	return stats
}

// invertField builds one field's inverted index: term -> posting list
// sorted ascending by file ordinal with no duplicates (spec.md §3
// invariant), reducing the per-file term bags with a plain map since this
// runs single-threaded after the parallel chunking phase (spec.md §5
// "finalized to sorted posting lists single-threaded").
func invertField(termBags []types.TermBag, field func(types.TermBag) map[string]int) types.FieldIndex {
	postingsByTerm := map[string][]types.Posting{}
	for ord, bag := range termBags {
		for term, freq := range field(bag) {
			if freq == 0 {
				continue
			}
			postingsByTerm[term] = append(postingsByTerm[term], types.Posting{FileOrdinal: ord, Frequency: freq})
		}
	}
	fi := make(types.FieldIndex, len(postingsByTerm))
	for term, postings := range postingsByTerm {
		sort.Slice(postings, func(i, j int) bool { return postings[i].FileOrdinal < postings[j].FileOrdinal })
		fi[term] = postings
	}
	return fi
}
