package types

// CorpusStats carries the corpus-wide statistics needed by BM25F at query
// time: total file count, per-field average lengths, and per-field unique
// term counts, all computed once at index-build time.
type CorpusStats struct {
	FileCount        int
	AvgFilenameLen   float64
	AvgSymbolLen     float64
	AvgBodyLen       float64
	UniqueFilenameTerms int
	UniqueSymbolTerms   int
	UniqueBodyTerms     int
}

// Posting is one entry of an inverted-index posting list: the ordinal of a
// file and the term's frequency within the named field of that file.
// Posting lists are sorted ascending by FileOrdinal with no duplicates
// (spec.md §3 invariant).
type Posting struct {
	FileOrdinal int
	Frequency   int
}

// FieldIndex is the per-field inverted index: term -> sorted posting list.
type FieldIndex map[string][]Posting

// Index is the persisted artifact produced by the Index Store. FileRecords
// is sorted by Path; FileOrdinal in Postings/Chunks refers to positions in
// this slice. The Index is built once per build_or_refresh_index call and
// consumed read-only thereafter (spec.md §3 "Lifecycle").
type Index struct {
	Version int

	Stats CorpusStats

	FileRecords []FileRecord // sorted by Path
	Chunks      [][]Chunk    // Chunks[ordinal] = chunks owned by that file
	TermBags    []TermBag    // TermBags[ordinal] = that file's term bag

	FilenameIndex FieldIndex
	SymbolIndex   FieldIndex
	BodyIndex     FieldIndex

	ResolvedEdges []ResolvedEdge
	PageRank      PageRankTable
}

// FileOrdinal returns the index of path in FileRecords, or -1 if absent.
// FileRecords is kept sorted by Path so this is a binary search in
// practice; callers that need repeated lookups should build their own map
// once (the Index itself does not cache one to keep the artifact minimal).
func (idx *Index) FileOrdinal(path string) int {
	lo, hi := 0, len(idx.FileRecords)
	for lo < hi {
		mid := (lo + hi) / 2
		if idx.FileRecords[mid].Path < path {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(idx.FileRecords) && idx.FileRecords[lo].Path == path {
		return lo
	}
	return -1
}

// CurrentIndexVersion is the on-disk format version written by this build
// of the Index Store (spec.md §3 "format version integer (currently 2)").
const CurrentIndexVersion = 2

// IndexStats is the outcome of a build_or_refresh_index call: counts used
// by callers (and tests) to assert incremental behavior without inspecting
// the artifact directly.
type IndexStats struct {
	FilesScanned     int
	FilesCarried     int // not re-chunked: carried forward from the prior index, or every record in a shallow build
	FilesChunked     int // newly chunked this run
	FilesFailedIO    int
	FilesFailedChunk int
	Rewritten        bool // false when step 5 of §4.3 skipped serialization
	Deep             bool
}
