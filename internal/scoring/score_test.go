package scoring

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/internal/graph"
	"github.com/dshills/repoindex/internal/store"
	"github.com/dshills/repoindex/internal/tokenize"
	"github.com/dshills/repoindex/pkg/types"
)

// buildIndex is a small test harness that mirrors what the pipeline
// produces for a handful of files: it tokenizes filenames/bodies the same
// way the Chunker does, then hands the result to store.Assemble so the
// inverted indexes and corpus stats under test are the real ones, not a
// hand-rolled stand-in.
func buildIndex(t *testing.T, files map[string]string, edges []types.ResolvedEdge) *types.Index {
	t.Helper()

	var records []types.FileRecord
	for path := range files {
		records = append(records, types.FileRecord{Path: path, SizeBytes: 100, Role: types.RoleImpl, Language: types.LanguageRust})
	}
	store.SortRecords(records)

	chunks := make([][]types.Chunk, len(records))
	termBags := make([]types.TermBag, len(records))
	paths := make([]string, len(records))
	for i, f := range records {
		paths[i] = f.Path
		bag := types.NewTermBag()
		for _, term := range tokenize.Identifier(tokenize.FileStem(f.Path)) {
			bag.FilenameTerms[term]++
		}
		for _, term := range tokenize.Extract(files[f.Path]) {
			bag.BodyTerms[term]++
		}
		termBags[i] = bag
	}

	pagerank := graph.PageRank(paths, edges)
	idx := store.Assemble(records, chunks, termBags, edges, pagerank)
	require.Len(t, idx.FileRecords, len(records))
	return idx
}

func rankOf(scored []types.ScoredFile, path string) int {
	for i, sf := range scored {
		if sf.Path == path {
			return i
		}
	}
	return -1
}

// TestScenarioB_FilenameWeightBeatsBodyTerm is spec.md §8 Scenario B:
// src/auth.rs has one body occurrence of "session"; src/session.rs
// matches on filename only. Filename weight (5) should outrank a single
// body term (weight 1) for the query "session".
func TestScenarioB_FilenameWeightBeatsBodyTerm(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"src/auth.rs":    "fn login() { start_session(); }",
		"src/session.rs": "fn unrelated_logic() { do_other_things(); }",
	}, nil)

	scored, err := Score(context.Background(), idx, "session", types.LookupPreset(types.PresetBalanced), nil)
	require.NoError(t, err)

	authRank := rankOf(scored, "src/auth.rs")
	sessionRank := rankOf(scored, "src/session.rs")
	require.NotEqual(t, -1, authRank)
	require.NotEqual(t, -1, sessionRank)
	assert.Less(t, sessionRank, authRank, "src/session.rs should outrank src/auth.rs")
}

// TestScenarioE_GeneratedPenalty is spec.md §8 Scenario E: two
// identically-sized, identically-worded files differ only by path; the
// one under vendor/ is classified generated and should rank below the
// one under src/ despite identical BM25F.
func TestScenarioE_GeneratedPenalty(t *testing.T) {
	var records []types.FileRecord
	var termBags []types.TermBag
	paths := []string{"src/session.rs", "vendor/session.rs"}
	roles := []types.Role{types.RoleImpl, types.RoleGenerated}
	for i, p := range paths {
		records = append(records, types.FileRecord{Path: p, SizeBytes: 100, Role: roles[i], Language: types.LanguageRust})
		bag := types.NewTermBag()
		bag.FilenameTerms["session"] = 1
		termBags = append(termBags, bag)
	}
	store.SortRecords(records)
	// SortRecords may have reordered paths; rebuild termBags in that order.
	termBags = make([]types.TermBag, len(records))
	for i := range records {
		bag := types.NewTermBag()
		bag.FilenameTerms["session"] = 1
		termBags[i] = bag
	}
	chunks := make([][]types.Chunk, len(records))
	pagerank := graph.PageRank([]string{paths[0], paths[1]}, nil)
	idx := store.Assemble(records, chunks, termBags, nil, pagerank)

	scored, err := Score(context.Background(), idx, "session", types.LookupPreset(types.PresetBalanced), nil)
	require.NoError(t, err)

	srcRank := rankOf(scored, "src/session.rs")
	vendorRank := rankOf(scored, "vendor/session.rs")
	assert.Less(t, srcRank, vendorRank)
}

// TestScenarioC_PageRankCentralityViaRRF is spec.md §8 Scenario C: with a
// query that has zero text match, preset balanced ranks purely by
// heuristic (a shallow file under a well-known source directory edges out
// a central one on path signal alone), while preset deep's RRF fusion
// lets the heavily-imported file overtake it once PageRank joins the
// blend. "0util.rs" and the "1zapp*" importers are named to sort ahead of
// "src/9decoy.rs" so the heuristic-only and centrality-only tie-break
// orders land on opposite ends of the path-ordinal range, isolating the
// RRF effect from incidental path-sort luck.
func TestScenarioC_PageRankCentralityViaRRF(t *testing.T) {
	files := map[string]string{
		"0util.rs":      "shared helpers",
		"src/9decoy.rs": "unrelated but prominently placed",
	}
	var edges []types.ResolvedEdge
	for i := 0; i < 9; i++ {
		name := "1zapp" + string(rune('0'+i)) + ".rs"
		files[name] = "application code"
		edges = append(edges, types.ResolvedEdge{SrcFile: name, TargetFile: "0util.rs"})
	}
	idx := buildIndex(t, files, edges)

	balanced, err := Score(context.Background(), idx, "foo", types.LookupPreset(types.PresetBalanced), nil)
	require.NoError(t, err)
	assert.Equal(t, "src/9decoy.rs", balanced[0].Path, "balanced has no structural signal; the well-known-directory heuristic bonus wins")

	deep, err := Score(context.Background(), idx, "foo", types.LookupPreset(types.PresetDeep), nil)
	require.NoError(t, err)
	assert.Equal(t, "0util.rs", deep[0].Path, "deep's RRF fusion should surface the most-imported file")
}

// TestScoreEmptyQueryStillRanksByHeuristic is spec.md §8 Boundary 9: a
// single-file repository and an empty query yields zero BM25F but the
// heuristic score still orders the result.
func TestScoreEmptyQueryStillRanksByHeuristic(t *testing.T) {
	idx := buildIndex(t, map[string]string{"src/only.rs": "fn only() {}"}, nil)
	scored, err := Score(context.Background(), idx, "", types.LookupPreset(types.PresetBalanced), nil)
	require.NoError(t, err)
	require.Len(t, scored, 1)
	assert.Equal(t, 0.0, scored[0].Breakdown.BM25F)
}

// TestScoreDeterministicAcrossRuns is spec.md §8 property 5: repeated
// Score calls over the same index/query/preset return a bit-identical
// ordering.
func TestScoreDeterministicAcrossRuns(t *testing.T) {
	idx := buildIndex(t, map[string]string{
		"a.rs": "fn a() { helper(); }",
		"b.rs": "fn b() { helper(); }",
		"c.rs": "fn c() {}",
	}, nil)

	first, err := Score(context.Background(), idx, "helper", types.LookupPreset(types.PresetDeep), nil)
	require.NoError(t, err)
	second, err := Score(context.Background(), idx, "helper", types.LookupPreset(types.PresetDeep), nil)
	require.NoError(t, err)

	require.Equal(t, len(first), len(second))
	for i := range first {
		assert.Equal(t, first[i].Path, second[i].Path)
		assert.Equal(t, first[i].TotalScore, second[i].TotalScore)
	}
}

// TestEngineCachesResults exercises the LRU-backed Engine wrapper.
func TestEngineCachesResults(t *testing.T) {
	idx := buildIndex(t, map[string]string{"a.rs": "fn a() {}", "b.rs": "fn b() {}"}, nil)
	engine, err := NewEngine(idx, 8, nil)
	require.NoError(t, err)

	first, err := engine.Score(context.Background(), "a", types.LookupPreset(types.PresetBalanced))
	require.NoError(t, err)
	second, err := engine.Score(context.Background(), "a", types.LookupPreset(types.PresetBalanced))
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

// TestRecencySignalParticipatesInThoroughPreset confirms that under the
// thorough preset an externally supplied recency provider's value appears
// in the score breakdown.
func TestRecencySignalParticipatesInThoroughPreset(t *testing.T) {
	idx := buildIndex(t, map[string]string{"old.rs": "fn old() {}", "new.rs": "fn new() {}"}, nil)
	recency := func(path string) int {
		if path == "new.rs" {
			return 42
		}
		return 0
	}

	scored, err := Score(context.Background(), idx, "zzz", types.LookupPreset(types.PresetThorough), recency)
	require.NoError(t, err)
	for _, sf := range scored {
		if sf.Path == "new.rs" {
			assert.Equal(t, 42.0, sf.Breakdown.Recency)
		}
	}
}
