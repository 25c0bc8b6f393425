package store

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/pkg/types"
)

func sampleIndex() *types.Index {
	bagA := types.NewTermBag()
	bagA.FilenameTerms["a"] = 1
	bagA.BodyTerms["hello"] = 2

	bagB := types.NewTermBag()
	bagB.FilenameTerms["b"] = 1
	bagB.BodyTerms["world"] = 1

	idx := &types.Index{
		Version: types.CurrentIndexVersion,
		Stats:   types.CorpusStats{FileCount: 2, AvgBodyLen: 1.5},
		FileRecords: []types.FileRecord{
			{Path: "a.go", SizeBytes: 10, ModTime: time.Unix(1000, 0), Language: types.LanguageGo, Role: types.RoleImpl},
			{Path: "b.go", SizeBytes: 20, ModTime: time.Unix(2000, 0), Language: types.LanguageGo, Role: types.RoleImpl},
		},
		Chunks: [][]types.Chunk{
			{{Kind: types.ChunkFunction, Name: "Foo", StartLine: 1, EndLine: 3, OwningFile: "a.go"}},
			{},
		},
		TermBags: []types.TermBag{bagA, bagB},
		FilenameIndex: types.FieldIndex{
			"a": {{FileOrdinal: 0, Frequency: 1}},
			"b": {{FileOrdinal: 1, Frequency: 1}},
		},
		SymbolIndex: types.FieldIndex{},
		BodyIndex: types.FieldIndex{
			"hello": {{FileOrdinal: 0, Frequency: 2}},
			"world": {{FileOrdinal: 1, Frequency: 1}},
		},
		ResolvedEdges: []types.ResolvedEdge{{SrcFile: "a.go", TargetFile: "b.go"}},
		PageRank:      types.PageRankTable{"a.go": 0.5, "b.go": 0.5},
	}
	return idx
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	idx := sampleIndex()
	data := Encode(idx)

	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, decoded.FileRecords, 2)
	assert.Equal(t, "a.go", decoded.FileRecords[0].Path)
	assert.Equal(t, int64(10), decoded.FileRecords[0].SizeBytes)
	assert.Equal(t, types.LanguageGo, decoded.FileRecords[0].Language)

	require.Len(t, decoded.Chunks[0], 1)
	assert.Equal(t, "Foo", decoded.Chunks[0][0].Name)

	assert.Equal(t, 2, decoded.TermBags[0].BodyTerms["hello"])
	assert.Equal(t, 1, len(decoded.FilenameIndex["a"]))

	require.Len(t, decoded.ResolvedEdges, 1)
	assert.Equal(t, "b.go", decoded.ResolvedEdges[0].TargetFile)

	assert.InDelta(t, 0.5, decoded.PageRank["a.go"], 1e-9)
}

func TestEncodeIsDeterministic(t *testing.T) {
	idx := sampleIndex()
	a := Encode(idx)
	b := Encode(idx)
	assert.Equal(t, a, b)
}

func TestDecodeRejectsCorruptHeader(t *testing.T) {
	_, err := Decode([]byte("short"))
	assert.ErrorIs(t, err, types.ErrIndexCorrupt)
}

func TestSaveLoadRoundTrip(t *testing.T) {
	root := t.TempDir()
	idx := sampleIndex()

	require.NoError(t, Save(root, idx))
	loaded, err := Load(root)
	require.NoError(t, err)
	assert.Equal(t, idx.FileRecords[0].Path, loaded.FileRecords[0].Path)
}

func TestLoadMissingIndex(t *testing.T) {
	root := t.TempDir()
	_, err := Load(root)
	assert.ErrorIs(t, err, types.ErrIndexMissing)
}

func TestBuildPlanCarryForward(t *testing.T) {
	prior := sampleIndex()
	current := []types.FileRecord{
		prior.FileRecords[0], // unchanged
		{Path: "b.go", SizeBytes: 99, ContentHash: [32]byte{9}}, // changed hash
	}
	plan := BuildPlan(prior, current)
	require.Len(t, plan.Carried, 1)
	require.Len(t, plan.Changed, 1)
	assert.Equal(t, "a.go", plan.Carried[0].Path)
	assert.Equal(t, "b.go", plan.Changed[0].Path)
}

// TestCarryForwardEdgesDropsDeletedTarget covers the case where a.go is
// unchanged (carried forward) but its previously resolved import target
// b.go was deleted this run: the stale edge must not survive into the
// current build, or it would point at nothing once ordinals are assigned.
func TestCarryForwardEdgesDropsDeletedTarget(t *testing.T) {
	prior := sampleIndex() // ResolvedEdges: a.go -> b.go
	carried := map[string]bool{"a.go": true}
	current := map[string]bool{"a.go": true} // b.go no longer present

	edges := CarryForwardEdges(prior, carried, current)
	assert.Empty(t, edges)
}

func TestCarryForwardEdgesKeepsEdgeWhenTargetSurvives(t *testing.T) {
	prior := sampleIndex()
	carried := map[string]bool{"a.go": true}
	current := map[string]bool{"a.go": true, "b.go": true}

	edges := CarryForwardEdges(prior, carried, current)
	require.Len(t, edges, 1)
	assert.Equal(t, "b.go", edges[0].TargetFile)
}

// TestEncodeEdgesSkipsDanglingTarget is a defense-in-depth check: even if
// a *types.Index somehow reaches Encode with an edge whose target isn't
// among FileRecords, encodeEdges must drop it rather than silently
// resolve it to ordinal 0, matching decodeEdges' bounds-checking of
// ordinals read back off disk.
func TestEncodeEdgesSkipsDanglingTarget(t *testing.T) {
	idx := sampleIndex()
	idx.ResolvedEdges = append(idx.ResolvedEdges, types.ResolvedEdge{SrcFile: "a.go", TargetFile: "deleted.go"})

	data := Encode(idx)
	decoded, err := Decode(data)
	require.NoError(t, err)

	require.Len(t, decoded.ResolvedEdges, 1)
	assert.Equal(t, "b.go", decoded.ResolvedEdges[0].TargetFile)
}
