package graph

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/pkg/types"
)

func TestResolveEdgesStemMatch(t *testing.T) {
	records := []types.FileRecord{
		{Path: "src/a.go"},
		{Path: "src/b.go"},
	}
	edges := []types.ImportEdge{
		{SrcFile: "src/a.go", TargetRef: "\"myrepo/src/b\""},
	}
	resolved := ResolveEdges(records, edges)
	require.Len(t, resolved, 1)
	assert.Equal(t, "src/b.go", resolved[0].TargetFile)
}

func TestResolveEdgesSelfLoopDropped(t *testing.T) {
	records := []types.FileRecord{{Path: "src/a.go"}}
	edges := []types.ImportEdge{{SrcFile: "src/a.go", TargetRef: "\"a\""}}
	resolved := ResolveEdges(records, edges)
	assert.Empty(t, resolved)
}

func TestResolveEdgesDirectoryProxy(t *testing.T) {
	records := []types.FileRecord{
		{Path: "src/a.rs"},
		{Path: "src/util/mod.rs"},
	}
	edges := []types.ImportEdge{
		{SrcFile: "src/a.rs", TargetRef: "util"},
	}
	resolved := ResolveEdges(records, edges)
	require.Len(t, resolved, 1)
	assert.Equal(t, "src/util/mod.rs", resolved[0].TargetFile)
}

func TestResolveEdgesUnresolvedDropped(t *testing.T) {
	records := []types.FileRecord{{Path: "src/a.go"}}
	edges := []types.ImportEdge{{SrcFile: "src/a.go", TargetRef: "\"totally/unknown/pkg\""}}
	resolved := ResolveEdges(records, edges)
	assert.Empty(t, resolved)
}

func TestPageRankSumsToOne(t *testing.T) {
	paths := []string{"a", "b", "c", "d"}
	edges := []types.ResolvedEdge{
		{SrcFile: "a", TargetFile: "b"},
		{SrcFile: "b", TargetFile: "c"},
		{SrcFile: "c", TargetFile: "a"},
		{SrcFile: "d", TargetFile: "a"},
	}
	table := PageRank(paths, edges)

	sum := 0.0
	for _, p := range paths {
		sum += table[p]
		assert.Greater(t, table[p], 0.0)
	}
	assert.InDelta(t, 1.0, sum, 1e-6)
}

func TestPageRankEmptyGraphUniform(t *testing.T) {
	paths := []string{"a", "b", "c"}
	table := PageRank(paths, nil)
	for _, p := range paths {
		assert.True(t, math.Abs(table[p]-1.0/3.0) < 1e-9)
	}
}

func TestPageRankCentrality(t *testing.T) {
	// util is imported by nine others; it should dominate the ranking.
	paths := []string{"util"}
	var edges []types.ResolvedEdge
	for i := 0; i < 9; i++ {
		name := string(rune('a' + i))
		paths = append(paths, name)
		edges = append(edges, types.ResolvedEdge{SrcFile: name, TargetFile: "util"})
	}
	table := PageRank(paths, edges)

	for _, p := range paths[1:] {
		assert.Greater(t, table["util"], table[p])
	}
}
