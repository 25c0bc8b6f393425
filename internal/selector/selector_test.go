package selector

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/pkg/types"
)

func idxWithSizes(sizes ...int64) *types.Index {
	idx := &types.Index{}
	for i, s := range sizes {
		idx.FileRecords = append(idx.FileRecords, types.FileRecord{
			Path:      "f" + string(rune('a'+i)) + ".go",
			SizeBytes: s,
		})
	}
	return idx
}

// TestBudgetStop matches spec.md §8 Scenario D: preset fast, max_bytes =
// 1000, three 400-byte candidates; first two selected, third skipped, no
// abort.
func TestBudgetStop(t *testing.T) {
	idx := idxWithSizes(400, 400, 400)
	scored := []types.ScoredFile{
		{FileOrdinal: 0, Path: "fa.go", TotalScore: 0.9},
		{FileOrdinal: 1, Path: "fb.go", TotalScore: 0.8},
		{FileOrdinal: 2, Path: "fc.go", TotalScore: 0.7},
	}
	sel := Select(idx, scored, types.Budget{MaxBytes: 1000})

	require.Len(t, sel.Files, 2)
	assert.Equal(t, int64(800), sel.TotalBytes)
	assert.Equal(t, 1, sel.SkippedOverBudget)
}

func TestMinScoreFilters(t *testing.T) {
	idx := idxWithSizes(10, 10)
	scored := []types.ScoredFile{
		{FileOrdinal: 0, Path: "fa.go", TotalScore: 0.02},
		{FileOrdinal: 1, Path: "fb.go", TotalScore: 0.2},
	}
	sel := Select(idx, scored, types.Budget{MaxBytes: 1000, MinScore: 0.05})

	require.Len(t, sel.Files, 1)
	assert.Equal(t, "fb.go", sel.Files[0].Path)
}

func TestTopCapsCount(t *testing.T) {
	idx := idxWithSizes(10, 10, 10)
	scored := []types.ScoredFile{
		{FileOrdinal: 0, Path: "fa.go", TotalScore: 0.9},
		{FileOrdinal: 1, Path: "fb.go", TotalScore: 0.8},
		{FileOrdinal: 2, Path: "fc.go", TotalScore: 0.7},
	}
	sel := Select(idx, scored, types.Budget{MaxBytes: 1000, Top: 2})
	assert.Len(t, sel.Files, 2)
}

func TestEmptySelection(t *testing.T) {
	idx := &types.Index{}
	sel := Select(idx, nil, types.Budget{MaxBytes: 1000})
	assert.Empty(t, sel.Files)
	assert.Equal(t, int64(0), sel.TotalBytes)
}

func TestMaxTokensBudget(t *testing.T) {
	idx := idxWithSizes(4000, 4000) // ~1000 tokens each
	scored := []types.ScoredFile{
		{FileOrdinal: 0, Path: "fa.go", TotalScore: 0.9},
		{FileOrdinal: 1, Path: "fb.go", TotalScore: 0.8},
	}
	sel := Select(idx, scored, types.Budget{MaxTokens: 1000})
	require.Len(t, sel.Files, 1)
	assert.Equal(t, int64(1000), sel.TotalTokens)
}
