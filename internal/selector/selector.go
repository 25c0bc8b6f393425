package selector

import (
	"context"
	"math"

	"github.com/dshills/repoindex/pkg/types"
)

// sizeLookup resolves a file ordinal to its on-disk byte size, the only
// fact the Selector needs beyond what ScoredFile already carries.
type sizeLookup func(fileOrdinal int) int64

// Select walks scored in rank order, including every file whose
// TotalScore >= budget.MinScore, and stopping the walk when the candidate
// list is exhausted or budget.Top files have been selected -- a file that
// would overflow the byte or token limit is skipped, never treated as an
// abort condition (spec.md §4.5 "fit-all-or-skip ... does not abort").
func Select(idx *types.Index, scored []types.ScoredFile, budget types.Budget) types.Selection {
	return SelectContext(context.Background(), idx, scored, budget)
}

// SelectContext is Select with cooperative cancellation observed between
// candidates, per spec.md §5 "Suspension points ... between candidates
// during scoring" (the Selector's walk is the natural extension of that
// boundary).
func SelectContext(ctx context.Context, idx *types.Index, scored []types.ScoredFile, budget types.Budget) types.Selection {
	var sel types.Selection

	top := budget.Top
	if top <= 0 {
		top = math.MaxInt32
	}

	for _, sf := range scored {
		select {
		case <-ctx.Done():
			return sel
		default:
		}

		if sf.TotalScore < budget.MinScore {
			continue
		}
		if len(sel.Files) >= top {
			break
		}

		size := int64(0)
		if sf.FileOrdinal >= 0 && sf.FileOrdinal < len(idx.FileRecords) {
			size = idx.FileRecords[sf.FileOrdinal].SizeBytes
		}
		tokens := estimateTokens(size)

		wouldExceedBytes := budget.MaxBytes > 0 && sel.TotalBytes+size > budget.MaxBytes
		wouldExceedTokens := budget.MaxTokens > 0 && sel.TotalTokens+tokens > budget.MaxTokens
		if wouldExceedBytes || wouldExceedTokens {
			sel.SkippedOverBudget++
			continue
		}

		sel.Files = append(sel.Files, sf)
		sel.TotalBytes += size
		sel.TotalTokens += tokens
	}
	return sel
}

// estimateTokens approximates a file's token count as ceil(size_bytes / 4)
// per spec.md §4.5.
func estimateTokens(sizeBytes int64) int64 {
	if sizeBytes <= 0 {
		return 0
	}
	return (sizeBytes + 3) / 4
}
