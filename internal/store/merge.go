package store

import (
	"sort"

	"github.com/dshills/repoindex/pkg/types"
)

// fileKey identifies a FileRecord by its carry-forward identity: content
// is reprocessed only when either the path or its content hash changes
// (spec.md §3 invariant: "reprocessing is skipped when a record with the
// same (path, content_hash) exists in the prior index").
type fileKey struct {
	path string
	hash [32]byte
}

// Plan describes which current scan records can reuse a prior index's
// per-file artifacts (chunks, term bags) versus which must be
// (re-)chunked.
type Plan struct {
	Carried []types.FileRecord // (path, hash) matched a prior record
	Changed []types.FileRecord // new or modified; must be chunked
}

// BuildPlan keys both the prior index's records and the current scan by
// (path, content_hash) and splits current records into carried-forward vs
// changed, implementing spec.md §4.3 steps 2-3.
func BuildPlan(prior *types.Index, current []types.FileRecord) Plan {
	priorKeys := map[fileKey]bool{}
	if prior != nil {
		for _, f := range prior.FileRecords {
			priorKeys[fileKey{f.Path, f.ContentHash}] = true
		}
	}

	var plan Plan
	for _, f := range current {
		if priorKeys[fileKey{f.Path, f.ContentHash}] {
			plan.Carried = append(plan.Carried, f)
		} else {
			plan.Changed = append(plan.Changed, f)
		}
	}
	return plan
}

// Unchanged reports whether the plan and prior index describe exactly the
// same file set, in which case step 5 of spec.md §4.3 can skip
// serialization entirely: the existing artifact is still valid.
func (p Plan) Unchanged(prior *types.Index) bool {
	if prior == nil {
		return false
	}
	if len(p.Changed) != 0 {
		return false
	}
	if len(p.Carried) != len(prior.FileRecords) {
		return false
	}
	return true
}

// CarryForward copies a prior file's chunks and term bag by path, for
// files the Plan marked as carried.
func CarryForward(prior *types.Index, path string) ([]types.Chunk, types.TermBag, bool) {
	if prior == nil {
		return nil, types.TermBag{}, false
	}
	ord := prior.FileOrdinal(path)
	if ord < 0 {
		return nil, types.TermBag{}, false
	}
	return prior.Chunks[ord], prior.TermBags[ord], true
}

// CarryForwardEdges filters a prior index's resolved edges down to those
// whose source file is in the carried set and whose target file still
// exists in the current build's record set; edges from changed files are
// dropped and rebuilt fresh by the caller, since a changed file's import
// statements may themselves have changed, and an edge whose target was
// deleted this run would otherwise point at nothing once the current file
// set is assembled.
func CarryForwardEdges(prior *types.Index, carriedPaths, currentPaths map[string]bool) []types.ResolvedEdge {
	if prior == nil {
		return nil
	}
	var out []types.ResolvedEdge
	for _, e := range prior.ResolvedEdges {
		if carriedPaths[e.SrcFile] && currentPaths[e.TargetFile] {
			out = append(out, e)
		}
	}
	return out
}

// SortRecords sorts records by Path in place, matching the persisted
// artifact's invariant ordering (spec.md §5 "the persisted index
// normalizes to path-sorted order").
func SortRecords(records []types.FileRecord) {
	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })
}
