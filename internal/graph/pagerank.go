package graph

import (
	"github.com/dshills/repoindex/pkg/types"
)

const (
	dampingFactor    = 0.85
	convergenceDelta = 1e-6
	maxIterations    = 100
)

// PageRank computes eigenvector centrality over the directed graph formed
// by resolved edges, restricted to the given file paths. Dangling nodes
// (no outgoing edges) redistribute their mass uniformly across all nodes.
// If the graph has no edges at all, every file gets 1/N (spec.md §4.2).
func PageRank(paths []string, edges []types.ResolvedEdge) types.PageRankTable {
	n := len(paths)
	table := make(types.PageRankTable, n)
	if n == 0 {
		return table
	}

	idx := make(map[string]int, n)
	for i, p := range paths {
		idx[p] = i
	}

	outLinks := make([][]int, n)
	outDegree := make([]int, n)
	for _, e := range edges {
		si, ok1 := idx[e.SrcFile]
		ti, ok2 := idx[e.TargetFile]
		if !ok1 || !ok2 || si == ti {
			continue
		}
		outLinks[si] = append(outLinks[si], ti)
		outDegree[si]++
	}

	if len(edges) == 0 {
		uniform := 1.0 / float64(n)
		for _, p := range paths {
			table[p] = uniform
		}
		return table
	}

	// Precompute incoming edges for the power-iteration update.
	inLinks := make([][]int, n)
	for src, targets := range outLinks {
		for _, t := range targets {
			inLinks[t] = append(inLinks[t], src)
		}
	}

	restart := (1 - dampingFactor) / float64(n)
	scores := make([]float64, n)
	for i := range scores {
		scores[i] = 1.0 / float64(n)
	}

	next := make([]float64, n)
	for iter := 0; iter < maxIterations; iter++ {
		danglingMass := 0.0
		for i, deg := range outDegree {
			if deg == 0 {
				danglingMass += scores[i]
			}
		}
		danglingShare := dampingFactor * danglingMass / float64(n)

		for i := range next {
			next[i] = restart + danglingShare
		}
		for target := range next {
			sum := 0.0
			for _, src := range inLinks[target] {
				sum += scores[src] / float64(outDegree[src])
			}
			next[target] += dampingFactor * sum
		}

		delta := 0.0
		for i := range scores {
			delta += abs(next[i] - scores[i])
		}
		copy(scores, next)
		if delta < convergenceDelta {
			break
		}
	}

	normalize(scores)
	for i, p := range paths {
		table[p] = scores[i]
	}
	return table
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

// normalize rescales scores to sum to exactly 1, correcting the floating-
// point drift that accumulates over iterations.
func normalize(scores []float64) {
	sum := 0.0
	for _, s := range scores {
		sum += s
	}
	if sum == 0 {
		return
	}
	for i := range scores {
		scores[i] /= sum
	}
}
