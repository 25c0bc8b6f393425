// Package graph resolves raw import references into concrete file-to-file
// edges and computes PageRank centrality over the resulting directed
// graph.
//
// # Resolution
//
// ResolveEdges maps each (src_file, target_ref) pair emitted by the
// Chunker to the best matching file by (a) exact file-stem match, else
// (b) longest module-suffix match, else the edge is dropped (spec.md
// §4.2). Self-loops and duplicate edges are removed.
//
// # PageRank
//
// PageRank runs the standard power-iteration algorithm with damping
// d=0.85, converging when the L1 delta between iterations drops below
// 1e-6 or after 100 iterations, whichever comes first. Cyclic import
// graphs are handled naturally; no topological sort is attempted
// (spec.md §9).
package graph
