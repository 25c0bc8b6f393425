// Package types provides shared type definitions for the repoindex engine.
//
// These are the data-model types described by the indexing+scoring core:
// FileRecord (Scanner output), Chunk and TermBag (Chunker output), ImportEdge
// and PageRankTable (import-graph output), and the Index artifact that ties
// them together. Every other package in this module reads and writes these
// types; none of them carry behavior beyond small validation helpers.
package types
