// Package store persists an Index to a single binary artifact with a
// zero-copy-friendly layout, and performs the incremental merge against a
// prior artifact that makes rebuilds touch only changed files.
//
// # Layout
//
// The artifact is a fixed header (magic, format version, section count)
// followed by a table of contents (tag, offset, length per section) and
// then the sections themselves: an interned string blob, file records,
// chunks, term bags, three per-field inverted indexes, resolved import
// edges, PageRank scores, and corpus statistics. Every record that needs a
// string (a path, a term, a chunk name) stores an (offset, length) pair
// into the shared string blob rather than a copy of the bytes.
//
// # Reading
//
// Load opens the artifact with golang.org/x/exp/mmap, copies the mapped
// bytes into one heap buffer, and closes the mapping; Decode then parses
// that buffer into the in-memory types.Index the Scoring Engine queries.
// The returned Index owns copies of its strings and does not reference the
// mapping.
//
// # Writing
//
// Save serializes to a sibling temp file, fsyncs, and renames over the
// destination (spec.md §4.3 "Atomic write").
//
// # Basic Usage
//
//	idx, err := store.Load(root) // returns types.ErrIndexMissing / ErrIndexCorrupt
//	if errors.Is(err, types.ErrIndexMissing) {
//	    idx = buildFreshIndex(...)
//	}
//	if err := store.Save(root, idx); err != nil {
//	    log.Fatal(err)
//	}
package store
