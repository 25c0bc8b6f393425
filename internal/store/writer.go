package store

import (
	"os"
	"path/filepath"

	"github.com/dshills/repoindex/pkg/types"
)

// Save serializes idx and atomically replaces <root>/<DotDir>/index.bin:
// write to a sibling temp file, fsync, then rename over the destination
// (spec.md §4.3 "Atomic write").
func Save(root string, idx *types.Index) error {
	dir := filepath.Join(root, DotDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	dest := filepath.Join(dir, IndexFileName)

	tmp, err := os.CreateTemp(dir, "index-*.bin.tmp")
	if err != nil {
		return err
	}
	tmpPath := tmp.Name()
	defer func() {
		_ = os.Remove(tmpPath) // no-op once renamed
	}()

	data := Encode(idx)
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpPath, dest)
}

// Path returns the artifact path for root.
func Path(root string) string {
	return filepath.Join(root, DotDir, IndexFileName)
}
