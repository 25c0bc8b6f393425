package store

import (
	"errors"
	"os"

	"golang.org/x/exp/mmap"

	"github.com/dshills/repoindex/pkg/types"
)

// Load memory-maps <root>/<DotDir>/index.bin and decodes it into an Index.
// Returns types.ErrIndexMissing if no artifact exists, or
// types.ErrIndexCorrupt if the header or any section fails to validate.
func Load(root string) (*types.Index, error) {
	path := Path(root)

	r, err := mmap.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, types.ErrIndexMissing
		}
		return nil, err
	}
	defer r.Close()

	data := make([]byte, r.Len())
	if _, err := r.ReadAt(data, 0); err != nil {
		return nil, types.ErrIndexCorrupt
	}

	return Decode(data)
}

// Exists reports whether an artifact is present at root, without
// validating its contents.
func Exists(root string) bool {
	_, err := os.Stat(Path(root))
	return err == nil
}
