package scoring

import (
	"crypto/sha256"
	"fmt"

	lru "github.com/hashicorp/golang-lru/v2"

	"github.com/dshills/repoindex/pkg/types"
)

// Cache memoizes Score results per (index identity, query, preset), the
// same shape as the teacher's searcher query cache: an LRU keyed by a
// digest of the request rather than the request struct itself, so large
// queries don't bloat the key space.
type Cache struct {
	lru *lru.Cache[[32]byte, []types.ScoredFile]
}

// NewCache builds a Cache holding up to size entries.
func NewCache(size int) (*Cache, error) {
	c, err := lru.New[[32]byte, []types.ScoredFile](size)
	if err != nil {
		return nil, err
	}
	return &Cache{lru: c}, nil
}

// cacheKey digests the inputs that determine a Score result: the index's
// format version and file count stand in for its content identity without
// hashing the whole artifact; corpus stats and paths are not part of the key.
func cacheKey(idx *types.Index, query string, preset types.PresetName) [32]byte {
	h := sha256.New()
	fmt.Fprintf(h, "%d|%d|%s|%s", idx.Version, len(idx.FileRecords), preset, query)
	var out [32]byte
	copy(out[:], h.Sum(nil))
	return out
}

func (c *Cache) get(idx *types.Index, query string, preset types.PresetName) ([]types.ScoredFile, bool) {
	if c == nil {
		return nil, false
	}
	v, ok := c.lru.Get(cacheKey(idx, query, preset))
	return v, ok
}

func (c *Cache) put(idx *types.Index, query string, preset types.PresetName, scored []types.ScoredFile) {
	if c == nil {
		return
	}
	c.lru.Add(cacheKey(idx, query, preset), scored)
}
