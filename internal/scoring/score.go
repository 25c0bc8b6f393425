package scoring

import (
	"context"
	"sort"
	"strings"

	"github.com/dshills/repoindex/internal/tokenize"
	"github.com/dshills/repoindex/pkg/types"
)

// RecencyProvider is the Go-facing contract for the git recency collaborator
// named in spec.md §6.2: an optional function path -> commits in the last 90
// days. An absent provider drops the recency signal entirely rather than
// substituting a default; the core imposes no git invocation policy of its
// own.
type RecencyProvider func(path string) int

// Engine runs Score against one loaded Index, memoizing results per
// (query, preset) in an LRU cache the same shape as the teacher's searcher
// query cache.
type Engine struct {
	idx     *types.Index
	cache   *Cache
	recency RecencyProvider
}

// NewEngine wraps idx for repeated Score calls. cacheSize <= 0 disables
// memoization. recency may be nil (no recency signal available).
func NewEngine(idx *types.Index, cacheSize int, recency RecencyProvider) (*Engine, error) {
	var cache *Cache
	if cacheSize > 0 {
		c, err := NewCache(cacheSize)
		if err != nil {
			return nil, err
		}
		cache = c
	}
	return &Engine{idx: idx, cache: cache, recency: recency}, nil
}

// Score ranks every file in the engine's index against query under preset,
// per spec.md §4.4. The returned slice is sorted descending by TotalScore,
// ties broken per the tie-break rule so that repeated calls with the same
// index, query, and preset are bit-for-bit identical (spec.md §4.4
// "Determinism", §8 property 5).
func (e *Engine) Score(ctx context.Context, query string, preset types.Preset) ([]types.ScoredFile, error) {
	if cached, ok := e.cache.get(e.idx, query, preset.Name); ok {
		return cached, nil
	}

	scored, err := Score(ctx, e.idx, query, preset, e.recency)
	if err != nil {
		return nil, err
	}
	e.cache.put(e.idx, query, preset.Name, scored)
	return scored, nil
}

// Score is the pure, cache-free form of Engine.Score: given a loaded index,
// a query, a preset, and an optional recency provider, produce the ranked
// list of ScoredFile per spec.md §4.4. Cancellation is observed between
// candidates, per spec.md §5 "Suspension points".
func Score(ctx context.Context, idx *types.Index, query string, preset types.Preset, recency RecencyProvider) ([]types.ScoredFile, error) {
	n := len(idx.FileRecords)
	if n == 0 {
		return nil, nil
	}

	queryTerms := tokenize.Extract(strings.ToLower(query))

	var bm25Raw map[int]float64
	if preset.UseBM25F {
		bm25Raw = BM25F(idx, queryTerms)
	} else {
		bm25Raw = map[int]float64{}
	}
	bm25Norm := normalizeMinMax(bm25Raw)

	heuristics := make(map[int]float64, n)
	for ord, f := range idx.FileRecords {
		select {
		case <-ctx.Done():
			return nil, types.ErrCancelled
		default:
		}
		heuristics[ord] = Heuristic(f, queryTerms)
	}

	blended := make(map[int]float64, n)
	for ord := 0; ord < n; ord++ {
		blended[ord] = 0.6*bm25Norm[ord] + 0.4*heuristics[ord]
	}

	breakdowns := make([]types.SignalBreakdown, n)
	for ord := 0; ord < n; ord++ {
		bd := types.SignalBreakdown{BM25F: bm25Raw[ord], Heuristic: heuristics[ord]}
		if preset.UsePageRank {
			bd.PageRank = idx.PageRank[idx.FileRecords[ord].Path]
		}
		if preset.UseRecency && recency != nil {
			bd.Recency = float64(recency(idx.FileRecords[ord].Path))
		}
		breakdowns[ord] = bd
	}

	totals := blended
	if preset.UseStructuralSignals() {
		lists := [][]int{RankByScore(blended)}
		if preset.UsePageRank {
			pr := make(map[int]float64, n)
			for ord, f := range idx.FileRecords {
				pr[ord] = idx.PageRank[f.Path]
			}
			lists = append(lists, RankByScore(pr))
		}
		if preset.UseRecency && recency != nil {
			rc := make(map[int]float64, n)
			for ord, f := range idx.FileRecords {
				rc[ord] = float64(recency(f.Path))
			}
			lists = append(lists, RankByScore(rc))
		}
		totals = Fuse(lists...)
	}

	out := make([]types.ScoredFile, n)
	for ord := 0; ord < n; ord++ {
		out[ord] = types.ScoredFile{
			FileOrdinal: ord,
			Path:        idx.FileRecords[ord].Path,
			TotalScore:  totals[ord],
			Breakdown:   breakdowns[ord],
		}
	}

	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		if a.TotalScore != b.TotalScore {
			return a.TotalScore > b.TotalScore
		}
		return lessTieBreak(idx, a, b)
	})
	return out, nil
}

// lessTieBreak implements spec.md §4.4's determinism tie-break: (a) higher
// impl role, (b) shallower path, (c) lexicographic path order.
func lessTieBreak(idx *types.Index, a, b types.ScoredFile) bool {
	ra := idx.FileRecords[a.FileOrdinal].Role
	rb := idx.FileRecords[b.FileOrdinal].Role
	if (ra == types.RoleImpl) != (rb == types.RoleImpl) {
		return ra == types.RoleImpl
	}
	da := strings.Count(a.Path, "/")
	db := strings.Count(b.Path, "/")
	if da != db {
		return da < db
	}
	return a.Path < b.Path
}
