// Package scoring implements the Scoring Engine: BM25F over three
// weighted fields, a path/role/depth/size heuristic, PageRank-aware
// structural fusion via Reciprocal Rank Fusion, and the deterministic
// tie-break that makes repeated runs over the same index and query
// produce bit-identical rankings.
//
// # Basic Usage
//
//	scored, err := scoring.Score(ctx, idx, "parse config file", types.LookupPreset(types.PresetDeep), nil)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, sf := range scored[:10] {
//	    fmt.Printf("%.4f  %s\n", sf.TotalScore, sf.Path)
//	}
//
// # Signal Blending
//
// The blended base score is 0.6*bm25f_norm + 0.4*heuristic, where
// bm25f_norm is min-max normalized across the candidate set. When the
// preset enables structural signals, this blended score, the PageRank
// ranking, and (if supplied) the git-recency ranking are fused by RRF;
// the RRF score replaces the blended score as the final total.
package scoring
