package scoring

import (
	"strings"

	"github.com/dshills/repoindex/internal/tokenize"
	"github.com/dshills/repoindex/pkg/types"
)

const maxUnpenalizedSize = 128 * 1024

var wellKnownPathSegments = map[string]bool{
	"src": true, "lib": true, "core": true, "pkg": true, "internal": true,
}

var roleBonus = map[types.Role]float64{
	types.RoleImpl:      0.15,
	types.RoleTest:       0.0,
	types.RoleBuild:      0.0,
	types.RoleDocs:       0.0,
	types.RoleConfig:     -0.10,
	types.RoleGenerated:  -0.30,
}

// Heuristic computes the path/role/depth/size score for f given the
// already-tokenized query terms, normalized to [0,1] (spec.md §4.4).
func Heuristic(f types.FileRecord, queryTerms []string) float64 {
	pathTerms := pathTokens(f.Path)

	overlap := 0
	queryLen := len(queryTerms)
	if queryLen > 0 {
		termSet := make(map[string]bool, len(pathTerms))
		for _, t := range pathTerms {
			termSet[t] = true
		}
		seen := map[string]bool{}
		for _, q := range queryTerms {
			if seen[q] {
				continue
			}
			seen[q] = true
			if termSet[q] {
				overlap++
			}
		}
	}
	overlapRatio := 0.0
	if queryLen > 0 {
		overlapRatio = float64(overlap) / float64(queryLen)
	}

	score := 0.5 * overlapRatio
	score += roleBonus[f.Role]

	depth := strings.Count(f.Path, "/")
	score += 0.15 * (1.0 / (1.0 + float64(depth)/4.0))

	if hasWellKnownSegment(f.Path) {
		score += 0.1
	}

	if f.SizeBytes > maxUnpenalizedSize {
		score -= 0.15
	}

	if score < 0 {
		score = 0
	}
	if score > 1 {
		score = 1
	}
	return score
}

// pathTokens tokenizes a repository-relative path the same way filename
// terms are tokenized, so query-term overlap is computed on comparable
// tokens.
func pathTokens(path string) []string {
	var out []string
	for _, seg := range strings.Split(path, "/") {
		out = append(out, tokenize.Identifier(tokenize.FileStem(seg))...)
	}
	return out
}

func hasWellKnownSegment(path string) bool {
	for _, seg := range strings.Split(path, "/") {
		if wellKnownPathSegments[strings.ToLower(seg)] {
			return true
		}
	}
	return false
}
