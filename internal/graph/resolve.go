package graph

import (
	"path/filepath"
	"strings"

	"github.com/dshills/repoindex/internal/tokenize"
	"github.com/dshills/repoindex/pkg/types"
)

// directoryProxyStems are filenames whose parent directory name is also
// indexed as a resolution target, matching how languages like Rust
// (mod.rs), Node (index.js), and Python (__init__.py) treat such files as
// the "face" of a directory (SPEC_FULL.md §4, grounded on the original
// implementation's atlas-score/src/resolve.rs::build_file_index).
var directoryProxyStems = map[string]bool{
	"mod":      true,
	"index":    true,
	"__init__": true,
}

// ResolveEdges maps raw (src_file, target_ref) edges to concrete target
// files, filtering self-loops at resolution time (cheaper than
// adding-then-removing, per the original resolver's approach) and
// deduplicating the result.
func ResolveEdges(records []types.FileRecord, rawEdges []types.ImportEdge) []types.ResolvedEdge {
	stemIndex := map[string]string{}   // file stem -> path
	suffixIndex := map[string]string{} // module suffix (slash-joined path components, no ext) -> path

	for _, r := range records {
		stem := tokenize.FileStem(r.Path)
		// First writer wins on collision; ambiguous stems are an accepted
		// imprecision of this coarse resolver (spec.md §1 Non-goals:
		// "symbol cross-references" implies exact resolution is not a
		// core goal).
		if _, ok := stemIndex[stem]; !ok {
			stemIndex[stem] = r.Path
		}

		suffix := modulePathNoExt(r.Path)
		parts := strings.Split(suffix, "/")
		for i := range parts {
			sub := strings.Join(parts[i:], "/")
			if _, ok := suffixIndex[sub]; !ok {
				suffixIndex[sub] = r.Path
			}
		}

		if directoryProxyStems[stem] {
			dir := filepath.Dir(r.Path)
			if dir != "." {
				dirName := filepath.Base(dir)
				if _, ok := stemIndex[dirName]; !ok {
					stemIndex[dirName] = r.Path
				}
			}
		}
	}

	seen := map[types.ResolvedEdge]bool{}
	var out []types.ResolvedEdge

	for _, e := range rawEdges {
		target := resolveOne(e.TargetRef, stemIndex, suffixIndex)
		if target == "" || target == e.SrcFile {
			continue // dropped, or a self-loop filtered at resolution time
		}
		re := types.ResolvedEdge{SrcFile: e.SrcFile, TargetFile: target}
		if seen[re] {
			continue
		}
		seen[re] = true
		out = append(out, re)
	}
	return out
}

// resolveOne resolves a single raw target_ref by (a) exact file-stem
// match, else (b) longest suffix of the reference that matches a known
// module suffix, else "" (dropped).
func resolveOne(ref string, stemIndex, suffixIndex map[string]string) string {
	ref = strings.Trim(ref, `"'`)
	ref = strings.TrimSuffix(ref, ";")

	stem := refStem(ref)
	if path, ok := stemIndex[stem]; ok {
		return path
	}

	refParts := strings.Split(normalizeRef(ref), "/")
	for i := 0; i < len(refParts); i++ {
		sub := strings.Join(refParts[i:], "/")
		if sub == "" {
			continue
		}
		if path, ok := suffixIndex[sub]; ok {
			return path
		}
	}
	return ""
}

func refStem(ref string) string {
	norm := normalizeRef(ref)
	if i := strings.LastIndexByte(norm, '/'); i >= 0 {
		norm = norm[i+1:]
	}
	return norm
}

// normalizeRef rewrites language-specific import separators ("::", ".")
// into "/" so refs can be compared against path-derived module suffixes.
func normalizeRef(ref string) string {
	ref = strings.ReplaceAll(ref, "::", "/")
	ref = strings.ReplaceAll(ref, "{", "")
	ref = strings.ReplaceAll(ref, "}", "")
	ref = strings.TrimSpace(ref)
	if strings.Contains(ref, ".") && !strings.Contains(ref, "/") {
		ref = strings.ReplaceAll(ref, ".", "/")
	}
	return strings.Trim(ref, "/")
}

// modulePathNoExt returns path without its file extension, forward-slash
// normalized, used as the basis for module-suffix matching.
func modulePathNoExt(path string) string {
	ext := filepath.Ext(path)
	return strings.TrimSuffix(path, ext)
}
