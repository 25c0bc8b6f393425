package scanner

import (
	"bufio"
	"os"
	"path/filepath"
	"strings"
)

// builtinDeny lists directory names that are never descended into,
// regardless of .gitignore contents (spec.md §4.1 "built-in deny list").
// vendor/ is not listed: its files are scanned and classified generated.
var builtinDeny = map[string]bool{
	".git":         true,
	"node_modules": true,
	".venv":        true,
	"venv":         true,
	"__pycache__":  true,
	"target":       true, // Rust/Java build output
	"dist":         true,
	"build":        true,
	".idea":        true,
	".vscode":      true,
}

// binaryMediaExtensions are always denied regardless of any .gitignore.
var binaryMediaExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".bmp": true,
	".ico": true, ".webp": true, ".svg": true,
	".mp3": true, ".mp4": true, ".mov": true, ".avi": true, ".wav": true,
	".zip": true, ".tar": true, ".gz": true, ".bz2": true, ".xz": true, ".7z": true,
	".pdf": true, ".woff": true, ".woff2": true, ".ttf": true, ".eot": true,
	".so": true, ".dylib": true, ".dll": true, ".exe": true, ".a": true, ".o": true,
	".class": true, ".pyc": true,
}

// ignoreMatcher evaluates a layered set of .gitignore-subset patterns
// rooted at successive directories. It implements a practical subset of
// gitignore syntax: literal segments, "*" within a segment, a leading "/"
// anchoring to the pattern's own directory, and a trailing "/" restricting
// the pattern to directories. Negation ("!") and "**" are not supported; no
// Go sibling for the full gitignore grammar appears in the retrieved
// example pack, so this hand-rolled subset is the one standard-library-only
// piece of this module (see DESIGN.md).
type ignoreMatcher struct {
	root  string
	rules []ignoreRule
}

type ignoreRule struct {
	base    string // directory the pattern file lives in, relative to root
	pattern string
	dirOnly bool
	anchored bool
}

// newIgnoreMatcher loads .gitignore files along the path from root down to
// (and including) root itself. Additional per-directory files are merged
// in as the walk descends via loadDir.
func newIgnoreMatcher(root string) *ignoreMatcher {
	m := &ignoreMatcher{root: root}
	m.loadDir(root)
	return m
}

// loadDir merges the .gitignore in dir (if any) into the matcher's rule
// set. dir must be root or a descendant of root.
func (m *ignoreMatcher) loadDir(dir string) {
	rel, err := filepath.Rel(m.root, dir)
	if err != nil {
		return
	}
	rel = filepath.ToSlash(rel)
	if rel == "." {
		rel = ""
	}

	f, err := os.Open(filepath.Join(dir, ".gitignore"))
	if err != nil {
		return
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		rule := ignoreRule{base: rel}
		if strings.HasPrefix(line, "/") {
			rule.anchored = true
			line = line[1:]
		}
		if strings.HasSuffix(line, "/") {
			rule.dirOnly = true
			line = strings.TrimSuffix(line, "/")
		}
		rule.pattern = line
		m.rules = append(m.rules, rule)
	}
}

// matches reports whether relPath (forward-slash, relative to root) should
// be ignored. isDir indicates whether relPath names a directory.
func (m *ignoreMatcher) matches(relPath string, isDir bool) bool {
	base := filepath.Base(relPath)
	if builtinDeny[base] && isDir {
		return true
	}
	if !isDir {
		if binaryMediaExtensions[strings.ToLower(filepath.Ext(relPath))] {
			return true
		}
	}
	for _, r := range m.rules {
		if r.dirOnly && !isDir {
			continue
		}
		candidate := relPath
		if r.base != "" {
			if !strings.HasPrefix(relPath, r.base+"/") {
				continue
			}
			candidate = strings.TrimPrefix(relPath, r.base+"/")
		}
		if r.anchored {
			if ok, _ := filepath.Match(r.pattern, candidate); ok {
				return true
			}
			continue
		}
		// Unanchored: match against the final path segment or any
		// suffix segment, approximating gitignore's "matches at any
		// depth" behavior for a bare pattern.
		segments := strings.Split(candidate, "/")
		for _, seg := range segments {
			if ok, _ := filepath.Match(r.pattern, seg); ok {
				return true
			}
		}
		if ok, _ := filepath.Match(r.pattern, candidate); ok {
			return true
		}
	}
	return false
}
