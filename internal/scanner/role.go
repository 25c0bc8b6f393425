package scanner

import (
	"path/filepath"
	"strings"

	"github.com/dshills/repoindex/pkg/types"
)

// generatedPathPatterns are path substrings that mark a file generated
// regardless of extension (spec.md §3: "generated covers vendor/lock/
// build-output directories and files matching known generator suffixes").
var generatedPathSubstrings = []string{
	"/vendor/", "/node_modules/", "/dist/", "/build/", "/target/",
	"/.next/", "/generated/", "/__generated__/",
}

var generatedFileSuffixes = []string{
	".pb.go", ".generated.go", "_pb2.py", ".g.dart", ".min.js", ".min.css",
	".lock", "-lock.json", ".freeze",
}

var generatedFileNames = map[string]bool{
	"package-lock.json": true,
	"yarn.lock":          true,
	"pnpm-lock.yaml":     true,
	"cargo.lock":         true,
	"go.sum":             true,
	"poetry.lock":        true,
	"gemfile.lock":       true,
}

var testPathSubstrings = []string{"/test/", "/tests/", "/__tests__/", "/spec/", "/specs/"}

var testFileSuffixPatterns = []string{
	"_test.go", ".test.js", ".test.ts", ".test.jsx", ".test.tsx",
	".spec.js", ".spec.ts", "_test.py", "test_", "_spec.rb",
}

var configExtensions = map[string]bool{
	".yaml": true, ".yml": true, ".toml": true, ".ini": true, ".cfg": true,
	".conf": true, ".env": true, ".properties": true,
}

var docsExtensions = map[string]bool{
	".md": true, ".markdown": true, ".rst": true, ".txt": true, ".adoc": true,
}

var buildManifestNames = map[string]bool{
	"makefile": true, "dockerfile": true, "go.mod": true, "cargo.toml": true,
	"package.json": true, "pom.xml": true, "build.gradle": true,
	"build.gradle.kts": true, "cmakelists.txt": true, "requirements.txt": true,
	"pyproject.toml": true, "setup.py": true, "gemfile": true,
}

// classifyRole derives a Role from path and extension using the ordered
// rules of spec.md §4.1 step 4: generated-path patterns -> test-path
// patterns -> config extensions -> docs extensions -> build-manifest
// names -> default impl.
func classifyRole(relPath string, ext string) types.Role {
	lowerPath := "/" + strings.ToLower(relPath)
	lowerBase := strings.ToLower(filepath.Base(relPath))

	for _, sub := range generatedPathSubstrings {
		if strings.Contains(lowerPath, sub) {
			return types.RoleGenerated
		}
	}
	for _, suf := range generatedFileSuffixes {
		if strings.HasSuffix(lowerBase, suf) {
			return types.RoleGenerated
		}
	}
	if generatedFileNames[lowerBase] {
		return types.RoleGenerated
	}

	for _, sub := range testPathSubstrings {
		if strings.Contains(lowerPath, sub) {
			return types.RoleTest
		}
	}
	for _, suf := range testFileSuffixPatterns {
		if strings.Contains(lowerBase, suf) {
			return types.RoleTest
		}
	}

	if configExtensions[ext] {
		return types.RoleConfig
	}
	if docsExtensions[ext] {
		return types.RoleDocs
	}
	if buildManifestNames[lowerBase] {
		return types.RoleBuild
	}

	return types.RoleImpl
}
