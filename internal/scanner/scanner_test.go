package scanner

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/pkg/types"
)

func writeFile(t *testing.T, root, rel, content string) {
	t.Helper()
	full := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(full), 0o755))
	require.NoError(t, os.WriteFile(full, []byte(content), 0o644))
}

func TestScanBasic(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "src/a.go", "package a\n")
	writeFile(t, root, "README.md", "# hi\n")
	writeFile(t, root, "vendor/dep/x.go", "package dep\n")

	records, stats, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)
	require.Equal(t, len(records), stats.FilesScanned)

	byPath := map[string]types.FileRecord{}
	for _, r := range records {
		byPath[r.Path] = r
	}

	a, ok := byPath["src/a.go"]
	require.True(t, ok)
	require.Equal(t, types.LanguageGo, a.Language)
	require.Equal(t, types.RoleImpl, a.Role)

	readme, ok := byPath["README.md"]
	require.True(t, ok)
	require.Equal(t, types.RoleDocs, readme.Role)

	vendored, ok := byPath["vendor/dep/x.go"]
	require.True(t, ok)
	require.Equal(t, types.RoleGenerated, vendored.Role)
}

func TestScanRepoNotFound(t *testing.T) {
	_, _, err := Scan(context.Background(), "/nonexistent/path/xyz", Options{})
	require.ErrorIs(t, err, types.ErrRepoNotFound)
}

func TestScanHonorsGitignore(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, ".gitignore", "ignored_dir/\n*.log\n")
	writeFile(t, root, "ignored_dir/x.go", "package x\n")
	writeFile(t, root, "keep.go", "package keep\n")
	writeFile(t, root, "debug.log", "noise\n")

	records, _, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)

	paths := map[string]bool{}
	for _, r := range records {
		paths[r.Path] = true
	}
	require.True(t, paths["keep.go"])
	require.False(t, paths["ignored_dir/x.go"])
	require.False(t, paths["debug.log"])
}

func TestScanDeterministicOrder(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "b.go", "package b\n")
	writeFile(t, root, "a.go", "package a\n")

	records, _, err := Scan(context.Background(), root, Options{})
	require.NoError(t, err)
	require.Len(t, records, 2)
	require.Equal(t, "a.go", records[0].Path)
	require.Equal(t, "b.go", records[1].Path)
}
