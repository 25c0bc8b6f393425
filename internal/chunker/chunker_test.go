package chunker

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dshills/repoindex/pkg/types"
)

func TestExtractGoFunctionAndType(t *testing.T) {
	src := `package scanner

import (
	"fmt"
)

type Options struct {
	Workers int
}

func Scan(root string) error {
	fmt.Println(root)
	return nil
}
`
	res, err := Extract("internal/scanner/scanner.go", []byte(src), types.LanguageGo)
	require.NoError(t, err)

	var names []string
	for _, c := range res.Chunks {
		names = append(names, c.Name)
	}
	assert.Contains(t, names, "Options")
	assert.Contains(t, names, "Scan")

	assert.Greater(t, res.Terms.BodyTerms["fmt"], 0)
	assert.Greater(t, res.Terms.FilenameTerms["scanner"], 0)
	assert.Greater(t, res.Terms.SymbolTerms["scan"], 0)
}

func TestExtractGoImports(t *testing.T) {
	src := `package x

import (
	"fmt"
	mypkg "example.com/mypkg"
)
`
	res, err := Extract("x.go", []byte(src), types.LanguageGo)
	require.NoError(t, err)
	require.Len(t, res.Edges, 2)
}

func TestExtractPythonIndentBlock(t *testing.T) {
	src := `class Foo:
    def bar(self):
        return 1

def baz():
    return 2
`
	res, err := Extract("foo.py", []byte(src), types.LanguagePython)
	require.NoError(t, err)

	var kinds = map[string]types.Chunk{}
	for _, c := range res.Chunks {
		kinds[c.Name] = c
	}
	require.Contains(t, kinds, "Foo")
	require.Contains(t, kinds, "baz")
	assert.Equal(t, 5, kinds["baz"].StartLine)
}

func TestExtractUnknownLanguageStillGetsBodyTerms(t *testing.T) {
	res, err := Extract("data.unknownext", []byte("hello world hello"), types.LanguageUnknown)
	require.NoError(t, err)
	assert.Empty(t, res.Chunks)
	assert.Equal(t, 2, res.Terms.BodyTerms["hello"])
}

func TestExtractRustImplAndUse(t *testing.T) {
	src := `struct Scanner;

impl Scanner {
    fn scan(&self) -> bool {
        true
    }
}

use std::fs;
`
	res, err := Extract("scanner.rs", []byte(src), types.LanguageRust)
	require.NoError(t, err)

	var kinds []types.ChunkKind
	for _, c := range res.Chunks {
		kinds = append(kinds, c.Kind)
	}
	assert.Contains(t, kinds, types.ChunkImpl)
	assert.Contains(t, kinds, types.ChunkType)
}
