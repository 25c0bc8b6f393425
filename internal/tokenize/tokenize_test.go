package tokenize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTerms(t *testing.T) {
	assert.Equal(t, []string{"hello", "world"}, Terms("Hello, World!"))
	assert.Empty(t, Terms("a b c")) // length-1 terms dropped
}

func TestIdentifierCamelCase(t *testing.T) {
	got := Identifier("parseHTTPResponse")
	assert.Contains(t, got, "parsehttpresponse")
	assert.Contains(t, got, "parse")
	assert.Contains(t, got, "http")
	assert.Contains(t, got, "response")
}

func TestIdentifierSnakeCase(t *testing.T) {
	got := Identifier("build_or_refresh_index")
	assert.Contains(t, got, "build")
	assert.Contains(t, got, "refresh")
	assert.Contains(t, got, "index")
}

func TestIdentifierKebabCase(t *testing.T) {
	got := Identifier("content-hash")
	assert.Contains(t, got, "content")
	assert.Contains(t, got, "hash")
}

func TestIdentifierDigitBoundary(t *testing.T) {
	got := Identifier("sha256sum")
	assert.Contains(t, got, "sha256sum") // original identifier, always emitted
	assert.Contains(t, got, "sha")
	assert.Contains(t, got, "256")
	assert.Contains(t, got, "sum")
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "scanner", FileStem("internal/scanner.go"))
	assert.Equal(t, "mod", FileStem("pkg/mod.rs"))
}
