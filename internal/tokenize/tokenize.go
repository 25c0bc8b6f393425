// Package tokenize implements the term-extraction rules shared by the
// Chunker (building TermBags) and the Scoring Engine (analyzing the query
// string), so that index-time and query-time tokens are directly
// comparable. Grounded on the original Rust implementation's
// atlas-index/src/builder.rs::split_camel_case, which splits
// acronym-aware identifiers like "parseHTTPResponse" into "parse", "http",
// "response".
package tokenize

import (
	"strings"
	"unicode"
)

// minTermLength is the minimum length of a lowercased alphanumeric term
// (spec.md §3: "Terms are lowercased alphanumeric sequences of length >= 2").
const minTermLength = 2

// Terms splits text into lowercased alphanumeric terms of length >= 2. It
// does not perform identifier-boundary splitting; use Identifier for that.
func Terms(text string) []string {
	var terms []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() >= minTermLength {
			terms = append(terms, strings.ToLower(buf.String()))
		}
		buf.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			buf.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return terms
}

// Identifier tokenizes a single identifier (as it appears in source: a
// filename stem, a symbol name) into both its lowercased alphanumeric runs
// and its camelCase/PascalCase/snake_case/kebab-case/digit-boundary split
// pieces. An identifier without separators ("parseHTTPResponse") is emitted
// whole; one joined by '_', '-', '.' or '/' is not, and since its runs and
// its pieces coincide, each piece is then emitted twice.
func Identifier(ident string) []string {
	out := Terms(ident) // original, as one or more alnum runs with separators stripped
	pieces := splitCamelCase(ident)
	if len(pieces) == 1 && strings.EqualFold(pieces[0], ident) {
		return out // splitting produced nothing new; don't double-count
	}
	for _, piece := range pieces {
		out = append(out, Terms(piece)...)
	}
	return out
}

// splitCamelCase splits an identifier on snake_case/kebab-case separators
// first, then on camelCase/PascalCase/digit boundaries within each piece,
// treating runs of uppercase letters (acronyms) as a single unit so that
// "parseHTTPResponse" yields ["parse", "HTTP", "Response"] rather than
// ["parse", "H", "T", "T", "P", "Response"].
func splitCamelCase(ident string) []string {
	var words []string
	for _, seg := range strings.FieldsFunc(ident, func(r rune) bool {
		return r == '_' || r == '-' || r == '.' || r == '/'
	}) {
		words = append(words, splitCaseBoundaries(seg)...)
	}
	return words
}

func splitCaseBoundaries(seg string) []string {
	runes := []rune(seg)
	if len(runes) == 0 {
		return nil
	}
	var words []string
	start := 0
	classOf := func(r rune) int {
		switch {
		case unicode.IsUpper(r):
			return 0
		case unicode.IsLower(r):
			return 1
		case unicode.IsDigit(r):
			return 2
		default:
			return 3
		}
	}
	for i := 1; i < len(runes); i++ {
		prev, cur := classOf(runes[i-1]), classOf(runes[i])
		boundary := false
		switch {
		case prev == 1 && cur == 0: // lower -> upper: wordWord
			boundary = true
		case prev == 0 && cur == 0:
			// inside an acronym run; boundary only if this starts a new
			// Capitalized word, i.e. upper followed by upper+lower
			// (HTTPResponse -> HTTP | Response): lookahead one rune.
			if i+1 < len(runes) && classOf(runes[i+1]) == 1 {
				boundary = true
			}
		case prev != 2 && cur == 2, prev == 2 && cur != 2: // digit boundary
			boundary = true
		}
		if boundary {
			words = append(words, string(runes[start:i]))
			start = i
		}
	}
	words = append(words, string(runes[start:]))
	return words
}

// Words splits free-form text (a file body, a query string) into runs of
// letters, digits, underscore, and hyphen -- the superset of characters
// that can appear inside an identifier written in any of camelCase,
// snake_case, or kebab-case.
func Words(text string) []string {
	var words []string
	var buf strings.Builder
	flush := func() {
		if buf.Len() > 0 {
			words = append(words, buf.String())
		}
		buf.Reset()
	}
	for _, r := range text {
		if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' || r == '-' {
			buf.WriteRune(r)
		} else {
			flush()
		}
	}
	flush()
	return words
}

// Extract tokenizes free-form text into terms: each word (per Words) is
// expanded via Identifier, so body text and query strings get the same
// camelCase/snake_case/kebab-case/digit-boundary splitting that filename
// and symbol terms get (spec.md §3: identifiers are split "with both the
// split pieces and the original identifier emitted").
func Extract(text string) []string {
	var out []string
	for _, w := range Words(text) {
		out = append(out, Identifier(w)...)
	}
	return out
}

// FileStem returns the filename without its final extension, e.g.
// "internal/scanner.go" -> "scanner".
func FileStem(path string) string {
	base := path
	if i := strings.LastIndexByte(base, '/'); i >= 0 {
		base = base[i+1:]
	}
	if i := strings.LastIndexByte(base, '.'); i > 0 {
		base = base[:i]
	}
	return base
}
