package chunker

import (
	"strings"

	"github.com/dshills/repoindex/internal/tokenize"
	"github.com/dshills/repoindex/pkg/types"
)

// indentBlockLanguages delimit blocks by indentation rather than braces.
var indentBlockLanguages = map[types.Language]bool{
	types.LanguagePython: true,
}

// endKeywordLanguages delimit blocks with a trailing "end" keyword.
var endKeywordLanguages = map[types.Language]bool{
	types.LanguageRuby: true,
}

// Result is the Chunker's output for one file: its chunks, its resolved-
// later import edges, and its term bag.
type Result struct {
	Chunks []types.Chunk
	Edges  []types.ImportEdge
	Terms  types.TermBag
}

// Extract runs the pattern-matching pass for path's content under lang,
// producing chunks, raw import edges, and the three term bags. Zero chunks
// is a valid outcome for an empty or declaration-free file. The returned
// error is always nil: content is not validated as UTF-8, and invalid
// bytes are tokenized as they are.
func Extract(path string, content []byte, lang types.Language) (Result, error) {
	text := string(content)
	lines := strings.Split(text, "\n")

	terms := types.NewTermBag()
	for _, t := range tokenize.Identifier(tokenize.FileStem(path)) {
		terms.FilenameTerms[t]++
	}
	for _, t := range tokenize.Extract(text) {
		terms.BodyTerms[t]++
	}

	var chunks []types.Chunk
	var edges []types.ImportEdge

	patterns := decls(lang)
	claimed := make([]bool, len(lines)) // lines already consumed by an earlier chunk

	for i, line := range lines {
		if claimed[i] {
			continue
		}
		for _, dp := range patterns {
			m := dp.re.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			name := ""
			if len(m) > 1 {
				name = strings.TrimSpace(m[1])
			}

			end := i
			if dp.kind != types.ChunkImport {
				end = blockEnd(lines, i, lang)
			}
			for k := i; k <= end && k < len(claimed); k++ {
				claimed[k] = true
			}

			chunks = append(chunks, types.Chunk{
				Kind:       dp.kind,
				Name:       name,
				StartLine:  i + 1,
				EndLine:    end + 1,
				OwningFile: path,
			})

			if name != "" {
				for _, t := range tokenize.Identifier(name) {
					terms.SymbolTerms[t]++
				}
			}
			break // first matching pattern wins per line
		}
	}

	if ire := importPattern(lang); ire != nil {
		for _, line := range lines {
			m := ire.FindStringSubmatch(line)
			if m == nil {
				continue
			}
			ref := firstNonEmpty(m[1:])
			if ref == "" {
				continue
			}
			edges = append(edges, types.ImportEdge{SrcFile: path, TargetRef: strings.TrimSpace(ref)})
		}
	}

	return Result{Chunks: chunks, Edges: edges, Terms: terms}, nil
}

func firstNonEmpty(candidates []string) string {
	for _, c := range candidates {
		if strings.TrimSpace(c) != "" {
			return c
		}
	}
	return ""
}

// blockEnd estimates the 0-based inclusive end line of the block opened at
// startIdx, dispatching on the language's block-delimiting style. This is
// a coarse heuristic consistent with spec.md §4.2's pattern-matching
// extraction strategy, not a parser: it can be off by a few lines on
// malformed or unusually formatted source. Lines inside an estimated block
// are not matched for declarations, so a block that runs too long (for
// example a brace-less Go "type Role string" line, which extends to the end
// of the next brace block) hides the declarations it covers: they get no
// chunk and add no symbol terms. Filename and body terms are unaffected.
func blockEnd(lines []string, startIdx int, lang types.Language) int {
	switch {
	case indentBlockLanguages[lang]:
		return indentBlockEnd(lines, startIdx)
	case endKeywordLanguages[lang]:
		return endKeywordBlockEnd(lines, startIdx)
	default:
		return braceBlockEnd(lines, startIdx)
	}
}

func braceBlockEnd(lines []string, startIdx int) int {
	depth := 0
	seenOpen := false
	for i := startIdx; i < len(lines); i++ {
		for _, r := range lines[i] {
			switch r {
			case '{':
				depth++
				seenOpen = true
			case '}':
				depth--
			}
		}
		if seenOpen && depth <= 0 {
			return i
		}
		if !seenOpen && strings.HasSuffix(strings.TrimSpace(lines[i]), ";") {
			return i // brace-less declaration such as "struct Unit;"
		}
	}
	return len(lines) - 1
}

func indentBlockEnd(lines []string, startIdx int) int {
	baseIndent := leadingWhitespace(lines[startIdx])
	end := startIdx
	for i := startIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		if trimmed == "" {
			continue
		}
		if leadingWhitespace(lines[i]) <= baseIndent {
			break
		}
		end = i
	}
	return end
}

func leadingWhitespace(s string) int {
	n := 0
	for _, r := range s {
		if r == ' ' || r == '\t' {
			n++
			continue
		}
		break
	}
	return n
}

func endKeywordBlockEnd(lines []string, startIdx int) int {
	depth := 1
	opens := []string{"def ", "class ", "module ", "do", "if ", "unless ", "case "}
	for i := startIdx + 1; i < len(lines); i++ {
		trimmed := strings.TrimSpace(lines[i])
		for _, o := range opens {
			if strings.HasPrefix(trimmed, o) || trimmed == strings.TrimSpace(o) {
				depth++
				break
			}
		}
		if trimmed == "end" {
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return len(lines) - 1
}
