// Package chunker extracts coarse lexical units (functions, types, impls,
// imports) and term bags from source files.
//
// One extractor per supported language, driven by a shared pattern-table
// record shape (spec.md §4.2): a line-oriented regex pass identifies
// declarations and maps each recognized form to a Chunk kind. This is
// deliberately not a syntax-tree pass -- "a full syntax-tree pass over
// every file costs more than the downstream scoring saves" -- so Extract
// never imports a parser for any of the closed language set; unknown
// languages still contribute body term bags with an empty chunk set.
//
// # Basic Usage
//
//	result, err := chunker.Extract("src/scanner.go", content, types.LanguageGo)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, c := range result.Chunks {
//	    fmt.Printf("%s %s lines %d-%d\n", c.Kind, c.Name, c.StartLine, c.EndLine)
//	}
package chunker
