package chunker

import (
	"regexp"

	"github.com/dshills/repoindex/pkg/types"
)

// declPattern maps one regex to the Chunk kind it produces. The regex's
// first capture group, if present, is the chunk's Name.
type declPattern struct {
	kind ChunkKindMatcher
	re   *regexp.Regexp
}

// ChunkKindMatcher is a types.ChunkKind alias kept local to avoid import
// churn when new kinds are added to the pattern tables below.
type ChunkKindMatcher = types.ChunkKind

// languagePatterns is the closed, documented pattern set for one language:
// declaration patterns (func/type/impl/import-like forms) and, for the
// languages with import-aware extraction, the raw-import pattern whose
// first capture group is the raw target_ref.
type languagePatterns struct {
	decls      []declPattern
	importRe   *regexp.Regexp // nil if this language contributes no import edges
}

// patternTable is the dispatch table from Language to its extractor
// record. A switch over the Language variant, via map lookup, suffices --
// no virtual dispatch is required (spec.md §9 "Polymorphism over
// extractors").
var patternTable = map[types.Language]languagePatterns{
	types.LanguageGo: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*func\s+(?:\([^)]*\)\s+)?([A-Za-z_]\w*)\s*\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*type\s+([A-Za-z_]\w*)\s+(?:struct|interface)\b`)},
			{types.ChunkType, regexp.MustCompile(`^\s*type\s+([A-Za-z_]\w*)\s*=?\s*\w`)},
		},
		importRe: regexp.MustCompile(`^\s*(?:[A-Za-z_]\w*\s+)?"([^"]+)"\s*(?://.*)?$`),
	},
	types.LanguageRust: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:async\s+)?fn\s+([A-Za-z_]\w*)`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:pub(?:\([^)]*\))?\s+)?(?:struct|enum|trait|type)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImpl, regexp.MustCompile(`^\s*impl(?:<[^>]*>)?\s+(?:[A-Za-z_:]\w*\s+for\s+)?([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:]+)`)},
		},
		importRe: regexp.MustCompile(`^\s*(?:pub\s+)?use\s+([\w:{},\s]+);`),
	},
	types.LanguagePython: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:async\s+)?def\s+([A-Za-z_]\w*)\s*\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*class\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*(?:import|from)\s+([\w.]+)`)},
		},
		importRe: regexp.MustCompile(`^\s*(?:from\s+([\w.]+)\s+import|import\s+([\w.]+))`),
	},
	types.LanguageJavaScript: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s+([A-Za-z_$]\w*)\s*\(`)},
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$]\w*)\s*=\s*(?:async\s*)?\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:export\s+)?class\s+([A-Za-z_$]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+.*from\s+['"]([^'"]+)['"]`)},
		},
		importRe: regexp.MustCompile(`^\s*(?:import\s+.*from\s+|export\s+.*from\s+|require\()\s*['"]([^'"]+)['"]`),
	},
	types.LanguageTypeScript: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:export\s+)?(?:async\s+)?function\s*\*?\s+([A-Za-z_$]\w*)\s*\(`)},
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:export\s+)?const\s+([A-Za-z_$]\w*)\s*=\s*(?:async\s*)?\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:export\s+)?(?:class|interface)\s+([A-Za-z_$]\w*)`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:export\s+)?type\s+([A-Za-z_$]\w*)\s*=`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+.*from\s+['"]([^'"]+)['"]`)},
		},
		importRe: regexp.MustCompile(`^\s*(?:import\s+.*from\s+|export\s+.*from\s+|require\()\s*['"]([^'"]+)['"]`),
	},
	types.LanguageJava: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?(?:final\s+)?[\w<>\[\],\s]+\s+([A-Za-z_]\w*)\s*\([^)]*\)\s*(?:throws\s+[\w,\s]+)?\s*\{`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:abstract\s+|final\s+)?(?:class|interface|enum)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.]+)`)},
		},
		importRe: regexp.MustCompile(`^\s*import\s+(?:static\s+)?([\w.*]+);`),
	},
	types.LanguageC: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:static\s+)?[\w\*\s]+\s+([A-Za-z_]\w*)\s*\([^;]*\)\s*\{`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:typedef\s+)?struct\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*#include\s*[<"]([^>"]+)[>"]`)},
		},
	},
	types.LanguageCPP: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:static\s+|virtual\s+|inline\s+)*[\w:<>\*&\s]+\s+([A-Za-z_]\w*)\s*\([^;]*\)\s*(?:const\s*)?\{`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:class|struct)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*#include\s*[<"]([^>"]+)[>"]`)},
		},
	},
	types.LanguageCSharp: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:static\s+)?(?:async\s+)?[\w<>\[\],\s]+\s+([A-Za-z_]\w*)\s*\([^)]*\)\s*\{?`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:public|private|protected|internal)?\s*(?:abstract\s+|sealed\s+)?(?:class|interface|struct|enum)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*using\s+([\w.]+);`)},
		},
	},
	types.LanguageRuby: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*def\s+(?:self\.)?([A-Za-z_]\w*[?!]?)`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:class|module)\s+([A-Za-z_:]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*require(?:_relative)?\s+['"]([^'"]+)['"]`)},
		},
	},
	types.LanguagePHP: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:public|private|protected)?\s*(?:static\s+)?function\s+([A-Za-z_]\w*)\s*\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:abstract\s+)?class\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*(?:use|require|include)(?:_once)?\s+['"]?([\w\\\/.]+)`)},
		},
	},
	types.LanguageSwift: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:public\s+|private\s+|internal\s+)?func\s+([A-Za-z_]\w*)\s*[\(<]`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:public\s+|private\s+)?(?:class|struct|enum|protocol)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+([A-Za-z_]\w*)`)},
		},
	},
	types.LanguageKotlin: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:public\s+|private\s+|internal\s+)?fun\s+([A-Za-z_]\w*)\s*\(`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:data\s+|sealed\s+|abstract\s+)?(?:class|interface|object)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+([\w.]+)`)},
		},
	},
	types.LanguageScala: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*def\s+([A-Za-z_]\w*)\s*[\(\[]`)},
			{types.ChunkType, regexp.MustCompile(`^\s*(?:case\s+)?(?:class|trait|object)\s+([A-Za-z_]\w*)`)},
			{types.ChunkImport, regexp.MustCompile(`^\s*import\s+([\w.{}, ]+)`)},
		},
	},
	types.LanguageShell: {
		decls: []declPattern{
			{types.ChunkFunction, regexp.MustCompile(`^\s*(?:function\s+)?([A-Za-z_]\w*)\s*\(\)\s*\{`)},
		},
	},
}

// decls returns the declaration patterns for lang, or nil for languages
// with no chunk patterns (they still contribute body term bags).
func decls(lang types.Language) []declPattern {
	return patternTable[lang].decls
}

// importPattern returns the raw-import pattern for lang, or nil.
func importPattern(lang types.Language) *regexp.Regexp {
	return patternTable[lang].importRe
}
