package types

// Language is a tag drawn from the closed set of recognized source
// languages, or LanguageUnknown.
type Language string

// The closed set of recognized languages. The Chunker's pattern tables are
// keyed on this set; spec.md calls for >=18 languages with import-aware
// extraction for the five most common ones (§4.2 "Supplemented Features").
const (
	LanguageUnknown    Language = "unknown"
	LanguageGo         Language = "go"
	LanguageRust       Language = "rust"
	LanguagePython     Language = "python"
	LanguageJavaScript Language = "javascript"
	LanguageTypeScript Language = "typescript"
	LanguageJava       Language = "java"
	LanguageC          Language = "c"
	LanguageCPP        Language = "cpp"
	LanguageCSharp     Language = "csharp"
	LanguageRuby       Language = "ruby"
	LanguagePHP        Language = "php"
	LanguageSwift      Language = "swift"
	LanguageKotlin     Language = "kotlin"
	LanguageScala      Language = "scala"
	LanguageShell      Language = "shell"
	LanguageYAML       Language = "yaml"
	LanguageJSON       Language = "json"
	LanguageTOML       Language = "toml"
	LanguageMarkdown   Language = "markdown"
	LanguageHTML       Language = "html"
	LanguageSQL        Language = "sql"
)

// languagesWithImportEdges is the subset of languages for which the Chunker
// extracts ImportEdges, not just chunks and term bags.
var languagesWithImportEdges = map[Language]bool{
	LanguageGo:         true,
	LanguageRust:       true,
	LanguagePython:     true,
	LanguageJavaScript: true,
	LanguageTypeScript: true,
	LanguageJava:       true,
}

// SupportsImportEdges reports whether l's extractor contributes ImportEdges.
func (l Language) SupportsImportEdges() bool {
	return languagesWithImportEdges[l]
}

// extensionTable maps a lowercase file extension (including the leading dot)
// to its Language.
var extensionTable = map[string]Language{
	".go":    LanguageGo,
	".rs":    LanguageRust,
	".py":    LanguagePython,
	".pyw":   LanguagePython,
	".js":    LanguageJavaScript,
	".mjs":   LanguageJavaScript,
	".cjs":   LanguageJavaScript,
	".jsx":   LanguageJavaScript,
	".ts":    LanguageTypeScript,
	".tsx":   LanguageTypeScript,
	".java":  LanguageJava,
	".c":     LanguageC,
	".h":     LanguageC,
	".cc":    LanguageCPP,
	".cpp":   LanguageCPP,
	".cxx":   LanguageCPP,
	".hpp":   LanguageCPP,
	".hh":    LanguageCPP,
	".cs":    LanguageCSharp,
	".rb":    LanguageRuby,
	".php":   LanguagePHP,
	".swift": LanguageSwift,
	".kt":    LanguageKotlin,
	".kts":   LanguageKotlin,
	".scala": LanguageScala,
	".sh":    LanguageShell,
	".bash":  LanguageShell,
	".zsh":   LanguageShell,
	".yaml":  LanguageYAML,
	".yml":   LanguageYAML,
	".json":  LanguageJSON,
	".toml":  LanguageTOML,
	".md":    LanguageMarkdown,
	".markdown": LanguageMarkdown,
	".html":  LanguageHTML,
	".htm":   LanguageHTML,
	".sql":   LanguageSQL,
}

// LanguageByExtension classifies a language by lowercase file extension
// (including the leading dot). Returns LanguageUnknown for unrecognized or
// empty extensions.
func LanguageByExtension(ext string) Language {
	if lang, ok := extensionTable[ext]; ok {
		return lang
	}
	return LanguageUnknown
}

// shebangTable maps a shebang interpreter basename to its Language, used for
// extensionless files per spec.md §4.1 ("a small shebang sniff applies to
// files with no extension").
var shebangTable = map[string]Language{
	"sh":     LanguageShell,
	"bash":   LanguageShell,
	"zsh":    LanguageShell,
	"python": LanguagePython,
	"python3": LanguagePython,
	"node":   LanguageJavaScript,
	"ruby":   LanguageRuby,
}

// LanguageByShebang classifies a language from a shebang interpreter
// basename (e.g. "python3" from "#!/usr/bin/env python3").
func LanguageByShebang(interpreter string) Language {
	if lang, ok := shebangTable[interpreter]; ok {
		return lang
	}
	return LanguageUnknown
}
