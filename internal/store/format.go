package store

import "github.com/dshills/repoindex/pkg/types"

// magic identifies a repoindex artifact; present to let Decode fail fast
// on unrelated or truncated files (spec.md §4.3 "Corruption policy").
var magic = [8]byte{'R', 'P', 'I', 'D', 'X', 0, 0, 0}

const headerFixedSize = 8 + 4 + 4 // magic + version + section count
const tocEntrySize = 4 + 8 + 8    // tag + offset + length

// Section tags, each exactly 4 bytes.
const (
	tagStrings = "STRB"
	tagFiles   = "FREC"
	tagChunks  = "CHNK"
	tagTerms   = "TRMB"
	tagInverted = "INVX"
	tagEdges   = "EDGE"
	tagPageRank = "PRNK"
	tagStats   = "STAT"
)

// IndexFileName is the artifact's filename within the dot-dir.
const IndexFileName = "index.bin"

// DotDir is the per-repository directory holding persisted state
// (spec.md §6.3).
const DotDir = ".topo"

// languageCodes/roleCodes give the closed Language/Role sets compact
// on-disk byte representations instead of repeating short strings.
var languageCodes = buildLanguageCodes()
var rolesCodes = []types.Role{
	types.RoleImpl, types.RoleTest, types.RoleConfig,
	types.RoleDocs, types.RoleBuild, types.RoleGenerated,
}

func buildLanguageCodes() []types.Language {
	return []types.Language{
		types.LanguageUnknown, types.LanguageGo, types.LanguageRust, types.LanguagePython,
		types.LanguageJavaScript, types.LanguageTypeScript, types.LanguageJava, types.LanguageC,
		types.LanguageCPP, types.LanguageCSharp, types.LanguageRuby, types.LanguagePHP,
		types.LanguageSwift, types.LanguageKotlin, types.LanguageScala, types.LanguageShell,
		types.LanguageYAML, types.LanguageJSON, types.LanguageTOML, types.LanguageMarkdown,
		types.LanguageHTML, types.LanguageSQL,
	}
}

func languageToCode(l types.Language) byte {
	for i, c := range languageCodes {
		if c == l {
			return byte(i)
		}
	}
	return 0
}

func codeToLanguage(b byte) types.Language {
	if int(b) < len(languageCodes) {
		return languageCodes[b]
	}
	return types.LanguageUnknown
}

func roleToCode(r types.Role) byte {
	for i, c := range rolesCodes {
		if c == r {
			return byte(i)
		}
	}
	return 0
}

func codeToRole(b byte) types.Role {
	if int(b) < len(rolesCodes) {
		return rolesCodes[b]
	}
	return types.RoleImpl
}

func chunkKindToCode(k types.ChunkKind) byte {
	switch k {
	case types.ChunkFunction:
		return 0
	case types.ChunkType:
		return 1
	case types.ChunkImpl:
		return 2
	case types.ChunkImport:
		return 3
	default:
		return 0
	}
}

func codeToChunkKind(b byte) types.ChunkKind {
	switch b {
	case 0:
		return types.ChunkFunction
	case 1:
		return types.ChunkType
	case 2:
		return types.ChunkImpl
	case 3:
		return types.ChunkImport
	default:
		return types.ChunkFunction
	}
}
