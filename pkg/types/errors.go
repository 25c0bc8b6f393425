package types

import "errors"

// Error kinds produced by the core. Per-file errors (FileIoError,
// ChunkerError) carry the offending path/language and are never fatal to a
// pipeline run; they are counted in IndexStats instead. RepoNotFound and
// IndexCorrupt are structural and abort the current call.
var (
	ErrRepoNotFound  = errors.New("repoindex: repository root not found")
	ErrIndexMissing  = errors.New("repoindex: index artifact missing")
	ErrIndexCorrupt  = errors.New("repoindex: index artifact corrupt")
	ErrCancelled     = errors.New("repoindex: operation cancelled")
	ErrInvalidBudget = errors.New("repoindex: invalid selector budget")
)

// FileIoError wraps a per-file read failure encountered during a scan.
// Scanning continues after this error; it is recorded, not propagated.
type FileIoError struct {
	Path string
	Err  error
}

func (e *FileIoError) Error() string {
	return "repoindex: read " + e.Path + ": " + e.Err.Error()
}

func (e *FileIoError) Unwrap() error { return e.Err }

// ChunkerError wraps an extractor malfunction for a single file. Body terms
// may still have been contributed before the error occurred.
type ChunkerError struct {
	Path     string
	Language Language
	Err      error
}

func (e *ChunkerError) Error() string {
	return "repoindex: chunk " + e.Path + " (" + string(e.Language) + "): " + e.Err.Error()
}

func (e *ChunkerError) Unwrap() error { return e.Err }
