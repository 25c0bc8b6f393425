package scanner

import (
	"context"
	"crypto/sha256"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/dshills/repoindex/pkg/types"
)

// maxAdmittedSourceSize is the threshold past which a file is admitted but
// forced to role=generated unless it carries a recognized source
// extension (spec.md §4.1 step 2).
const maxAdmittedSourceSize = 8 * 1024 * 1024

// Options configures a Scan call.
type Options struct {
	Workers int // default runtime.NumCPU()
}

// Stats summarizes a scan for IndexStats reporting.
type Stats struct {
	FilesScanned int
	FilesFailed  int
}

// Scan walks root and returns the admitted FileRecords plus scan
// statistics. Records are returned sorted by Path; the walk itself is not
// ordered (spec.md §5 "Ordering guarantees").
func Scan(ctx context.Context, root string, opts Options) ([]types.FileRecord, Stats, error) {
	info, err := os.Stat(root)
	if err != nil || !info.IsDir() {
		return nil, Stats{}, types.ErrRepoNotFound
	}

	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	paths, err := walk(root)
	if err != nil {
		return nil, Stats{}, fmt.Errorf("repoindex: enumerate %s: %w", root, err)
	}

	sem := make(chan struct{}, workers)
	g, gctx := errgroup.WithContext(ctx)

	var mu sync.Mutex
	records := make([]types.FileRecord, 0, len(paths))
	var failed int

	for _, p := range paths {
		p := p
		select {
		case <-gctx.Done():
			return nil, Stats{}, types.ErrCancelled
		case sem <- struct{}{}:
		}
		g.Go(func() error {
			defer func() { <-sem }()
			select {
			case <-gctx.Done():
				return types.ErrCancelled
			default:
			}
			rec, err := classifyFile(root, p)
			if err != nil {
				mu.Lock()
				failed++
				mu.Unlock()
				return nil // per-file I/O errors never abort the scan
			}
			mu.Lock()
			records = append(records, rec)
			mu.Unlock()
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	sort.Slice(records, func(i, j int) bool { return records[i].Path < records[j].Path })

	return records, Stats{FilesScanned: len(records), FilesFailed: failed}, nil
}

// walk enumerates admitted file paths under root (relative to root,
// forward-slash normalized), honoring the layered ignore policy. Symlinks
// are not followed; device files are skipped.
func walk(root string) ([]string, error) {
	matcher := newIgnoreMatcher(root)
	var out []string

	var visit func(dir string) error
	visit = func(dir string) error {
		entries, err := os.ReadDir(dir)
		if err != nil {
			return err
		}
		// Merge this directory's own .gitignore into the layered matcher
		// before descending, per spec.md §4.1 "parent-directory .gitignore
		// files up to the root".
		if dir != root {
			matcher.loadDir(dir)
		}
		for _, e := range entries {
			full := filepath.Join(dir, e.Name())
			rel, err := filepath.Rel(root, full)
			if err != nil {
				continue
			}
			rel = filepath.ToSlash(rel)

			if e.Type()&os.ModeSymlink != 0 {
				continue
			}
			if e.IsDir() {
				if matcher.matches(rel, true) {
					continue
				}
				if err := visit(full); err != nil {
					return err
				}
				continue
			}
			if !e.Type().IsRegular() {
				continue // device files and other special files skipped
			}
			if matcher.matches(rel, false) {
				continue
			}
			out = append(out, rel)
		}
		return nil
	}

	if err := visit(root); err != nil {
		return nil, err
	}
	return out, nil
}

// classifyFile reads metadata and content for relPath (relative to root)
// and produces its FileRecord.
func classifyFile(root, relPath string) (types.FileRecord, error) {
	full := filepath.Join(root, relPath)
	info, err := os.Stat(full)
	if err != nil {
		return types.FileRecord{}, &types.FileIoError{Path: relPath, Err: err}
	}

	f, err := os.Open(full)
	if err != nil {
		return types.FileRecord{}, &types.FileIoError{Path: relPath, Err: err}
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return types.FileRecord{}, &types.FileIoError{Path: relPath, Err: err}
	}
	var hash [32]byte
	copy(hash[:], h.Sum(nil))

	ext := strings.ToLower(filepath.Ext(relPath))
	lang := types.LanguageByExtension(ext)
	if lang == types.LanguageUnknown && ext == "" {
		lang = sniffShebang(full)
	}

	role := classifyRole(relPath, ext)
	if info.Size() > maxAdmittedSourceSize {
		switch lang {
		case types.LanguageUnknown, types.LanguageYAML, types.LanguageJSON, types.LanguageTOML,
			types.LanguageMarkdown, types.LanguageHTML, types.LanguageSQL:
			role = types.RoleGenerated // data and markup formats are not source
		}
	}

	return types.FileRecord{
		Path:        relPath,
		SizeBytes:   info.Size(),
		ModTime:     info.ModTime(),
		ContentHash: hash,
		Language:    lang,
		Role:        role,
	}, nil
}

// sniffShebang reads the first line of an extensionless file and
// classifies its language by interpreter name, per spec.md §4.1 "a small
// shebang sniff applies to files with no extension".
func sniffShebang(path string) types.Language {
	f, err := os.Open(path)
	if err != nil {
		return types.LanguageUnknown
	}
	defer f.Close()

	buf := make([]byte, 256)
	n, _ := f.Read(buf)
	line := string(buf[:n])
	if nl := strings.IndexByte(line, '\n'); nl >= 0 {
		line = line[:nl]
	}
	if !strings.HasPrefix(line, "#!") {
		return types.LanguageUnknown
	}
	fields := strings.Fields(line[2:])
	if len(fields) == 0 {
		return types.LanguageUnknown
	}
	interp := filepath.Base(fields[0])
	if interp == "env" && len(fields) > 1 {
		interp = fields[1]
	}
	return types.LanguageByShebang(interp)
}
