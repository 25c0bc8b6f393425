// Package scanner walks a repository root and produces a stream of
// FileRecords: path, size, role, language, and content hash.
//
// # Basic Usage
//
//	records, stats, err := scanner.Scan(ctx, "/path/to/repo", scanner.Options{})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	for _, r := range records {
//	    fmt.Printf("%s (%s, %s, %d bytes)\n", r.Path, r.Language, r.Role, r.SizeBytes)
//	}
//
// # Ignore Policy
//
// The scan honors a layered ignore policy: the repository's own
// .gitignore stacks, parent-directory .gitignore files up to the root,
// and a built-in deny list (.git/, dependency and build-output directories
// such as node_modules/ and target/, binary media extensions). Files under
// vendor/ are scanned and classified generated. Symlinks are not followed.
//
// # Parallelism
//
// Directory traversal happens on the calling goroutine (producing paths);
// a bounded pool of workers hashes and classifies files concurrently.
// Workers finish in no guaranteed order; Scan sorts the records by Path
// before returning them.
package scanner
