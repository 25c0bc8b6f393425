// Package pipeline coordinates the Scanner, Chunker, import-graph
// resolution, and Index Store into the single external operation spec.md
// §6.1 calls build_or_refresh_index: scan the repository, skip
// reprocessing any file whose (path, content_hash) already exists in the
// prior index, extract chunks/term bags/imports only for what changed,
// recompute corpus statistics and PageRank over the resulting file set,
// and persist the result atomically -- or skip the write entirely when
// nothing changed.
//
// # Basic Usage
//
//	b := pipeline.New(pipeline.Config{})
//	stats, err := b.Build(ctx, "/path/to/repo", pipeline.BuildOptions{Deep: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Printf("chunked %d, carried %d\n", stats.FilesChunked, stats.FilesCarried)
package pipeline
