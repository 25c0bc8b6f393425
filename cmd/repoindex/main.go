// Command repoindex is a thin demo entrypoint for the indexing + scoring
// core: it is not the CLI collaborator spec.md §1 treats as external (no
// flag parsing library, no render/JSONL output, no shell-hook wiring) --
// just enough wiring to exercise build_or_refresh_index, load_index,
// score, and select end to end from a terminal.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/dshills/repoindex/internal/pipeline"
	"github.com/dshills/repoindex/internal/scoring"
	"github.com/dshills/repoindex/internal/selector"
	"github.com/dshills/repoindex/internal/store"
	"github.com/dshills/repoindex/pkg/types"
)

var (
	version   = "dev"
	buildTime = "unknown"
)

func main() {
	if len(os.Args) > 1 && os.Args[1] == "--version" {
		fmt.Printf("repoindex\n")
		fmt.Printf("Version: %s\n", version)
		fmt.Printf("Build Time: %s\n", buildTime)
		os.Exit(0)
	}

	var (
		root       string
		query      string
		presetName string
		force      bool
	)
	flag.StringVar(&root, "root", envOr("TOPO_ROOT", "."), "repository root to index")
	flag.StringVar(&query, "query", "", "natural-language task description")
	flag.StringVar(&presetName, "preset", "balanced", "fast|balanced|deep|thorough")
	flag.BoolVar(&force, "force", false, "bypass incremental merge and rebuild from scratch")
	flag.Parse()

	log.SetOutput(os.Stderr)
	log.Printf("repoindex v%s starting against %s", version, root)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		sig := <-sigChan
		log.Printf("received signal %v, cancelling...", sig)
		cancel()
	}()

	preset := types.LookupPreset(types.PresetName(presetName))

	b := pipeline.New(pipeline.Config{})
	stats, err := b.Build(ctx, root, pipeline.BuildOptions{
		Deep:  preset.NeedsDeepIndex(),
		Force: force || preset.ForceRebuild(),
	})
	if err != nil {
		log.Fatalf("build_or_refresh_index: %v", err)
	}
	log.Printf("scanned %d, carried %d, chunked %d, rewritten=%v",
		stats.FilesScanned, stats.FilesCarried, stats.FilesChunked, stats.Rewritten)

	idx, err := store.Load(root)
	if err != nil {
		log.Fatalf("load_index: %v", err)
	}

	engine, err := scoring.NewEngine(idx, 64, nil)
	if err != nil {
		log.Fatalf("scoring.NewEngine: %v", err)
	}
	scored, err := engine.Score(ctx, query, preset)
	if err != nil {
		log.Fatalf("score: %v", err)
	}

	sel := selector.SelectContext(ctx, idx, scored, types.BudgetFromPreset(preset))
	for _, f := range sel.Files {
		fmt.Printf("%.4f\t%s\n", f.TotalScore, f.Path)
	}
	log.Printf("selected %d files, %d bytes, %d tokens, %d skipped over budget",
		len(sel.Files), sel.TotalBytes, sel.TotalTokens, sel.SkippedOverBudget)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
