package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ctc-parts/catalog-importer/internal/common"
	"github.com/ctc-parts/catalog-importer/internal/importer"
	"github.com/ctc-parts/catalog-importer/internal/pipeline"
	"github.com/ctc-parts/catalog-importer/internal/runlog"
	"github.com/ctc-parts/catalog-importer/internal/segment"
	"github.com/ctc-parts/catalog-importer/internal/source"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

// reimport wipes the backend's parts and re-imports the catalog from
// scratch with verification enabled. Meant for recovering from a bad
// import, not routine loading.
func main() {
	var (
		pdfPath   = flag.String("pdf", "", "catalog PDF path (defaults to CATALOG_PDF_PATH)")
		cachePath = flag.String("cache", "", "extracted-text cache path (defaults to CATALOG_TEXT_CACHE)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *pdfPath == "" {
		*pdfPath = cfg.Source.PDFPath
	}
	if *cachePath == "" {
		*cachePath = cfg.Source.CachePath
	}
	cfg.Import.Verify = true

	ctx := context.Background()

	segCfg, err := segment.LoadConfig(cfg.Segment.VocabPath)
	if err != nil {
		logger.Error("failed to load vocabulary config", "error", err)
		os.Exit(1)
	}
	seg, err := segment.New(segCfg, logger)
	if err != nil {
		logger.Error("failed to build segmenter", "error", err)
		os.Exit(1)
	}

	adapter := source.NewAdapter(*pdfPath, *cachePath, logger)
	p := pipeline.New(logger, adapter, seg)

	// Extract before deleting anything: a bad source should never leave
	// the backend empty.
	records, err := p.Run(ctx)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	client := importer.NewClient(cfg.API.BaseURL, cfg.API.HTTPTimeout, logger)
	im := importer.New(client, cfg.Import, logger)

	deleted, delFailed, err := im.DeleteAll(ctx)
	if err != nil {
		logger.Error("delete phase failed", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	outcomes, summary, err := im.Run(ctx, records)
	if err != nil {
		logger.Error("import aborted", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.RunLog.Path != "" {
		if ledger, lerr := runlog.Open(cfg.RunLog.Path, logger); lerr == nil {
			if _, rerr := ledger.Record(ctx, filepath.Base(*pdfPath), outcomes, summary); rerr != nil {
				logger.Warn("runlog write failed", "error", rerr)
			}
			if cerr := ledger.Close(); cerr != nil {
				logger.Warn("runlog close failed", "error", cerr)
			}
		} else {
			logger.Warn("runlog unavailable", "error", lerr)
		}
	}

	fmt.Printf("Reimport complete!\n")
	fmt.Printf("- Deleted: %d (%d delete failures)\n", deleted, delFailed)
	fmt.Printf("- Attempted: %d\n", summary.Attempted)
	fmt.Printf("- Succeeded: %d\n", summary.Succeeded)
	fmt.Printf("- Verified: %d\n", summary.Verified)
	fmt.Printf("- Failed: %d\n", summary.Failed)
	for _, msg := range summary.Errors {
		fmt.Printf("  %s\n", msg)
	}
}
