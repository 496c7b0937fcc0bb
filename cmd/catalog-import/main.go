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
	"github.com/ctc-parts/catalog-importer/internal/sheet"
	"github.com/ctc-parts/catalog-importer/internal/source"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		pdfPath   = flag.String("pdf", "", "catalog PDF path (defaults to CATALOG_PDF_PATH)")
		cachePath = flag.String("cache", "", "extracted-text cache path (defaults to CATALOG_TEXT_CACHE)")
		audit     = flag.String("audit", "", "audit XLSX output path (optional)")
		verify    = flag.Bool("verify", false, "re-fetch each created part and compare key fields")
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
	if *verify {
		cfg.Import.Verify = true
	}

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

	records, err := p.Run(ctx)
	if err != nil {
		logger.Error("extraction failed", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if *audit != "" {
		if err := sheet.WriteAudit(*audit, records, logger); err != nil {
			logger.Error("failed to write audit workbook", "error", err)
			os.Exit(1)
		}
	}

	client := importer.NewClient(cfg.API.BaseURL, cfg.API.HTTPTimeout, logger)
	im := importer.New(client, cfg.Import, logger)

	outcomes, summary, err := im.Run(ctx, records)
	if err != nil {
		logger.Error("import aborted", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	recordRunLog(ctx, cfg, filepath.Base(*pdfPath), outcomes, summary, logger)
	printSummary(summary)
}

func recordRunLog(ctx context.Context, cfg *common.Config, sourceName string, outcomes []importer.Outcome, summary importer.Summary, logger *slog.Logger) {
	if cfg.RunLog.Path == "" {
		return
	}
	ledger, err := runlog.Open(cfg.RunLog.Path, logger)
	if err != nil {
		logger.Warn("runlog unavailable", "error", err)
		return
	}
	defer func() {
		if cerr := ledger.Close(); cerr != nil {
			logger.Warn("runlog close failed", "error", cerr)
		}
	}()
	if _, err := ledger.Record(ctx, sourceName, outcomes, summary); err != nil {
		logger.Warn("runlog write failed", "error", err)
	}
}

func printSummary(summary importer.Summary) {
	fmt.Printf("Import complete!\n")
	fmt.Printf("- Attempted: %d\n", summary.Attempted)
	fmt.Printf("- Succeeded: %d\n", summary.Succeeded)
	fmt.Printf("- Verified: %d\n", summary.Verified)
	fmt.Printf("- Failed: %d\n", summary.Failed)
	for _, msg := range summary.Errors {
		fmt.Printf("  %s\n", msg)
	}
}
