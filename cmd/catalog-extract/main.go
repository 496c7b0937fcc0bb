package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/ctc-parts/catalog-importer/internal/common"
	"github.com/ctc-parts/catalog-importer/internal/pipeline"
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
		out       = flag.String("out", "", "audit XLSX output path (optional, defaults next to the PDF)")
		jsonOut   = flag.String("json", "", "JSON dump output path (optional)")
	)
	flag.Parse()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if *pdfPath == "" {
		*pdfPath = cfg.Source.PDFPath
	}
	if *cachePath == "" {
		*cachePath = cfg.Source.CachePath
	}
	if *out == "" {
		base := (*pdfPath)[:len(*pdfPath)-len(filepath.Ext(*pdfPath))]
		*out = base + ".xlsx"
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

	if err := sheet.WriteAudit(*out, records, logger); err != nil {
		logger.Error("failed to write audit workbook", "error", err)
		os.Exit(1)
	}
	if *jsonOut != "" {
		if err := sheet.WriteJSON(*jsonOut, filepath.Base(*pdfPath), records, logger); err != nil {
			logger.Error("failed to write JSON dump", "error", err)
			os.Exit(1)
		}
	}

	fmt.Printf("Extraction complete!\n")
	fmt.Printf("- Records: %d\n", len(records))
	fmt.Printf("- Audit workbook: %s\n", *out)
	if *jsonOut != "" {
		fmt.Printf("- JSON dump: %s\n", *jsonOut)
	}
}
