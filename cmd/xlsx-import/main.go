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
	"github.com/ctc-parts/catalog-importer/internal/runlog"
	"github.com/ctc-parts/catalog-importer/internal/sheet"
)

// printError prints an error message to stderr, falling back to stdout if stderr fails
func printError(format string, args ...interface{}) {
	if _, err := fmt.Fprintf(os.Stderr, format, args...); err != nil {
		fmt.Printf(format, args...)
	}
}

func main() {
	var (
		file   = flag.String("file", "", "catalog XLSX path (required)")
		verify = flag.Bool("verify", false, "re-fetch each created part and compare key fields")
	)
	flag.Parse()

	if *file == "" {
		printError("Error: --file is required\n")
		os.Exit(1)
	}

	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		Level: slog.LevelInfo,
	}))
	slog.SetDefault(logger)

	cfg := common.LoadConfig()
	if err := cfg.Validate(); err != nil {
		printError("Error: invalid configuration: %v\n", err)
		os.Exit(1)
	}
	if *verify {
		cfg.Import.Verify = true
	}

	ctx := context.Background()

	records, err := sheet.ReadCatalog(*file, logger)
	if err != nil {
		logger.Error("failed to read catalog workbook", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}
	if len(records) == 0 {
		logger.Error("no records in workbook", "file", *file)
		printError("Error: %v\n", common.ErrNoRecords)
		os.Exit(1)
	}

	client := importer.NewClient(cfg.API.BaseURL, cfg.API.HTTPTimeout, logger)
	im := importer.New(client, cfg.Import, logger)

	outcomes, summary, err := im.Run(ctx, records)
	if err != nil {
		logger.Error("import aborted", "error", err)
		printError("Error: %v\n", err)
		os.Exit(1)
	}

	if cfg.RunLog.Path != "" {
		if ledger, lerr := runlog.Open(cfg.RunLog.Path, logger); lerr == nil {
			if _, rerr := ledger.Record(ctx, filepath.Base(*file), outcomes, summary); rerr != nil {
				logger.Warn("runlog write failed", "error", rerr)
			}
			if cerr := ledger.Close(); cerr != nil {
				logger.Warn("runlog close failed", "error", cerr)
			}
		} else {
			logger.Warn("runlog unavailable", "error", lerr)
		}
	}

	fmt.Printf("Import complete!\n")
	fmt.Printf("- Attempted: %d\n", summary.Attempted)
	fmt.Printf("- Succeeded: %d\n", summary.Succeeded)
	fmt.Printf("- Verified: %d\n", summary.Verified)
	fmt.Printf("- Failed: %d\n", summary.Failed)
	for _, msg := range summary.Errors {
		fmt.Printf("  %s\n", msg)
	}
}
