// Package sheet reads and writes the spreadsheet surfaces of the import
// pipeline: the audit workbook for manual review and supplier catalogs in
// XLSX form.
package sheet

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/ctc-parts/catalog-importer/internal/catalog"
)

// AuditXLSX returns an XLSX workbook (as bytes) enumerating every candidate
// record, one row per record and one column per semantic field.
func AuditXLSX(records []catalog.Record, logger *slog.Logger) ([]byte, error) {
	if logger == nil {
		logger = slog.Default()
	}
	start := time.Now()

	f := excelize.NewFile()
	const sheet = "Parts"
	if index, _ := f.GetSheetIndex(sheet); index == -1 {
		_, err := f.NewSheet(sheet)
		if err != nil {
			return nil, err
		}
	}
	activeIndex, _ := f.GetSheetIndex(sheet)
	f.SetActiveSheet(activeIndex)

	for i, h := range catalog.Columns {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(sheet, cell, h)
	}

	for rowIdx, rec := range records {
		for colIdx, v := range rec.ColumnValues() {
			if v == "" {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(colIdx+1, rowIdx+2)
			_ = f.SetCellValue(sheet, cell, v)
		}
	}

	// Widen the identity and description columns
	_ = f.SetColWidth(sheet, "A", "B", 16) // part numbers
	_ = f.SetColWidth(sheet, "C", "C", 10) // origin
	_ = f.SetColWidth(sheet, "D", "D", 40) // description
	_ = f.SetColWidth(sheet, "E", "H", 20) // application/grade/categories
	_ = f.SetColWidth(sheet, "M", "P", 14) // amounts

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("xlsx write: %w", err)
	}

	logger.Info("audit.xlsx.ok",
		"rows", len(records),
		"elapsed_ms", time.Since(start).Milliseconds(),
	)
	return buf.Bytes(), nil
}

// WriteAudit writes the audit workbook to path.
func WriteAudit(path string, records []catalog.Record, logger *slog.Logger) error {
	b, err := AuditXLSX(records, logger)
	if err != nil {
		return err
	}
	return os.WriteFile(path, b, 0644)
}

// catalogDump is the JSON audit artifact: the records plus a metadata block
// describing the extraction.
type catalogDump struct {
	Metadata dumpMetadata     `json:"metadata"`
	Items    []catalog.Record `json:"items"`
}

type dumpMetadata struct {
	Source      string   `json:"source"`
	TotalItems  int      `json:"totalItems"`
	ExtractedAt string   `json:"extractedAt"`
	Columns     []string `json:"columns"`
}

// WriteJSON writes the JSON catalog dump to path.
func WriteJSON(path, sourceName string, records []catalog.Record, logger *slog.Logger) error {
	if logger == nil {
		logger = slog.Default()
	}
	dump := catalogDump{
		Metadata: dumpMetadata{
			Source:      sourceName,
			TotalItems:  len(records),
			ExtractedAt: time.Now().UTC().Format(time.RFC3339),
			Columns:     catalog.Columns,
		},
		Items: records,
	}
	b, err := json.MarshalIndent(dump, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal dump: %w", err)
	}
	if err := os.WriteFile(path, b, 0644); err != nil {
		return fmt.Errorf("write dump: %w", err)
	}
	logger.Info("audit.json.ok", "path", path, "items", len(records), "bytes", len(b))
	return nil
}
