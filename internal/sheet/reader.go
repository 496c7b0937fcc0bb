package sheet

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"

	"github.com/ctc-parts/catalog-importer/internal/catalog"
	"github.com/ctc-parts/catalog-importer/internal/common"
)

// headerKeywords are counted per row while hunting for the header row.
// Three or more hits means the row is almost certainly the header.
var headerKeywords = []string{
	"part no", "master part", "origin", "description", "application", "grade",
}

const (
	headerSearchRows = 20
	headerMinHits    = 3
	maxHeaderLen     = 100
)

// ReadCatalog reads candidate records out of every worksheet of an XLSX
// catalog. Supplier sheets bury the header row under title and logo rows,
// so it is located by fuzzy keyword search rather than assumed at row one.
// Rows without a part number are skipped, not errors.
func ReadCatalog(path string, logger *slog.Logger) ([]catalog.Record, error) {
	if logger == nil {
		logger = slog.Default()
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("%w: open workbook: %v", common.ErrSourceUnavailable, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil {
			logger.Warn("sheet.close_failed", "path", path, "error", cerr)
		}
	}()

	var all []catalog.Record
	sheets := f.GetSheetList()
	for _, name := range sheets {
		rows, err := f.GetRows(name)
		if err != nil {
			logger.Warn("sheet.read_failed", "sheet", name, "error", err)
			continue
		}
		if len(rows) < 3 {
			continue
		}

		records := readSheet(name, rows, logger)
		logger.Info("sheet.parsed", "sheet", name, "rows", len(rows), "records", len(records))
		all = append(all, records...)
	}

	logger.Info("sheet.catalog_read", "path", path, "sheets", len(sheets), "records", len(all))
	return all, nil
}

func readSheet(name string, rows [][]string, logger *slog.Logger) []catalog.Record {
	headerIdx := findHeaderRow(rows)
	headers := headerNames(rows[headerIdx])

	var records []catalog.Record
	skipped := 0
	for _, row := range rows[headerIdx+1:] {
		rec, ok := mapRow(headers, row)
		if !ok {
			if rowHasData(row) {
				skipped++
			}
			continue
		}
		records = append(records, rec)
	}
	if skipped > 0 {
		logger.Warn("sheet.rows_skipped", "sheet", name, "count", skipped)
	}

	// Header mapping can come up empty when the supplier merged the header
	// cells; fall back to positional column mapping.
	if len(records) == 0 && len(rows) > 5 {
		records = readByPosition(rows, headerIdx)
		if len(records) > 0 {
			logger.Info("sheet.positional_fallback", "sheet", name, "records", len(records))
		}
	}
	return records
}

// findHeaderRow scans the first rows counting header keyword hits per row
// and returns the first row with enough hits, defaulting to row zero.
func findHeaderRow(rows [][]string) int {
	limit := headerSearchRows
	if limit > len(rows) {
		limit = len(rows)
	}
	for i := 0; i < limit; i++ {
		hits := 0
		for _, cell := range rows[i] {
			lower := strings.ToLower(strings.TrimSpace(cell))
			for _, kw := range headerKeywords {
				if strings.Contains(lower, kw) {
					hits++
				}
			}
		}
		if hits >= headerMinHits {
			return i
		}
	}
	return 0
}

func headerNames(row []string) []string {
	out := make([]string, len(row))
	for i, cell := range row {
		name := strings.TrimSpace(cell)
		if name == "" || len(name) >= maxHeaderLen || strings.HasPrefix(name, "[") {
			continue
		}
		out[i] = normalizeHeader(name)
	}
	return out
}

// normalizeHeader lower-cases a header cell and strips trailing periods so
// "Part No." and "PART NO" land on the same key.
func normalizeHeader(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	name = strings.TrimSuffix(name, ".")
	return strings.Join(strings.Fields(name), " ")
}

// mapRow assigns row cells to record fields by header name. ok is false
// when the row carries no part number.
func mapRow(headers []string, row []string) (catalog.Record, bool) {
	var rec catalog.Record
	for i, cell := range row {
		if i >= len(headers) || headers[i] == "" {
			continue
		}
		value := strings.TrimSpace(cell)
		if value == "" {
			continue
		}
		assignField(&rec, headers[i], value)
	}
	return rec, rec.Retained()
}

func assignField(rec *catalog.Record, header, value string) {
	switch header {
	case "master part no":
		rec.PartNo = value
	case "part no", "ss part no":
		rec.SecondaryPartNo = value
	case "origin":
		rec.Origin = value
	case "description", "decc":
		rec.Description = value
	case "application", "application grade":
		rec.Application = value
	case "grade":
		rec.Grade = value
	case "order level", "reorder level":
		rec.ReorderLevel = value
	case "weight":
		rec.Weight = value
	case "main category", "main":
		rec.MainCategory = value
	case "sub category", "sub":
		rec.SubCategory = value
	case "size":
		rec.Size = value
	case "brand":
		rec.Brand = value
	case "remarks":
		rec.Remarks = value
	case "location", "loc":
		rec.LocationCode = value
	case "cost":
		rec.Cost = value
	case "market price", "mkt":
		rec.MarketPrice = value
	case "price a":
		rec.PriceA = value
	case "price b":
		rec.PriceB = value
	case "model":
		rec.Model = value
	case "quantity", "qty":
		rec.Quantity = value
	}
}

func rowHasData(row []string) bool {
	for _, cell := range row {
		if strings.TrimSpace(cell) != "" {
			return true
		}
	}
	return false
}

// readByPosition maps cells to fields by fixed column position, the layout
// suppliers use when header cells are merged into one.
var positionalFields = []string{
	"master part no", "part no", "origin", "description", "application",
	"grade", "order level", "weight", "main category", "sub category",
	"size", "brand", "cost", "price a", "price b", "model", "quantity",
}

func readByPosition(rows [][]string, headerIdx int) []catalog.Record {
	var records []catalog.Record
	limit := headerIdx + 1 + 50
	if limit > len(rows) {
		limit = len(rows)
	}
	for _, row := range rows[headerIdx+1 : limit] {
		var rec catalog.Record
		for i, field := range positionalFields {
			if i >= len(row) {
				break
			}
			assignField(&rec, field, strings.TrimSpace(row[i]))
		}
		if rec.Retained() {
			records = append(records, rec)
		}
	}
	return records
}
