package sheet

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/xuri/excelize/v2"

	"github.com/ctc-parts/catalog-importer/internal/catalog"
)

func auditRecords() []catalog.Record {
	return []catalog.Record{
		{
			PartNo:          "123456",
			SecondaryPartNo: "7654321",
			Origin:          "china",
			Description:     "SEAL-O-RING",
			Brand:           "CAT",
			Cost:            "1,500.000",
			Status:          "active",
		},
		{
			PartNo:      "223456",
			Description: "LINER CYLINDER",
			Status:      "active",
		},
	}
}

func TestAuditXLSX(t *testing.T) {
	b, err := AuditXLSX(auditRecords(), testLogger())
	if err != nil {
		t.Fatalf("AuditXLSX: %v", err)
	}

	f, err := excelize.OpenReader(bytes.NewReader(b))
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer func() {
		_ = f.Close()
	}()

	rows, err := f.GetRows("Parts")
	if err != nil {
		t.Fatalf("read Parts sheet: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("expected header plus 2 rows, got %d", len(rows))
	}
	if rows[0][0] != "Master Part No" || rows[0][3] != "Description" {
		t.Errorf("header row = %v", rows[0])
	}
	if rows[1][0] != "123456" || rows[1][3] != "SEAL-O-RING" {
		t.Errorf("data row = %v", rows[1])
	}
	if rows[2][0] != "223456" {
		t.Errorf("second data row = %v", rows[2])
	}
}

func TestWriteAudit(t *testing.T) {
	path := filepath.Join(t.TempDir(), "audit.xlsx")
	if err := WriteAudit(path, auditRecords(), testLogger()); err != nil {
		t.Fatalf("WriteAudit: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("workbook not written: %v", err)
	}
}

func TestWriteJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.json")
	if err := WriteJSON(path, "catalog.pdf", auditRecords(), testLogger()); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read dump: %v", err)
	}
	var dump struct {
		Metadata struct {
			Source     string   `json:"source"`
			TotalItems int      `json:"totalItems"`
			Columns    []string `json:"columns"`
		} `json:"metadata"`
		Items []catalog.Record `json:"items"`
	}
	if err := json.Unmarshal(b, &dump); err != nil {
		t.Fatalf("decode dump: %v", err)
	}
	if dump.Metadata.Source != "catalog.pdf" || dump.Metadata.TotalItems != 2 {
		t.Errorf("metadata = %+v", dump.Metadata)
	}
	if len(dump.Items) != 2 || dump.Items[0].PartNo != "123456" {
		t.Errorf("items = %+v", dump.Items)
	}
}
