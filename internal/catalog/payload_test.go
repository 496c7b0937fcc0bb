package catalog

import (
	"testing"

	"github.com/ctc-parts/catalog-importer/constants"
)

func TestBuildPayloadFullRecord(t *testing.T) {
	rec := Record{
		PartNo:          "123456",
		SecondaryPartNo: "7654321",
		Origin:          "PRC",
		Description:     "SEAL-O-RING",
		Application:     "FUEL SYSTEM",
		Grade:           "a",
		MainCategory:    "SEAL-CAT",
		SubCategory:     "SEAL-O-RING",
		Size:            "4.5 X 6.5",
		Brand:           "CAT",
		LocationCode:    "S1D4",
		Cost:            "1,500.000",
		PriceA:          "2,000",
		PriceB:          "3,000",
		Model:           "D155",
		Status:          constants.PartStatusActive,
	}

	p := BuildPayload(rec)

	if p["master_part_no"] != "123456" {
		t.Errorf("master_part_no = %v", p["master_part_no"])
	}
	if p["part_no"] != "7654321" {
		t.Errorf("part_no = %v", p["part_no"])
	}
	if p["origin"] != "china" {
		t.Errorf("origin = %v, want china", p["origin"])
	}
	if p["grade"] != "A" {
		t.Errorf("grade = %v, want A", p["grade"])
	}
	if p["cost"] != 1500.0 {
		t.Errorf("cost = %v, want 1500", p["cost"])
	}
	if p["price_a"] != 2000.0 || p["price_b"] != 3000.0 {
		t.Errorf("prices = %v/%v", p["price_a"], p["price_b"])
	}
	if p["uom"] != constants.DefaultUOM || p["status"] != constants.PartStatusActive {
		t.Errorf("defaults = %v/%v", p["uom"], p["status"])
	}

	models, ok := p["models"].([]map[string]any)
	if !ok || len(models) != 1 {
		t.Fatalf("models = %v, want one entry", p["models"])
	}
	if models[0]["name"] != "D155" || models[0]["qty_used"] != 1 {
		t.Errorf("model entry = %v", models[0])
	}
}

func TestBuildPayloadOmitsEmptyFields(t *testing.T) {
	p := BuildPayload(Record{PartNo: "123456"})

	// part_no falls back to the master number when the secondary is missing.
	if p["part_no"] != "123456" {
		t.Errorf("part_no = %v, want fallback to master", p["part_no"])
	}
	for _, key := range []string{"description", "origin", "grade", "cost", "price_a", "models", "brand_name"} {
		if _, present := p[key]; present {
			t.Errorf("empty field %q must be omitted, got %v", key, p[key])
		}
	}
}

func TestBuildPayloadDropsMalformedNumbers(t *testing.T) {
	p := BuildPayload(Record{PartNo: "123456", Cost: "N/A", PriceA: "2,000"})
	if _, present := p["cost"]; present {
		t.Errorf("malformed cost must be dropped, got %v", p["cost"])
	}
	if p["price_a"] != 2000.0 {
		t.Errorf("price_a = %v, want 2000", p["price_a"])
	}
}

func TestParseAmount(t *testing.T) {
	tests := []struct {
		input string
		want  float64
		ok    bool
	}{
		{"1,500.000", 1500, true},
		{"12,345.678", 12345.678, true},
		{"2,000", 2000, true},
		{" 900 ", 900, true},
		{"", 0, false},
		{"N/A", 0, false},
		{"-", 0, false},
	}
	for _, tt := range tests {
		got, ok := ParseAmount(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseAmount(%q) = (%v, %v), want (%v, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestValidatePayload(t *testing.T) {
	valid := BuildPayload(Record{PartNo: "123456", Description: "SEAL-O-RING", Cost: "1,500.000"})
	if err := ValidatePayload(valid); err != nil {
		t.Errorf("valid payload rejected: %v", err)
	}

	if err := ValidatePayload(map[string]any{"uom": "pcs", "status": "active"}); err == nil {
		t.Errorf("payload without part_no must fail validation")
	}

	if err := ValidatePayload(map[string]any{
		"part_no": "123456", "uom": "pcs", "status": "active", "bogus": "x",
	}); err == nil {
		t.Errorf("unknown field must fail validation")
	}

	if err := ValidatePayload(map[string]any{
		"part_no": "123456", "uom": "pcs", "status": "retired",
	}); err == nil {
		t.Errorf("unknown status must fail validation")
	}
}

func TestRecordKeyAndRetention(t *testing.T) {
	rec := Record{PartNo: "123456", SecondaryPartNo: "7654321"}
	if rec.Key() != "123456_7654321" {
		t.Errorf("key = %q", rec.Key())
	}
	if !rec.Retained() {
		t.Errorf("record with part numbers must be retained")
	}
	if (Record{Description: "SEAL"}).Retained() {
		t.Errorf("record without part numbers must not be retained")
	}
	if !(Record{SecondaryPartNo: "7654321"}).Retained() {
		t.Errorf("secondary-only record must be retained")
	}
}

func TestColumnValuesMatchColumns(t *testing.T) {
	if got := len(Record{}.ColumnValues()); got != len(Columns) {
		t.Errorf("ColumnValues length %d != Columns length %d", got, len(Columns))
	}
}
