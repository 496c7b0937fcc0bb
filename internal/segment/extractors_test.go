package segment

import (
	"testing"
)

func sameStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestPartNumbersStopAtBrand(t *testing.T) {
	s := newTestSegmenter(t)
	// CAT within the lookahead window ends the part-number column after the
	// first match; 789012 belongs to the next record's columns, not here.
	got := s.partNumbers("123456 789012 CAT 345678", 0)
	if !sameStrings(got.Values(), []string{"123456"}) {
		t.Errorf("part numbers = %v, want [123456]", got.Values())
	}
}

func TestPartNumbersShapes(t *testing.T) {
	s := newTestSegmenter(t)
	tests := []struct {
		line string
		want []string
	}{
		{"123-45-67890 plus trailing words", []string{"123-45-67890"}},
		{"12-34567 plus trailing words", []string{"12-34567"}},
		{"4W9789 alphanumeric code", []string{"4W9789"}},
		{"123 too few digits here", nil},
	}
	for _, tt := range tests {
		got := s.partNumbers(tt.line, 0)
		if !sameStrings(got.Values(), tt.want) {
			t.Errorf("partNumbers(%q) = %v, want %v", tt.line, got.Values(), tt.want)
		}
	}
}

func TestBrandsStopAtTechnicalTerm(t *testing.T) {
	s := newTestSegmenter(t)
	// The SEAL right after CAT signals the description column; the brand
	// itself is still kept.
	got := s.brands("CAT SEAL-O-RING KMP", 0)
	if !sameStrings(got.Values(), []string{"CAT"}) {
		t.Errorf("brands = %v, want [CAT]", got.Values())
	}
}

func TestBrandsMultiple(t *testing.T) {
	s := newTestSegmenter(t)
	got := s.brands("CAT KMP some plain filler words here", 0)
	if !sameStrings(got.Values(), []string{"CAT", "KMP"}) {
		t.Errorf("brands = %v, want [CAT KMP]", got.Values())
	}
}

func TestDescriptions(t *testing.T) {
	s := newTestSegmenter(t)
	tests := []struct {
		name string
		line string
		want []string
	}{
		{"hyphen compound", "SEAL-O-RING 1,500.000", []string{"SEAL-O-RING"}},
		{"comma joined", "Ring Metal, Retaining 1,500.000", []string{"Ring Metal, Retaining"}},
		{"two word with technical term", "LINER CYLINDER 1,500.000", []string{"LINER CYLINDER"}},
		{"two word without technical term", "Quick Brown", nil},
	}
	for _, tt := range tests {
		got := s.descriptions(tt.line, 0)
		if !sameStrings(got.Values(), tt.want) {
			t.Errorf("%s: descriptions(%q) = %v, want %v", tt.name, tt.line, got.Values(), tt.want)
		}
	}
}

func TestCostsLeadingRunOnly(t *testing.T) {
	s := newTestSegmenter(t)
	tests := []struct {
		line string
		want []string
	}{
		{"1,500.000 12,345.678 2,000 3,000", []string{"1,500.000", "12,345.678"}},
		{"2,000 1,500.000", nil},
		{"no numbers at all", nil},
	}
	for _, tt := range tests {
		got := s.costs(tt.line, 0)
		if !sameStrings(got.Values(), tt.want) {
			t.Errorf("costs(%q) = %v, want %v", tt.line, got.Values(), tt.want)
		}
	}
}

func TestPricesPairing(t *testing.T) {
	s := newTestSegmenter(t)

	pairs := s.prices("2,000 3,000 4,000 5,000", 0)
	if len(pairs) != 2 {
		t.Fatalf("expected 2 pairs, got %d: %+v", len(pairs), pairs)
	}
	if pairs[0].A != "2,000" || pairs[0].B != "3,000" {
		t.Errorf("pair 0 = %+v, want {2,000 3,000}", pairs[0])
	}
	if pairs[1].A != "4,000" || pairs[1].B != "5,000" {
		t.Errorf("pair 1 = %+v, want {4,000 5,000}", pairs[1])
	}

	// Odd token count leaves priceB empty on the last pair.
	pairs = s.prices("2,000 3,000 4,000", 0)
	if len(pairs) != 2 || pairs[1].A != "4,000" || pairs[1].B != "" {
		t.Errorf("odd run pairs = %+v, want trailing half pair", pairs)
	}

	// A decimal token means the scan left the price columns.
	pairs = s.prices("2,000 3,000 1.500 4,000", 0)
	if len(pairs) != 1 {
		t.Errorf("decimal-terminated pairs = %+v, want 1", pairs)
	}
}

func TestLocations(t *testing.T) {
	s := newTestSegmenter(t)

	got := s.locations("S1D4 C2A G5A", 0)
	if !sameStrings(got.Values(), []string{"S1D4", "C2A", "G5A"}) {
		t.Errorf("locations = %v, want [S1D4 C2A G5A]", got.Values())
	}

	// A header phrase after the first slot means the next page block started.
	got = s.locations("S1D4 PARTS LIST C2A", 0)
	if !sameStrings(got.Values(), []string{"S1D4"}) {
		t.Errorf("locations with header stop = %v, want [S1D4]", got.Values())
	}
}

func TestOrigins(t *testing.T) {
	s := newTestSegmenter(t)
	tests := []struct {
		line string
		want []string
	}{
		{"something PRC something JAP", []string{"PRC", "JAP"}},
		// The standalone dash marks an unspecified origin and must hold its
		// column position.
		{"PRC - JAP", []string{"PRC", "", "JAP"}},
		{"nothing here", nil},
	}
	for _, tt := range tests {
		got := s.origins(tt.line)
		if !sameStrings(got, tt.want) {
			t.Errorf("origins(%q) = %v, want %v", tt.line, got, tt.want)
		}
	}
}

func TestGroupAt(t *testing.T) {
	g := Group{{Value: "a"}, {Value: "b"}}
	if g.At(0) != "a" || g.At(1) != "b" {
		t.Errorf("At in range returned wrong values")
	}
	if g.At(2) != "" || g.At(-1) != "" {
		t.Errorf("At out of range must return empty string")
	}
}
