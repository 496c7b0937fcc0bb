package constants

import "testing"

func TestCanonicalizeOrigin(t *testing.T) {
	tests := []struct {
		input string
		want  string
		ok    bool
	}{
		{"PRC", "china", true},
		{"prc", "china", true},
		{"China", "china", true},
		{"CHN", "china", true},
		{"JAP", "japan", true},
		{"jpn", "japan", true},
		{"GER", "germany", true},
		{"Germany", "germany", true},
		{"USA", "usa", true},
		{"United States", "usa", true},
		{"LOCAL", "local", true},
		{"loc", "local", true},
		{"IMP", "import", true},
		{"Import", "import", true},
		{"PPR", "ppr", true},
		{"  japan  ", "japan", true},
		{"", "", false},
		{"-", "", false},
		{"Mars", "mars", false},
	}
	for _, tt := range tests {
		got, ok := CanonicalizeOrigin(tt.input)
		if got != tt.want || ok != tt.ok {
			t.Errorf("CanonicalizeOrigin(%q) = (%q, %v), want (%q, %v)",
				tt.input, got, ok, tt.want, tt.ok)
		}
	}
}

func TestOriginsAsStrings(t *testing.T) {
	got := OriginsAsStrings()
	if len(got) != len(allOrigins) {
		t.Fatalf("expected %d origins, got %d", len(allOrigins), len(got))
	}
	if got[0] != string(OriginLocal) {
		t.Errorf("first origin = %q, want %q", got[0], OriginLocal)
	}
}
