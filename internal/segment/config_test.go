package segment

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if len(cfg.Brands) == 0 || len(cfg.TechnicalTerms) == 0 || len(cfg.Origins) == 0 {
		t.Fatalf("default vocabularies must be populated")
	}
	if cfg.MaxDescriptions != 20 || cfg.DescriptionWindow != 600 || cfg.StopLookahead != 50 {
		t.Errorf("tuning defaults = %d/%d/%d", cfg.MaxDescriptions, cfg.DescriptionWindow, cfg.StopLookahead)
	}
	if cfg.ContextBefore != 5 || cfg.ContextAfter != 10 {
		t.Errorf("context window = %d/%d", cfg.ContextBefore, cfg.ContextAfter)
	}
}

func TestLoadConfigEmptyPath(t *testing.T) {
	cfg, err := LoadConfig("")
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Brands) != len(DefaultConfig().Brands) {
		t.Errorf("empty path must return defaults")
	}
}

func TestLoadConfigOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.toml")
	overlay := `
brands = ["ACME", "ZF"]
stop_lookahead = 30
`
	if err := os.WriteFile(path, []byte(overlay), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig: %v", err)
	}
	if len(cfg.Brands) != 2 || cfg.Brands[0] != "ACME" {
		t.Errorf("brands = %v, want overlay values", cfg.Brands)
	}
	if cfg.StopLookahead != 30 {
		t.Errorf("stop lookahead = %d, want 30", cfg.StopLookahead)
	}
	// Untouched sections keep their defaults.
	if len(cfg.TechnicalTerms) != len(DefaultConfig().TechnicalTerms) {
		t.Errorf("technical terms must keep defaults")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "absent.toml")); err == nil {
		t.Errorf("missing overlay file must error")
	}
}

func TestLoadConfigBadTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.toml")
	if err := os.WriteFile(path, []byte("brands = ["), 0o644); err != nil {
		t.Fatalf("write overlay: %v", err)
	}
	if _, err := LoadConfig(path); err == nil {
		t.Errorf("malformed overlay must error")
	}
}
