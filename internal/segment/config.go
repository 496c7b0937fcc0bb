package segment

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config is the immutable vocabulary and tuning data a Segmenter is built
// from. Catalogs from different suppliers print different brand codes and
// category labels, so all vocabularies are data, not code.
type Config struct {
	// Brands are manufacturer/brand codes occupying the brand column.
	Brands []string `toml:"brands"`
	// TechnicalTerms signal the start of the description column and gate
	// the generic two-word description pattern.
	TechnicalTerms []string `toml:"technical_terms"`
	// Origins are country-of-origin codes matched anywhere in a line.
	Origins []string `toml:"origins"`
	// Applications are multi-word assembly-group phrases found near a line.
	Applications []string `toml:"applications"`
	// MainCategories and SubCategories are the catalog's grouping labels.
	MainCategories []string `toml:"main_categories"`
	SubCategories  []string `toml:"sub_categories"`
	// HeaderPhrases terminate the location column scan.
	HeaderPhrases []string `toml:"header_phrases"`

	// MaxDescriptions caps description fragments collected per line.
	MaxDescriptions int `toml:"max_descriptions"`
	// DescriptionWindow bounds how far past the cursor the description
	// walker looks, in bytes.
	DescriptionWindow int `toml:"description_window"`
	// StopLookahead is how far past a match the next-column signal is
	// searched for.
	StopLookahead int `toml:"stop_lookahead"`
	// ContextBefore/ContextAfter bound the line window for context fields.
	ContextBefore int `toml:"context_before"`
	ContextAfter  int `toml:"context_after"`
}

// DefaultConfig returns the built-in vocabularies for the CTC parts catalog.
func DefaultConfig() Config {
	return Config{
		Brands: []string{
			"CAT", "R", "WG", "ITR", "MAH", "CTC", "VAR", "FP", "KMP",
			"NTN", "FAG", "TIMKEN", "SKF", "CATERPILLER", "KOMATSU",
			"CUMMINS", "HYUNDAI", "KOBELCO", "HITACHI", "VOLVO", "JCB",
			"CASE", "DEERE", "NOK", "PRC", "CGR",
		},
		TechnicalTerms: []string{
			"SEAL", "RING", "BEARING", "GASKET", "FILTER", "PUMP",
			"CYLINDER", "GEAR", "SHAFT", "BOLT", "NUT", "WASHER", "PIN",
			"LINER", "VALVE", "PISTON", "BLOCK", "METAL", "RETAINING",
			"LOCK", "DOWEL", "SNAP", "BALL",
		},
		Origins: []string{
			"PRC", "USA", "ITAL", "TURK", "IND", "KOR", "UK", "CHN",
			"AFR", "TAIW", "JAP", "GER", "SAM", "JPN", "CHINA", "INDIA",
			"JAPAN", "KOREA", "ITALY", "TURKEY",
		},
		Applications: []string{
			"FUEL SYSTEM", "PLANETARY 2ND GEAR", "CYLINDER BLOCK GROUP",
			"PLANETARY GEAR & SHAFT", "TORQUE CONVERTOR GROUP",
			"WATER PUMP GROUP", "BRAKE BAND AND LINKAGE",
			"FINAL DRIVE GEAR SHAFT", "HYDRAULIC PUMP GROUP",
			"FRONT IDLER GROUP", "STEERING CLUTCH & BRAKES GROUP",
			"RIPPER CYLINDER", "FINAL DRIVE GROUP", "BLADE LIFT CYLINDER",
			"PLANETARY TRANSMISSION GROUP",
		},
		MainCategories: []string{
			"SEAL-CAT", "SEAL-KOM", "KOMATSU", "CATERPILLER", "VALVO",
			"BEARINGS", "UNDER-CARRIAGE", "G.E.T", "VEHICLE-PARTS",
			"TRANSMISSION-PARTS", "ENGINE-PARTS",
		},
		SubCategories: []string{
			"SEAL-O-RING", "RING-METAL", "ENGINE-PARTS",
			"TRANSMISSION-PARTS", "BEARING", "UNDER-CARRIAGE", "G.E.T",
			"VEHICLE-PARTS",
		},
		HeaderPhrases: []string{
			"PARTS LIST", "Part No.", "SS Part No.", "Desc.",
		},

		MaxDescriptions:   20,
		DescriptionWindow: 600,
		StopLookahead:     50,
		ContextBefore:     5,
		ContextAfter:      10,
	}
}

// LoadConfig reads a TOML vocabulary file and overlays it onto the default
// configuration. Only non-empty fields in the file replace defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read vocab file: %w", err)
	}
	var overlay Config
	if err := toml.Unmarshal(b, &overlay); err != nil {
		return cfg, fmt.Errorf("parse vocab file: %w", err)
	}
	cfg.merge(overlay)
	return cfg, nil
}

func (c *Config) merge(o Config) {
	if len(o.Brands) > 0 {
		c.Brands = o.Brands
	}
	if len(o.TechnicalTerms) > 0 {
		c.TechnicalTerms = o.TechnicalTerms
	}
	if len(o.Origins) > 0 {
		c.Origins = o.Origins
	}
	if len(o.Applications) > 0 {
		c.Applications = o.Applications
	}
	if len(o.MainCategories) > 0 {
		c.MainCategories = o.MainCategories
	}
	if len(o.SubCategories) > 0 {
		c.SubCategories = o.SubCategories
	}
	if len(o.HeaderPhrases) > 0 {
		c.HeaderPhrases = o.HeaderPhrases
	}
	if o.MaxDescriptions > 0 {
		c.MaxDescriptions = o.MaxDescriptions
	}
	if o.DescriptionWindow > 0 {
		c.DescriptionWindow = o.DescriptionWindow
	}
	if o.StopLookahead > 0 {
		c.StopLookahead = o.StopLookahead
	}
	if o.ContextBefore > 0 {
		c.ContextBefore = o.ContextBefore
	}
	if o.ContextAfter > 0 {
		c.ContextAfter = o.ContextAfter
	}
}
