package constants

import (
	"strings"
)

// Origin is the canonical country-of-origin value the parts API accepts
// in its origin dropdown.
type Origin string

const (
	OriginLocal   Origin = "local"
	OriginImport  Origin = "import"
	OriginChina   Origin = "china"
	OriginJapan   Origin = "japan"
	OriginGermany Origin = "germany"
	OriginUSA     Origin = "usa"
	OriginPPR     Origin = "ppr"
)

var allOrigins = []Origin{
	OriginLocal,
	OriginImport,
	OriginChina,
	OriginJapan,
	OriginGermany,
	OriginUSA,
	OriginPPR,
}

// OriginsAsStrings returns the canonical origin values as plain strings.
func OriginsAsStrings() []string {
	result := make([]string, len(allOrigins))
	for i, o := range allOrigins {
		result[i] = string(o)
	}
	return result
}

// originSynonyms maps substrings seen in catalog documents to canonical
// origins. Matching is case-insensitive substring containment, in order.
var originSynonyms = []struct {
	substr string
	origin Origin
}{
	{"local", OriginLocal},
	{"loc", OriginLocal},
	{"import", OriginImport},
	{"imp", OriginImport},
	{"china", OriginChina},
	{"chn", OriginChina},
	{"prc", OriginChina},
	{"japan", OriginJapan},
	{"jap", OriginJapan},
	{"jpn", OriginJapan},
	{"germany", OriginGermany},
	{"ger", OriginGermany},
	{"usa", OriginUSA},
	{"united states", OriginUSA},
	{"ppr", OriginPPR},
}

// CanonicalizeOrigin maps a raw origin token to a canonical Origin.
// Unrecognized values pass through lower-cased with ok=false: the backend
// may grow new dropdown values, so the importer stays permissive.
func CanonicalizeOrigin(input string) (string, bool) {
	normalized := strings.ToLower(strings.TrimSpace(input))
	if normalized == "" || normalized == "-" {
		return "", false
	}
	for _, syn := range originSynonyms {
		if strings.Contains(normalized, syn.substr) {
			return string(syn.origin), true
		}
	}
	return normalized, false
}
