package constants

import "strings"

// Grades holds the grade values the parts API accepts in its dropdown.
var Grades = []string{"A", "B", "C", "D"}

// CanonicalizeGrade upper-cases a raw grade token. Values outside A-D pass
// through unchanged (upper-cased) rather than failing, matching the
// permissive origin handling.
func CanonicalizeGrade(input string) (string, bool) {
	g := strings.ToUpper(strings.TrimSpace(input))
	if g == "" {
		return "", false
	}
	for _, known := range Grades {
		if g == known {
			return g, true
		}
	}
	return g, false
}
