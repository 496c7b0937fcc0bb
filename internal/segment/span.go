package segment

// Span is one matched token plus its position within a line. Offsets are
// byte positions; End is exclusive. A span is never mutated after creation.
type Span struct {
	Value string
	Start int
	End   int
}

// Group is all spans of one semantic class found on one line, in increasing
// offset order. Spans within a group do not overlap.
type Group []Span

// At returns the value of the i-th span, or "" when the group has fewer
// than i+1 spans. Column zipping in the reconciler depends on this.
func (g Group) At(i int) string {
	if i < 0 || i >= len(g) {
		return ""
	}
	return g[i].Value
}

// Values returns the span values in order.
func (g Group) Values() []string {
	out := make([]string, len(g))
	for i, s := range g {
		out[i] = s.Value
	}
	return out
}

// end returns the end offset of the last span, or fallback when the group
// is empty. Each extractor's scan starts at the previous class's end.
func (g Group) end(fallback int) int {
	if len(g) == 0 {
		return fallback
	}
	return g[len(g)-1].End
}

// PricePair is one priceA/priceB column pair. The source table prints the
// two price tiers as adjacent comma-grouped integers, so they are consumed
// two at a time.
type PricePair struct {
	A     string
	B     string
	Start int
	End   int
}

// PairAt returns the i-th price pair's values, or empty strings when the
// slice has fewer than i+1 pairs.
func PairAt(pairs []PricePair, i int) (string, string) {
	if i < 0 || i >= len(pairs) {
		return "", ""
	}
	return pairs[i].A, pairs[i].B
}

// StringAt returns vals[i], or "" when out of range.
func StringAt(vals []string, i int) string {
	if i < 0 || i >= len(vals) {
		return ""
	}
	return vals[i]
}
