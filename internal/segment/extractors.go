package segment

import (
	"regexp"
	"strings"
)

// Inline field extractors. Each scans line[start:] and returns spans with
// offsets relative to the whole line, so the caller can thread the cursor
// from one class to the next.

// partNumbers matches numeric and alphanumeric part-code shapes. Pure small
// integers and decimal tokens are other columns (quantities, weights,
// prices), never part codes. Scanning stops once a brand token shows up in
// the lookahead window: that is the next column starting.
func (s *Segmenter) partNumbers(line string, start int) Group {
	var out Group
	section := line[start:]
	for _, m := range s.rePartNo.FindAllStringSubmatchIndex(section, -1) {
		value := section[m[2]:m[3]]
		if strings.Contains(value, ".") || s.reSmallInt.MatchString(value) {
			continue
		}
		if strings.HasPrefix(value, "-") || strings.HasSuffix(value, "-") {
			continue
		}
		end := start + m[3]
		out = append(out, Span{Value: value, Start: start + m[2], End: end})
		if s.stopAhead(s.reBrand, line, end) {
			break
		}
	}
	return out
}

// brands matches the brand-code vocabulary. A technical term in the
// lookahead window means the description column starts next.
func (s *Segmenter) brands(line string, start int) Group {
	var out Group
	section := line[start:]
	for _, m := range s.reBrand.FindAllStringSubmatchIndex(section, -1) {
		value := strings.ToUpper(section[m[2]:m[3]])
		end := start + m[3]
		out = append(out, Span{Value: value, Start: start + m[2], End: end})
		if s.stopAhead(s.reTechTerm, line, end) {
			break
		}
	}
	return out
}

// descriptions walks the section position by position, trying three surface
// patterns in priority order: hyphen-joined compounds (SEAL-O-RING),
// comma-joined terms (RING METAL, RETAINING), and two capitalized words
// (LINER CYLINDER). The generic two-word pattern only counts when it
// contains a known technical term, otherwise narrative text would leak in.
// A run of digits means the cost column has started.
func (s *Segmenter) descriptions(line string, start int) Group {
	var out Group
	end := start + s.cfg.DescriptionWindow
	if end > len(line) {
		end = len(line)
	}
	section := line[start:end]

	pos := 0
	for pos < len(section) && len(out) < s.cfg.MaxDescriptions {
		for pos < len(section) && (section[pos] == ' ' || section[pos] == '\t') {
			pos++
		}
		if pos >= len(section) {
			break
		}
		rest := section[pos:]

		if m := s.reDescHyphen.FindStringSubmatch(rest); m != nil && len(m[1]) >= 5 && len(m[1]) <= 30 {
			if boundaryAfter(rest, len(m[0])) {
				out = append(out, Span{Value: m[1], Start: start + pos, End: start + pos + len(m[0])})
				pos += len(m[0])
				continue
			}
		}

		if m := s.reDescComma.FindStringSubmatch(rest); m != nil && len(m[1]) >= 8 && len(m[1]) <= 50 {
			out = append(out, Span{Value: m[1], Start: start + pos, End: start + pos + len(m[0])})
			pos += len(m[0])
			continue
		}

		if m := s.reDescPair.FindStringSubmatch(rest); m != nil {
			desc := m[1]
			if !s.reDescReject.MatchString(rest) && s.containsTechTerm(desc) && len(desc) <= 40 {
				out = append(out, Span{Value: desc, Start: start + pos, End: start + pos + len(m[0])})
				pos += len(m[0])
				continue
			}
		}

		if hasDigitRun(section, pos) {
			break
		}
		pos++
	}
	return out
}

// boundaryAfter reports whether the hyphen-compound candidate ends cleanly:
// at end of section, before whitespace, or before a digit (the cost column).
func boundaryAfter(rest string, n int) bool {
	if n >= len(rest) {
		return true
	}
	c := rest[n]
	return c == ' ' || c == '\t' || (c >= '0' && c <= '9')
}

// hasDigitRun reports whether any of the next ten characters is a digit,
// comma, or period.
func hasDigitRun(section string, pos int) bool {
	end := pos + 10
	if end > len(section) {
		end = len(section)
	}
	return strings.ContainsAny(section[pos:end], "0123456789,.")
}

func (s *Segmenter) containsTechTerm(desc string) bool {
	return s.reTechTerm.MatchString(desc)
}

// costs collects the leading run of cost-shaped numbers. The catalog prints
// costs with an exactly-3-digit fractional part (1,500.000); the first
// number without that suffix is the price column.
func (s *Segmenter) costs(line string, start int) Group {
	var out Group
	section := line[start:]
	for _, m := range s.reNumber.FindAllStringIndex(section, -1) {
		value := section[m[0]:m[1]]
		if !s.reCostShape.MatchString(value) {
			break
		}
		out = append(out, Span{Value: value, Start: start + m[0], End: start + m[1]})
	}
	return out
}

// prices consumes the remaining comma-grouped integers in A/B pairs. A
// decimal token here means the scan drifted into another column, so it
// terminates the price run.
func (s *Segmenter) prices(line string, start int) []PricePair {
	section := line[start:]
	var tokens []Span
	for _, m := range s.reNumber.FindAllStringIndex(section, -1) {
		value := section[m[0]:m[1]]
		if strings.Contains(value, ".") {
			break
		}
		tokens = append(tokens, Span{Value: value, Start: start + m[0], End: start + m[1]})
	}

	var pairs []PricePair
	for i := 0; i < len(tokens); i += 2 {
		p := PricePair{A: tokens[i].Value, Start: tokens[i].Start, End: tokens[i].End}
		if i+1 < len(tokens) {
			p.B = tokens[i+1].Value
			p.End = tokens[i+1].End
		}
		pairs = append(pairs, p)
	}
	return pairs
}

// locations matches warehouse-slot codes (S1D4, C2A, G5A). A header phrase
// in the lookahead window means the line has run into the next page block.
func (s *Segmenter) locations(line string, start int) Group {
	var out Group
	section := line[start:]
	for _, m := range s.reLocation.FindAllStringSubmatchIndex(section, -1) {
		value := section[m[2]:m[3]]
		end := start + m[3]
		out = append(out, Span{Value: value, Start: start + m[2], End: end})
		if s.stopAhead(s.reHeaderStop, line, end) {
			break
		}
	}
	return out
}

// origins matches the origin vocabulary anywhere in the line. A standalone
// "-" is the catalog's "unspecified" marker and yields an empty value so
// column alignment is preserved.
func (s *Segmenter) origins(line string) []string {
	type hit struct {
		pos   int
		value string
	}
	var hits []hit
	for _, m := range s.reOrigin.FindAllStringSubmatchIndex(line, -1) {
		hits = append(hits, hit{pos: m[2], value: strings.ToUpper(line[m[2]:m[3]])})
	}
	for _, m := range s.reDash.FindAllStringIndex(line, -1) {
		hits = append(hits, hit{pos: m[0], value: ""})
	}
	// keep left-to-right column order across both match sets
	for i := 1; i < len(hits); i++ {
		for j := i; j > 0 && hits[j].pos < hits[j-1].pos; j-- {
			hits[j], hits[j-1] = hits[j-1], hits[j]
		}
	}
	out := make([]string, len(hits))
	for i, h := range hits {
		out[i] = h.value
	}
	return out
}

// stopAhead reports whether re matches within the lookahead window after
// offset end.
func (s *Segmenter) stopAhead(re *regexp.Regexp, line string, end int) bool {
	limit := end + s.cfg.StopLookahead
	if limit > len(line) {
		limit = len(line)
	}
	if end >= limit {
		return false
	}
	return re.MatchString(line[end:limit])
}
