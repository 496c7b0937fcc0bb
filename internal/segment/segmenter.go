package segment

import (
	"fmt"
	"log/slog"
	"regexp"
	"strings"
)

// LineFields is everything one line (plus its context window) yields.
// Groups are positional: the i-th span of each class belongs to the i-th
// column of the source table's repeated-column layout.
type LineFields struct {
	PartNos          Group
	SecondaryPartNos Group
	Brands           Group
	Descriptions     Group
	Costs            Group
	Locations        Group
	Prices           []PricePair
	Origins          []string

	// Context-window fields. These are printed on neighboring lines in the
	// source layout, so they come from the surrounding lines, not this one.
	Applications []string
	Grades       []string
	Mains        []string
	Subs         []string
	Sizes        []string
	Remarks      []string
	Models       []string
	Quantities   []string
}

// ColumnCount is the widest positional group, which is the number of
// candidate records this line can produce.
func (lf LineFields) ColumnCount() int {
	n := len(lf.PartNos)
	for _, m := range []int{
		len(lf.SecondaryPartNos), len(lf.Brands), len(lf.Descriptions),
		len(lf.Costs), len(lf.Prices), len(lf.Locations),
	} {
		if m > n {
			n = m
		}
	}
	return n
}

// Segmenter slices raw catalog lines into positional field groups. The
// source table has a rigid left-to-right column order but no delimiter, so
// each field class is searched only after the previous class's last match.
type Segmenter struct {
	cfg    Config
	logger *slog.Logger

	rePartNo     *regexp.Regexp
	reSmallInt   *regexp.Regexp
	reBrand      *regexp.Regexp
	reTechTerm   *regexp.Regexp
	reDescHyphen *regexp.Regexp
	reDescComma  *regexp.Regexp
	reDescPair   *regexp.Regexp
	reDescReject *regexp.Regexp
	reNumber     *regexp.Regexp
	reCostShape  *regexp.Regexp
	reLocation   *regexp.Regexp
	reHeaderStop *regexp.Regexp
	reOrigin     *regexp.Regexp
	reDash       *regexp.Regexp

	reApplication *regexp.Regexp
	reGrade       *regexp.Regexp
	reMain        *regexp.Regexp
	reSub         *regexp.Regexp
	reSize        *regexp.Regexp
	reRemark      *regexp.Regexp
	reModel       *regexp.Regexp
	reQty         *regexp.Regexp

	reHeaderLine *regexp.Regexp
	rePageLine   *regexp.Regexp
}

// New compiles a Segmenter from cfg. Vocabulary lists must be non-empty for
// the classes the catalog actually uses; an empty list simply never matches.
func New(cfg Config, logger *slog.Logger) (*Segmenter, error) {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Segmenter{cfg: cfg, logger: logger}

	var err error
	compile := func(expr string) *regexp.Regexp {
		if err != nil {
			return nil
		}
		re, cerr := regexp.Compile(expr)
		if cerr != nil {
			err = fmt.Errorf("compile %q: %w", expr, cerr)
		}
		return re
	}

	s.rePartNo = compile(`\b([0-9]{4,7}|[0-9]{5}-[0-9]{5}|[0-9]{3}-[0-9]{2}-[0-9]{5}|[0-9]{2}-[0-9]{5}|[A-Z0-9\-]{4,20})\b`)
	s.reSmallInt = compile(`^\d{1,3}$`)
	s.reBrand = compile(vocabExpr(cfg.Brands))
	s.reTechTerm = compile(vocabExpr(cfg.TechnicalTerms))
	s.reDescHyphen = compile(`^([A-Z][A-Za-z]*-[A-Z][A-Za-z]*(?:-[A-Z][A-Za-z]*)?)`)
	s.reDescComma = compile(`^([A-Z][A-Za-z]+(?:\s+[A-Z][A-Za-z]+),\s+[A-Z][A-Za-z]+)\b`)
	s.reDescPair = compile(`^([A-Z][A-Za-z]{4,}\s+[A-Z][A-Za-z]{4,})\b`)
	s.reDescReject = compile(`^(?i:` + alternation(append(append([]string{}, cfg.Origins...), cfg.Brands...)) + `)\s`)
	s.reNumber = compile(`\b\d{1,3}(?:,\d{3})*(?:\.\d+)?\b`)
	s.reCostShape = compile(`^\d{1,3}(?:,\d{3})*\.\d{3}$`)
	s.reLocation = compile(`\b([A-Z]\d+[A-Z]\d*)\b`)
	// Header phrases end in punctuation, so no trailing word boundary here.
	s.reHeaderStop = compile(`(?i)(` + alternation(cfg.HeaderPhrases) + `)`)
	s.reOrigin = compile(vocabExpr(cfg.Origins))
	s.reDash = compile(`(?:^|\s)-(?:\s|$)`)

	s.reApplication = compile(vocabExpr(cfg.Applications))
	s.reGrade = compile(`(?i)\b(?:Grade\s+)?([ABC])\b`)
	s.reMain = compile(vocabExpr(cfg.MainCategories))
	s.reSub = compile(vocabExpr(cfg.SubCategories))
	s.reSize = compile(`(?i)\b(\d+\.\d+\s+X\s+\d+\.\d+|\d+MM|\d+X\d+X\d+)\b`)
	s.reRemark = compile(`\b(\d+\.\d+\s+X\s+\d+\.\d+)\b`)
	s.reModel = compile(`\b(\d{4}|[A-Z]\d+[A-Z]-\d+|[A-Z]\d+[A-Z]|[A-Z]+\d+[A-Z]?-\d+)\b`)
	s.reQty = compile(`\b(\d{1,2})\b`)

	s.reHeaderLine = compile(`(?i)^(Part No\.\s+Part No\.|SS Part No\.\s+SS Part No\.)`)
	s.rePageLine = compile(`(?i)^Page\s+\d+\s+of\s+\d+$`)

	if err != nil {
		return nil, err
	}
	return s, nil
}

// vocabExpr builds a case-insensitive whole-word alternation from a
// vocabulary list.
func vocabExpr(terms []string) string {
	return `(?i)\b(` + alternation(terms) + `)\b`
}

func alternation(terms []string) string {
	if len(terms) == 0 {
		// never matches
		return `\x{FFFD}unmatchable`
	}
	quoted := make([]string, len(terms))
	for i, t := range terms {
		quoted[i] = regexp.QuoteMeta(t)
	}
	return strings.Join(quoted, "|")
}

// Lines splits raw document text into trimmed candidate lines. Short lines
// (page numbers, stray fragments) carry no columnar data and are dropped.
func (s *Segmenter) Lines(text string) []string {
	raw := strings.FieldsFunc(text, func(r rune) bool {
		return r == '\n' || r == '\r'
	})
	lines := make([]string, 0, len(raw))
	for _, l := range raw {
		l = strings.TrimSpace(l)
		if len(l) > 20 {
			lines = append(lines, l)
		}
	}
	return lines
}

// Skip reports whether a line is a table header or page-number line rather
// than a data row.
func (s *Segmenter) Skip(line string) bool {
	return s.reHeaderLine.MatchString(line) || s.rePageLine.MatchString(line)
}

// SegmentLine recovers the positional field groups of lines[idx]. Inline
// classes are extracted left to right with a cursor; context classes are
// matched over the surrounding line window. A line that matches nothing
// yields a zero-column LineFields, which is normal.
func (s *Segmenter) SegmentLine(lines []string, idx int) LineFields {
	line := lines[idx]
	var lf LineFields

	cursor := 0
	lf.PartNos = s.partNumbers(line, cursor)
	if len(lf.PartNos) == 0 {
		return lf
	}
	cursor = lf.PartNos.end(cursor)

	lf.SecondaryPartNos = s.partNumbers(line, cursor)
	cursor = lf.SecondaryPartNos.end(cursor)

	lf.Brands = s.brands(line, cursor)
	cursor = lf.Brands.end(cursor)

	lf.Descriptions = s.descriptions(line, cursor)
	cursor = lf.Descriptions.end(cursor)

	lf.Costs = s.costs(line, cursor)
	cursor = lf.Costs.end(cursor)

	lf.Prices = s.prices(line, cursor)
	if n := len(lf.Prices); n > 0 {
		cursor = lf.Prices[n-1].End
	}

	lf.Locations = s.locations(line, cursor)

	// Origin does not reliably occupy a fixed column, so it is matched
	// anywhere in the line.
	lf.Origins = s.origins(line)

	ctx := s.context(lines, idx)
	lf.Applications = captures(s.reApplication, ctx, true)
	lf.Grades = captures(s.reGrade, ctx, true)
	lf.Mains = captures(s.reMain, ctx, true)
	lf.Subs = captures(s.reSub, ctx, true)
	lf.Sizes = captures(s.reSize, ctx, false)
	lf.Remarks = captures(s.reRemark, ctx, false)
	lf.Models = captures(s.reModel, ctx, false)
	lf.Quantities = captures(s.reQty, ctx, false)

	return lf
}

// context joins the line window around lines[idx] into one search space.
func (s *Segmenter) context(lines []string, idx int) string {
	start := idx - s.cfg.ContextBefore
	if start < 0 {
		start = 0
	}
	end := idx + s.cfg.ContextAfter
	if end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start:end], " ")
}

func captures(re *regexp.Regexp, text string, upper bool) []string {
	var out []string
	for _, m := range re.FindAllStringSubmatch(text, -1) {
		v := m[1]
		if upper {
			v = strings.ToUpper(v)
		}
		out = append(out, v)
	}
	return out
}
