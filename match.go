package wld

import (
	"fmt"
	"strconv"
	"strings"
)

// ErrMatchSyntax reports a malformed match expression.
var ErrMatchSyntax = fmt.Errorf("wld: invalid match expression")

// Matcher tests up to three integer values (commonly tile type, wall,
// and option) against independently-parsed term sets. A nil part
// matches any value, mirroring parse_match's "None"/empty-string term.
//
// Expr := TermSet (';' TermSet (';' TermSet)?)?
// TermSet := Term (',' Term)*
// Term := Number | Number '-' Number | "None" | ""
// Number := "0x"-prefixed hex or decimal
type Matcher struct {
	parts [3]map[int]struct{} // nil entry = wildcard
}

// ParseMatch parses a semicolon-separated match expression. Ported from
// Match.py's parse_match/do_match, consumed by the "find tile" front end.
func ParseMatch(expr string) (*Matcher, error) {
	rawParts := strings.Split(expr, ";")
	if len(rawParts) > 3 {
		return nil, fmt.Errorf("%w: %q has too many parts", ErrMatchSyntax, expr)
	}
	for len(rawParts) < 3 {
		rawParts = append(rawParts, "")
	}

	var m Matcher
	for i, part := range rawParts {
		set, err := parseTermSet(part)
		if err != nil {
			return nil, err
		}
		m.parts[i] = set
	}
	return &m, nil
}

func parseTermSet(part string) (map[int]struct{}, error) {
	if part == "" || part == "None" {
		return nil, nil
	}
	set := make(map[int]struct{})
	for _, term := range strings.Split(part, ",") {
		lo, hi, err := parseTerm(term)
		if err != nil {
			return nil, err
		}
		for v := lo; v <= hi; v++ {
			set[v] = struct{}{}
		}
	}
	return set, nil
}

func parseTerm(term string) (lo, hi int, err error) {
	bounds := strings.SplitN(term, "-", 2)
	switch len(bounds) {
	case 1:
		n, err := parseNumber(bounds[0])
		if err != nil {
			return 0, 0, err
		}
		return n, n, nil
	case 2:
		a, err := parseNumber(bounds[0])
		if err != nil {
			return 0, 0, err
		}
		b, err := parseNumber(bounds[1])
		if err != nil {
			return 0, 0, err
		}
		return a, b, nil
	default:
		return 0, 0, fmt.Errorf("%w: invalid term %q", ErrMatchSyntax, term)
	}
}

func parseNumber(tok string) (int, error) {
	if strings.HasPrefix(tok, "0x") {
		v, err := strconv.ParseInt(tok[2:], 16, 64)
		if err != nil {
			return 0, fmt.Errorf("%w: %q is not a hex number", ErrMatchSyntax, tok)
		}
		return int(v), nil
	}
	v, err := strconv.Atoi(tok)
	if err != nil {
		return 0, fmt.Errorf("%w: %q is not a number", ErrMatchSyntax, tok)
	}
	return v, nil
}

// Match reports whether (v1, v2, v3) satisfies every non-wildcard part.
func (m *Matcher) Match(v1, v2, v3 int) bool {
	values := [3]int{v1, v2, v3}
	for i, set := range m.parts {
		if set == nil {
			continue
		}
		if _, ok := set[values[i]]; !ok {
			return false
		}
	}
	return true
}

// MatchTile reports whether t's (type, wall, option) triple satisfies m.
// j is the tile's row, needed by option rules that depend on it.
func (m *Matcher) MatchTile(t *Tile, j int) bool {
	if t == nil {
		return false
	}
	option := resolveOption(t.Type, t.U, t.V, j)
	return m.Match(int(t.Type), int(t.Wall), option)
}
