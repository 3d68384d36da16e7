package extract

import (
	"regexp"
	"strings"
	"unicode"
)

// dimensionUnits are trailing suffixes stripped before number extraction,
// checked in this order (each at most once, so "40inch" survives the "in"
// check and is caught by "inch").
var dimensionUnits = []string{"cm", "mm", "'", `"`, "in", "inch"}

// numberToken matches integer and decimal tokens inside a size string.
var numberToken = regexp.MustCompile(`\d+\.?\d*`)

// ParseDimensions extracts a (length, width, height) triple from a free-text
// size string such as "120*40*75", "120x40x75" or "120 X 40 X 75cm".
// Separators ×, * and whitespace are normalized away, trailing unit suffixes
// stripped, then all numeric tokens collected; the first three become L, W, H
// (int when the token has no decimal point, float64 otherwise). Returns
// ok=false for anything with fewer than three numeric tokens; the caller
// must treat that as "no dimensions available", not an error.
func ParseDimensions(s string) (dims [3]any, ok bool) {
	d := strings.ToLower(strings.TrimSpace(s))
	if d == "" {
		return dims, false
	}

	d = strings.ReplaceAll(d, "×", "x")
	d = strings.ReplaceAll(d, "*", "x")
	d = strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, d)

	for _, unit := range dimensionUnits {
		if strings.HasSuffix(d, unit) {
			d = d[:len(d)-len(unit)]
		}
	}

	tokens := numberToken.FindAllString(d, -1)
	if len(tokens) < 3 {
		return dims, false
	}

	for i := 0; i < 3; i++ {
		dims[i] = coerceNumeric(tokens[i])
	}
	return dims, true
}

// HasDimensionDelimiter reports whether a size string contains one of the
// separators the parser understands. The Row Builder only attempts dimension
// backfill from Product size text when this holds.
func HasDimensionDelimiter(s string) bool {
	return strings.Contains(s, "*") ||
		strings.Contains(strings.ToLower(s), "x") ||
		strings.Contains(s, "×")
}
