// Package extract is the column-mapping and row-reshaping engine. It turns a
// re-headered catalog table plus a caller-supplied HeaderSpec into a uniform
// set of nested records, resolving irregular and unlabeled columns through
// layered best-effort heuristics. Inference misses are never errors: every
// fallback produces some output.
package extract

import (
	"regexp"
	"strconv"
	"strings"
)

// numericPattern matches integers and decimals with an optional leading minus.
var numericPattern = regexp.MustCompile(`^-?\d+\.?\d*$`)

// CoerceCell normalizes a raw cell into a typed value: numeric-looking
// strings become int or float64, currency strings ("$1,234.50") become
// float64, everything else passes through trimmed. A cell that looks numeric
// but fails to parse keeps its raw string value.
func CoerceCell(raw string) any {
	v := strings.TrimSpace(raw)
	if v == "" {
		return ""
	}

	if numericPattern.MatchString(v) {
		return coerceNumeric(v)
	}

	if strings.Contains(v, "$") {
		cleaned := strings.ReplaceAll(v, "$", "")
		cleaned = strings.ReplaceAll(cleaned, ",", "")
		if f, err := strconv.ParseFloat(strings.TrimSpace(cleaned), 64); err == nil {
			return f
		}
	}

	return v
}

// coerceNumeric parses a string already known to look numeric. Presence of a
// decimal point decides int vs float64.
func coerceNumeric(v string) any {
	if strings.Contains(v, ".") {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
		return v
	}
	if n, err := strconv.Atoi(v); err == nil {
		return n
	}
	return v
}

// IsNumericValue reports whether a coerced value ended up numeric.
func IsNumericValue(v any) bool {
	switch v.(type) {
	case int, float64:
		return true
	}
	return false
}

// FormatValue renders a coerced value back to a string. Floats drop
// insignificant trailing zeros ("2.50" round-trips to "2.5").
func FormatValue(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case int:
		return strconv.Itoa(x)
	case float64:
		return strconv.FormatFloat(x, 'f', -1, 64)
	}
	return ""
}

// isDigits reports whether s is non-empty and purely decimal digits.
func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
