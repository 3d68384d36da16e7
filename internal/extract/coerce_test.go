package extract

import "testing"

func TestCoerceCell(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want any
	}{
		{"Integer", "24", 24},
		{"NegativeInteger", "-5", -5},
		{"Float", "12.5", 12.5},
		{"TrailingDot", "12.", float64(12)},
		{"Currency", "$12.50", 12.5},
		{"CurrencyWithThousands", "$1,234.50", 1234.5},
		{"PlainText", "Folding chair", "Folding chair"},
		{"TrimmedText", "  Steel  ", "Steel"},
		{"Empty", "", ""},
		{"Whitespace", "   ", ""},
		{"MixedAlnum", "A-102", "A-102"},
		{"BrokenCurrency", "$abc", "$abc"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CoerceCell(tt.raw)
			if got != tt.want {
				t.Errorf("CoerceCell(%q) = %v (%T), want %v (%T)", tt.raw, got, got, tt.want, tt.want)
			}
		})
	}
}

func TestFormatValue(t *testing.T) {
	tests := []struct {
		in   any
		want string
	}{
		{42, "42"},
		{12.5, "12.5"},
		{2.50, "2.5"},
		{"text", "text"},
		{float64(120), "120"},
	}

	for _, tt := range tests {
		if got := FormatValue(tt.in); got != tt.want {
			t.Errorf("FormatValue(%v) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestIsNumericValue(t *testing.T) {
	if !IsNumericValue(3) || !IsNumericValue(3.14) {
		t.Error("expected int and float64 to count as numeric")
	}
	if IsNumericValue("3") || IsNumericValue(nil) {
		t.Error("expected string and nil to count as non-numeric")
	}
}

func TestIsDigits(t *testing.T) {
	if !isDigits("10234") {
		t.Error("expected pure digits to pass")
	}
	for _, s := range []string{"", "12a", "-5", "1.5"} {
		if isDigits(s) {
			t.Errorf("isDigits(%q) = true, want false", s)
		}
	}
}
