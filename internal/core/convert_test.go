package core

import (
	"math"
	"testing"
)

// ----------------------------------------------------------------------------
// ParseNumeric Tests
// ----------------------------------------------------------------------------

func TestParseNumeric(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   float64
		wantOK bool
	}{
		// Valid: basic numbers
		{"positive integer", "123", 123, true},
		{"zero", "0", 0, true},
		{"negative integer", "-456", -456, true},
		{"decimal number", "12.5", 12.5, true},
		{"leading decimal point", ".99", 0.99, true},
		{"trailing decimal point", "99.", 99, true},
		{"explicit plus", "+7", 7, true},

		// Valid: spreadsheet decoration
		{"dollar sign", "$1,234.56", 1234.56, true},
		{"euro sign", "€1234.5", 1234.5, true},
		{"pound sign", "£1234.5", 1234.5, true},
		{"thousands separators", "1,234,567", 1234567, true},
		{"accounting negative", "(123.45)", -123.45, true},
		{"trailing percent", "40%", 40, true},
		{"percent with space", "40 %", 40, true},
		{"surrounding whitespace", "  99.5  ", 99.5, true},
		{"scientific notation", "1.5e3", 1500, true},
		{"negative exponent", "25E-1", 2.5, true},

		// Invalid
		{"empty", "", 0, false},
		{"whitespace only", "   ", 0, false},
		{"text", "abc", 0, false},
		{"nan literal", "NaN", 0, false},
		{"inf literal", "Inf", 0, false},
		{"overflow", "1e999", 0, false},
		{"two decimal points", "1.2.3", 0, false},
		{"embedded text", "12kg", 0, false},
		{"lone sign", "-", 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseNumeric(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseNumeric(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("ParseNumeric(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}

// ----------------------------------------------------------------------------
// ClampPercent / NonNegative Tests
// ----------------------------------------------------------------------------

func TestClampPercent(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-5, 0},
		{0, 0},
		{40, 40},
		{100, 100},
		{150, 100},
		{math.NaN(), 0},
		{math.Inf(1), 100},
	}

	for _, tt := range tests {
		if got := ClampPercent(tt.in); got != tt.want {
			t.Errorf("ClampPercent(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestNonNegative(t *testing.T) {
	tests := []struct {
		in, want float64
	}{
		{-1, 0},
		{0, 0},
		{12.5, 12.5},
		{math.NaN(), 0},
		{math.Inf(1), 0},
	}

	for _, tt := range tests {
		if got := NonNegative(tt.in); got != tt.want {
			t.Errorf("NonNegative(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

// ----------------------------------------------------------------------------
// CleanCell Tests
// ----------------------------------------------------------------------------

func TestCleanCell(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"  ABC-1  ", "ABC-1"},
		{`="00123"`, "00123"},
		{"=SUM", "SUM"},
		{`"quoted"`, "quoted"},
		{"'single'", "single"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			if got := CleanCell(tt.input); got != tt.want {
				t.Errorf("CleanCell(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}
