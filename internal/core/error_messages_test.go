package core

import (
	"errors"
	"fmt"
	"strings"
	"testing"
)

func TestMapError(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode string
	}{
		{"nil error returns empty", nil, ""},
		{"catalog schema", &SchemaError{Kind: SchemaCatalog, Missing: []string{FieldWeightGrams}}, "SCH001"},
		{"wrapped purchase schema", fmt.Errorf("run: %w", &SchemaError{Kind: SchemaPurchase}), "SCH002"},
		{"invalid csv", fmt.Errorf("read catalog: %w: bare quote", ErrInvalidCSV), "FILE002"},
		{"unreadable workbook", fmt.Errorf("read catalog: %w", ErrUnreadableWorkbook), "FILE003"},
		{"empty file", fmt.Errorf("read purchases: %w", ErrEmptyTable), "FILE004"},
		{"no catalog", fmt.Errorf("%w: CSGG.xlsx", ErrNoCatalog), "FILE006"},
		{"invalid factors", factorsWithBenefit(-1).Validate(), "FAC001"},
		{"file too large", errors.New("http: request body too large"), "FILE001"},
		{"no file", errors.New("no file provided"), "FILE005"},
		{"rate limit", errors.New("rate limit exceeded"), "RATE001"},
		{"too many runs", ErrTooManyRuns, "RUN001"},
		{"unknown", errors.New("something strange"), "ERR000"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapError(tt.err)
			if got.Code != tt.wantCode {
				t.Errorf("MapError() code = %q, want %q", got.Code, tt.wantCode)
			}
		})
	}
}

// factorsWithBenefit returns the default factors with the benefit replaced.
func factorsWithBenefit(benefit float64) EmissionFactors {
	f := DefaultFactors()
	f.PCRConversionBenefit = benefit
	return f
}

func TestMapError_SchemaDetails(t *testing.T) {
	_, err := LoadCatalog([]byte("Part #,Description,PCR %\nA-1,Jar,40\n"))
	if err == nil {
		t.Fatal("LoadCatalog() expected schema error")
	}

	msg := MapError(err)
	if msg.Code != "SCH001" {
		t.Fatalf("code = %q, want SCH001", msg.Code)
	}

	joined := strings.Join(msg.Details, "\n")
	for _, want := range []string{
		"missing: Weight (g)",
		"found: Part #, Description, PCR %",
		"Gram Weight",
	} {
		if !strings.Contains(joined, want) {
			t.Errorf("details missing %q:\n%s", want, joined)
		}
	}
}

func TestFormatUserError(t *testing.T) {
	got := FormatUserError(fmt.Errorf("read: %w", ErrEmptyTable))
	if !strings.Contains(got, "(Code: FILE004)") {
		t.Errorf("FormatUserError() = %q, want code FILE004", got)
	}
	if FormatUserError(nil) != "" {
		t.Error("FormatUserError(nil) should be empty")
	}
}

func TestIsUserFacing(t *testing.T) {
	if IsUserFacing(nil) {
		t.Error("nil should not be user facing")
	}
	if !IsUserFacing(ErrInvalidCSV) {
		t.Error("ErrInvalidCSV should be user facing")
	}
	if IsUserFacing(errors.New("boom")) {
		t.Error("unknown errors should not be user facing")
	}
}
