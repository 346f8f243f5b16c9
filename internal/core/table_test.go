package core

import (
	"errors"
	"testing"
)

func TestReadTable_CSV(t *testing.T) {
	data := []byte("\xEF\xBB\xBFPart #,Qty\n\nA-1,5\n , \nB-2,7\n")

	tbl, err := ReadTable(data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}

	if tbl.Headers[0] != "Part #" {
		t.Errorf("BOM not stripped: header = %q", tbl.Headers[0])
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2 (blank rows skipped)", len(tbl.Rows))
	}
	if tbl.Rows[1][0] != "B-2" {
		t.Errorf("Rows[1][0] = %q, want B-2", tbl.Rows[1][0])
	}
}

func TestReadTable_RaggedRows(t *testing.T) {
	tbl, err := ReadTable([]byte("a,b,c\n1\n1,2,3,4\n"))
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(tbl.Rows) != 2 {
		t.Errorf("rows = %d, want 2", len(tbl.Rows))
	}
}

func TestReadTable_XLSX(t *testing.T) {
	data := xlsxBytes(t, [][]any{
		{"Vendor Part Number", "Item Description", "Weight (g)", "PCR %"},
		{"ABC-1", "Jar", 50, 0.4},
		{},
		{"ABC-2", "Lid", 10.5, 25},
	})

	if DetectFormat(data) != FormatXLSX {
		t.Fatal("DetectFormat() should report xlsx")
	}

	tbl, err := ReadTable(data)
	if err != nil {
		t.Fatalf("ReadTable() error = %v", err)
	}
	if len(tbl.Headers) != 4 {
		t.Fatalf("headers = %v", tbl.Headers)
	}
	if len(tbl.Rows) != 2 {
		t.Fatalf("rows = %d, want 2", len(tbl.Rows))
	}
	if tbl.Rows[0][3] != "0.4" {
		t.Errorf("raw PCR cell = %q, want 0.4", tbl.Rows[0][3])
	}
	if tbl.Rows[1][2] != "10.5" {
		t.Errorf("weight cell = %q, want 10.5", tbl.Rows[1][2])
	}
}

func TestReadTable_Errors(t *testing.T) {
	tests := []struct {
		name string
		data []byte
		want error
	}{
		{"empty", nil, ErrEmptyTable},
		{"whitespace", []byte(" \n\t"), ErrEmptyTable},
		{"only blank rows", []byte(",,\n,,\n"), ErrEmptyTable},
		{"legacy xls", []byte{0xD0, 0xCF, 0x11, 0xE0, 0xA1, 0xB1, 0x1A, 0xE1}, ErrUnreadableWorkbook},
		{"corrupt xlsx", []byte("PK\x03\x04garbage"), ErrUnreadableWorkbook},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ReadTable(tt.data)
			if !errors.Is(err, tt.want) {
				t.Errorf("ReadTable() error = %v, want %v", err, tt.want)
			}
		})
	}
}
