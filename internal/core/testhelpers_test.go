package core

import (
	"bytes"
	"math"
	"testing"

	"github.com/xuri/excelize/v2"
)

// xlsxBytes builds a single-sheet workbook from rows.
func xlsxBytes(t *testing.T, rows [][]any) []byte {
	t.Helper()

	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			t.Fatalf("cell name: %v", err)
		}
		if err := f.SetSheetRow(sheet, cell, &row); err != nil {
			t.Fatalf("SetSheetRow: %v", err)
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		t.Fatalf("WriteToBuffer: %v", err)
	}
	return bytes.Clone(buf.Bytes())
}

func approx(t *testing.T, name string, got, want, tol float64) {
	t.Helper()
	if math.Abs(got-want) > tol {
		t.Errorf("%s = %v, want %v (±%v)", name, got, want, tol)
	}
}

const sampleCatalogCSV = "Vendor Part Number,Item Description,Weight (g),PCR %\n" +
	"ABC-1,Jar 16oz,50,40\n" +
	"ABC-2,Lid,10,0\n" +
	"XYZ-9,Bottle,30,100\n"
