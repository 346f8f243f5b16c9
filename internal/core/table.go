package core

// table.go reads raw catalog and ledger bytes into a header + rows Table.
//
// Two source formats are accepted and detected by content rather than by
// file name:
//   - XLSX workbooks (zip signature), first sheet, first row is the header
//   - CSV, with UTF-8 BOM stripped and invalid UTF-8 replaced
//
// Blank rows are skipped in both formats.

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

var (
	zipSignature = []byte("PK\x03\x04")
	oleSignature = []byte{0xD0, 0xCF, 0x11, 0xE0}
)

// Table is a header row plus data rows. Rows may be shorter than Headers.
type Table struct {
	Headers []string
	Rows    [][]string
}

// Format identifies the detected source format.
type Format string

const (
	FormatCSV  Format = "csv"
	FormatXLSX Format = "xlsx"
)

// DetectFormat reports the format of data based on its leading bytes.
func DetectFormat(data []byte) Format {
	if bytes.HasPrefix(data, zipSignature) {
		return FormatXLSX
	}
	return FormatCSV
}

// ReadTable parses data as XLSX or CSV, whichever its content indicates.
func ReadTable(data []byte) (Table, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Table{}, ErrEmptyTable
	}
	if bytes.HasPrefix(data, oleSignature) {
		return Table{}, fmt.Errorf("%w: legacy .xls workbooks are not supported, save as .xlsx", ErrUnreadableWorkbook)
	}

	if DetectFormat(data) == FormatXLSX {
		return readXLSX(data)
	}
	return readCSV(data)
}

// readXLSX reads the first sheet of a workbook using raw cell values, so a
// PCR column formatted as a percentage still yields its stored number.
func readXLSX(data []byte) (Table, error) {
	wb, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return Table{}, fmt.Errorf("%w: %v", ErrUnreadableWorkbook, err)
	}
	defer wb.Close()

	sheets := wb.GetSheetList()
	if len(sheets) == 0 {
		return Table{}, ErrEmptyTable
	}

	rows, err := wb.GetRows(sheets[0], excelize.Options{RawCellValue: true})
	if err != nil {
		return Table{}, fmt.Errorf("%w: read sheet %q: %v", ErrUnreadableWorkbook, sheets[0], err)
	}

	return toTable(rows)
}

func readCSV(data []byte) (Table, error) {
	decoded := transform.NewReader(bytes.NewReader(data), unicode.BOMOverride(unicode.UTF8.NewDecoder()))

	reader := csv.NewReader(decoded)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	var rows [][]string
	for {
		rec, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return Table{}, fmt.Errorf("%w: %v", ErrInvalidCSV, err)
		}
		rows = append(rows, rec)
	}

	return toTable(rows)
}

func toTable(rows [][]string) (Table, error) {
	headerAt := -1
	for i, row := range rows {
		if !isBlankRow(row) {
			headerAt = i
			break
		}
	}
	if headerAt < 0 {
		return Table{}, ErrEmptyTable
	}

	t := Table{Headers: trimAll(rows[headerAt])}
	for _, row := range rows[headerAt+1:] {
		if isBlankRow(row) {
			continue
		}
		t.Rows = append(t.Rows, row)
	}
	return t, nil
}

func isBlankRow(row []string) bool {
	for _, c := range row {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
