package core

// catalog.go loads the parts catalog.
//
// A catalog row is kept only if its part number, weight and PCR% are all
// present and numeric. Excluded rows are counted in the LoadReport but never
// fail the batch; only a missing required column does.

import "fmt"

// LoadCatalog parses a catalog spreadsheet into part records.
// Schema errors are returned as *SchemaError and abort the whole load.
func LoadCatalog(data []byte) (*Catalog, error) {
	t, err := ReadTable(data)
	if err != nil {
		return nil, fmt.Errorf("read catalog: %w", err)
	}
	return CatalogFromTable(t)
}

// CatalogFromTable builds a catalog from an already parsed table.
func CatalogFromTable(t Table) (*Catalog, error) {
	normalized, idx, err := CatalogAliases.Normalize(t)
	if err != nil {
		return nil, err
	}

	cat := &Catalog{
		Headers: trimAll(t.Headers),
		Records: make([]PartRecord, 0, len(normalized.Rows)),
	}
	cat.Report.TotalRows = len(normalized.Rows)

	for _, row := range normalized.Rows {
		rec, ok := buildPartRecord(row, idx, &cat.Report)
		if !ok {
			continue
		}
		cat.Records = append(cat.Records, rec)
	}
	cat.Report.Kept = len(cat.Records)

	return cat, nil
}

// buildPartRecord converts one row. The report records the first reason a
// row was excluded.
func buildPartRecord(row []string, idx HeaderIndex, report *LoadReport) (PartRecord, bool) {
	pn := idx.Cell(row, FieldPartNumber)
	if pn == "" {
		report.MissingPartNumber++
		return PartRecord{}, false
	}

	weight, ok := ParseNumeric(idx.Cell(row, FieldWeightGrams))
	if !ok {
		report.InvalidWeight++
		return PartRecord{}, false
	}

	pcr, ok := ParseNumeric(idx.Cell(row, FieldPCRPercent))
	if !ok {
		report.InvalidPCR++
		return PartRecord{}, false
	}

	clamped := ClampPercent(pcr)
	if clamped != pcr {
		report.ClampedPCR++
	}

	return PartRecord{
		PartNumber:  pn,
		Description: idx.Cell(row, FieldDescription),
		WeightGrams: weight,
		PCRPercent:  clamped,
		Quantity:    0,
	}, true
}
