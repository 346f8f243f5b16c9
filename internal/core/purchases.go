package core

// purchases.go loads the optional purchase ledger.
//
// Unlike the catalog, a ledger row is never dropped for a bad quantity: a
// missing or non-numeric quantity counts as zero. Rows for the same part
// number are combined by summing, and each aggregate is clamped at zero so
// returns can net against purchases without producing a negative total.

import "fmt"

// LoadPurchases parses a purchase ledger into aggregated purchase records.
// A ledger without part number or quantity columns returns a *SchemaError
// of kind SchemaPurchase.
func LoadPurchases(data []byte) (*PurchaseLedger, error) {
	t, err := ReadTable(data)
	if err != nil {
		return nil, fmt.Errorf("read purchases: %w", err)
	}
	return PurchasesFromTable(t)
}

// PurchasesFromTable builds an aggregated ledger from an already parsed table.
func PurchasesFromTable(t Table) (*PurchaseLedger, error) {
	normalized, idx, err := PurchaseAliases.Normalize(t)
	if err != nil {
		return nil, err
	}

	ledger := &PurchaseLedger{}
	ledger.Report.TotalRows = len(normalized.Rows)

	totals := make(map[string]float64)
	var order []string

	for _, row := range normalized.Rows {
		pn := idx.Cell(row, FieldPartNumber)
		if pn == "" {
			ledger.Report.MissingPartNumber++
			continue
		}

		qty, ok := ParseNumeric(idx.Cell(row, FieldQuantity))
		if !ok {
			ledger.Report.InvalidQuantity++
			qty = 0
		}

		if _, seen := totals[pn]; seen {
			ledger.Report.DuplicatesCombined++
		} else {
			order = append(order, pn)
		}
		totals[pn] += qty
	}

	ledger.Records = make([]PurchaseRecord, 0, len(order))
	for _, pn := range order {
		qty := totals[pn]
		if qty < 0 {
			ledger.Report.NegativeQuantity++
			qty = 0
		}
		ledger.Records = append(ledger.Records, PurchaseRecord{PartNumber: pn, Quantity: qty})
	}
	ledger.Report.Kept = ledger.Report.TotalRows - ledger.Report.MissingPartNumber

	return ledger, nil
}
