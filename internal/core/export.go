package core

import (
	"bytes"
	"encoding/csv"
	"io"
	"strconv"
)

// Purchase template contents.
const (
	TemplatePartNumber = "EXAMPLE-123"
	TemplateQuantity   = 1000
	TemplateFileName   = "purchase_template.csv"
)

// PurchaseTemplateCSV returns a ledger template with one example row.
// It parses back through LoadPurchases unchanged.
func PurchaseTemplateCSV() []byte {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	w.Write([]string{FieldPartNumber, FieldQuantity})
	w.Write([]string{TemplatePartNumber, strconv.Itoa(TemplateQuantity)})
	w.Flush()
	return buf.Bytes()
}

// WriteDetailCSV writes the detail table with the DetailColumns header.
func WriteDetailCSV(w io.Writer, details []DetailRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(DetailColumns); err != nil {
		return err
	}

	for _, d := range details {
		rec := []string{
			d.PartNumber,
			d.Description,
			formatFloat(d.Quantity),
			formatFloat(d.WeightGrams),
			formatFloat(d.PCRPercent),
			formatFloat(d.TotalWeightLb),
			formatFloat(d.PCRWeightLb),
			formatFloat(d.AvoidedCO2MetricTons),
		}
		if err := cw.Write(rec); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
