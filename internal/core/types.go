// Package core provides the catalog ingestion, quantity merge and emissions
// calculation logic. This package has no UI dependencies and can be used by
// any frontend.
package core

// Canonical field names. These are also the column names of the detail
// table handed to rendering collaborators.
const (
	FieldPartNumber  = "Vendor Part Number"
	FieldDescription = "Item Description"
	FieldWeightGrams = "Weight (g)"
	FieldPCRPercent  = "PCR %"
	FieldQuantity    = "Quantity"
)

// Detail table column names that are not canonical input fields.
const (
	ColumnTotalWeightLb = "Total Weight (lb)"
	ColumnPCRWeightLb   = "PCR Weight (lb)"
	ColumnAvoidedCO2    = "Avoided CO₂ (metric tons)"
)

// DetailColumns is the ordered column contract of the detail table.
var DetailColumns = []string{
	FieldPartNumber,
	FieldDescription,
	FieldQuantity,
	FieldWeightGrams,
	FieldPCRPercent,
	ColumnTotalWeightLb,
	ColumnPCRWeightLb,
	ColumnAvoidedCO2,
}

// PartRecord is one catalog row after normalization and validation.
type PartRecord struct {
	PartNumber  string  `json:"partNumber"`
	Description string  `json:"description"`
	WeightGrams float64 `json:"weightGrams"`
	PCRPercent  float64 `json:"pcrPercent"`
	Quantity    float64 `json:"quantity"`
}

// PurchaseRecord is one aggregated purchase ledger entry.
type PurchaseRecord struct {
	PartNumber string  `json:"partNumber"`
	Quantity   float64 `json:"quantity"`
}

// LoadReport summarizes what a loader kept and why rows were excluded.
// Excluded rows are not errors; they are reported for display only.
type LoadReport struct {
	TotalRows          int `json:"totalRows"`
	Kept               int `json:"kept"`
	MissingPartNumber  int `json:"missingPartNumber"`
	InvalidWeight      int `json:"invalidWeight"`
	InvalidPCR         int `json:"invalidPcr"`
	ClampedPCR         int `json:"clampedPcr"`
	InvalidQuantity    int `json:"invalidQuantity"`
	NegativeQuantity   int `json:"negativeQuantity"`
	DuplicatesCombined int `json:"duplicatesCombined"`
}

// Dropped returns the number of rows excluded from the record set.
func (r LoadReport) Dropped() int {
	return r.TotalRows - r.Kept
}

// Catalog is the immutable result of a catalog load.
type Catalog struct {
	Records []PartRecord `json:"records"`
	Report  LoadReport   `json:"report"`
	// Headers are the trimmed headers found in the source.
	Headers []string `json:"headers"`
}

// PartNumbers returns the set of part numbers present in the catalog.
func (c *Catalog) PartNumbers() map[string]struct{} {
	set := make(map[string]struct{}, len(c.Records))
	for _, r := range c.Records {
		set[r.PartNumber] = struct{}{}
	}
	return set
}

// PurchaseLedger is the aggregated result of a purchase ledger load.
type PurchaseLedger struct {
	Records []PurchaseRecord `json:"records"`
	Report  LoadReport       `json:"report"`
}

// Quantities returns the ledger as a part number to quantity lookup.
func (l *PurchaseLedger) Quantities() map[string]float64 {
	m := make(map[string]float64, len(l.Records))
	for _, r := range l.Records {
		m[r.PartNumber] = r.Quantity
	}
	return m
}
