package core

import (
	"sort"
	"strings"
)

// Search returns the records whose part number or description contains
// query, case-insensitively. An empty query returns all records.
func Search(records []PartRecord, query string) []PartRecord {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return records
	}

	var out []PartRecord
	for _, r := range records {
		if strings.Contains(strings.ToLower(r.PartNumber), q) ||
			strings.Contains(strings.ToLower(r.Description), q) {
			out = append(out, r)
		}
	}
	return out
}

// Select returns copies of the records whose part number is in partNumbers,
// sorted by part number. Catalog rows sharing a part number are all returned.
func Select(records []PartRecord, partNumbers []string) []PartRecord {
	want := make(map[string]struct{}, len(partNumbers))
	for _, pn := range partNumbers {
		pn = strings.TrimSpace(pn)
		if pn != "" {
			want[pn] = struct{}{}
		}
	}

	var out []PartRecord
	for _, r := range records {
		if _, ok := want[r.PartNumber]; ok {
			out = append(out, r)
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PartNumber < out[j].PartNumber
	})
	return out
}

// RecordEdit overrides editable fields of selected records by part number.
// Nil fields are left unchanged.
type RecordEdit struct {
	PartNumber  string   `json:"partNumber"`
	Quantity    *float64 `json:"quantity,omitempty"`
	WeightGrams *float64 `json:"weightGrams,omitempty"`
	PCRPercent  *float64 `json:"pcrPercent,omitempty"`
}

// ApplyEdits returns a copy of records with edits applied and every record
// re-sanitized, so PCR% stays within [0, 100] after free-form edits.
func ApplyEdits(records []PartRecord, edits []RecordEdit) []PartRecord {
	byPN := make(map[string]RecordEdit, len(edits))
	for _, e := range edits {
		byPN[strings.TrimSpace(e.PartNumber)] = e
	}

	out := make([]PartRecord, len(records))
	for i, r := range records {
		if e, ok := byPN[r.PartNumber]; ok {
			if e.Quantity != nil {
				r.Quantity = *e.Quantity
			}
			if e.WeightGrams != nil {
				r.WeightGrams = *e.WeightGrams
			}
			if e.PCRPercent != nil {
				r.PCRPercent = *e.PCRPercent
			}
		}
		out[i] = SanitizeRecord(r)
	}
	return out
}
