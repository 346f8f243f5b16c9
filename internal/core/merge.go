package core

import "sort"

// MergeResult is the working record set produced by a merge.
type MergeResult struct {
	Records   []PartRecord `json:"records"`
	Matched   int          `json:"matched"`
	Unmatched []string     `json:"unmatched"`
}

// MergeQuantities left-joins ledger quantities onto the catalog records.
//
// catalog must be the catalog's own records, not the output of an earlier
// merge: a part the ledger does not list keeps whatever quantity its input
// row carries. Merging a second ledger against the catalog therefore discards
// the first ledger's quantities rather than accumulating them.
//
// Every catalog row is kept and a matching purchase quantity replaces the
// row's quantity outright. A nil ledger returns an unchanged copy of the
// catalog. The input slice is never modified.
func MergeQuantities(catalog []PartRecord, ledger *PurchaseLedger) MergeResult {
	out := MergeResult{Records: make([]PartRecord, len(catalog))}
	copy(out.Records, catalog)

	if ledger == nil {
		return out
	}

	qty := ledger.Quantities()
	known := make(map[string]struct{}, len(catalog))

	for i := range out.Records {
		rec := &out.Records[i]
		known[rec.PartNumber] = struct{}{}
		if q, ok := qty[rec.PartNumber]; ok {
			rec.Quantity = q
			out.Matched++
		}
	}

	for _, p := range ledger.Records {
		if _, ok := known[p.PartNumber]; !ok {
			out.Unmatched = append(out.Unmatched, p.PartNumber)
		}
	}
	sort.Strings(out.Unmatched)

	return out
}

// UnmatchedPreviewLimit caps how many unmatched part numbers are shown.
const UnmatchedPreviewLimit = 50

// UnmatchedPreview returns at most UnmatchedPreviewLimit part numbers and
// whether the list was truncated.
func UnmatchedPreview(unmatched []string) ([]string, bool) {
	if len(unmatched) <= UnmatchedPreviewLimit {
		return unmatched, false
	}
	return unmatched[:UnmatchedPreviewLimit], true
}
