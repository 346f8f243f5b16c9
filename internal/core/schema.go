package core

// schema.go resolves inconsistent spreadsheet headers to canonical field names.
//
// Each canonical field carries a priority-ordered alias list. Resolution is
// independent per field: the first alias (in list order, not column order)
// present in the header set wins. Exact matches across the whole alias list
// are tried before any case-insensitive match.

import "strings"

// FieldAliases lists the accepted headers for one canonical field, most
// preferred first.
type FieldAliases struct {
	Canonical string
	Aliases   []string
}

// AliasTable is the ordered set of required canonical fields for one kind
// of source.
type AliasTable struct {
	Kind   SchemaKind
	Fields []FieldAliases
}

// CatalogAliases is the alias table for the parts catalog.
//
// Resolve goes further than exact header matching: when no alias of a field
// matches exactly, a case-insensitive pass runs, so "vendor part number" or
// "WEIGHT (G)" still resolve. An exact match of any alias always beats a
// folded one. The same applies to PurchaseAliases, where "part number,QTY"
// loads instead of failing with a schema error.
var CatalogAliases = AliasTable{
	Kind: SchemaCatalog,
	Fields: []FieldAliases{
		{
			Canonical: FieldPartNumber,
			Aliases: []string{
				"Vendor Part Number", "Vendor Part #", "Vendor Part No", "Part Number",
				"Part #", "VendorPN", "Vendor PN",
			},
		},
		{
			Canonical: FieldDescription,
			Aliases:   []string{"Item Description", "Description", "Item", "Item Desc"},
		},
		{
			Canonical: FieldWeightGrams,
			Aliases: []string{
				"Weight (g)", "Gram Weight", "Gram Weight (g)", "Grams", "Weight Grams",
				"Weight_g", "Weight",
			},
		},
		{
			Canonical: FieldPCRPercent,
			Aliases:   []string{"PCR %", "PCR%", "PCR Content", "PCR Content %", "% PCR", "Post-Consumer %"},
		},
	},
}

// PurchaseAliases is the alias table for the purchase ledger.
var PurchaseAliases = AliasTable{
	Kind: SchemaPurchase,
	Fields: []FieldAliases{
		{
			Canonical: FieldPartNumber,
			Aliases:   []string{"Vendor Part Number", "Part Number", "Part #", "VendorPN", "Vendor PN"},
		},
		{
			Canonical: FieldQuantity,
			Aliases:   []string{"Quantity", "Qty", "Quantity Purchased", "Units", "Count"},
		},
	},
}

// AliasesFor returns the accepted aliases for a canonical field, or nil.
func (a AliasTable) AliasesFor(canonical string) []string {
	for _, f := range a.Fields {
		if f.Canonical == canonical {
			return f.Aliases
		}
	}
	return nil
}

// Resolve maps each canonical field to the column index of its winning alias.
// Returns a *SchemaError listing every unresolved field.
func (a AliasTable) Resolve(headers []string) (HeaderIndex, error) {
	exact := make(map[string]int, len(headers))
	folded := make(map[string]int, len(headers))
	for i := len(headers) - 1; i >= 0; i-- {
		// Iterating backwards so the first occurrence of a duplicate header wins.
		h := strings.TrimSpace(headers[i])
		exact[h] = i
		folded[strings.ToLower(h)] = i
	}

	idx := make(HeaderIndex, len(a.Fields))
	var missing []string

	for _, f := range a.Fields {
		pos, ok := lookupAlias(f.Aliases, exact, false)
		if !ok {
			pos, ok = lookupAlias(f.Aliases, folded, true)
		}
		if !ok {
			missing = append(missing, f.Canonical)
			continue
		}
		idx[f.Canonical] = pos
	}

	if len(missing) > 0 {
		accepted := make(map[string][]string, len(missing))
		for _, m := range missing {
			accepted[m] = a.AliasesFor(m)
		}
		return nil, &SchemaError{
			Kind:     a.Kind,
			Missing:  missing,
			Found:    trimAll(headers),
			Accepted: accepted,
		}
	}

	return idx, nil
}

func lookupAlias(aliases []string, headers map[string]int, fold bool) (int, bool) {
	for _, alias := range aliases {
		key := alias
		if fold {
			key = strings.ToLower(alias)
		}
		if pos, ok := headers[key]; ok {
			return pos, true
		}
	}
	return 0, false
}

// Normalize returns a copy of t whose resolved columns are renamed to their
// canonical names. Unresolved optional columns keep their trimmed header.
func (a AliasTable) Normalize(t Table) (Table, HeaderIndex, error) {
	idx, err := a.Resolve(t.Headers)
	if err != nil {
		return Table{}, nil, err
	}

	headers := trimAll(t.Headers)
	for canonical, pos := range idx {
		headers[pos] = canonical
	}

	return Table{Headers: headers, Rows: t.Rows}, idx, nil
}

// HeaderIndex maps canonical field names to their position in a row.
type HeaderIndex map[string]int

// Cell returns the cleaned value of a canonical field in row, or "" when the
// row is shorter than the header.
func (h HeaderIndex) Cell(row []string, field string) string {
	pos, ok := h[field]
	if !ok || pos >= len(row) {
		return ""
	}
	return CleanCell(row[pos])
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}
