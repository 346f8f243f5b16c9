package core

import (
	"fmt"
	"strings"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Sentinel errors. Compare with errors.Is.
var (
	// ErrCatalogSchema matches any *SchemaError raised by the catalog loader.
	ErrCatalogSchema = constError("catalog schema error")

	// ErrPurchaseSchema matches any *SchemaError raised by the purchase loader.
	ErrPurchaseSchema = constError("purchase schema error")

	// ErrEmptyTable indicates a source with no header row.
	ErrEmptyTable = constError("empty file")

	// ErrUnreadableWorkbook indicates an XLSX source that could not be opened.
	ErrUnreadableWorkbook = constError("unreadable workbook")

	// ErrInvalidCSV indicates a CSV source that could not be parsed.
	ErrInvalidCSV = constError("invalid csv")

	// ErrInvalidFactors indicates emission factors outside their allowed range.
	ErrInvalidFactors = constError("invalid emission factors")

	// ErrNoCatalog indicates no catalog was uploaded and the default
	// catalog file could not be read.
	ErrNoCatalog = constError("default catalog unavailable")
)

// SchemaKind identifies which alias table failed to resolve.
type SchemaKind string

const (
	SchemaCatalog  SchemaKind = "catalog"
	SchemaPurchase SchemaKind = "purchase"
)

// SchemaError reports canonical fields for which no accepted header was found.
type SchemaError struct {
	Kind     SchemaKind
	Missing  []string            // Canonical fields with zero matching aliases
	Found    []string            // Every header present in the source
	Accepted map[string][]string // Canonical field -> accepted aliases, for missing fields
}

func (e *SchemaError) Error() string {
	var b strings.Builder

	if e.Kind == SchemaPurchase {
		b.WriteString("purchase file must include columns for part number and quantity")
		fmt.Fprintf(&b, "; missing: %s", strings.Join(e.Missing, ", "))
		fmt.Fprintf(&b, "; found columns: [%s]", strings.Join(e.Found, ", "))
		fmt.Fprintf(&b, "; accepted part number headers: %s", strings.Join(PurchaseAliases.AliasesFor(FieldPartNumber), ", "))
		fmt.Fprintf(&b, "; accepted quantity headers: %s", strings.Join(PurchaseAliases.AliasesFor(FieldQuantity), ", "))
		return b.String()
	}

	fmt.Fprintf(&b, "missing required columns: [%s]", strings.Join(e.Missing, ", "))
	fmt.Fprintf(&b, "; found columns: [%s]", strings.Join(e.Found, ", "))
	return b.String()
}

// Is allows errors.Is(err, ErrCatalogSchema) and errors.Is(err, ErrPurchaseSchema).
func (e *SchemaError) Is(target error) bool {
	switch target {
	case ErrCatalogSchema:
		return e.Kind == SchemaCatalog
	case ErrPurchaseSchema:
		return e.Kind == SchemaPurchase
	}
	return false
}
