// Package core provides the business logic for the PCR CO₂ avoidance
// calculator.
//
// This package holds all domain logic independent of any UI or transport
// layer. The web server and the pcrcalc CLI both drive it through [Service].
//
// # Pipeline
//
// A run moves through four stages, each taking immutable inputs and
// returning new values:
//
//  1. [LoadCatalog] reads an .xlsx or .csv parts catalog, resolves its
//     headers through [CatalogAliases] and keeps rows with a part number,
//     a numeric weight and a numeric PCR%.
//  2. [LoadPurchases] reads the optional purchase ledger and sums quantities
//     per part number.
//  3. [MergeQuantities] left-joins ledger quantities onto the catalog.
//  4. [Calculate] converts grams × quantity into pounds, PCR kilograms and
//     metric tons of avoided CO₂e.
//
// [Search], [Select] and [ApplyEdits] shape the record set between merge
// and calculation.
//
// # Header Aliases
//
// Each canonical field carries a priority-ordered alias list:
//
//	{Canonical: FieldWeightGrams, Aliases: []string{"Weight (g)", "Gram Weight", ...}}
//
// The first alias present wins, exact matches before case-insensitive ones.
// A missing required field aborts the load with a [*SchemaError].
//
// # Caching
//
// [CatalogCache] memoizes parsed catalogs by the SHA-256 of their bytes.
// Invalidation is always explicit.
//
// # Error Handling
//
// Technical errors are mapped to user-facing messages using [MapError].
// Each category has a code for support reference:
//
//   - SCH001-SCH002: Missing catalog or purchase columns
//   - FILE001-FILE006: File size, format and availability
//   - FAC001: Emission factors out of range
//   - RATE001, RUN001: Throttling
package core
