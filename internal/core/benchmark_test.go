package core

import (
	"bytes"
	"fmt"
	"testing"
)

// ============================================================================
// Conversion Benchmarks
// ============================================================================

// BenchmarkParseNumeric covers the decorated formats seen in catalog exports.
func BenchmarkParseNumeric(b *testing.B) {
	testCases := []string{
		"123",
		"-456.78",
		"$1,234.56",
		"(123.45)",
		"40%",
		"  999.99  ",
		"1.5e3",
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		for _, tc := range testCases {
			ParseNumeric(tc)
		}
	}
}

// ============================================================================
// Pipeline Benchmarks
// ============================================================================

func benchCatalog(rows int) []byte {
	var buf bytes.Buffer
	buf.WriteString("Vendor Part Number,Item Description,Weight (g),PCR %\n")
	for i := 0; i < rows; i++ {
		fmt.Fprintf(&buf, "P-%06d,Part %d,%d.5,%d\n", i, i, i%200, i%101)
	}
	return buf.Bytes()
}

// BenchmarkLoadCatalog measures a cold catalog parse.
func BenchmarkLoadCatalog(b *testing.B) {
	data := benchCatalog(10000)
	b.SetBytes(int64(len(data)))

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		if _, err := LoadCatalog(data); err != nil {
			b.Fatal(err)
		}
	}
}

// BenchmarkCatalogCache_Hit measures the cost of hashing for a cache hit.
func BenchmarkCatalogCache_Hit(b *testing.B) {
	data := benchCatalog(10000)
	cache, _ := NewCatalogCache(4)
	cache.Load(data)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		cache.Load(data)
	}
}

// BenchmarkCalculate measures merge and calculation over a large selection.
func BenchmarkCalculate(b *testing.B) {
	cat, err := LoadCatalog(benchCatalog(10000))
	if err != nil {
		b.Fatal(err)
	}
	f := DefaultFactors()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		Calculate(cat.Records, f)
	}
}
