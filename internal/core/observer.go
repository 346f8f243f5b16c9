package core

import "time"

// Catalog load outcomes reported to an Observer.
const (
	OutcomeLoaded = "loaded"
	OutcomeCached = "cached"
	OutcomeError  = "error"
)

// Pipeline stage names reported to an Observer.
const (
	StageCatalog   = "catalog"
	StagePurchases = "purchases"
	StageMerge     = "merge"
	StageCalculate = "calculate"
)

// Observer receives pipeline events. Implementations must be safe for
// concurrent use; the metrics package provides the Prometheus one.
type Observer interface {
	CatalogLoaded(outcome string, report LoadReport)
	PurchasesLoaded(outcome string, report LoadReport)
	Merged(matched, unmatched int)
	Calculated(parts int, avoidedMetricTons float64)
	StageDuration(stage string, d time.Duration)
}

// NopObserver discards every event.
type NopObserver struct{}

func (NopObserver) CatalogLoaded(string, LoadReport)    {}
func (NopObserver) PurchasesLoaded(string, LoadReport)  {}
func (NopObserver) Merged(int, int)                     {}
func (NopObserver) Calculated(int, float64)             {}
func (NopObserver) StageDuration(string, time.Duration) {}
