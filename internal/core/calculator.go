package core

// calculator.go turns a selection of records into avoided-CO₂ figures.
//
// All weights flow grams → pounds → kilograms using the exact avoirdupois
// constants, then kilograms × conversion benefit gives kg CO₂e avoided,
// reported in metric tons. Totals are sums of the per-record values.

import (
	"errors"
	"fmt"
	"math"
)

// Unit constants (exact).
const (
	GramsPerLb = 453.59237
	KgPerLb    = 0.45359237
	KgPerTon   = 1000.0
)

// EmissionFactors are the methodology inputs for a calculation.
type EmissionFactors struct {
	// VirginEF is kg CO₂e per kg of virgin PET. Informational only.
	VirginEF float64 `json:"virginEf"`

	// PCRConversionBenefit is kg CO₂e avoided per kg converted from virgin to PCR.
	PCRConversionBenefit float64 `json:"pcrConversionBenefit"`

	// CurrentBaselinePCRPercent is the customer's existing average PCR%.
	CurrentBaselinePCRPercent float64 `json:"currentBaselinePcrPercent"`
}

// DefaultFactors returns the factor values used when none are configured.
func DefaultFactors() EmissionFactors {
	return EmissionFactors{
		VirginEF:                  2.15,
		PCRConversionBenefit:      1.70,
		CurrentBaselinePCRPercent: 0,
	}
}

// Validate reports every factor outside its allowed range.
func (f EmissionFactors) Validate() error {
	var errs []error
	if !isFinite(f.VirginEF) || f.VirginEF < 0 {
		errs = append(errs, fmt.Errorf("virgin EF (%v) must be >= 0", f.VirginEF))
	}
	if !isFinite(f.PCRConversionBenefit) || f.PCRConversionBenefit < 0 {
		errs = append(errs, fmt.Errorf("PCR conversion benefit (%v) must be >= 0", f.PCRConversionBenefit))
	}
	if !isFinite(f.CurrentBaselinePCRPercent) || f.CurrentBaselinePCRPercent < 0 || f.CurrentBaselinePCRPercent > 100 {
		errs = append(errs, fmt.Errorf("baseline PCR%% (%v) must be 0-100", f.CurrentBaselinePCRPercent))
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvalidFactors, errors.Join(errs...))
	}
	return nil
}

// DetailRow is the per-record output of a calculation.
type DetailRow struct {
	PartNumber           string  `json:"partNumber"`
	Description          string  `json:"description"`
	Quantity             float64 `json:"quantity"`
	WeightGrams          float64 `json:"weightGrams"`
	PCRPercent           float64 `json:"pcrPercent"`
	TotalWeightLb        float64 `json:"totalWeightLb"`
	PCRWeightLb          float64 `json:"pcrWeightLb"`
	PCRWeightKg          float64 `json:"pcrWeightKg"`
	AvoidedCO2MetricTons float64 `json:"avoidedCo2MetricTons"`
}

// Totals are the aggregate metrics of a calculation.
type Totals struct {
	Parts                     int     `json:"parts"`
	Quantity                  float64 `json:"quantity"`
	TotalWeightLb             float64 `json:"totalWeightLb"`
	TotalWeightKg             float64 `json:"totalWeightKg"`
	PCRWeightLb               float64 `json:"pcrWeightLb"`
	PCRWeightKg               float64 `json:"pcrWeightKg"`
	AvoidedMetricTons         float64 `json:"avoidedMetricTons"`
	BaselinePCRKg             float64 `json:"baselinePcrKg"`
	BaselineAvoidedMetricTons float64 `json:"baselineAvoidedMetricTons"`
	AdvantageMetricTons       float64 `json:"advantageMetricTons"`
}

// Result is the full output of Calculate.
type Result struct {
	Factors EmissionFactors `json:"factors"`
	Totals  Totals          `json:"totals"`
	Details []DetailRow     `json:"details"`
}

// SanitizeRecord re-derives safe numeric values for a record that may have
// been edited outside the loaders: invalid or negative quantity and weight
// become 0 and PCR% is clamped to [0, 100].
func SanitizeRecord(r PartRecord) PartRecord {
	r.Quantity = NonNegative(r.Quantity)
	r.WeightGrams = NonNegative(r.WeightGrams)
	r.PCRPercent = ClampPercent(r.PCRPercent)
	return r
}

// CalculateRecord computes the detail row for a single record.
func CalculateRecord(r PartRecord, benefit float64) DetailRow {
	r = SanitizeRecord(r)

	totalLb := r.WeightGrams * r.Quantity / GramsPerLb
	pcrLb := totalLb * r.PCRPercent / 100
	pcrKg := pcrLb * KgPerLb

	return DetailRow{
		PartNumber:           r.PartNumber,
		Description:          r.Description,
		Quantity:             r.Quantity,
		WeightGrams:          r.WeightGrams,
		PCRPercent:           r.PCRPercent,
		TotalWeightLb:        totalLb,
		PCRWeightLb:          pcrLb,
		PCRWeightKg:          pcrKg,
		AvoidedCO2MetricTons: pcrKg * benefit / KgPerTon,
	}
}

// Calculate computes per-record and aggregate metrics for records.
// It is a pure function of its inputs; factors are used as given.
func Calculate(records []PartRecord, f EmissionFactors) Result {
	res := Result{
		Factors: f,
		Details: make([]DetailRow, 0, len(records)),
	}

	for _, r := range records {
		d := CalculateRecord(r, f.PCRConversionBenefit)
		res.Details = append(res.Details, d)

		res.Totals.Quantity += d.Quantity
		res.Totals.TotalWeightLb += d.TotalWeightLb
		res.Totals.TotalWeightKg += d.TotalWeightLb * KgPerLb
		res.Totals.PCRWeightLb += d.PCRWeightLb
		res.Totals.PCRWeightKg += d.PCRWeightKg
		res.Totals.AvoidedMetricTons += d.AvoidedCO2MetricTons
	}
	res.Totals.Parts = len(res.Details)

	res.Totals.BaselinePCRKg = res.Totals.TotalWeightKg * f.CurrentBaselinePCRPercent / 100
	res.Totals.BaselineAvoidedMetricTons = res.Totals.BaselinePCRKg * f.PCRConversionBenefit / KgPerTon
	res.Totals.AdvantageMetricTons = res.Totals.AvoidedMetricTons - res.Totals.BaselineAvoidedMetricTons

	return res
}

func isFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}
