package core

import (
	"math"
	"strconv"
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// printer formats integers with English thousand separators.
var printer = message.NewPrinter(language.English)

// Summary holds display-ready headline metrics.
type Summary struct {
	TotalPounds      string `json:"totalPounds"`
	PCRPounds        string `json:"pcrPounds"`
	AvoidedTons      string `json:"avoidedTons"`
	BaselineTons     string `json:"baselineTons"`
	AdvantageTons    string `json:"advantageTons"`
	SelectedParts    string `json:"selectedParts"`
	SelectedQuantity string `json:"selectedQuantity"`
}

// FormatSummary renders totals the way the results panel shows them:
// pounds with two decimals, metric tons with four.
func FormatSummary(t Totals) Summary {
	return Summary{
		TotalPounds:      FormatFloat(t.TotalWeightLb, 2) + " lb",
		PCRPounds:        FormatFloat(t.PCRWeightLb, 2) + " lb",
		AvoidedTons:      FormatFloat(t.AvoidedMetricTons, 4) + " t",
		BaselineTons:     FormatFloat(t.BaselineAvoidedMetricTons, 4) + " t",
		AdvantageTons:    FormatFloat(t.AdvantageMetricTons, 4) + " t",
		SelectedParts:    printer.Sprintf("%d", t.Parts),
		SelectedQuantity: FormatFloat(t.Quantity, 0),
	}
}

// FormatFloat formats f with precision decimals and thousand separators.
// Example: FormatFloat(1234.567, 2) returns "1,234.57".
func FormatFloat(f float64, precision int) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}

	s := strconv.FormatFloat(math.Abs(f), 'f', precision, 64)
	intPart, frac, _ := strings.Cut(s, ".")

	n, err := strconv.ParseInt(intPart, 10, 64)
	if err != nil {
		return strconv.FormatFloat(f, 'f', precision, 64)
	}

	out := printer.Sprintf("%d", n)
	if frac != "" {
		out += "." + frac
	}
	if f < 0 && strings.Trim(s, "0.") != "" {
		out = "-" + out
	}
	return out
}
