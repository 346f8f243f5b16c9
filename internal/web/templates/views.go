// Package templates renders the calculator's HTML views as templ components.
package templates

import (
	"context"
	"io"
	"strconv"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/a-h/templ"
)

const styles = `body{font-family:system-ui,sans-serif;margin:2rem auto;max-width:72rem;color:#1f2937}
h1{font-size:1.5rem}fieldset{border:1px solid #d1d5db;border-radius:.5rem;margin:0 0 1rem;padding:1rem}
label{display:block;margin:.25rem 0}input[type=number]{width:8rem}
.tiles{display:flex;gap:1rem;flex-wrap:wrap}.tile{border:1px solid #d1d5db;border-radius:.5rem;padding:.75rem 1rem}
.tile b{display:block;font-size:1.25rem}table{border-collapse:collapse;width:100%;margin-top:1rem;font-size:.875rem}
th,td{border-bottom:1px solid #e5e7eb;padding:.25rem .5rem;text-align:left}td.num{text-align:right}
.alert{border:1px solid #fca5a5;background:#fef2f2;border-radius:.5rem;padding:.75rem 1rem}
.warn{border:1px solid #fcd34d;background:#fffbeb;border-radius:.5rem;padding:.75rem 1rem;margin-top:1rem}`

const styleTag = "<style>" + styles + "</style>"

// IndexData feeds the landing page form.
type IndexData struct {
	Factors     core.EmissionFactors
	CatalogPath string
	MaxFileSize int64
}

// ResultsData feeds the results section.
type ResultsData struct {
	Run *core.RunResult
}

// Join renders components in order.
func Join(parts ...templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		for _, p := range parts {
			if err := p.Render(ctx, w); err != nil {
				return err
			}
		}
		return nil
	})
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}

func formatBytes(n int64) string {
	const mib = 1 << 20
	if n >= mib {
		return core.FormatFloat(float64(n)/mib, 0) + " MB"
	}
	return strconv.FormatInt(n, 10) + " B"
}

type tile struct {
	label string
	value string
}

func summaryTiles(s core.Summary) []tile {
	return []tile{
		{"Total weight", s.TotalPounds},
		{"PCR weight", s.PCRPounds},
		{"Avoided CO₂e", s.AvoidedTons},
		{"Baseline avoided", s.BaselineTons},
		{"Advantage", s.AdvantageTons},
		{"Parts", s.SelectedParts},
		{"Units", s.SelectedQuantity},
	}
}

// detailNumbers formats the numeric detail columns in DetailColumns order.
func detailNumbers(row core.DetailRow) []string {
	return []string{
		core.FormatFloat(row.Quantity, 0),
		core.FormatFloat(row.WeightGrams, 2),
		core.FormatFloat(row.PCRPercent, 1),
		core.FormatFloat(row.TotalWeightLb, 2),
		core.FormatFloat(row.PCRWeightLb, 2),
		core.FormatFloat(row.AvoidedCO2MetricTons, 4),
	}
}
