package templates

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/JonMunkholm/pcrcalc/internal/core"
)

func TestResults(t *testing.T) {
	run := &core.RunResult{
		CatalogReport:       core.LoadReport{TotalRows: 4, Kept: 3},
		SkippedPurchaseRows: 2,
		UnmatchedCount:      2,
		Unmatched:           []string{"<script>", "NOPE"},
		UnmatchedTruncated:  true,
		Result: core.Result{Details: []core.DetailRow{
			{PartNumber: "ABC-1", Description: "Jar & lid", Quantity: 1000, WeightGrams: 50, PCRPercent: 40, AvoidedCO2MetricTons: 0.034},
		}},
		Summary: core.Summary{AvoidedTons: "0.0340 t"},
	}

	var buf bytes.Buffer
	if err := Results(ResultsData{Run: run}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		`id="results"`,
		"Avoided CO₂e<b>0.0340 t</b>",
		"1 catalog rows skipped",
		"2 purchase rows skipped (missing part number).",
		"2 purchased part numbers are not in the catalog:",
		"&lt;script&gt;",
		"<li>…</li>",
		"Jar &amp; lid",
		`<td class="num">1,000</td>`,
		`<td class="num">0.0340</td>`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("results missing %q:\n%s", want, body)
		}
	}
	if strings.Contains(body, "<script>") {
		t.Error("unmatched part number was not escaped")
	}
}

func TestResults_NoWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := Results(ResultsData{Run: &core.RunResult{}}).Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	if strings.Contains(buf.String(), `class="warn"`) {
		t.Errorf("unexpected warning: %s", buf.String())
	}
}

func TestLayout(t *testing.T) {
	var buf bytes.Buffer
	page := Layout("A <title>", Join(ErrorAlert("Bad file", "Try again", "FILE001"), IndexPage(IndexData{
		Factors:     core.DefaultFactors(),
		CatalogPath: "CSGG.xlsx",
		MaxFileSize: 10 << 20,
	})))
	if err := page.Render(context.Background(), &buf); err != nil {
		t.Fatalf("Render() error = %v", err)
	}
	body := buf.String()

	for _, want := range []string{
		"<title>A &lt;title&gt;</title>",
		"<style>body{",
		`role="alert"`,
		"Code: FILE001",
		"default CSGG.xlsx)",
		"max 10 MB per file",
		`name="pcr_benefit" value="1.7"`,
	} {
		if !strings.Contains(body, want) {
			t.Errorf("page missing %q", want)
		}
	}
	if !strings.HasSuffix(body, "</body></html>") {
		t.Errorf("page does not close the document: %q", body[len(body)-20:])
	}
}
