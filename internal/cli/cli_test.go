package cli

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/JonMunkholm/pcrcalc/internal/core"
)

const catalogCSV = "Vendor Part Number,Item Description,Weight (g),PCR %\n" +
	"ABC-1,Jar 16oz,50,40\n" +
	"ABC-2,Lid,10,0\n" +
	"XYZ-9,Bottle,30,100\n" +
	",Orphan,5,5\n"

const purchasesCSV = "Part #,Qty\nABC-1,1000\nXYZ-9,500\nNOPE,3\n,8\n"

// fixture writes the catalog and ledger to a temp dir.
func fixture(t *testing.T) (dir, catalog, purchases string) {
	t.Helper()
	dir = t.TempDir()
	catalog = filepath.Join(dir, "catalog.csv")
	purchases = filepath.Join(dir, "purchases.csv")
	if err := os.WriteFile(catalog, []byte(catalogCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(purchases, []byte(purchasesCSV), 0o600); err != nil {
		t.Fatal(err)
	}
	return dir, catalog, purchases
}

// execute runs the root command with env and args, returning stdout and stderr.
func execute(t *testing.T, env map[string]string, args ...string) (string, string, error) {
	t.Helper()
	cmd := NewRootCmdWithEnv("test", func(k string) (string, bool) {
		v, ok := env[k]
		return v, ok
	})
	var stdout, stderr bytes.Buffer
	cmd.SetOut(&stdout)
	cmd.SetErr(&stderr)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return stdout.String(), stderr.String(), err
}

func TestRun_Table(t *testing.T) {
	_, catalog, purchases := fixture(t)

	out, _, err := execute(t, nil, "run", "--catalog", catalog, "--purchases", purchases)
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	for _, want := range []string{
		"Avoided CO₂e",
		"0.0595 t",
		"1 catalog rows skipped",
		"1 purchased part numbers not in catalog: NOPE",
		"1 purchase rows skipped (missing part number)",
		"ABC-1",
		core.ColumnAvoidedCO2,
	} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestRun_JSONDefaultCatalog(t *testing.T) {
	_, catalog, purchases := fixture(t)
	env := map[string]string{"CATALOG_DEFAULT_PATH": catalog}

	out, _, err := execute(t, env, "run", "--purchases", purchases, "--benefit", "2", "--select", "ABC-1", "-f", "json")
	if err != nil {
		t.Fatalf("run: %v", err)
	}
	var run core.RunResult
	if err := json.Unmarshal([]byte(out), &run); err != nil {
		t.Fatalf("decode: %v\n%s", err, out)
	}
	if run.Factors.PCRConversionBenefit != 2 {
		t.Errorf("benefit = %v, want 2", run.Factors.PCRConversionBenefit)
	}
	if len(run.Selected) != 1 || run.Selected[0].PartNumber != "ABC-1" {
		t.Errorf("selected = %+v", run.Selected)
	}
	if d := run.Result.Totals.AvoidedMetricTons - 0.04; d > 1e-9 || d < -1e-9 {
		t.Errorf("avoided = %v, want 0.04", run.Result.Totals.AvoidedMetricTons)
	}
}

func TestRun_CSVToFile(t *testing.T) {
	dir, catalog, purchases := fixture(t)
	outPath := filepath.Join(dir, "detail.csv")

	if _, _, err := execute(t, nil, "run", "--catalog", catalog, "--purchases", purchases, "-f", "csv", "-o", outPath); err != nil {
		t.Fatalf("run: %v", err)
	}
	data, err := os.ReadFile(outPath)
	if err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	if lines[0] != strings.Join(core.DetailColumns, ",") {
		t.Errorf("header = %q", lines[0])
	}
	if len(lines) != 4 {
		t.Errorf("lines = %d, want 4", len(lines))
	}
}

func TestRun_Errors(t *testing.T) {
	dir, catalog, _ := fixture(t)
	badCatalog := filepath.Join(dir, "bad.csv")
	if err := os.WriteFile(badCatalog, []byte("Part #,Description\nA,B\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name string
		args []string
		want string
	}{
		{"bad format", []string{"run", "--catalog", catalog, "-f", "xml"}, "--format"},
		{"missing file", []string{"run", "--catalog", filepath.Join(dir, "nope.csv")}, "--catalog"},
		{"schema error", []string{"run", "--catalog", badCatalog}, "SCH001"},
		{"bad factor", []string{"run", "--catalog", catalog, "--baseline", "120"}, "FAC001"},
		{"no default catalog", []string{"run"}, "FILE006"},
		{"positional args", []string{"run", "extra"}, "unknown command"},
	}

	env := map[string]string{"CATALOG_DEFAULT_PATH": filepath.Join(dir, "missing.xlsx")}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := execute(t, env, tt.args...)
			if err == nil {
				t.Fatal("expected error")
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error = %q, want it to contain %q", err, tt.want)
			}
		})
	}
}

func TestTemplate(t *testing.T) {
	out, _, err := execute(t, nil, "template")
	if err != nil {
		t.Fatalf("template: %v", err)
	}
	if out != string(core.PurchaseTemplateCSV()) {
		t.Errorf("template = %q", out)
	}

	path := filepath.Join(t.TempDir(), core.TemplateFileName)
	if _, stderr, err := execute(t, nil, "template", "-o", path); err != nil {
		t.Fatalf("template -o: %v", err)
	} else if !strings.Contains(stderr, "Wrote") {
		t.Errorf("stderr = %q", stderr)
	}
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := core.LoadPurchases(data); err != nil {
		t.Errorf("template does not load: %v", err)
	}
}

func TestCatalog(t *testing.T) {
	_, catalog, _ := fixture(t)

	out, _, err := execute(t, nil, "catalog", "--catalog", catalog)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	for _, want := range []string{"Rows", "Kept", "Missing part number", catalog} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestLogLevelFlag(t *testing.T) {
	_, catalog, _ := fixture(t)

	_, stderr, err := execute(t, nil, "--log-level", "debug", "catalog", "--catalog", catalog)
	if err != nil {
		t.Fatalf("catalog: %v", err)
	}
	if !strings.Contains(stderr, "catalog ready") || !strings.Contains(stderr, "level=DEBUG") {
		t.Errorf("stderr = %q", stderr)
	}
}
