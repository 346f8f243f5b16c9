package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/spf13/cobra"
)

// Output formats for the run command.
const (
	formatTable = "table"
	formatJSON  = "json"
	formatCSV   = "csv"
)

type runFlags struct {
	catalog   string
	purchases string
	virginEF  float64
	benefit   float64
	baseline  float64
	search    string
	selected  []string
	format    string
	output    string
}

func newRunCmd(a *app) *cobra.Command {
	var flags runFlags

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Calculate avoided CO₂e for a catalog and purchase ledger",
		Long: `Loads the parts catalog (the configured default when --catalog is omitted),
applies purchase quantities, narrows the records by --search and --select,
and reports avoided CO₂e against the current baseline.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCalculation(cmd, a, flags)
		},
	}

	f := cmd.Flags()
	f.StringVar(&flags.catalog, "catalog", "", "catalog file (.xlsx or .csv); default from CATALOG_DEFAULT_PATH")
	f.StringVar(&flags.purchases, "purchases", "", "purchase ledger file (.xlsx or .csv)")
	f.Float64Var(&flags.virginEF, "virgin-ef", 0, "virgin PET emission factor, kg CO₂e/kg")
	f.Float64Var(&flags.benefit, "benefit", 0, "PCR conversion benefit, kg CO₂e/kg")
	f.Float64Var(&flags.baseline, "baseline", 0, "current baseline PCR %")
	f.StringVar(&flags.search, "search", "", "case-insensitive part number or description filter")
	f.StringSliceVar(&flags.selected, "select", nil, "part numbers to include (default: every visible part)")
	f.StringVarP(&flags.format, "format", "f", formatTable, "output format: table, json or csv")
	f.StringVarP(&flags.output, "output", "o", "", "write output to a file instead of stdout")

	return cmd
}

func runCalculation(cmd *cobra.Command, a *app, flags runFlags) error {
	switch flags.format {
	case formatTable, formatJSON, formatCSV:
	default:
		return fmt.Errorf("--format must be table, json or csv, got %q", flags.format)
	}

	catalog, err := readInput("catalog", flags.catalog)
	if err != nil {
		return err
	}
	purchases, err := readInput("purchases", flags.purchases)
	if err != nil {
		return err
	}

	factors := a.svc.DefaultFactors()
	if cmd.Flags().Changed("virgin-ef") {
		factors.VirginEF = flags.virginEF
	}
	if cmd.Flags().Changed("benefit") {
		factors.PCRConversionBenefit = flags.benefit
	}
	if cmd.Flags().Changed("baseline") {
		factors.CurrentBaselinePCRPercent = flags.baseline
	}

	run, err := a.svc.Run(cmdContext(cmd), core.RunRequest{
		Catalog:   catalog,
		Purchases: purchases,
		Factors:   &factors,
		Search:    flags.search,
		Selected:  flags.selected,
	})
	if err != nil {
		return userError(err)
	}

	out := cmd.OutOrStdout()
	if flags.output != "" {
		file, err := os.Create(flags.output)
		if err != nil {
			return fmt.Errorf("--output: %w", err)
		}
		defer file.Close()
		out = file
	}

	switch flags.format {
	case formatJSON:
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(run)
	case formatCSV:
		return core.WriteDetailCSV(out, run.Result.Details)
	default:
		return writeRunTable(out, run)
	}
}

// writeRunTable prints the headline metrics, warnings and detail rows.
func writeRunTable(out io.Writer, run *core.RunResult) error {
	s := run.Summary
	w := tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', 0)

	fmt.Fprintf(w, "Total weight\t%s\n", s.TotalPounds)
	fmt.Fprintf(w, "PCR weight\t%s\n", s.PCRPounds)
	fmt.Fprintf(w, "Avoided CO₂e\t%s\n", s.AvoidedTons)
	fmt.Fprintf(w, "Baseline avoided\t%s\n", s.BaselineTons)
	fmt.Fprintf(w, "Advantage\t%s\n", s.AdvantageTons)
	fmt.Fprintf(w, "Parts\t%s\n", s.SelectedParts)
	fmt.Fprintf(w, "Units\t%s\n", s.SelectedQuantity)
	if err := w.Flush(); err != nil {
		return err
	}

	if dropped := run.CatalogReport.Dropped(); dropped > 0 {
		fmt.Fprintf(out, "\nWarning: %d catalog rows skipped (missing part number, weight or PCR%%)\n", dropped)
	}
	if run.SkippedPurchaseRows > 0 {
		fmt.Fprintf(out, "\nWarning: %d purchase rows skipped (missing part number)\n", run.SkippedPurchaseRows)
	}
	if run.UnmatchedCount > 0 {
		list := strings.Join(run.Unmatched, ", ")
		if run.UnmatchedTruncated {
			list += ", …"
		}
		fmt.Fprintf(out, "\nWarning: %d purchased part numbers not in catalog: %s\n", run.UnmatchedCount, list)
	}

	fmt.Fprintln(out)
	w = tabwriter.NewWriter(out, 0, 0, tabPadding, ' ', tabwriter.AlignRight)
	fmt.Fprintln(w, strings.Join(core.DetailColumns, "\t")+"\t")
	for _, d := range run.Result.Details {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t\n",
			d.PartNumber, d.Description,
			core.FormatFloat(d.Quantity, 0), core.FormatFloat(d.WeightGrams, 2),
			core.FormatFloat(d.PCRPercent, 1), core.FormatFloat(d.TotalWeightLb, 2),
			core.FormatFloat(d.PCRWeightLb, 2), core.FormatFloat(d.AvoidedCO2MetricTons, 4))
	}
	return w.Flush()
}
