package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

func newCatalogCmd(a *app) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "catalog",
		Short: "Load a catalog and report what was kept and skipped",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data, err := readInput("catalog", path)
			if err != nil {
				return err
			}
			cat, _, err := a.svc.LoadCatalog(cmdContext(cmd), data)
			if err != nil {
				return userError(err)
			}

			source := path
			if source == "" {
				source = a.svc.DefaultCatalogPath()
			}
			r := cat.Report

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, tabPadding, ' ', 0)
			fmt.Fprintf(w, "Source\t%s\n", source)
			fmt.Fprintf(w, "Headers\t%s\n", strings.Join(cat.Headers, ", "))
			fmt.Fprintf(w, "Rows\t%d\n", r.TotalRows)
			fmt.Fprintf(w, "Kept\t%d\n", r.Kept)
			fmt.Fprintf(w, "Missing part number\t%d\n", r.MissingPartNumber)
			fmt.Fprintf(w, "Invalid weight\t%d\n", r.InvalidWeight)
			fmt.Fprintf(w, "Invalid PCR %%\t%d\n", r.InvalidPCR)
			fmt.Fprintf(w, "Clamped PCR %%\t%d\n", r.ClampedPCR)
			return w.Flush()
		},
	}

	cmd.Flags().StringVar(&path, "catalog", "", "catalog file (.xlsx or .csv); default from CATALOG_DEFAULT_PATH")
	return cmd
}
