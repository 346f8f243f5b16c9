package cli

import (
	"fmt"
	"os"

	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/spf13/cobra"
)

func newTemplateCmd() *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "template",
		Short: "Write the purchase ledger template",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			data := core.PurchaseTemplateCSV()
			if output == "" {
				_, err := cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return fmt.Errorf("--output: %w", err)
			}
			cmd.PrintErrf("Wrote %s\n", output)
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "write the template to a file instead of stdout")
	return cmd
}
