// Package cli implements the pcrcalc command line: the same pipeline as the
// web UI, driven by flags and local files.
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/JonMunkholm/pcrcalc/internal/config"
	"github.com/JonMunkholm/pcrcalc/internal/core"
	"github.com/JonMunkholm/pcrcalc/internal/logging"
	"github.com/spf13/cobra"
)

const tabPadding = 2

// app carries state built once by the root command's pre-run hook.
type app struct {
	cfg *config.Config
	svc *core.Service
}

// NewRootCmd creates the root command reading configuration from the process
// environment.
func NewRootCmd(version string) *cobra.Command {
	return NewRootCmdWithEnv(version, os.LookupEnv)
}

// NewRootCmdWithEnv creates the root command with an explicit env lookup for
// tests.
func NewRootCmdWithEnv(version string, lookup func(string) (string, bool)) *cobra.Command {
	a := &app{}
	var logLevel, logFormat string

	cmd := &cobra.Command{
		Use:           "pcrcalc",
		Short:         "PCR CO₂ avoidance calculator",
		Long:          "pcrcalc estimates CO₂e avoided by post-consumer recycled packaging content.",
		Version:       version,
		SilenceUsage:  true,
		SilenceErrors: true,
		Example: `  # Calculate with the default catalog and a purchase ledger
  pcrcalc run --purchases purchases.csv

  # Use a different catalog, benefit factor and selection, as JSON
  pcrcalc run --catalog parts.xlsx --benefit 1.9 --select ABC-1,XYZ-9 --format json

  # Write the purchase ledger template
  pcrcalc template -o purchase_template.csv

  # Check how a catalog loads
  pcrcalc catalog --catalog parts.xlsx`,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.LoadWith(lookup)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.Logging.Level = logLevel
			}
			if cmd.Flags().Changed("log-format") {
				cfg.Logging.Format = logFormat
			}
			logger := logging.New(cmd.ErrOrStderr(), cfg.Logging.Level, cfg.Logging.Format)
			cmd.SetContext(logging.WithLogger(cmdContext(cmd), logger))

			svc, err := core.NewService(cfg, nil)
			if err != nil {
				return err
			}
			a.cfg, a.svc = cfg, svc
			return nil
		},
	}

	cmd.PersistentFlags().StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	cmd.PersistentFlags().StringVar(&logFormat, "log-format", "text", "log format (text, json)")
	cmd.AddCommand(newRunCmd(a), newTemplateCmd(), newCatalogCmd(a))

	return cmd
}

// cmdContext returns the command context tagged with the CLI channel.
func cmdContext(cmd *cobra.Command) context.Context {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	return core.ContextWithChannel(ctx, core.ChannelCLI)
}

// readInput reads a file flag. An empty path yields nil.
func readInput(flag, path string) ([]byte, error) {
	if path == "" {
		return nil, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", flag, err)
	}
	return data, nil
}

// userError decorates pipeline errors with their coded user message.
func userError(err error) error {
	if !core.IsUserFacing(err) {
		return err
	}
	msg := core.MapError(err)
	out := fmt.Sprintf("%s (Code: %s). %s", msg.Message, msg.Code, msg.Action)
	for _, d := range msg.Details {
		out += "\n  " + d
	}
	return fmt.Errorf("%s\n%w", out, err)
}
