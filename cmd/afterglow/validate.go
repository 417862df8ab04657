package main

import (
	"fmt"

	"github.com/aretw0/afterglow/internal/cli"
	"github.com/aretw0/afterglow/internal/validator"
	"github.com/aretw0/afterglow/pkg/replay"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate [trace.yaml...]",
	Short: "Check the config, the layout and optional trace files",
	Long: `Loads the configuration and the layout catalog, reporting duplicate IDs and
transitions that reference unknown states. Trace files given as arguments are
parsed and every ID they mention is resolved against the layout.

With --start, every state must be reachable from the given state.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return fmt.Errorf("invalid config: %w", err)
		}
		dir, _ := cmd.Flags().GetString("dir")

		catalog, err := cli.LoadCatalog(cmd.Context(), cfg, dir)
		if err != nil {
			return fmt.Errorf("invalid layout: %w", err)
		}
		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Layout: %s\n", cli.Describe(catalog))
		for _, w := range validator.Lint(catalog) {
			fmt.Fprintf(out, "Warning: %s\n", w)
		}

		if start, _ := cmd.Flags().GetString("start"); start != "" {
			if err := validator.ValidateGraph(catalog, start); err != nil {
				return err
			}
		}

		for _, path := range args {
			trace, err := replay.LoadFile(path)
			if err != nil {
				return err
			}
			if err := cli.CheckTrace(catalog, trace); err != nil {
				return fmt.Errorf("%s: %w", path, err)
			}
			fmt.Fprintf(out, "Trace %s: %d events\n", path, len(trace.Events))
		}

		fmt.Fprintln(out, "Layout is valid! ✅")
		return nil
	},
}

func init() {
	validateCmd.Flags().String("start", "", "State every other state must be reachable from")
	rootCmd.AddCommand(validateCmd)
}
