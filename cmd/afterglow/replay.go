package main

import (
	"os"

	"github.com/aretw0/afterglow/internal/cli"
	"github.com/spf13/cobra"
)

var replayCmd = &cobra.Command{
	Use:   "replay <trace.yaml>",
	Short: "Replay a recorded trace and print the resulting activeness",
	Long: `Applies every event of a trace file to a fresh tracker and prints the outcome.

Formats:
- auto (default): heatmap on a terminal, yaml otherwise
- heatmap: coloured activeness bars
- markdown: report rendered with glamour on a terminal
- mermaid: flowchart of the layout with an activeness overlay
- yaml: the raw snapshot`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")
		format, _ := cmd.Flags().GetString("format")

		return cli.Replay(cmd.Context(), cfg, cli.ReplayOptions{
			TracePath: args[0],
			Dir:       dir,
			Format:    format,
			Out:       os.Stdout,
		})
	},
}

func init() {
	rootCmd.AddCommand(replayCmd)
	replayCmd.Flags().StringP("format", "f", cli.FormatAuto, "Output format: auto, heatmap, markdown, mermaid, yaml")
}
