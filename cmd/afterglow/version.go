package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/afterglow"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of afterglow",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "afterglow version %s\n", strings.TrimSpace(afterglow.Version))
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
