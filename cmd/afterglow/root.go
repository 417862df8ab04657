package main

import (
	"fmt"
	"os"

	"github.com/aretw0/afterglow/internal/config"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "afterglow",
	Short: "Afterglow tracks the recent execution history of a state machine",
	Long: `Afterglow records the last configurations and transitions of a running state machine,
scores how recently each state and transition was active, and exposes the result over
HTTP, Redis pub/sub and MCP.`,
	SilenceUsage: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("dir", ".", "Working directory searched for layout.yaml")
	rootCmd.PersistentFlags().StringP("config", "c", "", "Config file (default afterglow.yaml if present)")
	rootCmd.PersistentFlags().Int("history-size", 0, "Override the history capacity")
	rootCmd.PersistentFlags().String("layout", "", "Layout file (YAML or JSON)")
	rootCmd.PersistentFlags().String("layout-dir", "", "Directory of state documents read with Loam")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn, error")
}

// loadConfig reads the config file and applies flag overrides.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(path, path != "")
	if err != nil {
		return cfg, err
	}

	flags := cmd.Flags()
	if flags.Changed("history-size") {
		cfg.HistorySize, _ = flags.GetInt("history-size")
	}
	if flags.Changed("layout") {
		cfg.Layout.File, _ = flags.GetString("layout")
	}
	if flags.Changed("layout-dir") {
		cfg.Layout.Dir, _ = flags.GetString("layout-dir")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}
	if flags.Lookup("addr") != nil && flags.Changed("addr") {
		cfg.HTTP.Addr, _ = flags.GetString("addr")
	}
	if flags.Lookup("redis") != nil && flags.Changed("redis") {
		cfg.Redis.Addr, _ = flags.GetString("redis")
	}

	return cfg, cfg.Validate()
}
