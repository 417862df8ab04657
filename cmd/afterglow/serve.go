package main

import (
	"context"
	"os"

	"github.com/aretw0/afterglow/internal/cli"
	"github.com/aretw0/afterglow/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server (and the Redis transport when configured)",
	Long: `Starts a tracker and exposes it as a JSON API with a Server-Sent Events stream.
When redis.addr is set, upstream events are consumed from a pub/sub channel and
notifications are published on another.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		logger, err := cli.CreateLogger(cfg)
		if err != nil {
			return err
		}
		dir, _ := cmd.Flags().GetString("dir")

		if tui.IsTerminal(os.Stdout) {
			tui.PrintBanner(os.Stdout)
		}

		ctx := cli.NewSignalContext(context.Background())
		defer ctx.Cancel()

		if err := cli.Serve(ctx, cfg, dir, logger); err != nil {
			return err
		}
		if sig := ctx.Signal(); sig != nil {
			logger.Info("shutdown by signal", "signal", sig.String())
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().String("addr", ":8080", "Address to listen on")
	serveCmd.Flags().String("redis", "", "Redis address for the event transport (disabled when empty)")
}
