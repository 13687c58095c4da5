package main

import (
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"ezsingbox/internal/config"
	"ezsingbox/internal/runner"
	"ezsingbox/internal/support/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Generate configs, then run sing-box with the server config",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logging.New(logging.Options{Level: cfg.SlogLevel()})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		if _, err := generate(ctx, cfg, log); err != nil {
			return err
		}

		binary, err := runner.FindBinary()
		if err != nil {
			return err
		}
		return runner.Run(ctx, runner.Options{
			Binary:     binary,
			ConfigPath: cfg.ConfigPath,
			Logger:     log,
		})
	},
}

func init() {
	rootCmd.AddCommand(runCmd)
}
