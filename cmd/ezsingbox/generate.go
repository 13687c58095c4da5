package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"ezsingbox/internal/autoconf"
	"ezsingbox/internal/config"
	"ezsingbox/internal/profile"
	"ezsingbox/internal/support/logging"
)

var generateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Generate server and client configs",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logging.New(logging.Options{Level: cfg.SlogLevel()})

		_, err = generate(cmd.Context(), cfg, log)
		return err
	},
}

func init() {
	rootCmd.AddCommand(generateCmd)
}

// generate builds everything and writes both config files.
func generate(ctx context.Context, cfg *config.Config, log *slog.Logger) (*autoconf.MultiProtocolResult, error) {
	res, err := profile.Build(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("build config: %w", err)
	}

	serverJSON, err := profile.ServerJSON(cfg, res)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cfg.ConfigPath, serverJSON, 0o600); err != nil {
		return nil, fmt.Errorf("write server config: %w", err)
	}
	log.Info("server config written", "path", cfg.ConfigPath)

	clientJSON, err := profile.ClientJSON(cfg, res)
	if err != nil {
		return nil, err
	}
	if err := os.WriteFile(cfg.Client.ConfigPath, clientJSON, 0o600); err != nil {
		return nil, fmt.Errorf("write client config: %w", err)
	}
	log.Info("client config written", "path", cfg.Client.ConfigPath)

	if cfg.PrintConfig {
		fmt.Print(string(serverJSON))
	}
	if cfg.PrintDetails {
		fmt.Print(profile.Details(cfg, res))
	}
	return res, nil
}
