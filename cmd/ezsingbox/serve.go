package main

import (
	"fmt"
	"net"
	"os/signal"
	"strings"
	"syscall"

	"github.com/spf13/cobra"

	"ezsingbox/internal/config"
	"ezsingbox/internal/profile"
	"ezsingbox/internal/sharelink"
	"ezsingbox/internal/subscribe"
	"ezsingbox/internal/support/logging"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Generate configs and serve the client config as a subscription",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load()
		if err != nil {
			return err
		}
		log := logging.New(logging.Options{Level: cfg.SlogLevel()})

		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		res, err := generate(ctx, cfg, log)
		if err != nil {
			return err
		}
		payload, err := profile.ClientJSON(cfg, res)
		if err != nil {
			return err
		}

		profileURL := subscriptionURL(cfg, res.PublicIP.String())
		fmt.Println(sharelink.ImportRemoteProfile(profileURL, cfg.Subscribe.Name))

		srv := subscribe.New(subscribe.Options{
			Listen:      cfg.Subscribe.Listen,
			Path:        cfg.Subscribe.Path,
			User:        cfg.Subscribe.User,
			Password:    cfg.Subscribe.Password,
			ProfileName: cfg.Subscribe.Name,
			Payload:     payload,
			CacheTTL:    cfg.Subscribe.CacheTTL,
			Logger:      log,
		})
		return srv.Run(ctx)
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

// subscriptionURL derives the externally reachable profile URL, preferring
// the configured public URL over the public IP + listen port.
func subscriptionURL(cfg *config.Config, publicIP string) string {
	base := strings.TrimSuffix(cfg.Subscribe.PublicURL, "/")
	if base == "" {
		_, port, err := net.SplitHostPort(cfg.Subscribe.Listen)
		if err != nil {
			port = "8080"
		}
		base = "http://" + net.JoinHostPort(publicIP, port)
	}
	return base + cfg.Subscribe.Path
}
