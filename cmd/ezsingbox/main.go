package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

// Build info - injected via ldflags
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "ezsingbox",
	Short: "Zero-config sing-box server generator",
	Long: `ezsingbox generates ready-to-run sing-box server and client
configurations for AnyTLS, Hysteria2, TUIC and VLESS+REALITY, needing at
most a public IP. Everything is driven by EZ_* environment variables.`,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
