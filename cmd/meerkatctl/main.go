// Command meerkatctl is a thin demo client for a running meerkatd instance,
// exercising POST /v1/verify and POST /v1/shield from the command line.
package main

import (
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/codeready-toolchain/meerkat/pkg/version"
)

var (
	serverURL      string
	requestTimeout time.Duration
)

var rootCmd = &cobra.Command{
	Use:     "meerkatctl",
	Short:   "Command-line client for the meerkat governance gateway",
	Version: version.Full(),
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", "http://localhost:8080", "Base URL of a running meerkatd instance")
	rootCmd.PersistentFlags().DurationVar(&requestTimeout, "timeout", 30*time.Second, "Request timeout")
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
