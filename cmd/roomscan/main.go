// Package main provides the roomscan CLI entry point.
package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/config"
	"github.com/pmelby/roomscan/internal/logging"
	"github.com/pmelby/roomscan/internal/webex"
)

// Version is set at build time via ldflags
var Version = "dev"

var (
	// humanOutput controls whether to use human-readable output
	humanOutput bool
	// verboseLog raises the stderr logger to debug level
	verboseLog bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		// Print the error since we have SilenceErrors: true
		// This ensures Cobra errors (like missing required flags) are visible
		fmt.Fprintf(os.Stderr, "Error: %s\n", err)
		os.Exit(ExitError)
	}
}

var rootCmd = &cobra.Command{
	Use:   "roomscan",
	Short: "Unread-room sweeper for Webex spaces",
	Long: `roomscan inspects recent Webex spaces and reports the ones you have
not read yet, with the unread message bodies attached.

Core features:
  - Unread-room sweep over a trailing activity window
  - Per-room read status with unread message resolution
  - One-shot markdown sending to a room or person
  - Local SQLite archive of sweep snapshots

Requires a WEBEX_TOKEN with read access to rooms, messages, and people
(also read from ~/.config/roomscan/config.yml and a local .env file).
All commands output JSON by default for agent/script integration.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	// Load .env file if present (for WEBEX_TOKEN)
	_ = godotenv.Load()

	rootCmd.PersistentFlags().BoolVar(&humanOutput, "human", false, "Use human-readable output instead of JSON")
	rootCmd.PersistentFlags().BoolVarP(&verboseLog, "verbose", "v", false, "Enable debug logging on stderr")
	rootCmd.Version = Version
}

// newLogger builds the stderr diagnostic logger. Stdout stays pure JSON.
func newLogger() zerolog.Logger {
	return logging.New(verboseLog)
}

// loadConfig resolves configuration and verifies the credential is present.
// The fatal function receives an exit code and message and must not return.
func loadConfig(fatal func(code int, format string, args ...any)) *config.Config {
	cfg, err := config.Load()
	if err != nil {
		fatal(ExitConfigError, "loading config: %v", err)
	}
	if cfg.Token == "" {
		fatal(ExitConfigError, "WEBEX_TOKEN not set; required for Webex API access")
	}
	return cfg
}

// handshake performs the one-time readiness check with the provider,
// bounded by the handshake timeout. All room and message work waits on it.
func handshake(ctx context.Context, client *webex.Client, fatal func(code int, format string, args ...any)) *webex.Person {
	hctx, cancel := context.WithTimeout(ctx, webex.HandshakeTimeout)
	defer cancel()

	me, err := client.GetMe(hctx)
	if err != nil {
		fatal(ExitHandshakeError, "webex handshake failed: %v", err)
	}
	return me
}
