package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/webex"
)

var whoamiCmd = &cobra.Command{
	Use:   "whoami",
	Short: "Show the authenticated user",
	Long: `Look up the user the configured credential belongs to. Doubles as
a connectivity check: it performs the same handshake every other command
starts with.`,
	Args: cobra.NoArgs,
	RunE: runWhoami,
}

func init() {
	rootCmd.AddCommand(whoamiCmd)
}

func runWhoami(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(exitWithError)

	client := webex.NewClient(cfg.Token)
	me := handshake(cmd.Context(), client, exitWithError)

	if humanOutput {
		fmt.Printf("%s <%s>\n", me.DisplayName, strings.Join(me.Emails, ", "))
		return nil
	}
	return outputJSONCompact(me)
}
