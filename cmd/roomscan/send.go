package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/webex"
)

var (
	sendTo      string
	sendMessage string
)

var sendCmd = &cobra.Command{
	Use:   "send",
	Short: "Send one markdown message to a room or person",
	Long: `Send a single markdown message. A recipient containing '@' is
treated as a person email, anything else as a room id.

The body comes from --message, then the ROOMSCAN_MESSAGE environment
variable, then piped stdin; the first non-empty source wins. Exactly one
send attempt is made, never retried: a duplicate message from a blind
retry is worse than a visible failure.

Examples:
  roomscan send --to someone@example.com --message "hi there"
  roomscan send -t Y2lzY29zcGFyazovL3VzL1JPT00vYWJj -m "**done**"
  git log -1 --oneline | roomscan send -t someone@example.com`,
	Args: cobra.NoArgs,
	RunE: runSend,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	sendCmd.Flags().StringVarP(&sendTo, "to", "t", "", "Recipient: room id or person email (required)")
	sendCmd.Flags().StringVarP(&sendMessage, "message", "m", "", "Markdown message body")
	sendCmd.MarkFlagRequired("to")
}

// SendResponse is the JSON output for roomscan send.
type SendResponse struct {
	OK      bool               `json:"ok"`
	Message *webex.SentMessage `json:"message"`
	Error   *string            `json:"error"`
}

func fatalSend(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSONCompact(&SendResponse{OK: false, Error: &msg})
	}
	os.Exit(code)
}

func runSend(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(fatalSend)

	body, err := messageBody(sendMessage, cfg.Message, os.Stdin)
	if err != nil {
		fatalSend(ExitConfigError, "%v", err)
	}

	ctx := cmd.Context()
	client := webex.NewClient(cfg.Token)
	handshake(ctx, client, fatalSend)

	target := webex.ClassifyRecipient(sendTo)
	sent, err := client.CreateMessage(ctx, target, body)
	if err != nil {
		fatalSend(ExitError, "%v", err)
	}

	if humanOutput {
		fmt.Printf("Sent message %s to %s\n", sent.ID, sendTo)
		return nil
	}
	return outputJSONCompact(SendResponse{OK: true, Message: sent})
}

// errNoMessage is returned when no body source yields content.
var errNoMessage = errors.New("no message provided; use --message, ROOMSCAN_MESSAGE, or pipe a body on stdin")

// messageBody resolves the markdown body: flag first, then environment,
// then piped stdin. Stdin is only consulted when it is not an interactive
// terminal.
func messageBody(flagVal, envVal string, stdin *os.File) (string, error) {
	if strings.TrimSpace(flagVal) != "" {
		return flagVal, nil
	}
	if strings.TrimSpace(envVal) != "" {
		return envVal, nil
	}

	fd := stdin.Fd()
	if isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd) {
		return "", errNoMessage
	}

	data, err := io.ReadAll(stdin)
	if err != nil {
		return "", fmt.Errorf("reading stdin: %w", err)
	}
	body := strings.TrimSpace(string(data))
	if body == "" {
		return "", errNoMessage
	}
	return body, nil
}
