package main

import (
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/archive"
	"github.com/pmelby/roomscan/internal/sweep"
	"github.com/pmelby/roomscan/internal/webex"
)

var (
	unreadHours    int
	unreadMaxRooms int
	unreadSave     bool
	unreadOut      string
	unreadArchive  bool
)

var unreadCmd = &cobra.Command{
	Use:   "unread",
	Short: "Report unread rooms with their unread messages",
	Long: `Sweep recent Webex spaces and report the unread ones.

Rooms of type direct or group with activity inside the trailing window are
inspected; unread messages are fetched concurrently per room, rooms where
every unread message came from a bot account are dropped, and the rest are
returned most recently active first with slimmed message bodies and an
email-to-person-id lookup table.

Output is one line of JSON: the payload, or {outputPath, error} when
writing to a file.

Examples:
  roomscan unread
  roomscan unread --hours 48 --max-rooms 10
  roomscan unread -H 8 -n 5 --human
  roomscan unread --save
  roomscan unread --archive`,
	Args: cobra.NoArgs,
	RunE: runUnread,
}

func init() {
	rootCmd.AddCommand(unreadCmd)
	unreadCmd.Flags().IntVarP(&unreadHours, "hours", "H", sweep.DefaultWindowHours, "Trailing activity window in hours (1-720)")
	unreadCmd.Flags().IntVarP(&unreadMaxRooms, "max-rooms", "n", sweep.DefaultMaxRooms, "Maximum rooms to return (1-1000)")
	unreadCmd.Flags().BoolVar(&unreadSave, "save", false, "Write the payload to a window-stamped file")
	unreadCmd.Flags().StringVar(&unreadOut, "out", "", "Write the payload to the given file")
	unreadCmd.Flags().BoolVar(&unreadArchive, "archive", false, "Record the snapshot in the local archive")
}

// SavedResponse is the stdout result when the payload went to a file.
type SavedResponse struct {
	OutputPath string  `json:"outputPath"`
	Error      *string `json:"error"`
}

// fatalPayload emits the payload-shaped error envelope and exits: same
// structure as success, error populated, success fields empty.
func fatalPayload(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSONCompact(&sweep.Payload{Error: &msg})
	}
	os.Exit(code)
}

func runUnread(cmd *cobra.Command, args []string) error {
	log := newLogger()
	cfg := loadConfig(fatalPayload)

	hours := cfg.Hours
	if cmd.Flags().Changed("hours") {
		hours = unreadHours
	}
	hours = sweep.ClampHours(hours)

	maxRooms := cfg.MaxRooms
	if cmd.Flags().Changed("max-rooms") {
		maxRooms = unreadMaxRooms
	}
	maxRooms = sweep.ClampMaxRooms(maxRooms)

	ctx := cmd.Context()
	client := webex.NewClient(cfg.Token)
	me := handshake(ctx, client, fatalPayload)

	now := time.Now().UTC()
	payload, err := sweep.Run(ctx, client, sweep.Options{
		Me:          me.ID,
		WindowHours: hours,
		MaxRooms:    maxRooms,
		Now:         now,
	}, log)
	if err != nil {
		fatalPayload(ExitError, "sweep failed: %v", err)
	}

	if unreadArchive {
		if err := archiveRun(now, hours, payload); err != nil {
			log.Warn().Err(err).Msg("snapshot not archived")
		}
	}

	if unreadOut != "" || unreadSave {
		path := unreadOut
		if path == "" {
			start, end := sweep.Window(now, hours)
			path = sweep.SnapshotFilename(start, end)
		}
		if err := writePayloadFile(path, payload); err != nil {
			fatalPayload(ExitError, "writing %s: %v", path, err)
		}
		if humanOutput {
			fmt.Printf("Wrote %d rooms to %s\n", len(payload.Rooms), path)
			return nil
		}
		return outputJSONCompact(SavedResponse{OutputPath: path})
	}

	if humanOutput {
		printUnreadHuman(payload)
		return nil
	}
	return outputJSONCompact(payload)
}

// writePayloadFile writes the full payload as indented JSON.
func writePayloadFile(path string, payload *sweep.Payload) error {
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0644)
}

// archiveRun records the snapshot in the local SQLite archive.
func archiveRun(takenAt time.Time, windowHours int, payload *sweep.Payload) error {
	path, err := archive.DefaultPath()
	if err != nil {
		return err
	}
	a, err := archive.Open(path)
	if err != nil {
		return err
	}
	defer a.Close()

	_, err = a.SaveRun(takenAt, windowHours, payload)
	return err
}

func printUnreadHuman(payload *sweep.Payload) {
	fmt.Println("# Unread Rooms")
	fmt.Println()

	if len(payload.Rooms) == 0 {
		fmt.Println("Nothing unread.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tTYPE\tUNREAD\tMENTION\tLAST ACTIVITY")
	fmt.Fprintln(w, "-----\t----\t------\t-------\t-------------")
	for _, room := range payload.Rooms {
		mention := ""
		if room.MentionedMe {
			mention = "@you"
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%s\t%s\n",
			truncateString(room.Title, 40), room.Type, room.UnreadMessageCount,
			mention, room.LastActivity.Format(time.RFC3339))
	}
	w.Flush()

	if payload.Stats != nil {
		fmt.Printf("\nTotal: %d rooms in window, %d unread, %d read\n",
			payload.Stats.Total, payload.Stats.Unread, payload.Stats.Read)
	}
}
