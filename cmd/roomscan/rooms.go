package main

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/pmelby/roomscan/internal/sweep"
	"github.com/pmelby/roomscan/internal/webex"
)

var roomsHours int

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List recent rooms with read status",
	Long: `List direct and group rooms with activity inside the trailing
window, most recently active first. No messages are fetched; each room
carries its derived isUnread flag.

Examples:
  roomscan rooms
  roomscan rooms --hours 72
  roomscan rooms --human`,
	Args: cobra.NoArgs,
	RunE: runRooms,
}

func init() {
	rootCmd.AddCommand(roomsCmd)
	roomsCmd.Flags().IntVarP(&roomsHours, "hours", "H", sweep.DefaultWindowHours, "Trailing activity window in hours (1-720)")
}

// RoomsResponse is the JSON output for roomscan rooms.
type RoomsResponse struct {
	Rooms []sweep.Room `json:"rooms"`
	Count int          `json:"count"`
	Error *string      `json:"error"`
}

func fatalRooms(code int, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if humanOutput {
		fmt.Fprintf(os.Stderr, "error: %s\n", msg)
	} else {
		outputJSONCompact(&RoomsResponse{Error: &msg})
	}
	os.Exit(code)
}

func runRooms(cmd *cobra.Command, args []string) error {
	cfg := loadConfig(fatalRooms)

	hours := cfg.Hours
	if cmd.Flags().Changed("hours") {
		hours = roomsHours
	}
	hours = sweep.ClampHours(hours)

	ctx := cmd.Context()
	client := webex.NewClient(cfg.Token)
	handshake(ctx, client, fatalRooms)

	raw, err := client.ListRoomsWithReadStatus(ctx, webex.MaxRoomPage)
	if err != nil {
		fatalRooms(ExitError, "listing rooms: %v", err)
	}

	rooms := make([]sweep.Room, 0, len(raw))
	for _, rr := range raw {
		rooms = append(rooms, sweep.Normalize(rr))
	}
	active := sweep.FilterActive(rooms, time.Now().UTC(), time.Duration(hours)*time.Hour)

	if humanOutput {
		printRoomsHuman(active)
		return nil
	}
	if active == nil {
		active = []sweep.Room{}
	}
	return outputJSONCompact(RoomsResponse{Rooms: active, Count: len(active)})
}

func printRoomsHuman(rooms []sweep.Room) {
	if len(rooms) == 0 {
		fmt.Println("No rooms with recent activity.")
		return
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "TITLE\tTYPE\tUNREAD\tLAST ACTIVITY")
	fmt.Fprintln(w, "-----\t----\t------\t-------------")
	for _, r := range rooms {
		unread := ""
		if r.IsUnread {
			unread = "yes"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
			truncateString(r.Title, 40), r.Type, unread, r.LastActivity.Format(time.RFC3339))
	}
	w.Flush()

	fmt.Printf("\nTotal: %d rooms\n", len(rooms))
}
