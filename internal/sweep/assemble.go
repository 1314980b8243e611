package sweep

import (
	"fmt"
	"strings"
	"time"
)

// Bounds for the configurable knobs.
const (
	DefaultWindowHours = 24
	MinWindowHours     = 1
	MaxWindowHours     = 720

	DefaultMaxRooms = 30
	MaxRoomsCap     = 1000
)

// ClampHours clamps a window size to [MinWindowHours, MaxWindowHours].
func ClampHours(h int) int {
	if h < MinWindowHours {
		return MinWindowHours
	}
	if h > MaxWindowHours {
		return MaxWindowHours
	}
	return h
}

// ClampMaxRooms clamps a room cap to [1, MaxRoomsCap].
func ClampMaxRooms(n int) int {
	if n < 1 {
		return 1
	}
	if n > MaxRoomsCap {
		return MaxRoomsCap
	}
	return n
}

// Report converts one resolved room into its output form: messages slimmed,
// and for direct rooms with unread messages the title replaced by the
// sender email of the chronologically last unread message (a best-effort
// human-readable title for 1:1 conversations).
func Report(r Resolved) RoomReport {
	report := RoomReport{
		Room:               r.Room,
		UnreadMessages:     make([]SlimMessage, 0, len(r.Messages)),
		UnreadMessageCount: len(r.Messages),
		MentionedMe:        r.MentionedMe,
	}
	for _, m := range r.Messages {
		report.UnreadMessages = append(report.UnreadMessages, Slim(m))
	}

	if r.Room.Type == RoomTypeDirect && len(r.Messages) > 0 {
		if email := r.Messages[len(r.Messages)-1].PersonEmail; email != "" {
			report.Title = email
		}
	}

	return report
}

// Assemble caps the bot-filtered room list (already sorted most recent
// first, so the most recently active rooms win inclusion), builds the
// people index over the capped list, and packages rooms, people, and stats.
//
// totalActive is the number of rooms that survived the activity filter;
// unreadBefore the number that were unread before the bot filter.
func Assemble(rooms []Resolved, totalActive, unreadBefore, maxRooms int) *Payload {
	if maxRooms <= 0 {
		maxRooms = DefaultMaxRooms
	}
	maxRooms = ClampMaxRooms(maxRooms)
	if len(rooms) > maxRooms {
		rooms = rooms[:maxRooms]
	}

	reports := make([]RoomReport, 0, len(rooms))
	for _, r := range rooms {
		reports = append(reports, Report(r))
	}

	return &Payload{
		Rooms:  reports,
		People: PeopleIndex(rooms),
		Stats: &Stats{
			Total:  totalActive,
			Unread: len(reports),
			Read:   totalActive - unreadBefore,
		},
	}
}

// Window returns the trailing activity window ending at now.
func Window(now time.Time, hours int) (start, end time.Time) {
	end = now.UTC()
	return end.Add(-time.Duration(ClampHours(hours)) * time.Hour), end
}

// SnapshotFilename builds the output file name for a window, with colons
// replaced for filesystem safety.
func SnapshotFilename(start, end time.Time) string {
	sanitize := func(t time.Time) string {
		return strings.ReplaceAll(t.UTC().Format(time.RFC3339), ":", "-")
	}
	return fmt.Sprintf("unread-rooms_%s_%s.json", sanitize(start), sanitize(end))
}
