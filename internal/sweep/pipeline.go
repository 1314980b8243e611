package sweep

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"
)

// Client is the provider surface one run needs.
type Client interface {
	MessageLister
	ListRoomsWithReadStatus(ctx context.Context, max int) ([]map[string]any, error)
}

// Options configures a single run. Every knob is explicit so runs are
// isolated from each other and from global state.
type Options struct {
	Me            string    // current user id; own messages are never unread
	WindowHours   int       // trailing window, clamped to [1, 720]
	MaxRooms      int       // output cap, clamped to [1, 1000]
	PageSize      int       // per-room message fetch bound
	MaxConcurrent int       // per-room fan-out bound
	BotSuffix     string    // email suffix marking automated accounts
	Now           time.Time // zero means time.Now
}

// Run executes one unread-room sweep: list rooms, normalize, filter to the
// activity window, resolve unread messages concurrently for the unread
// subset, drop bot-only rooms, and assemble the payload.
//
// The room listing is the only fatal step. Per-room message fetches degrade
// individually (see ResolveAll); warnings go to the logger, never into the
// payload.
func Run(ctx context.Context, client Client, opts Options, log zerolog.Logger) (*Payload, error) {
	now := opts.Now
	if now.IsZero() {
		now = time.Now()
	}
	hours := opts.WindowHours
	if hours == 0 {
		hours = DefaultWindowHours
	}
	window := time.Duration(ClampHours(hours)) * time.Hour

	raw, err := client.ListRoomsWithReadStatus(ctx, MaxRoomsCap)
	if err != nil {
		return nil, fmt.Errorf("listing rooms: %w", err)
	}

	rooms := make([]Room, 0, len(raw))
	for _, rr := range raw {
		rooms = append(rooms, Normalize(rr))
	}

	active := FilterActive(rooms, now, window)
	unread, _ := SplitUnread(active)
	log.Debug().Int("listed", len(raw)).Int("active", len(active)).Int("unread", len(unread)).Msg("rooms filtered")

	resolved := ResolveAll(ctx, client, unread, opts.Me, opts.PageSize, opts.MaxConcurrent, log)
	kept := DropBotOnly(resolved, opts.BotSuffix)

	return Assemble(kept, len(active), len(unread), opts.MaxRooms), nil
}
