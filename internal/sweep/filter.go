package sweep

import (
	"sort"
	"strings"
	"time"

	"github.com/pmelby/roomscan/internal/webex"
)

// allowedType reports whether a room type is retained downstream.
func allowedType(typ string) bool {
	return typ == RoomTypeDirect || typ == RoomTypeGroup
}

// FilterActive restricts rooms to the allowed types and to those whose last
// activity falls inside the trailing window ending at now. Rooms with a
// missing or unparseable activity timestamp are excluded by any positive
// window. The result is sorted most recently active first; the sort is
// stable so ties keep their input order.
func FilterActive(rooms []Room, now time.Time, window time.Duration) []Room {
	cutoff := now.Add(-window)

	var kept []Room
	for _, r := range rooms {
		if !allowedType(r.Type) {
			continue
		}
		if r.LastActivity.IsZero() || r.LastActivity.Before(cutoff) {
			continue
		}
		kept = append(kept, r)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		return kept[i].LastActivity.After(kept[j].LastActivity)
	})
	return kept
}

// SplitUnread partitions rooms into unread and read, preserving order.
func SplitUnread(rooms []Room) (unread, read []Room) {
	for _, r := range rooms {
		if r.IsUnread {
			unread = append(unread, r)
		} else {
			read = append(read, r)
		}
	}
	return unread, read
}

// IsBotEmail reports whether an email belongs to an automated account.
func IsBotEmail(email, suffix string) bool {
	return email != "" && strings.HasSuffix(strings.ToLower(email), strings.ToLower(suffix))
}

// DropBotOnly removes rooms of a disallowed type and rooms whose every
// unread message came from a bot account.
//
// Rooms with zero unread messages (typically degraded by a failed fetch)
// are kept: dropping them via the vacuous "all messages are from bots"
// reading would silently hide the fetch failure from the caller.
func DropBotOnly(rooms []Resolved, suffix string) []Resolved {
	if suffix == "" {
		suffix = BotSuffix
	}

	var kept []Resolved
	for _, r := range rooms {
		if !allowedType(r.Room.Type) {
			continue
		}
		if len(r.Messages) > 0 && allBots(r.Messages, suffix) {
			continue
		}
		kept = append(kept, r)
	}
	return kept
}

func allBots(msgs []webex.Message, suffix string) bool {
	for _, m := range msgs {
		if !IsBotEmail(m.PersonEmail, suffix) {
			return false
		}
	}
	return true
}
