// Package sweep implements the unread-room pipeline: normalize provider
// room records, restrict them to a trailing activity window, resolve unread
// messages per room, drop bot-only rooms, and assemble the final payload.
package sweep

import (
	"time"

	"github.com/pmelby/roomscan/internal/webex"
)

// Room type values retained downstream.
const (
	RoomTypeDirect = "direct"
	RoomTypeGroup  = "group"
)

// BotSuffix marks automated sender accounts by email address.
const BotSuffix = "@webex.bot"

// Room is a provider room record in canonical form. IsUnread is always
// recomputed from the two timestamps, never taken from the provider.
type Room struct {
	ID           string    `json:"id"`
	Title        string    `json:"title"`
	Type         string    `json:"type"`
	LastActivity time.Time `json:"lastActivityDate,omitzero"`
	LastSeen     time.Time `json:"lastSeenDate,omitzero"`
	IsUnread     bool      `json:"isUnread"`
}

// Resolved couples a room with its unread messages, oldest first.
type Resolved struct {
	Room        Room
	Messages    []webex.Message
	MentionedMe bool
}

// SlimMessage is a message reduced to its presentation fields. Fields
// redundant with the enclosing room (roomId, roomType) or no longer needed
// downstream (personId, created, updated) are never serialized, and only
// the richest body representation survives.
type SlimMessage struct {
	ID              string   `json:"id"`
	PersonEmail     string   `json:"personEmail,omitempty"`
	Text            string   `json:"text,omitempty"`
	Markdown        string   `json:"markdown,omitempty"`
	HTML            string   `json:"html,omitempty"`
	MentionedPeople []string `json:"mentionedPeople,omitempty"`
}

// RoomReport is a room as it appears in the final payload.
type RoomReport struct {
	Room
	UnreadMessages     []SlimMessage `json:"unreadMessages"`
	UnreadMessageCount int           `json:"unreadMessageCount"`
	MentionedMe        bool          `json:"mentionedMe"`
}

// Stats describes a whole pipeline run. Total counts every room that
// survived the activity filter, Read the ones that were already seen, and
// Unread the rooms present in the final (capped) output.
type Stats struct {
	Total  int `json:"total"`
	Unread int `json:"unread"`
	Read   int `json:"read"`
}

// Payload is the assembled result of one run.
type Payload struct {
	Rooms  []RoomReport      `json:"rooms"`
	People map[string]string `json:"people"`
	Stats  *Stats            `json:"stats"`
	Error  *string           `json:"error"`
}
