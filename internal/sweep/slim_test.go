package sweep

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/pmelby/roomscan/internal/webex"
)

func TestSlimBodyPrecedence(t *testing.T) {
	tests := []struct {
		name string
		msg  webex.Message
		want SlimMessage
	}{
		{
			name: "html wins over everything",
			msg:  webex.Message{ID: "m1", Text: "plain", Markdown: "**md**", HTML: "<b>rich</b>"},
			want: SlimMessage{ID: "m1", HTML: "<b>rich</b>"},
		},
		{
			name: "markdown wins over text",
			msg:  webex.Message{ID: "m2", Text: "plain", Markdown: "**md**"},
			want: SlimMessage{ID: "m2", Markdown: "**md**"},
		},
		{
			name: "text only",
			msg:  webex.Message{ID: "m3", Text: "plain"},
			want: SlimMessage{ID: "m3", Text: "plain"},
		},
		{
			name: "sender email survives",
			msg:  webex.Message{ID: "m4", PersonEmail: "a@example.com", Text: "hi"},
			want: SlimMessage{ID: "m4", PersonEmail: "a@example.com", Text: "hi"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Slim(tt.msg)
			if got.ID != tt.want.ID || got.PersonEmail != tt.want.PersonEmail ||
				got.Text != tt.want.Text || got.Markdown != tt.want.Markdown || got.HTML != tt.want.HTML {
				t.Errorf("Slim() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestSlimDropsRedundantFields(t *testing.T) {
	msg := webex.Message{
		ID:          "m1",
		RoomID:      "room-1",
		RoomType:    "group",
		PersonID:    "p1",
		PersonEmail: "a@example.com",
		Text:        "hello",
		Created:     "2026-08-30T12:00:00Z",
		Updated:     "2026-08-30T12:01:00Z",
	}

	data, err := json.Marshal(Slim(msg))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	for _, field := range []string{"roomId", "roomType", "personId", "created", "updated"} {
		if strings.Contains(string(data), field) {
			t.Errorf("slimmed message still serializes %q: %s", field, data)
		}
	}
}

func TestSlimIdempotent(t *testing.T) {
	msg := webex.Message{ID: "m1", PersonEmail: "a@example.com", Text: "plain", Markdown: "**md**"}

	once := Slim(msg)
	// Re-slim the already-slim form.
	again := Slim(webex.Message{
		ID:              once.ID,
		PersonEmail:     once.PersonEmail,
		Text:            once.Text,
		Markdown:        once.Markdown,
		HTML:            once.HTML,
		MentionedPeople: once.MentionedPeople,
	})

	if again.ID != once.ID || again.Text != once.Text || again.Markdown != once.Markdown || again.HTML != once.HTML {
		t.Errorf("re-slim changed the message: %+v vs %+v", again, once)
	}
}

func TestPeopleIndex(t *testing.T) {
	rooms := []Resolved{
		{
			Room: Room{ID: "room-1"},
			Messages: []webex.Message{
				{ID: "m1", PersonID: "p-alice", PersonEmail: "alice@example.com"},
				{ID: "m2", PersonID: "p-bob", PersonEmail: "bob@example.com"},
			},
		},
		{
			Room: Room{ID: "room-2"},
			Messages: []webex.Message{
				// Same email, different id: the first occurrence must win.
				{ID: "m3", PersonID: "p-alice-2", PersonEmail: "alice@example.com"},
				{ID: "m4", PersonID: "", PersonEmail: "noid@example.com"},
				{ID: "m5", PersonID: "p-ghost", PersonEmail: ""},
			},
		},
	}

	got := PeopleIndex(rooms)

	want := map[string]string{
		"alice@example.com": "p-alice",
		"bob@example.com":   "p-bob",
	}
	if len(got) != len(want) {
		t.Fatalf("PeopleIndex() has %d entries, want %d: %v", len(got), len(want), got)
	}
	for email, id := range want {
		if got[email] != id {
			t.Errorf("PeopleIndex()[%s] = %s, want %s", email, got[email], id)
		}
	}
}
