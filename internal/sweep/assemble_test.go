package sweep

import (
	"strings"
	"testing"
	"time"

	"github.com/pmelby/roomscan/internal/webex"
)

func TestClampHours(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-5, 1}, {0, 1}, {1, 1}, {24, 24}, {720, 720}, {721, 720}, {100000, 720},
	}
	for _, tt := range tests {
		if got := ClampHours(tt.in); got != tt.want {
			t.Errorf("ClampHours(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestClampMaxRooms(t *testing.T) {
	tests := []struct {
		in   int
		want int
	}{
		{-1, 1}, {0, 1}, {30, 30}, {1000, 1000}, {1001, 1000},
	}
	for _, tt := range tests {
		if got := ClampMaxRooms(tt.in); got != tt.want {
			t.Errorf("ClampMaxRooms(%d) = %d, want %d", tt.in, got, tt.want)
		}
	}
}

func TestReportRewritesDirectRoomTitle(t *testing.T) {
	r := Resolved{
		Room: Room{ID: "room-1", Title: "Some Person", Type: "direct", IsUnread: true},
		Messages: []webex.Message{
			{ID: "m1", PersonEmail: "first@example.com", Text: "a"},
			{ID: "m2", PersonEmail: "last@example.com", Text: "b"},
		},
	}

	got := Report(r)

	if got.Title != "last@example.com" {
		t.Errorf("Title = %s, want last@example.com", got.Title)
	}
	if got.UnreadMessageCount != 2 {
		t.Errorf("UnreadMessageCount = %d, want 2", got.UnreadMessageCount)
	}
}

func TestReportKeepsGroupTitle(t *testing.T) {
	r := Resolved{
		Room:     Room{ID: "room-1", Title: "Team Space", Type: "group", IsUnread: true},
		Messages: []webex.Message{{ID: "m1", PersonEmail: "a@example.com", Text: "a"}},
	}

	if got := Report(r); got.Title != "Team Space" {
		t.Errorf("Title = %s, want Team Space", got.Title)
	}
}

func TestReportKeepsTitleWhenNoUnread(t *testing.T) {
	r := Resolved{Room: Room{ID: "room-1", Title: "Some Person", Type: "direct"}}

	got := Report(r)
	if got.Title != "Some Person" {
		t.Errorf("Title = %s, want Some Person", got.Title)
	}
	if got.UnreadMessages == nil {
		t.Error("UnreadMessages = nil, want empty slice")
	}
}

func TestAssembleCapsRooms(t *testing.T) {
	rooms := []Resolved{
		{Room: Room{ID: "recent", Type: "group"}, Messages: []webex.Message{{ID: "m1", PersonID: "p1", PersonEmail: "a@example.com"}}},
		{Room: Room{ID: "older", Type: "group"}, Messages: []webex.Message{{ID: "m2", PersonID: "p2", PersonEmail: "b@example.com"}}},
	}

	// Two unread rooms, cap of one: the first (most recently active) wins.
	got := Assemble(rooms, 5, 2, 1)

	if len(got.Rooms) != 1 || got.Rooms[0].ID != "recent" {
		t.Fatalf("Rooms = %v, want only recent", got.Rooms)
	}
	if got.Stats.Total != 5 {
		t.Errorf("Stats.Total = %d, want pre-cap 5", got.Stats.Total)
	}
	if got.Stats.Unread != 1 {
		t.Errorf("Stats.Unread = %d, want capped 1", got.Stats.Unread)
	}
	if got.Stats.Read != 3 {
		t.Errorf("Stats.Read = %d, want 3", got.Stats.Read)
	}
	// People index covers only the capped list.
	if _, ok := got.People["b@example.com"]; ok {
		t.Error("People contains sender from a truncated room")
	}
	if got.People["a@example.com"] != "p1" {
		t.Errorf("People[a@example.com] = %s, want p1", got.People["a@example.com"])
	}
}

func TestAssembleEmpty(t *testing.T) {
	got := Assemble(nil, 3, 0, 30)

	if len(got.Rooms) != 0 {
		t.Errorf("Rooms = %v, want empty", got.Rooms)
	}
	if got.Stats.Total != 3 || got.Stats.Read != 3 || got.Stats.Unread != 0 {
		t.Errorf("Stats = %+v, want {3 0 3}", got.Stats)
	}
	if got.Error != nil {
		t.Errorf("Error = %v, want nil", *got.Error)
	}
}

func TestWindow(t *testing.T) {
	now := time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	start, end := Window(now, 24)

	if !end.Equal(now) {
		t.Errorf("end = %v, want %v", end, now)
	}
	if !start.Equal(now.Add(-24 * time.Hour)) {
		t.Errorf("start = %v, want %v", start, now.Add(-24*time.Hour))
	}
}

func TestSnapshotFilename(t *testing.T) {
	start := time.Date(2026, 8, 29, 12, 30, 45, 0, time.UTC)
	end := time.Date(2026, 8, 30, 12, 30, 45, 0, time.UTC)

	got := SnapshotFilename(start, end)

	want := "unread-rooms_2026-08-29T12-30-45Z_2026-08-30T12-30-45Z.json"
	if got != want {
		t.Errorf("SnapshotFilename() = %s, want %s", got, want)
	}
	if strings.Contains(got, ":") {
		t.Errorf("filename contains a colon: %s", got)
	}
}
