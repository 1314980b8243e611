package sweep

import (
	"testing"
	"time"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  map[string]any
		want Room
	}{
		{
			name: "canonical fields",
			raw: map[string]any{
				"id":               "room-1",
				"title":            "Team Space",
				"type":             "group",
				"lastActivityDate": "2026-08-30T12:00:00Z",
				"lastSeenDate":     "2026-08-30T10:00:00Z",
			},
			want: Room{
				ID:           "room-1",
				Title:        "Team Space",
				Type:         "group",
				LastActivity: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				LastSeen:     time.Date(2026, 8, 30, 10, 0, 0, 0, time.UTC),
				IsUnread:     true,
			},
		},
		{
			name: "legacy field spellings",
			raw: map[string]any{
				"id":                   "room-2",
				"roomType":             "direct",
				"lastActivity":         "2026-08-30T12:00:00Z",
				"lastSeenActivityDate": "2026-08-30T13:00:00Z",
			},
			want: Room{
				ID:           "room-2",
				Title:        "room-2",
				Type:         "direct",
				LastActivity: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				LastSeen:     time.Date(2026, 8, 30, 13, 0, 0, 0, time.UTC),
				IsUnread:     false,
			},
		},
		{
			name: "canonical spelling wins over alias",
			raw: map[string]any{
				"id":               "room-3",
				"type":             "group",
				"roomType":         "direct",
				"lastActivityDate": "2026-08-30T12:00:00Z",
				"lastActivity":     "2020-01-01T00:00:00Z",
			},
			want: Room{
				ID:           "room-3",
				Title:        "room-3",
				Type:         "group",
				LastActivity: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				IsUnread:     true,
			},
		},
		{
			name: "type defaults to group, title defaults to id",
			raw:  map[string]any{"id": "room-4"},
			want: Room{ID: "room-4", Title: "room-4", Type: "group"},
		},
		{
			name: "unparseable dates coerce to zero",
			raw: map[string]any{
				"id":               "room-5",
				"lastActivityDate": "not-a-date",
				"lastSeenDate":     "also wrong",
			},
			want: Room{ID: "room-5", Title: "room-5", Type: "group"},
		},
		{
			name: "missing lastSeen makes activity unread",
			raw: map[string]any{
				"id":               "room-6",
				"lastActivityDate": "2026-08-30T12:00:00Z",
			},
			want: Room{
				ID:           "room-6",
				Title:        "room-6",
				Type:         "group",
				LastActivity: time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC),
				IsUnread:     true,
			},
		},
		{
			name: "non-string junk is ignored",
			raw: map[string]any{
				"id":               "room-7",
				"title":            42,
				"type":             []string{"direct"},
				"lastActivityDate": 12345,
			},
			want: Room{ID: "room-7", Title: "room-7", Type: "group"},
		},
		{
			name: "empty input",
			raw:  map[string]any{},
			want: Room{Type: "group"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if got != tt.want {
				t.Errorf("Normalize() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestNormalizeIsUnreadIsRecomputed(t *testing.T) {
	// A provider-supplied isUnread flag must never leak through.
	raw := map[string]any{
		"id":               "room-1",
		"isUnread":         true,
		"lastActivityDate": "2026-08-30T10:00:00Z",
		"lastSeenDate":     "2026-08-30T12:00:00Z",
	}
	if got := Normalize(raw); got.IsUnread {
		t.Errorf("Normalize() IsUnread = true, want recomputed false")
	}
}

func TestParseTimestamp(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  time.Time
	}{
		{"rfc3339", "2026-08-30T12:00:00Z", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		{"fractional seconds", "2026-08-30T12:00:00.500Z", time.Date(2026, 8, 30, 12, 0, 0, 500000000, time.UTC)},
		{"offset normalized to UTC", "2026-08-30T14:00:00+02:00", time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)},
		{"empty", "", time.Time{}},
		{"garbage", "yesterday", time.Time{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ParseTimestamp(tt.input); !got.Equal(tt.want) {
				t.Errorf("ParseTimestamp(%q) = %v, want %v", tt.input, got, tt.want)
			}
		})
	}
}
