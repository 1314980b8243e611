package sweep

import "time"

// roomFieldAliases maps each canonical field to its historical API
// spellings, checked in order; the first non-empty value wins.
var roomFieldAliases = map[string][]string{
	"type":         {"type", "roomType"},
	"lastActivity": {"lastActivityDate", "lastActivity"},
	"lastSeen":     {"lastSeenDate", "lastSeenActivityDate"},
}

// Normalize maps a raw provider room record into canonical form. It is
// total over any object-shaped input: missing or malformed fields fall back
// to defaults, and timestamps that fail to parse coerce to the zero time so
// they compare as infinitely old.
func Normalize(raw map[string]any) Room {
	id := stringField(raw, "id")

	title := stringField(raw, "title")
	if title == "" {
		title = id
	}

	typ := aliasField(raw, "type")
	if typ == "" {
		typ = RoomTypeGroup
	}

	lastActivity := ParseTimestamp(aliasField(raw, "lastActivity"))
	lastSeen := ParseTimestamp(aliasField(raw, "lastSeen"))

	return Room{
		ID:           id,
		Title:        title,
		Type:         typ,
		LastActivity: lastActivity,
		LastSeen:     lastSeen,
		IsUnread:     lastActivity.After(lastSeen),
	}
}

// aliasField returns the first non-empty string among the canonical
// field's aliases.
func aliasField(raw map[string]any, canonical string) string {
	for _, key := range roomFieldAliases[canonical] {
		if v := stringField(raw, key); v != "" {
			return v
		}
	}
	return ""
}

func stringField(raw map[string]any, key string) string {
	if v, ok := raw[key].(string); ok {
		return v
	}
	return ""
}

// ParseTimestamp parses an RFC3339 timestamp, returning the zero time for
// missing or malformed values.
func ParseTimestamp(s string) time.Time {
	if s == "" {
		return time.Time{}
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}
	}
	return t.UTC()
}
