package sweep

import "github.com/pmelby/roomscan/internal/webex"

// Slim reduces a message to its presentation fields. Only the richest body
// representation survives (html > markdown > text). Slimming an
// already-slim message is a no-op.
func Slim(m webex.Message) SlimMessage {
	s := SlimMessage{
		ID:              m.ID,
		PersonEmail:     m.PersonEmail,
		MentionedPeople: m.MentionedPeople,
	}

	switch {
	case m.HTML != "":
		s.HTML = m.HTML
	case m.Markdown != "":
		s.Markdown = m.Markdown
	default:
		s.Text = m.Text
	}

	return s
}

// PeopleIndex builds the email to person-id lookup across the retained
// unread messages, in room-then-message order. The first occurrence of an
// email wins; messages without both an email and an id are skipped.
func PeopleIndex(rooms []Resolved) map[string]string {
	idx := make(map[string]string)
	for _, r := range rooms {
		for _, m := range r.Messages {
			if m.PersonEmail == "" || m.PersonID == "" {
				continue
			}
			if _, ok := idx[m.PersonEmail]; ok {
				continue
			}
			idx[m.PersonEmail] = m.PersonID
		}
	}
	return idx
}
