package webex

// Message is a message record as returned by the messages API.
// Timestamps are RFC3339 strings; callers parse them on demand.
type Message struct {
	ID              string   `json:"id"`
	RoomID          string   `json:"roomId,omitempty"`
	RoomType        string   `json:"roomType,omitempty"`
	Text            string   `json:"text,omitempty"`
	Markdown        string   `json:"markdown,omitempty"`
	HTML            string   `json:"html,omitempty"`
	PersonID        string   `json:"personId,omitempty"`
	PersonEmail     string   `json:"personEmail,omitempty"`
	Created         string   `json:"created,omitempty"`
	Updated         string   `json:"updated,omitempty"`
	MentionedPeople []string `json:"mentionedPeople,omitempty"`
}

// Person is the authenticated user record from the people API.
type Person struct {
	ID          string   `json:"id"`
	Emails      []string `json:"emails"`
	DisplayName string   `json:"displayName"`
}

// SentMessage is the subset of a message-creation response worth reporting.
type SentMessage struct {
	ID      string `json:"id"`
	RoomID  string `json:"roomId"`
	Created string `json:"created"`
}

// Target addresses a message to either a room or a person.
// Exactly one field is set.
type Target struct {
	RoomID      string
	PersonEmail string
}

// ClassifyRecipient maps a recipient string to a send target.
// Anything containing '@' is treated as a person email; everything else
// is an opaque room id.
func ClassifyRecipient(recipient string) Target {
	for _, r := range recipient {
		if r == '@' {
			return Target{PersonEmail: recipient}
		}
	}
	return Target{RoomID: recipient}
}
