package entity

import (
	"sort"
	"strings"
	"unicode"
)

// Role identifies who authored a direct message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is one direct message inside a conversation. TimestampMs may be
// synthesized at extraction time when the source view carries no machine
// readable time; that is a precision loss, not an error.
type Message struct {
	ID          string `json:"id"`
	Role        Role   `json:"role"`
	Text        string `json:"text"`
	TimestampMs int64  `json:"timestamp_ms"`
}

// UserContext is the full known state of one conversation counterparty.
// A successful sync of a thread replaces the whole record for that username.
type UserContext struct {
	Username    string    `json:"username"`
	DisplayName string    `json:"display_name"`
	Bio         string    `json:"bio,omitempty"`
	Tone        string    `json:"tone"`
	Messages    []Message `json:"messages"`
	FirstSeenMs int64     `json:"first_seen_ms"`
	LastSeenMs  int64     `json:"last_seen_ms"`
}

// LastMessageMs returns the timestamp of the newest message, or zero when the
// history is empty.
func (u *UserContext) LastMessageMs() int64 {
	if len(u.Messages) == 0 {
		return 0
	}
	return u.Messages[len(u.Messages)-1].TimestampMs
}

// ContextStore maps username to conversation state. It is the terminal
// artifact of a sync run and is persisted only after a full pass completes.
type ContextStore map[string]*UserContext

// SortMessages orders messages ascending by timestamp. The sort is stable so
// messages sharing a synthesized timestamp keep their extraction order.
func SortMessages(messages []Message) {
	sort.SliceStable(messages, func(i, j int) bool {
		return messages[i].TimestampMs < messages[j].TimestampMs
	})
}

// DisplayNameFromUsername derives a readable name by capitalizing the
// username's segments, e.g. "sara.ahmadi_92" becomes "Sara Ahmadi 92".
func DisplayNameFromUsername(username string) string {
	segments := strings.FieldsFunc(username, func(r rune) bool {
		return r == '.' || r == '_' || r == '-'
	})
	for i, seg := range segments {
		runes := []rune(seg)
		runes[0] = unicode.ToUpper(runes[0])
		segments[i] = string(runes)
	}
	return strings.Join(segments, " ")
}
