// Package domain defines the conversation model shared by all docchat components.
package domain

import (
	"time"

	"github.com/oklog/ulid/v2"
)

// Role identifies the author of a turn
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Citation is a (document, page) pair grounding an assistant answer.
// Field names match the wire form so persisted turns round-trip unchanged.
type Citation struct {
	Doc  string `json:"doc"`
	Page int    `json:"page"`
}

// Turn represents a single entry in the conversation log
type Turn struct {
	ID        string     `json:"id"`
	Role      Role       `json:"role"`
	Text      string     `json:"text"`
	Citations []Citation `json:"citations,omitempty"`
	CreatedAt time.Time  `json:"created_at"`
}

// NewTurn creates a turn with a fresh stable identifier.
// The ID is what makes replace-by-identifier possible; turns are never
// addressed by position once appended.
func NewTurn(role Role, text string, citations []Citation) Turn {
	return Turn{
		ID:        ulid.Make().String(),
		Role:      role,
		Text:      text,
		Citations: citations,
		CreatedAt: time.Now(),
	}
}

// HistoryEntry is the reduced {role, text} form of a turn sent back to the
// server as conversation context. Citations are never echoed.
type HistoryEntry struct {
	Role Role   `json:"role"`
	Text string `json:"text"`
}
