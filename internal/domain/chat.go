package domain

import (
	"context"
	"time"
)

// TurnRole represents the author of a history turn
type TurnRole string

const (
	RoleUser  TurnRole = "user"
	RoleModel TurnRole = "model"
)

// Part is a single text segment of a turn. Turns carry a list of parts
// to keep the storage shape open for multi-part content, though every
// turn produced today holds exactly one part.
type Part struct {
	Text string `json:"text" bson:"text"`
}

// Turn is one role-tagged message in a chat history. Turns are immutable
// once appended; history is append-only and never reordered.
type Turn struct {
	Role  TurnRole `json:"role" bson:"role"`
	Parts []Part   `json:"parts" bson:"parts"`
}

// NewTurn builds a single-part turn.
func NewTurn(role TurnRole, text string) Turn {
	return Turn{Role: role, Parts: []Part{{Text: text}}}
}

// Text returns the concatenated text of all parts.
func (t Turn) Text() string {
	if len(t.Parts) == 1 {
		return t.Parts[0].Text
	}
	var out string
	for _, p := range t.Parts {
		out += p.Text
	}
	return out
}

// Chat is an ordered, append-only conversation owned by a single user.
type Chat struct {
	ID        string    `json:"id" bson:"_id"`
	UserID    string    `json:"user_id" bson:"userId"`
	History   []Turn    `json:"history" bson:"history"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
	UpdatedAt time.Time `json:"updated_at" bson:"updatedAt"`
}

// ChatRepository defines the interface for chat history storage
type ChatRepository interface {
	// Create persists a new chat and returns its generated ID.
	Create(ctx context.Context, chat *Chat) (string, error)

	// Get returns the full chat document, ErrChatNotFound if absent.
	Get(ctx context.Context, chatID string) (*Chat, error)

	// AppendTurn appends a turn to the chat history.
	AppendTurn(ctx context.Context, chatID string, turn Turn) error

	// Delete removes the chat document.
	Delete(ctx context.Context, chatID string) error
}

// CompletenessDecision is the classifier verdict for a single turn.
// It is never persisted as-is; only its message text survives as a turn.
type CompletenessDecision struct {
	Message  string `json:"response"`
	Complete bool   `json:"complete"`
}
