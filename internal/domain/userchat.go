package domain

import (
	"context"
	"time"
)

// TitleMaxLen bounds the derived title taken from the first user message.
const TitleMaxLen = 40

// ChatSummary is one entry in a user's chat index, used only for listing.
type ChatSummary struct {
	ChatID    string    `json:"chat_id" bson:"_id"`
	Title     string    `json:"title" bson:"title"`
	CreatedAt time.Time `json:"created_at" bson:"createdAt"`
}

// DeriveTitle truncates the first user message to the bounded title length.
func DeriveTitle(text string) string {
	runes := []rune(text)
	if len(runes) > TitleMaxLen {
		return string(runes[:TitleMaxLen])
	}
	return text
}

// UserChatRepository defines the interface for the per-user chat index
type UserChatRepository interface {
	// AddChat records a summary under the user's index, creating the
	// index document on first use.
	AddChat(ctx context.Context, userID string, summary ChatSummary) error

	// List returns the user's summaries in insertion order. An unknown
	// user yields an empty slice, not an error.
	List(ctx context.Context, userID string) ([]ChatSummary, error)

	// Rename updates the title of one indexed chat.
	Rename(ctx context.Context, userID, chatID, title string) error

	// Remove drops one summary from the user's index.
	Remove(ctx context.Context, userID, chatID string) error
}
