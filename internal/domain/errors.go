package domain

import "errors"

var (
	// ErrChatNotFound indicates the chat ID does not exist in the store.
	ErrChatNotFound = errors.New("chat not found")

	// ErrEmptyTurn indicates a turn request with neither text nor image.
	ErrEmptyTurn = errors.New("no question or image supplied")
)
