package handler

import (
	"net/http"

	"github.com/scrollconnect/postpilot/internal/api/response"
	"github.com/scrollconnect/postpilot/internal/service"
)

// UserChatHandler handles the per-user chat listing endpoint
type UserChatHandler struct {
	chatService *service.ChatService
}

// NewUserChatHandler creates a new user chat handler
func NewUserChatHandler(chatService *service.ChatService) *UserChatHandler {
	return &UserChatHandler{chatService: chatService}
}

// List returns the user's chat summaries. An unknown user gets an
// empty list, not an error.
func (h *UserChatHandler) List(w http.ResponseWriter, r *http.Request) {
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		response.BadRequest(w, "userId is required")
		return
	}

	chats, err := h.chatService.ListUserChats(r.Context(), userID)
	if err != nil {
		response.InternalError(w, "error fetching user chats")
		return
	}

	response.OK(w, chats)
}
