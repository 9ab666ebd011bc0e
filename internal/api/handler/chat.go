package handler

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/scrollconnect/postpilot/internal/api/response"
	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/scrollconnect/postpilot/internal/service"
)

var validate = validator.New()

// ChatHandler handles chat endpoints
type ChatHandler struct {
	chatService   *service.ChatService
	maxImageBytes int
}

// NewChatHandler creates a new chat handler
func NewChatHandler(chatService *service.ChatService, maxImageBytes int) *ChatHandler {
	return &ChatHandler{
		chatService:   chatService,
		maxImageBytes: maxImageBytes,
	}
}

type createChatRequest struct {
	UserID string `json:"userId" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

// Create starts a new chat from the user's first message
func (h *ChatHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req createChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "userId and text are required")
		return
	}

	chatID, err := h.chatService.CreateChat(r.Context(), req.UserID, req.Text)
	if err != nil {
		if errors.Is(err, domain.ErrEmptyTurn) {
			response.BadRequest(w, "userId and text are required")
			return
		}
		response.InternalError(w, "error creating chat")
		return
	}

	response.Created(w, map[string]string{"chatId": chatID})
}

// Get returns the full chat document
func (h *ChatHandler) Get(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	chat, err := h.chatService.GetChat(r.Context(), chatID)
	if err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			response.NotFound(w, "chat not found")
			return
		}
		response.InternalError(w, "error fetching chat")
		return
	}

	response.OK(w, chat)
}

type imagePayload struct {
	Data     string `json:"data" validate:"required"`
	MIMEType string `json:"mimeType" validate:"required"`
}

type turnRequest struct {
	Question string        `json:"question"`
	Image    *imagePayload `json:"image,omitempty"`
}

// ProcessTurn runs one turn of the completeness-gated pipeline
func (h *ChatHandler) ProcessTurn(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var req turnRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	turn := service.TurnRequest{Question: req.Question}

	if req.Image != nil {
		if err := validate.Struct(req.Image); err != nil {
			response.BadRequest(w, "image requires data and mimeType")
			return
		}

		data, err := base64.StdEncoding.DecodeString(req.Image.Data)
		if err != nil {
			response.BadRequest(w, "image data must be base64 encoded")
			return
		}
		if h.maxImageBytes > 0 && len(data) > h.maxImageBytes {
			response.BadRequest(w, "image too large")
			return
		}

		turn.Image = &service.ImageInput{
			Data:     data,
			MIMEType: req.Image.MIMEType,
		}
	}

	result, err := h.chatService.ProcessTurn(r.Context(), chatID, turn)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrEmptyTurn):
			response.BadRequest(w, domain.ErrEmptyTurn.Error())
		case errors.Is(err, domain.ErrChatNotFound):
			response.NotFound(w, "chat not found")
		default:
			response.InternalError(w, "error updating chat")
		}
		return
	}

	response.OK(w, result)
}

type renameChatRequest struct {
	UserID string `json:"userId" validate:"required"`
	Title  string `json:"title" validate:"required"`
}

// Rename updates the chat title in the user's index
func (h *ChatHandler) Rename(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")

	var req renameChatRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "invalid request body")
		return
	}

	if err := validate.Struct(req); err != nil {
		response.BadRequest(w, "userId and title are required")
		return
	}

	if err := h.chatService.RenameChat(r.Context(), req.UserID, chatID, req.Title); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			response.NotFound(w, "chat not found or title not updated")
			return
		}
		response.InternalError(w, "error updating chat title")
		return
	}

	response.OK(w, map[string]string{"message": "chat title updated"})
}

// Delete removes a chat and its index entry
func (h *ChatHandler) Delete(w http.ResponseWriter, r *http.Request) {
	chatID := chi.URLParam(r, "chatID")
	userID := r.URL.Query().Get("userId")
	if userID == "" {
		response.BadRequest(w, "userId is required")
		return
	}

	if err := h.chatService.DeleteChat(r.Context(), userID, chatID); err != nil {
		if errors.Is(err, domain.ErrChatNotFound) {
			response.NotFound(w, "chat not found or not deleted")
			return
		}
		response.InternalError(w, "error deleting chat")
		return
	}

	response.OK(w, map[string]string{"message": "chat deleted"})
}
