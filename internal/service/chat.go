package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/scrollconnect/postpilot/internal/llm"
)

const (
	// imageOnlySentinel is persisted as the user turn when a turn
	// carries an image but no text. Raw image bytes never reach history.
	imageOnlySentinel = "User uploaded an image"

	// imageContextPrefix tags image-derived assistant turns so readers
	// can tell them apart from model-generated content.
	imageContextPrefix = "Extracted from image: "

	imageFallbackText = "Could not analyze the image."
	classifyErrorText = "I encountered an error while analyzing your request."
	generateErrorText = "I encountered an error while generating a response."
)

// ImageInput carries a decoded image payload for context extraction.
type ImageInput struct {
	Data     []byte
	MIMEType string
}

// TurnRequest is one incoming user turn: text, image, or both.
type TurnRequest struct {
	Question string
	Image    *ImageInput
}

// TurnResult is the user-visible outcome of one processed turn.
// Generated is set only when the completeness gate passed.
type TurnResult struct {
	RequestID string `json:"request_id"`
	Message   string `json:"message"`
	Generated string `json:"generated,omitempty"`
	Complete  bool   `json:"complete"`
}

// ChatService drives one request-response cycle per incoming user turn
// and owns the chat lifecycle around it.
type ChatService struct {
	chatRepo     domain.ChatRepository
	userChatRepo domain.UserChatRepository
	classifier   llm.Classifier
	describer    llm.Describer
	generator    llm.Generator
}

// NewChatService creates a new chat service
func NewChatService(
	chatRepo domain.ChatRepository,
	userChatRepo domain.UserChatRepository,
	classifier llm.Classifier,
	describer llm.Describer,
	generator llm.Generator,
) *ChatService {
	return &ChatService{
		chatRepo:     chatRepo,
		userChatRepo: userChatRepo,
		classifier:   classifier,
		describer:    describer,
		generator:    generator,
	}
}

// CreateChat starts a new chat with the user's first message and records
// it in the user's chat index. The index title is the message truncated
// to the bounded prefix length.
func (s *ChatService) CreateChat(ctx context.Context, userID, text string) (string, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return "", domain.ErrEmptyTurn
	}

	chat := &domain.Chat{
		UserID:  userID,
		History: []domain.Turn{domain.NewTurn(domain.RoleUser, text)},
	}

	chatID, err := s.chatRepo.Create(ctx, chat)
	if err != nil {
		return "", fmt.Errorf("failed to create chat: %w", err)
	}

	summary := domain.ChatSummary{
		ChatID:    chatID,
		Title:     domain.DeriveTitle(text),
		CreatedAt: time.Now(),
	}
	if err := s.userChatRepo.AddChat(ctx, userID, summary); err != nil {
		// The chat itself exists; a missing index entry only hurts listing.
		log.Error().Err(err).Str("chat_id", chatID).Msg("failed to index new chat")
	}

	return chatID, nil
}

// ProcessTurn runs the completeness-gated turn pipeline: optional image
// extraction, history appends, classification, and generation only once
// the content brief is complete. Appends are strictly sequential; every
// later step re-reads history so it observes the earlier appends.
func (s *ChatService) ProcessTurn(ctx context.Context, chatID string, req TurnRequest) (*TurnResult, error) {
	question := strings.TrimSpace(req.Question)
	if question == "" && req.Image == nil {
		return nil, domain.ErrEmptyTurn
	}

	requestID := uuid.New().String()

	// 1. Derive textual context from the image, if any. Extraction
	// failures are never fatal: the turn continues on text alone.
	extracted := ""
	if req.Image != nil {
		text, err := s.describer.DescribeImage(ctx, req.Image.Data, req.Image.MIMEType)
		if err != nil {
			log.Warn().Err(err).Str("chat_id", chatID).Msg("image extraction failed")
		} else {
			extracted = strings.TrimSpace(text)
		}
	}

	// 2. Persist the user's turn before anything else can fail.
	userText := question
	if userText == "" {
		userText = imageOnlySentinel
	}
	if err := s.chatRepo.AppendTurn(ctx, chatID, domain.NewTurn(domain.RoleUser, userText)); err != nil {
		return nil, err
	}

	// 3. Persist the image context ahead of classification so the
	// classifier transcript already contains it.
	if extracted != "" {
		turn := domain.NewTurn(domain.RoleModel, imageContextPrefix+extracted)
		if err := s.chatRepo.AppendTurn(ctx, chatID, turn); err != nil {
			return nil, err
		}
	}

	// 4. Fold the newest user-contributed context for the classifier.
	fold := strings.TrimSpace(extracted + " " + question)
	if fold == "" {
		// Image-only turn whose extraction failed: hand the classifier
		// a coherent string that adds no information.
		fold = imageFallbackText
	}

	transcript, err := s.transcript(ctx, chatID)
	if err != nil {
		return nil, err
	}

	// 5. Classify. Failures degrade to a fixed apology with the gate
	// closed, keeping the conversation in a re-askable state.
	decision, err := s.classifier.ClassifyCompleteness(ctx, fold, transcript)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("completeness classification failed")
		decision = &domain.CompletenessDecision{Message: classifyErrorText, Complete: false}
	}

	if err := s.chatRepo.AppendTurn(ctx, chatID, domain.NewTurn(domain.RoleModel, decision.Message)); err != nil {
		return nil, err
	}

	result := &TurnResult{
		RequestID: requestID,
		Message:   decision.Message,
		Complete:  decision.Complete,
	}

	// 6. Hard gate: no generation on an incomplete brief.
	if !decision.Complete {
		return result, nil
	}

	transcript, err = s.transcript(ctx, chatID)
	if err != nil {
		return nil, err
	}

	generated, err := s.generator.GenerateContent(ctx, question, transcript)
	if err != nil {
		log.Error().Err(err).Str("chat_id", chatID).Msg("content generation failed")
		generated = generateErrorText
	}

	if err := s.chatRepo.AppendTurn(ctx, chatID, domain.NewTurn(domain.RoleModel, generated)); err != nil {
		return nil, err
	}

	result.Generated = generated
	return result, nil
}

func (s *ChatService) transcript(ctx context.Context, chatID string) (string, error) {
	chat, err := s.chatRepo.Get(ctx, chatID)
	if err != nil {
		return "", err
	}
	return llm.Transcript(chat.History), nil
}

// GetChat returns the full chat document
func (s *ChatService) GetChat(ctx context.Context, chatID string) (*domain.Chat, error) {
	return s.chatRepo.Get(ctx, chatID)
}

// ListUserChats returns the user's chat summaries
func (s *ChatService) ListUserChats(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	return s.userChatRepo.List(ctx, userID)
}

// RenameChat updates a chat title in the user's index
func (s *ChatService) RenameChat(ctx context.Context, userID, chatID, title string) error {
	return s.userChatRepo.Rename(ctx, userID, chatID, title)
}

// DeleteChat removes the chat document and its index entry
func (s *ChatService) DeleteChat(ctx context.Context, userID, chatID string) error {
	if err := s.chatRepo.Delete(ctx, chatID); err != nil {
		return err
	}
	if err := s.userChatRepo.Remove(ctx, userID, chatID); err != nil {
		// The chat document is already gone; a stale or missing index
		// entry only hurts listing.
		log.Warn().Err(err).Str("chat_id", chatID).Msg("failed to remove chat from index")
	}
	return nil
}
