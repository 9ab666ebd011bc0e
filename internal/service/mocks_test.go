package service

import (
	"context"
	"fmt"

	"github.com/scrollconnect/postpilot/internal/domain"
	"github.com/stretchr/testify/mock"
)

// fakeChatRepo is an in-memory chat store that records append order,
// so tests can assert the exact sequence of persisted turns.
type fakeChatRepo struct {
	chats  map[string][]domain.Turn
	nextID int
}

func newFakeChatRepo() *fakeChatRepo {
	return &fakeChatRepo{chats: make(map[string][]domain.Turn)}
}

func (f *fakeChatRepo) seed(chatID string, history ...domain.Turn) {
	f.chats[chatID] = history
}

func (f *fakeChatRepo) Create(ctx context.Context, chat *domain.Chat) (string, error) {
	f.nextID++
	id := fmt.Sprintf("chat-%d", f.nextID)
	f.chats[id] = chat.History
	return id, nil
}

func (f *fakeChatRepo) Get(ctx context.Context, chatID string) (*domain.Chat, error) {
	history, ok := f.chats[chatID]
	if !ok {
		return nil, domain.ErrChatNotFound
	}
	return &domain.Chat{ID: chatID, History: history}, nil
}

func (f *fakeChatRepo) AppendTurn(ctx context.Context, chatID string, turn domain.Turn) error {
	if _, ok := f.chats[chatID]; !ok {
		return domain.ErrChatNotFound
	}
	f.chats[chatID] = append(f.chats[chatID], turn)
	return nil
}

func (f *fakeChatRepo) Delete(ctx context.Context, chatID string) error {
	if _, ok := f.chats[chatID]; !ok {
		return domain.ErrChatNotFound
	}
	delete(f.chats, chatID)
	return nil
}

// MockUserChatRepository mocks the UserChatRepository interface
type MockUserChatRepository struct {
	mock.Mock
}

func (m *MockUserChatRepository) AddChat(ctx context.Context, userID string, summary domain.ChatSummary) error {
	args := m.Called(ctx, userID, summary)
	return args.Error(0)
}

func (m *MockUserChatRepository) List(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	args := m.Called(ctx, userID)
	return args.Get(0).([]domain.ChatSummary), args.Error(1)
}

func (m *MockUserChatRepository) Rename(ctx context.Context, userID, chatID, title string) error {
	args := m.Called(ctx, userID, chatID, title)
	return args.Error(0)
}

func (m *MockUserChatRepository) Remove(ctx context.Context, userID, chatID string) error {
	args := m.Called(ctx, userID, chatID)
	return args.Error(0)
}

// MockClassifier mocks llm.Classifier
type MockClassifier struct {
	mock.Mock
}

func (m *MockClassifier) ClassifyCompleteness(ctx context.Context, question, transcript string) (*domain.CompletenessDecision, error) {
	args := m.Called(ctx, question, transcript)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.CompletenessDecision), args.Error(1)
}

// MockDescriber mocks llm.Describer
type MockDescriber struct {
	mock.Mock
}

func (m *MockDescriber) DescribeImage(ctx context.Context, data []byte, mimeType string) (string, error) {
	args := m.Called(ctx, data, mimeType)
	return args.String(0), args.Error(1)
}

// MockGenerator mocks llm.Generator
type MockGenerator struct {
	mock.Mock
}

func (m *MockGenerator) GenerateContent(ctx context.Context, question, transcript string) (string, error) {
	args := m.Called(ctx, question, transcript)
	return args.String(0), args.Error(1)
}
