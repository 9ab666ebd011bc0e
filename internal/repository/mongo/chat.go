package mongo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/scrollconnect/postpilot/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// ChatRepository stores chat documents in the chats collection
type ChatRepository struct {
	coll *mongo.Collection
}

// NewChatRepository creates a new chat repository
func NewChatRepository(db *DB) *ChatRepository {
	return &ChatRepository{coll: db.db.Collection(chatCollection)}
}

// chatDoc is the persisted shape of a chat. History entries are
// {role, parts:[{text}]} so existing documents stay readable.
type chatDoc struct {
	ID        primitive.ObjectID `bson:"_id,omitempty"`
	UserID    string             `bson:"userId"`
	History   []domain.Turn      `bson:"history"`
	CreatedAt time.Time          `bson:"createdAt"`
	UpdatedAt time.Time          `bson:"updatedAt"`
}

func (d chatDoc) toDomain() *domain.Chat {
	return &domain.Chat{
		ID:        d.ID.Hex(),
		UserID:    d.UserID,
		History:   d.History,
		CreatedAt: d.CreatedAt,
		UpdatedAt: d.UpdatedAt,
	}
}

// Create persists a new chat and returns its generated ID
func (r *ChatRepository) Create(ctx context.Context, chat *domain.Chat) (string, error) {
	now := time.Now()
	doc := chatDoc{
		ID:        primitive.NewObjectID(),
		UserID:    chat.UserID,
		History:   chat.History,
		CreatedAt: now,
		UpdatedAt: now,
	}

	if _, err := r.coll.InsertOne(ctx, doc); err != nil {
		return "", fmt.Errorf("failed to insert chat: %w", err)
	}

	return doc.ID.Hex(), nil
}

// Get returns the full chat document
func (r *ChatRepository) Get(ctx context.Context, chatID string) (*domain.Chat, error) {
	oid, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return nil, domain.ErrChatNotFound
	}

	var doc chatDoc
	err = r.coll.FindOne(ctx, bson.D{{Key: "_id", Value: oid}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, domain.ErrChatNotFound
		}
		return nil, fmt.Errorf("failed to fetch chat: %w", err)
	}

	return doc.toDomain(), nil
}

// AppendTurn pushes a turn onto the chat history. Mongo's $push is the
// sole ordering arbiter for appends from overlapping turns.
func (r *ChatRepository) AppendTurn(ctx context.Context, chatID string, turn domain.Turn) error {
	oid, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return domain.ErrChatNotFound
	}

	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "_id", Value: oid}},
		bson.D{
			{Key: "$push", Value: bson.D{{Key: "history", Value: turn}}},
			{Key: "$set", Value: bson.D{{Key: "updatedAt", Value: time.Now()}}},
		},
	)
	if err != nil {
		return fmt.Errorf("failed to append turn: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChatNotFound
	}

	return nil
}

// Delete removes the chat document
func (r *ChatRepository) Delete(ctx context.Context, chatID string) error {
	oid, err := primitive.ObjectIDFromHex(chatID)
	if err != nil {
		return domain.ErrChatNotFound
	}

	res, err := r.coll.DeleteOne(ctx, bson.D{{Key: "_id", Value: oid}})
	if err != nil {
		return fmt.Errorf("failed to delete chat: %w", err)
	}
	if res.DeletedCount == 0 {
		return domain.ErrChatNotFound
	}

	return nil
}
