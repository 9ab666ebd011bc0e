package mongo

import (
	"context"
	"errors"
	"fmt"

	"github.com/scrollconnect/postpilot/internal/domain"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// UserChatRepository stores the per-user chat index in the userchats
// collection: one document per user holding an ordered summary array.
type UserChatRepository struct {
	coll *mongo.Collection
}

// NewUserChatRepository creates a new user chat index repository
func NewUserChatRepository(db *DB) *UserChatRepository {
	return &UserChatRepository{coll: db.db.Collection(userChatsCollection)}
}

type userChatsDoc struct {
	UserID string               `bson:"userId"`
	Chats  []domain.ChatSummary `bson:"chats"`
}

// AddChat appends a summary to the user's index, creating the index
// document on first use.
func (r *UserChatRepository) AddChat(ctx context.Context, userID string, summary domain.ChatSummary) error {
	_, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "userId", Value: userID}},
		bson.D{{Key: "$push", Value: bson.D{{Key: "chats", Value: summary}}}},
		options.Update().SetUpsert(true),
	)
	if err != nil {
		return fmt.Errorf("failed to add chat to index: %w", err)
	}
	return nil
}

// List returns the user's summaries in insertion order
func (r *UserChatRepository) List(ctx context.Context, userID string) ([]domain.ChatSummary, error) {
	var doc userChatsDoc
	err := r.coll.FindOne(ctx, bson.D{{Key: "userId", Value: userID}}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return []domain.ChatSummary{}, nil
		}
		return nil, fmt.Errorf("failed to fetch user chats: %w", err)
	}

	if doc.Chats == nil {
		return []domain.ChatSummary{}, nil
	}
	return doc.Chats, nil
}

// Rename updates the title of one indexed chat via the positional operator
func (r *UserChatRepository) Rename(ctx context.Context, userID, chatID, title string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{
			{Key: "userId", Value: userID},
			{Key: "chats._id", Value: chatID},
		},
		bson.D{{Key: "$set", Value: bson.D{{Key: "chats.$.title", Value: title}}}},
	)
	if err != nil {
		return fmt.Errorf("failed to rename chat: %w", err)
	}
	if res.MatchedCount == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}

// Remove drops one summary from the user's index
func (r *UserChatRepository) Remove(ctx context.Context, userID, chatID string) error {
	res, err := r.coll.UpdateOne(ctx,
		bson.D{{Key: "userId", Value: userID}},
		bson.D{{Key: "$pull", Value: bson.D{
			{Key: "chats", Value: bson.D{{Key: "_id", Value: chatID}}},
		}}},
	)
	if err != nil {
		return fmt.Errorf("failed to remove chat from index: %w", err)
	}
	if res.ModifiedCount == 0 {
		return domain.ErrChatNotFound
	}
	return nil
}
