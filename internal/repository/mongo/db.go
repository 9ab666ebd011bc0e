package mongo

import (
	"context"
	"fmt"

	"github.com/scrollconnect/postpilot/internal/config"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const (
	chatCollection      = "chats"
	userChatsCollection = "userchats"
)

// DB wraps the Mongo client and database handle. It is constructed once
// at process start and injected into repositories.
type DB struct {
	client *mongo.Client
	db     *mongo.Database
}

// NewDB connects to MongoDB and verifies the connection
func NewDB(ctx context.Context, cfg config.MongoConfig) (*DB, error) {
	clientOpts := options.Client().ApplyURI(cfg.URI)
	if cfg.Timeout > 0 {
		clientOpts.SetConnectTimeout(cfg.Timeout)
	}

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("failed to create client: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping: %w", err)
	}

	return &DB{
		client: client,
		db:     client.Database(cfg.Database),
	}, nil
}

// Ping checks database connectivity
func (d *DB) Ping(ctx context.Context) error {
	return d.client.Ping(ctx, nil)
}

// Close disconnects the client
func (d *DB) Close() error {
	return d.client.Disconnect(context.Background())
}
