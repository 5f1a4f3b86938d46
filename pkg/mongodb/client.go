package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.mongodb.org/mongo-driver/mongo/readpref"
	"go.uber.org/zap"
)

const connectTimeout = 10 * time.Second

// Client wraps a mongo client bound to one database.
type Client struct {
	*mongo.Client
	DB     *mongo.Database
	logger *zap.Logger
}

// NewClient connects to MongoDB and verifies connectivity with a primary ping.
func NewClient(ctx context.Context, uri, dbName string, logger *zap.Logger) (*Client, error) {
	opts := options.Client().ApplyURI(uri).SetConnectTimeout(connectTimeout)
	mc, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("mongo connect: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, connectTimeout)
	defer cancel()
	if err := mc.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = mc.Disconnect(context.Background())
		return nil, fmt.Errorf("mongo ping: %w", err)
	}

	logger.Info("MongoDB client connected", zap.String("database", dbName))
	return &Client{Client: mc, DB: mc.Database(dbName), logger: logger}, nil
}

// Close disconnects the client.
func (c *Client) Close(ctx context.Context) error {
	if err := c.Disconnect(ctx); err != nil {
		return fmt.Errorf("mongo disconnect: %w", err)
	}
	c.logger.Info("MongoDB client disconnected")
	return nil
}
