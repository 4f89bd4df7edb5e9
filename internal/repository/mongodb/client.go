package mongodb

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Client wraps the shared MongoDB connection handed to the repositories.
type Client struct {
	client *mongo.Client
	dbName string
}

// NewClient connects to MongoDB and verifies the connection with a ping.
func NewClient(ctx context.Context, uri, dbName string) (*Client, error) {
	clientOptions := options.Client().ApplyURI(uri)
	client, err := mongo.Connect(ctx, clientOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return &Client{client: client, dbName: dbName}, nil
}

func (c *Client) collection(name string) *mongo.Collection {
	return c.client.Database(c.dbName).Collection(name)
}

// Close disconnects the underlying MongoDB client.
func (c *Client) Close(ctx context.Context) error {
	return c.client.Disconnect(ctx)
}
