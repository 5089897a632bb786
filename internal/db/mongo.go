package db

import (
	"context" // Connection deadlines
	"fmt"     // Error wrapping
	"time"    // Timeouts

	"github.com/sirupsen/logrus"                 // Structured logging
	"go.mongodb.org/mongo-driver/mongo"          // MongoDB driver
	"go.mongodb.org/mongo-driver/mongo/options"  // Client options
	"go.mongodb.org/mongo-driver/mongo/readpref" // Read preference for ping
)

// Connect opens a MongoDB client and verifies it with a ping
func Connect(ctx context.Context, uri string) (*mongo.Client, error) {
	ctx, cancel := context.WithTimeout(ctx, 10*time.Second) // Bound the whole handshake
	defer cancel()

	clientOpts := options.Client().ApplyURI(uri).
		SetConnectTimeout(5 * time.Second).         // Dial timeout
		SetServerSelectionTimeout(5 * time.Second). // Fail fast when the cluster is unreachable
		SetMaxPoolSize(50)                          // Shared by every request

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, fmt.Errorf("db: connect: %w", err)
	}
	// Verify the connection is live
	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, fmt.Errorf("db: ping: %w", err)
	}
	logrus.Info("Database connected") // Log successful connection
	return client, nil
}

// Disconnect closes the client, logging rather than returning failures
func Disconnect(client *mongo.Client) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Disconnect(ctx); err != nil {
		logrus.WithError(err).Warn("Database disconnect failed")
	}
}
