// Package db contains things related to MongoDB
package db

import (
	"context"
	"fmt"
	"time"

	"vidshare/backend/config"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

// New connects to MongoDB and returns a handle to the application database.
func New(cfg *config.Config) (*mongo.Database, error) {
	opts := options.Client().
		ApplyURI(cfg.MongoURI).
		SetMaxPoolSize(50).
		SetMinPoolSize(10).
		SetConnectTimeout(5 * time.Second).
		SetSocketTimeout(10 * time.Second)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to MongoDB, %w", err)
	}

	pingCtx, cancelPing := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancelPing()

	if err := client.Ping(pingCtx, nil); err != nil {
		return nil, fmt.Errorf("failed to ping MongoDB, %w", err)
	}

	zap.L().Info("Connected to MongoDB")

	return client.Database(cfg.MongoDBName), nil
}

// Close disconnects the underlying client.
func Close(d *mongo.Database) {
	if err := d.Client().Disconnect(context.Background()); err != nil {
		zap.L().Error("Failed to disconnect MongoDB client", zap.Error(err))
	}
}
