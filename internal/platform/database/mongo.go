// File: internal/platform/database/mongo.go
package database

import (
	"context"
	"fmt"
	"time"

	"blad_backend/internal/config"

	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.uber.org/zap"
)

// ClientOptions builds the driver options used to reach the document store.
// The Stable API is pinned to v1 in strict mode.
func ClientOptions(cfg *config.Config) *options.ClientOptions {
	serverAPI := options.ServerAPI(options.ServerAPIVersion1).
		SetStrict(true).
		SetDeprecationErrors(true)

	opts := options.Client().
		ApplyURI(cfg.MongoURI()).
		SetServerAPIOptions(serverAPI).
		SetAppName("blad")
	if cfg.DBConnectTimeout > 0 {
		opts.SetConnectTimeout(cfg.DBConnectTimeout)
		opts.SetServerSelectionTimeout(cfg.DBConnectTimeout)
	}
	return opts
}

// NewMongo connects to MongoDB, verifies the connection and returns the
// application database. The returned cleanup func disconnects the client and
// must be called once on shutdown.
func NewMongo(cfg *config.Config, logger *zap.Logger) (*mongo.Database, func(), error) {
	client, err := mongo.Connect(ClientOptions(cfg))
	if err != nil {
		return nil, nil, fmt.Errorf("failed to create mongo client: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(cfg))
	defer cancel()

	if err := client.Ping(ctx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping mongo: %w", err)
	}

	logger.Info("Connected to MongoDB", zap.String("database", cfg.DBName))

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), connectTimeout(cfg))
		defer cancel()
		if err := client.Disconnect(ctx); err != nil {
			logger.Error("Error disconnecting from MongoDB", zap.Error(err))
			return
		}
		logger.Info("MongoDB connection closed.")
	}
	return client.Database(cfg.DBName), cleanup, nil
}

const defaultConnectTimeout = 10 * time.Second

func connectTimeout(cfg *config.Config) time.Duration {
	if cfg.DBConnectTimeout > 0 {
		return cfg.DBConnectTimeout
	}
	return defaultConnectTimeout
}
