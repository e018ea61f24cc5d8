// Package mongodb stores users and profiles as MongoDB documents.
package mongodb

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"

	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
)

const (
	collectionUsers    = "users"
	collectionProfiles = "profiles"
)

// NewClient connects to MongoDB and returns the configured database.
func NewClient(cfg config.Config, log logger.Logger) (*mongo.Client, *mongo.Database, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	clientOpts := options.Client().
		ApplyURI(cfg.Mongo.URI).
		SetMaxPoolSize(100).
		SetMinPoolSize(10).
		SetMaxConnIdleTime(30 * time.Second)

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to MongoDB: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		_ = client.Disconnect(context.Background())
		return nil, nil, fmt.Errorf("failed to ping MongoDB: %w", err)
	}

	log.Info("Connect MongoDB successfully.", zap.String("database", cfg.Mongo.Database))
	return client, client.Database(cfg.Mongo.Database), nil
}
