package persistence

import (
	"context"
	"fmt"

	"github.com/khoahotran/profile-playground/internal/config"
	"github.com/khoahotran/profile-playground/pkg/logger"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

func NewRedisClient(cfg config.Config, log logger.Logger) (*redis.Client, error) {
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		Password: cfg.Redis.Password,
		DB:       0,
	})

	if err := rdb.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("can not connect Redis: %w", err)
	}

	log.Info("Connect Redis successfully.", zap.String("addr", cfg.Redis.Addr))
	return rdb, nil
}
