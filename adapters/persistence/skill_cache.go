package persistence

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/khoahotran/profile-playground/internal/application/service"
	"github.com/khoahotran/profile-playground/internal/domain/search"
)

type redisSkillCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisSkillCache(client *redis.Client, ttl time.Duration) service.SkillCache {
	return &redisSkillCache{client: client, ttl: ttl}
}

type cachedTopSkills struct {
	Version time.Time           `json:"version"`
	Skills  []search.SkillCount `json:"skills"`
}

func topSkillsKey(ownerID uuid.UUID) string {
	return fmt.Sprintf("profile:%s:skills:top", ownerID.String())
}

func (c *redisSkillCache) GetTopSkills(ctx context.Context, ownerID uuid.UUID, version time.Time) ([]search.SkillCount, bool, error) {
	data, err := c.client.Get(ctx, topSkillsKey(ownerID)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get top skills: %w", err)
	}

	var cached cachedTopSkills
	if err := json.Unmarshal(data, &cached); err != nil {
		return nil, false, fmt.Errorf("decode cached top skills: %w", err)
	}
	if !cached.Version.Equal(version) {
		return nil, false, nil
	}
	return cached.Skills, true, nil
}

func (c *redisSkillCache) SetTopSkills(ctx context.Context, ownerID uuid.UUID, version time.Time, skills []search.SkillCount) error {
	data, err := json.Marshal(cachedTopSkills{Version: version, Skills: skills})
	if err != nil {
		return fmt.Errorf("encode top skills: %w", err)
	}
	return c.client.Set(ctx, topSkillsKey(ownerID), data, c.ttl).Err()
}

func (c *redisSkillCache) Invalidate(ctx context.Context, ownerID uuid.UUID) error {
	return c.client.Del(ctx, topSkillsKey(ownerID)).Err()
}
