package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/gdugdh24/expo-networking/internal/domain"
	"github.com/gdugdh24/expo-networking/internal/repository"
	"github.com/goccy/go-json"
	"github.com/redis/go-redis/v9"
)

type recommendationCache struct {
	client *redis.Client
}

func NewRecommendationCache(client *redis.Client) repository.RecommendationCache {
	return &recommendationCache{client: client}
}

func (c *recommendationCache) Get(ctx context.Context, key string) ([]domain.Recommendation, error) {
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrCacheMiss
		}
		return nil, err
	}

	var recs []domain.Recommendation
	if err := json.Unmarshal(data, &recs); err != nil {
		return nil, fmt.Errorf("failed to decode cached recommendations: %w", err)
	}
	return recs, nil
}

func (c *recommendationCache) Set(ctx context.Context, key string, recs []domain.Recommendation, ttl time.Duration) error {
	data, err := json.Marshal(recs)
	if err != nil {
		return fmt.Errorf("failed to encode recommendations: %w", err)
	}
	return c.client.Set(ctx, key, data, ttl).Err()
}

func (c *recommendationCache) InvalidateUser(ctx context.Context, userID string) error {
	pattern := repository.RecommendationCacheKey(userID, "*")
	iter := c.client.Scan(ctx, 0, pattern, 100).Iterator()

	var keys []string
	for iter.Next(ctx) {
		keys = append(keys, iter.Val())
	}
	if err := iter.Err(); err != nil {
		return err
	}
	if len(keys) == 0 {
		return nil
	}
	return c.client.Del(ctx, keys...).Err()
}
