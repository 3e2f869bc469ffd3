package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "twitter-api/internal/domain/tweet"
)

// TweetCache defines the interface for tweet caching operations.
type TweetCache interface {
	Get(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Set(ctx context.Context, tweet *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisTweetCache implements TweetCache using Redis.
type RedisTweetCache struct {
	entries redisCache[domain.Tweet]
}

// NewRedisTweetCache creates a new Redis-backed tweet cache.
func NewRedisTweetCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) TweetCache {
	return &RedisTweetCache{
		entries: redisCache[domain.Tweet]{client: client, prefix: "tweet", ttl: ttl, log: log},
	}
}

func (c *RedisTweetCache) Get(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	return c.entries.get(ctx, id)
}

func (c *RedisTweetCache) Set(ctx context.Context, tweet *domain.Tweet) error {
	if tweet == nil {
		return c.entries.set(ctx, uuid.Nil, nil)
	}
	return c.entries.set(ctx, tweet.ID, tweet)
}

func (c *RedisTweetCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.entries.delete(ctx, id)
}
