package cache

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	domain "twitter-api/internal/domain/user"
)

// UserCache defines the interface for user caching operations.
type UserCache interface {
	// Get retrieves a user from cache by ID.
	// Returns nil if user is not found in cache.
	Get(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// Set stores a user in cache with the configured TTL.
	Set(ctx context.Context, user *domain.User) error

	// Delete removes a user from cache by ID.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisUserCache implements UserCache using Redis as the backing store.
type RedisUserCache struct {
	entries redisCache[domain.User]
}

// NewRedisUserCache creates a new Redis-backed user cache.
func NewRedisUserCache(client redis.UniversalClient, ttl time.Duration, log *zap.Logger) UserCache {
	return &RedisUserCache{
		entries: redisCache[domain.User]{client: client, prefix: "user", ttl: ttl, log: log},
	}
}

// Get retrieves a user from Redis cache.
func (c *RedisUserCache) Get(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return c.entries.get(ctx, id)
}

// Set stores a user in Redis cache with TTL.
func (c *RedisUserCache) Set(ctx context.Context, user *domain.User) error {
	if user == nil {
		return c.entries.set(ctx, uuid.Nil, nil)
	}
	return c.entries.set(ctx, user.ID, user)
}

// Delete removes a user from Redis cache.
func (c *RedisUserCache) Delete(ctx context.Context, id uuid.UUID) error {
	return c.entries.delete(ctx, id)
}
