package cache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// redisCache stores JSON-encoded entities under "<prefix>:<uuid>" keys.
type redisCache[T any] struct {
	client redis.UniversalClient
	prefix string
	ttl    time.Duration
	log    *zap.Logger
}

func (c *redisCache[T]) cacheKey(id uuid.UUID) string {
	return fmt.Sprintf("%s:%s", c.prefix, id)
}

// get returns (nil, nil) on a cache miss.
func (c *redisCache[T]) get(ctx context.Context, id uuid.UUID) (*T, error) {
	data, err := c.client.Get(ctx, c.cacheKey(id)).Bytes()
	if errors.Is(err, redis.Nil) {
		c.log.Debug("cache miss", zap.String("key", c.cacheKey(id)))
		return nil, nil
	}
	if err != nil {
		c.log.Error("failed to get from cache", zap.String("key", c.cacheKey(id)), zap.Error(err))
		return nil, err
	}

	var v T
	if err := json.Unmarshal(data, &v); err != nil {
		c.log.Error("failed to unmarshal cached entry", zap.String("key", c.cacheKey(id)), zap.Error(err))
		return nil, err
	}

	c.log.Debug("cache hit", zap.String("key", c.cacheKey(id)))
	return &v, nil
}

func (c *redisCache[T]) set(ctx context.Context, id uuid.UUID, v *T) error {
	if v == nil {
		return fmt.Errorf("cannot cache nil %s", c.prefix)
	}

	data, err := json.Marshal(v)
	if err != nil {
		c.log.Error("failed to marshal entry for cache", zap.String("key", c.cacheKey(id)), zap.Error(err))
		return err
	}

	if err := c.client.Set(ctx, c.cacheKey(id), data, c.ttl).Err(); err != nil {
		c.log.Error("failed to set cache", zap.String("key", c.cacheKey(id)), zap.Error(err))
		return err
	}

	c.log.Debug("cached entry", zap.String("key", c.cacheKey(id)), zap.Duration("ttl", c.ttl))
	return nil
}

func (c *redisCache[T]) delete(ctx context.Context, id uuid.UUID) error {
	if err := c.client.Del(ctx, c.cacheKey(id)).Err(); err != nil {
		c.log.Error("failed to delete from cache", zap.String("key", c.cacheKey(id)), zap.Error(err))
		return err
	}

	c.log.Debug("deleted from cache", zap.String("key", c.cacheKey(id)))
	return nil
}
