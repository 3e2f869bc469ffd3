// Package ratelimit implements a Redis-backed token bucket shared by the
// HTTP and gRPC transports.
package ratelimit

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
)

// KeyPrefix namespaces every bucket in Redis.
const KeyPrefix = "ratelimit:tb"

// minBucketTTL is the shortest lifetime of an idle bucket, in seconds.
const minBucketTTL = 60

// Config holds configuration for the rate limiter.
type Config struct {
	Enabled           bool
	RequestsPerSecond float64
	BurstCapacity     int
}

// tokenBucket refills at ARGV[1] tokens per second up to ARGV[2] and takes
// one token per call. Bucket state is {last_refill, tokens}.
var tokenBucket = redis.NewScript(`
local key = KEYS[1]
local rate = tonumber(ARGV[1])
local capacity = tonumber(ARGV[2])
local now = tonumber(ARGV[3])
local ttl = tonumber(ARGV[4])

local bucket = redis.call('HMGET', key, 'last_refill', 'tokens')
local last_refill = tonumber(bucket[1]) or now
local tokens = tonumber(bucket[2]) or capacity

local elapsed = math.max(0, now - last_refill)
tokens = math.min(capacity, tokens + elapsed * rate)

local allowed = 0
if tokens >= 1 then
	tokens = tokens - 1
	allowed = 1
end

redis.call('HSET', key, 'last_refill', tostring(now), 'tokens', tostring(tokens))
redis.call('EXPIRE', key, ttl)
return allowed
`)

// Limiter decides whether a request identified by a key may proceed.
type Limiter struct {
	client redis.UniversalClient
	config Config
	log    *zap.Logger
	now    func() time.Time
}

// New creates a Limiter. A nil client disables limiting.
func New(client redis.UniversalClient, config Config, log *zap.Logger) *Limiter {
	return &Limiter{
		client: client,
		config: config,
		log:    log,
		now:    time.Now,
	}
}

// Enabled reports whether requests are checked at all.
func (l *Limiter) Enabled() bool {
	return l != nil && l.config.Enabled && l.client != nil
}

// Key builds the bucket key for a transport, route and client.
func Key(transport, route, client string) string {
	return fmt.Sprintf("%s:%s:%s:%s", KeyPrefix, transport, route, client)
}

// Allow takes one token from the bucket at key. Redis failures are logged
// and the request is allowed.
func (l *Limiter) Allow(ctx context.Context, key string) bool {
	if !l.Enabled() {
		return true
	}

	now := float64(l.now().UnixNano()) / float64(time.Second)
	allowed, err := tokenBucket.Run(ctx, l.client, []string{key},
		l.config.RequestsPerSecond,
		l.config.BurstCapacity,
		now,
		l.bucketTTL(),
	).Int64()
	if err != nil {
		l.log.Warn("rate limiter redis error, allowing request", zap.String("key", key), zap.Error(err))
		return true
	}

	if allowed == 0 {
		l.log.Warn("rate limit exceeded",
			zap.String("key", key),
			zap.Float64("limit", l.config.RequestsPerSecond),
			zap.Int("burst", l.config.BurstCapacity),
		)
		return false
	}
	return true
}

// bucketTTL keeps an idle bucket at least as long as a full refill takes,
// since an expired bucket comes back full.
func (l *Limiter) bucketTTL() int64 {
	refill := int64(math.Ceil(float64(l.config.BurstCapacity)/l.config.RequestsPerSecond)) + 1
	if refill < minBucketTTL {
		return minBucketTTL
	}
	return refill
}

// Message is the human-readable rejection text used by both transports.
func (l *Limiter) Message() string {
	return fmt.Sprintf("rate limit exceeded: %.2f requests/second (burst capacity: %d)",
		l.config.RequestsPerSecond, l.config.BurstCapacity)
}
