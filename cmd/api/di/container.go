package di

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"twitter-api/cmd/api/infrastructure"
	"twitter-api/internal/adapter/cache"
	"twitter-api/internal/adapter/db/jsonfile"
	"twitter-api/internal/adapter/db/postgres"
	ginhandler "twitter-api/internal/adapter/gin/handler"
	grpcadapter "twitter-api/internal/adapter/grpc"
	"twitter-api/internal/adapter/ratelimit"
	"twitter-api/internal/adapter/repository/cached"
	"twitter-api/internal/config"
	"twitter-api/internal/usecase/tweet"
	"twitter-api/internal/usecase/user"
	redisclient "twitter-api/pkg/redis"
	"twitter-api/pkg/security"
)

// Container holds all application dependencies
type Container struct {
	Config       *config.Config
	Logger       *zap.Logger
	DB           *gorm.DB
	RedisClient  *redisclient.Client
	UserUC       user.Usecase
	TweetUC      tweet.Usecase
	RateLimiter  *ratelimit.Limiter
	UserHandler  *ginhandler.UserHandler
	TweetHandler *ginhandler.TweetHandler
	GRPCService  *grpcadapter.TwitterService
}

// NewContainer creates and initializes all application dependencies
func NewContainer(ctx context.Context, cfg *config.Config, l *zap.Logger) (*Container, error) {
	// Validate configuration before initializing any dependencies
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation failed: %w", err)
	}

	c := &Container{Config: cfg, Logger: l}

	db, err := infrastructure.NewDatabase(cfg, l)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	c.DB = db

	rdb, err := infrastructure.NewRedisClient(ctx, cfg, l)
	if err != nil {
		_ = c.Close()
		return nil, fmt.Errorf("failed to initialize Redis: %w", err)
	}
	c.RedisClient = rdb

	userRepo, tweetRepo := c.repositories()

	c.UserUC = user.New(userRepo, security.NewPasswordHasher(cfg.Security.BcryptCost), l)
	c.TweetUC = tweet.New(tweetRepo, userRepo, l)

	if rdb != nil {
		c.RateLimiter = ratelimit.New(rdb.Client, ratelimit.Config{
			Enabled:           cfg.RateLimit.Enabled,
			RequestsPerSecond: cfg.RateLimit.RequestsPerSecond,
			BurstCapacity:     cfg.RateLimit.BurstCapacity,
		}, l)
	}

	c.UserHandler = ginhandler.NewUserHandler(c.UserUC, l)
	c.TweetHandler = ginhandler.NewTweetHandler(c.TweetUC, l)
	c.GRPCService = grpcadapter.NewTwitterService(c.UserUC, c.TweetUC, l)

	return c, nil
}

// repositories builds the storage layer for the configured driver, wrapped
// with the Redis cache when it is available.
func (c *Container) repositories() (user.Repository, tweet.Repository) {
	var (
		userRepo  user.Repository
		tweetRepo tweet.Repository
	)
	if c.DB != nil {
		userRepo = postgres.NewUserRepoPG(c.DB, c.Logger)
		tweetRepo = postgres.NewTweetRepoPG(c.DB, c.Logger)
	} else {
		userRepo = jsonfile.NewUserRepo(c.Config.Storage.DataDir, c.Logger)
		tweetRepo = jsonfile.NewTweetRepo(c.Config.Storage.DataDir, c.Logger)
	}

	if c.RedisClient == nil {
		return userRepo, tweetRepo
	}

	ttl := c.Config.Redis.CacheTTLDuration()
	userRepo = cached.NewCachedUserRepository(userRepo, cache.NewRedisUserCache(c.RedisClient.Client, ttl, c.Logger), c.Logger)
	tweetRepo = cached.NewCachedTweetRepository(tweetRepo, cache.NewRedisTweetCache(c.RedisClient.Client, ttl, c.Logger), c.Logger)
	return userRepo, tweetRepo
}

// Close closes all resources held by the container
func (c *Container) Close() error {
	var errs []error

	// Close Redis connection
	if c.RedisClient != nil {
		if err := c.RedisClient.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close Redis: %w", err))
		}
	}

	// Close database connection
	if c.DB != nil {
		if err := infrastructure.CloseDatabase(c.DB); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("container close errors: %v", errs)
	}

	return nil
}
