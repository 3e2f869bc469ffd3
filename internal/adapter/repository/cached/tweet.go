package cached

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"twitter-api/internal/adapter/cache"
	domain "twitter-api/internal/domain/tweet"
	"twitter-api/internal/usecase/tweet"
)

// CachedTweetRepository implements tweet.Repository with cache-aside reads.
type CachedTweetRepository struct {
	dbRepo tweet.Repository
	cache  cache.TweetCache
	log    *zap.Logger
	group  singleflight.Group
	writes writeTracker
}

// NewCachedTweetRepository creates a new instance of CachedTweetRepository.
func NewCachedTweetRepository(dbRepo tweet.Repository, cache cache.TweetCache, log *zap.Logger) tweet.Repository {
	return &CachedTweetRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

func (r *CachedTweetRepository) Create(ctx context.Context, t *domain.Tweet) error {
	return r.dbRepo.Create(ctx, t)
}

// GetByID serves from cache when possible and coalesces concurrent misses.
func (r *CachedTweetRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error) {
	if r.cache != nil {
		cached, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to storage", zap.String("id", id.String()), zap.Error(err))
		} else if cached != nil {
			return cached, nil
		}
	}

	result, err, _ := r.group.Do("tweet:"+id.String(), func() (any, error) {
		gen := r.writes.begin(id)
		t, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			r.writes.end(id, gen)
			return nil, err
		}
		if r.cache != nil {
			if err := r.cache.Set(ctx, t); err != nil {
				r.log.Warn("failed to cache tweet", zap.String("id", id.String()), zap.Error(err))
			}
		}
		// A write that raced this read may have been invalidated before the Set above
		if r.writes.end(id, gen) {
			r.invalidate(ctx, id)
		}
		return t, nil
	})
	if err != nil {
		return nil, err
	}

	t := *result.(*domain.Tweet)
	return &t, nil
}

func (r *CachedTweetRepository) Update(ctx context.Context, t *domain.Tweet) error {
	if err := r.dbRepo.Update(ctx, t); err != nil {
		return err
	}
	r.afterWrite(ctx, t.ID)
	return nil
}

func (r *CachedTweetRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dbRepo.Delete(ctx, id); err != nil {
		return err
	}
	r.afterWrite(ctx, id)
	return nil
}

func (r *CachedTweetRepository) List(ctx context.Context) ([]domain.Tweet, error) {
	return r.dbRepo.List(ctx)
}

func (r *CachedTweetRepository) afterWrite(ctx context.Context, id uuid.UUID) {
	r.writes.written(id)
	r.group.Forget("tweet:" + id.String())
	r.invalidate(ctx, id)
}

func (r *CachedTweetRepository) invalidate(ctx context.Context, id uuid.UUID) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate tweet cache", zap.String("id", id.String()), zap.Error(err))
	}
}
