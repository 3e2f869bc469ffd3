package cached

import (
	"context"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"twitter-api/internal/adapter/cache"
	domain "twitter-api/internal/domain/user"
	"twitter-api/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository and a cache implementation.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
	writes writeTracker
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create delegates to the underlying repository.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) error {
	return r.dbRepo.Create(ctx, u)
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to storage", zap.String("id", id.String()), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.String("id", id.String()))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	result, err, _ := r.group.Do("user:"+id.String(), func() (any, error) {
		// Another request may have populated the cache while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				return cachedUser, nil
			}
		}

		gen := r.writes.begin(id)
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			r.writes.end(id, gen)
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.String("id", id.String()), zap.Error(err))
			}
		}
		// A write that raced this read may have been invalidated before the Set above
		if r.writes.end(id, gen) {
			r.invalidate(ctx, id, "stale read")
		}
		return u, nil
	})
	if err != nil {
		return nil, err
	}

	// Callers sharing a flight each get their own copy
	u := *result.(*domain.User)
	return &u, nil
}

// GetByEmail delegates to the underlying repository.
func (r *CachedUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.dbRepo.GetByEmail(ctx, email)
}

// Update updates the user and invalidates the cache.
func (r *CachedUserRepository) Update(ctx context.Context, u *domain.User) error {
	if err := r.dbRepo.Update(ctx, u); err != nil {
		return err
	}
	r.afterWrite(ctx, u.ID, "update")
	return nil
}

// Delete deletes the user and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	if err := r.dbRepo.Delete(ctx, id); err != nil {
		return err
	}
	r.afterWrite(ctx, id, "delete")
	return nil
}

// List delegates to the underlying repository.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	return r.dbRepo.List(ctx)
}

// afterWrite drops the cached entry and detaches later readers from any
// flight that started before the write.
func (r *CachedUserRepository) afterWrite(ctx context.Context, id uuid.UUID, op string) {
	r.writes.written(id)
	r.group.Forget("user:" + id.String())
	r.invalidate(ctx, id, op)
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id uuid.UUID, op string) {
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after "+op, zap.String("id", id.String()), zap.Error(err))
	}
}
