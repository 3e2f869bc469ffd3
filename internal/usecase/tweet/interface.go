package tweet

import (
	"context"

	"github.com/google/uuid"

	domain "twitter-api/internal/domain/tweet"
	userdomain "twitter-api/internal/domain/user"
)

// Usecase defines the interface for tweet business logic operations.
type Usecase interface {
	PostTweet(ctx context.Context, in PostTweetRequest) (*Tweet, error)
	ListTweets(ctx context.Context) ([]Tweet, error)
	GetTweet(ctx context.Context, in GetTweetRequest) (*Tweet, error)
	UpdateTweet(ctx context.Context, in UpdateTweetRequest) (*Tweet, error)
	DeleteTweet(ctx context.Context, in DeleteTweetRequest) (*Tweet, error)
}

// Repository defines the interface for tweet data access operations.
// GetByID, Update and Delete return a *errors.NotFoundError for unknown ids.
type Repository interface {
	Create(ctx context.Context, t *domain.Tweet) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Tweet, error)
	Update(ctx context.Context, t *domain.Tweet) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.Tweet, error)
}

// AuthorLookup resolves the posting user. It is satisfied by user.Repository.
type AuthorLookup interface {
	GetByID(ctx context.Context, id uuid.UUID) (*userdomain.User, error)
}
