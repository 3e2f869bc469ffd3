package tweet

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "twitter-api/internal/domain/tweet"
	"twitter-api/internal/usecase/validate"
	pkgerrors "twitter-api/pkg/errors"
	"twitter-api/pkg/logger"
)

type usecase struct {
	repo     Repository
	authors  AuthorLookup
	log      *zap.Logger
	validate *validate.Validator
	now      func() time.Time
}

// New creates a tweet Usecase. Authors are resolved through authors when posting.
func New(r Repository, authors AuthorLookup, log *zap.Logger) Usecase {
	return &usecase{
		repo:     r,
		authors:  authors,
		log:      log,
		validate: validate.New(),
		now:      func() time.Time { return time.Now().UTC() },
	}
}

// PostTweet stores a new tweet by an existing user.
func (uc *usecase) PostTweet(ctx context.Context, in PostTweetRequest) (*Tweet, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("user_id", in.UserID.String()))

	if in.UserID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("UserID", "invalid user id")
	}
	if err := uc.validate.Struct(in); err != nil {
		log.Warn("post tweet validation failed", zap.Error(err))
		return nil, err
	}

	author, err := uc.authors.GetByID(ctx, in.UserID)
	if err != nil {
		if pkgerrors.IsNotFound(err) {
			log.Warn("tweet author not found")
			return nil, pkgerrors.NewNotFoundError("user", "author not found")
		}
		log.Error("failed to resolve tweet author", zap.Error(err))
		return nil, err
	}

	t := &domain.Tweet{
		ID:        uuid.New(),
		Content:   in.Content,
		CreatedAt: uc.now(),
		By:        domain.AuthorFrom(author),
	}
	if err := uc.repo.Create(ctx, t); err != nil {
		log.Error("failed to create tweet", zap.Error(err))
		return nil, err
	}

	log.Info("tweet posted", zap.String("tweet_id", t.ID.String()))
	return toDTO(t), nil
}

// ListTweets returns every stored tweet.
func (uc *usecase) ListTweets(ctx context.Context) ([]Tweet, error) {
	domainTweets, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list tweets", zap.Error(err))
		return nil, err
	}

	tweets := make([]Tweet, len(domainTweets))
	for i := range domainTweets {
		tweets[i] = *toDTO(&domainTweets[i])
	}
	return tweets, nil
}

// GetTweet retrieves a tweet by ID.
func (uc *usecase) GetTweet(ctx context.Context, in GetTweetRequest) (*Tweet, error) {
	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid tweet id")
	}

	t, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, uc.log).Warn("failed to get tweet", zap.String("tweet_id", in.ID.String()), zap.Error(err))
		return nil, err
	}
	return toDTO(t), nil
}

// UpdateTweet replaces a tweet's content and stamps UpdatedAt.
func (uc *usecase) UpdateTweet(ctx context.Context, in UpdateTweetRequest) (*Tweet, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("tweet_id", in.ID.String()))

	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid tweet id")
	}
	if err := uc.validate.Struct(in); err != nil {
		log.Warn("update tweet validation failed", zap.Error(err))
		return nil, err
	}

	t, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	t.Content = in.Content
	t.UpdatedAt = &now
	if err := uc.repo.Update(ctx, t); err != nil {
		log.Error("failed to update tweet", zap.Error(err))
		return nil, err
	}

	log.Info("tweet updated")
	return toDTO(t), nil
}

// DeleteTweet removes a tweet and returns the deleted record.
func (uc *usecase) DeleteTweet(ctx context.Context, in DeleteTweetRequest) (*Tweet, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("tweet_id", in.ID.String()))

	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid tweet id")
	}

	t, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		log.Error("failed to delete tweet", zap.Error(err))
		return nil, err
	}

	log.Info("tweet deleted")
	return toDTO(t), nil
}
