package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"twitter-api/internal/domain/tweet"
	pkgerrors "twitter-api/pkg/errors"
)

// TweetRepoPG implements the tweet Repository using GORM.
type TweetRepoPG struct {
	db  *gorm.DB
	log *zap.Logger
}

// NewTweetRepoPG creates a new instance of TweetRepoPG.
func NewTweetRepoPG(db *gorm.DB, log *zap.Logger) *TweetRepoPG {
	return &TweetRepoPG{db: db, log: log}
}

// TweetSchema represents the tweets table. The author is denormalized into
// author_* columns; there is deliberately no foreign key to users.
type TweetSchema struct {
	ID              string     `gorm:"primaryKey;size:36"`
	Content         string     `gorm:"not null;size:1024"`
	CreatedAt       time.Time  `gorm:"not null;index;autoCreateTime:false"`
	UpdatedAt       *time.Time `gorm:"autoUpdateTime:false"`
	AuthorID        string     `gorm:"not null;index;size:36"`
	AuthorEmail     string     `gorm:"not null"`
	AuthorFirstName string     `gorm:"not null"`
	AuthorLastName  string     `gorm:"not null"`
	AuthorBirthDate *time.Time
}

// TableName specifies the table name for the TweetSchema model.
func (TweetSchema) TableName() string {
	return "tweets"
}

// Create inserts a new tweet.
func (r *TweetRepoPG) Create(ctx context.Context, t *tweet.Tweet) error {
	if t == nil {
		return errors.New("tweet cannot be nil")
	}

	model := toTweetSchema(t)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.NewAlreadyExistsError("tweet", "tweet id already exists")
		}
		r.log.Error("failed to create tweet in db", zap.Error(err))
		return fmt.Errorf("failed to create tweet: %w", err)
	}

	r.log.Info("tweet created in db", zap.String("tweet_id", model.ID))
	return nil
}

// GetByID retrieves a tweet by ID.
func (r *TweetRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*tweet.Tweet, error) {
	var model TweetSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", id))
		}
		r.log.Error("failed to get tweet from db", zap.Error(err), zap.String("tweet_id", id.String()))
		return nil, fmt.Errorf("failed to get tweet: %w", err)
	}
	return model.toDomain()
}

// Update overwrites a tweet's content and edit timestamp.
func (r *TweetRepoPG) Update(ctx context.Context, t *tweet.Tweet) error {
	if t == nil {
		return errors.New("tweet cannot be nil")
	}

	result := r.db.WithContext(ctx).Model(&TweetSchema{}).Where("id = ?", t.ID.String()).Updates(map[string]any{
		"content":    t.Content,
		"updated_at": utcTime(t.UpdatedAt),
	})
	if err := result.Error; err != nil {
		r.log.Error("failed to update tweet in db", zap.Error(err), zap.String("tweet_id", t.ID.String()))
		return fmt.Errorf("failed to update tweet: %w", err)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", t.ID))
	}

	r.log.Info("tweet updated in db", zap.String("tweet_id", t.ID.String()))
	return nil
}

// Delete removes a tweet by ID.
func (r *TweetRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&TweetSchema{})
	if err := result.Error; err != nil {
		r.log.Error("failed to delete tweet in db", zap.Error(err), zap.String("tweet_id", id.String()))
		return fmt.Errorf("failed to delete tweet: %w", err)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", id))
	}

	r.log.Info("tweet deleted in db", zap.String("tweet_id", id.String()))
	return nil
}

// List retrieves every tweet, oldest first.
func (r *TweetRepoPG) List(ctx context.Context) ([]tweet.Tweet, error) {
	var models []TweetSchema
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&models).Error; err != nil {
		r.log.Error("failed to list tweets from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list tweets: %w", err)
	}

	tweets := make([]tweet.Tweet, 0, len(models))
	for _, model := range models {
		t, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *t)
	}
	return tweets, nil
}

func toTweetSchema(t *tweet.Tweet) TweetSchema {
	return TweetSchema{
		ID:              t.ID.String(),
		Content:         t.Content,
		CreatedAt:       t.CreatedAt.UTC(),
		UpdatedAt:       utcTime(t.UpdatedAt),
		AuthorID:        t.By.ID.String(),
		AuthorEmail:     t.By.Email,
		AuthorFirstName: t.By.FirstName,
		AuthorLastName:  t.By.LastName,
		AuthorBirthDate: utcDate(t.By.BirthDate),
	}
}

func (m TweetSchema) toDomain() (*tweet.Tweet, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid tweet id %q in db: %w", m.ID, err)
	}
	authorID, err := uuid.Parse(m.AuthorID)
	if err != nil {
		return nil, fmt.Errorf("invalid author id %q in db: %w", m.AuthorID, err)
	}
	return &tweet.Tweet{
		ID:        id,
		Content:   m.Content,
		CreatedAt: m.CreatedAt.UTC(),
		UpdatedAt: utcTime(m.UpdatedAt),
		By: tweet.Author{
			ID:        authorID,
			Email:     m.AuthorEmail,
			FirstName: m.AuthorFirstName,
			LastName:  m.AuthorLastName,
			BirthDate: utcDate(m.AuthorBirthDate),
		},
	}, nil
}

func utcTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}
