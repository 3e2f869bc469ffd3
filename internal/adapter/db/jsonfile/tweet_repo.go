package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twitter-api/internal/domain/tweet"
	"twitter-api/internal/domain/user"
	pkgerrors "twitter-api/pkg/errors"
)

// TweetsFile is the file name of the tweet store inside the data directory.
const TweetsFile = "tweets.json"

type authorRecord struct {
	ID        uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date"`
}

// tweetRecord is the on-disk shape of a tweet with its embedded author.
type tweetRecord struct {
	ID        uuid.UUID    `json:"tweet_id"`
	Content   string       `json:"content"`
	CreatedAt time.Time    `json:"created_at"`
	UpdatedAt *time.Time   `json:"updated_at"`
	By        authorRecord `json:"by"`
}

// TweetRepo implements the tweet Repository on top of a JSON file.
type TweetRepo struct {
	file *file[tweetRecord]
	log  *zap.Logger
}

// NewTweetRepo creates a TweetRepo storing tweets in dataDir/tweets.json.
func NewTweetRepo(dataDir string, log *zap.Logger) *TweetRepo {
	return &TweetRepo{
		file: newFile[tweetRecord](filepath.Join(dataDir, TweetsFile)),
		log:  log,
	}
}

// Create appends a tweet.
func (r *TweetRepo) Create(ctx context.Context, t *tweet.Tweet) error {
	if t == nil {
		return fmt.Errorf("tweet cannot be nil")
	}

	err := r.file.modify(ctx, func(records []tweetRecord) ([]tweetRecord, error) {
		for _, rec := range records {
			if rec.ID == t.ID {
				return nil, pkgerrors.NewAlreadyExistsError("tweet", "tweet id already exists")
			}
		}
		return append(records, toTweetRecord(t)), nil
	})
	if err != nil {
		r.log.Error("failed to create tweet in file", zap.Error(err))
		return err
	}

	r.log.Info("tweet created in file", zap.String("tweet_id", t.ID.String()))
	return nil
}

// GetByID returns the tweet with the given id.
func (r *TweetRepo) GetByID(ctx context.Context, id uuid.UUID) (*tweet.Tweet, error) {
	records, err := r.file.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain()
		}
	}
	return nil, pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", id))
}

// Update replaces the stored tweet with the same id.
func (r *TweetRepo) Update(ctx context.Context, t *tweet.Tweet) error {
	if t == nil {
		return fmt.Errorf("tweet cannot be nil")
	}

	err := r.file.modify(ctx, func(records []tweetRecord) ([]tweetRecord, error) {
		for i, rec := range records {
			if rec.ID == t.ID {
				records[i] = toTweetRecord(t)
				return records, nil
			}
		}
		return nil, pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", t.ID))
	})
	if err != nil {
		r.log.Warn("failed to update tweet in file", zap.Error(err), zap.String("tweet_id", t.ID.String()))
		return err
	}

	r.log.Info("tweet updated in file", zap.String("tweet_id", t.ID.String()))
	return nil
}

// Delete removes the tweet with the given id.
func (r *TweetRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.file.modify(ctx, func(records []tweetRecord) ([]tweetRecord, error) {
		for i, rec := range records {
			if rec.ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, pkgerrors.NewNotFoundError("tweet", fmt.Sprintf("tweet not found: id=%s", id))
	})
	if err != nil {
		r.log.Warn("failed to delete tweet in file", zap.Error(err), zap.String("tweet_id", id.String()))
		return err
	}

	r.log.Info("tweet deleted in file", zap.String("tweet_id", id.String()))
	return nil
}

// List returns every tweet in file order.
func (r *TweetRepo) List(ctx context.Context) ([]tweet.Tweet, error) {
	records, err := r.file.readAll(ctx)
	if err != nil {
		r.log.Error("failed to list tweets from file", zap.Error(err))
		return nil, err
	}

	tweets := make([]tweet.Tweet, 0, len(records))
	for _, rec := range records {
		t, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		tweets = append(tweets, *t)
	}
	return tweets, nil
}

func toTweetRecord(t *tweet.Tweet) tweetRecord {
	rec := tweetRecord{
		ID:        t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By: authorRecord{
			ID:        t.By.ID,
			Email:     t.By.Email,
			FirstName: t.By.FirstName,
			LastName:  t.By.LastName,
		},
	}
	if t.By.BirthDate != nil {
		d := t.By.BirthDate.Format(user.BirthDateLayout)
		rec.By.BirthDate = &d
	}
	return rec
}

func (rec tweetRecord) toDomain() (*tweet.Tweet, error) {
	t := &tweet.Tweet{
		ID:        rec.ID,
		Content:   rec.Content,
		CreatedAt: rec.CreatedAt,
		UpdatedAt: rec.UpdatedAt,
		By: tweet.Author{
			ID:        rec.By.ID,
			Email:     rec.By.Email,
			FirstName: rec.By.FirstName,
			LastName:  rec.By.LastName,
		},
	}
	if rec.By.BirthDate != nil {
		d, err := time.Parse(user.BirthDateLayout, *rec.By.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: tweet %s has author birth_date %q", ErrMalformed, rec.ID, *rec.By.BirthDate)
		}
		t.By.BirthDate = &d
	}
	return t, nil
}
