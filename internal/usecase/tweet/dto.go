package tweet

import (
	"time"

	"github.com/google/uuid"

	domain "twitter-api/internal/domain/tweet"
)

// PostTweetRequest represents the request payload for posting a tweet.
type PostTweetRequest struct {
	Content string `validate:"required,min=1,max=256"`
	UserID  uuid.UUID
}

// GetTweetRequest represents the request payload for retrieving a tweet.
type GetTweetRequest struct {
	ID uuid.UUID
}

// UpdateTweetRequest replaces the content of a tweet.
type UpdateTweetRequest struct {
	ID      uuid.UUID
	Content string `validate:"required,min=1,max=256"`
}

// DeleteTweetRequest represents the request payload for deleting a tweet.
type DeleteTweetRequest struct {
	ID uuid.UUID
}

// Tweet is the tweet DTO returned to transports.
type Tweet struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time
	By        Author
}

// Author is the embedded author DTO.
type Author struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

func toDTO(t *domain.Tweet) *Tweet {
	return &Tweet{
		ID:        t.ID,
		Content:   t.Content,
		CreatedAt: t.CreatedAt,
		UpdatedAt: t.UpdatedAt,
		By: Author{
			ID:        t.By.ID,
			Email:     t.By.Email,
			FirstName: t.By.FirstName,
			LastName:  t.By.LastName,
			BirthDate: t.By.BirthDate,
		},
	}
}
