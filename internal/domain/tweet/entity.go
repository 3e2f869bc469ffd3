package tweet

import (
	"time"

	"github.com/google/uuid"

	"twitter-api/internal/domain/user"
)

// Tweet is a short post by a user.
type Tweet struct {
	ID        uuid.UUID
	Content   string
	CreatedAt time.Time
	UpdatedAt *time.Time // nil until the first edit
	By        Author
}

// Author is the snapshot of the posting user embedded in a tweet.
// It is not kept in sync with later changes to the user.
type Author struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

// AuthorFrom snapshots u for embedding.
func AuthorFrom(u *user.User) Author {
	return Author{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
	}
}
