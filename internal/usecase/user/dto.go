package user

import (
	"time"

	"github.com/google/uuid"

	domain "twitter-api/internal/domain/user"
)

// SignupRequest represents the request payload for registering a new user.
type SignupRequest struct {
	Email     string `validate:"required,email,max=254"`
	FirstName string `validate:"required,min=1,max=50"`
	LastName  string `validate:"required,min=1,max=50"`
	BirthDate string `validate:"omitempty,datetime=2006-01-02"`
	Password  string `validate:"required,min=8,max=64"`
}

// LoginRequest represents the credentials of a login attempt.
type LoginRequest struct {
	Email    string `validate:"required,email"`
	Password string `validate:"required"`
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID uuid.UUID
}

// UpdateUserRequest represents a partial update; nil fields are left unchanged.
// An empty BirthDate clears the stored birth date.
type UpdateUserRequest struct {
	ID        uuid.UUID
	Email     *string `validate:"omitnil,email,max=254"`
	FirstName *string `validate:"omitnil,min=1,max=50"`
	LastName  *string `validate:"omitnil,min=1,max=50"`
	BirthDate *string `validate:"omitnil,datetime=2006-01-02"`
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID uuid.UUID
}

// User represents a user DTO (Data Transfer Object) for API responses.
type User struct {
	ID        uuid.UUID
	Email     string
	FirstName string
	LastName  string
	BirthDate *time.Time
}

func toDTO(u *domain.User) *User {
	return &User{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		BirthDate: u.BirthDate,
	}
}
