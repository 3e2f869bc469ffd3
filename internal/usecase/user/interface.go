package user

import (
	"context"

	"github.com/google/uuid"

	domain "twitter-api/internal/domain/user"
)

// Usecase defines the interface for user business logic operations.
type Usecase interface {
	Signup(ctx context.Context, in SignupRequest) (*User, error)
	Login(ctx context.Context, in LoginRequest) (*User, error)
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, in GetUserRequest) (*User, error)
	UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error)
	DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error)
}

// Repository defines the interface for user data access operations.
// GetByID, Update and Delete return a *errors.NotFoundError for unknown ids;
// GetByEmail returns (nil, nil) when no user has the address.
type Repository interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id uuid.UUID) error
	List(ctx context.Context) ([]domain.User, error)
}

// PasswordHasher hashes and verifies passwords.
type PasswordHasher interface {
	Hash(password string) (string, error)
	Compare(hash, password string) bool
}
