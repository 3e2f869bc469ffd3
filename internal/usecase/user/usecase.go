package user

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	domain "twitter-api/internal/domain/user"
	"twitter-api/internal/usecase/validate"
	pkgerrors "twitter-api/pkg/errors"
	"twitter-api/pkg/logger"
	"twitter-api/pkg/security"
)

// errInvalidCredentials is returned for every failed login so callers cannot learn which emails exist.
var errInvalidCredentials = pkgerrors.NewUnauthorizedError("invalid email or password")

// usecase implements the business logic for user management operations.
type usecase struct {
	repo     Repository
	hasher   PasswordHasher
	log      *zap.Logger
	validate *validate.Validator
}

// New creates a user Usecase backed by r.
func New(r Repository, hasher PasswordHasher, log *zap.Logger) Usecase {
	return &usecase{repo: r, hasher: hasher, log: log, validate: validate.New()}
}

// Signup registers a new user after validating the request and checking email uniqueness.
func (uc *usecase) Signup(ctx context.Context, in SignupRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	in.Email = normalizeEmail(in.Email)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("signup validation failed", zap.Error(err))
		return nil, err
	}
	if err := security.ValidatePassword(in.Password); err != nil {
		log.Warn("signup password rejected", zap.Error(err))
		return nil, pkgerrors.NewValidationError("Password", err.Error())
	}

	birthDate, err := parseBirthDate(in.BirthDate)
	if err != nil {
		return nil, err
	}

	existing, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to check existing email", zap.String("email", in.Email), zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
	}
	if existing != nil {
		log.Warn("email already exists", zap.String("email", in.Email))
		return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
	}

	hash, err := uc.hasher.Hash(in.Password)
	if err != nil {
		log.Error("failed to hash password", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to register user", err)
	}

	u := &domain.User{
		ID:           uuid.New(),
		Email:        in.Email,
		FirstName:    in.FirstName,
		LastName:     in.LastName,
		BirthDate:    birthDate,
		PasswordHash: hash,
	}
	if err := uc.repo.Create(ctx, u); err != nil {
		log.Error("failed to create user", zap.Error(err))
		return nil, err
	}

	log.Info("user signed up", zap.String("user_id", u.ID.String()))
	return toDTO(u), nil
}

// Login verifies an email/password pair and returns the matching user.
func (uc *usecase) Login(ctx context.Context, in LoginRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log)
	in.Email = normalizeEmail(in.Email)

	if err := uc.validate.Struct(in); err != nil {
		log.Warn("login validation failed", zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.GetByEmail(ctx, in.Email)
	if err != nil {
		log.Error("failed to look up user for login", zap.Error(err))
		return nil, pkgerrors.NewInternalError("failed to log in", err)
	}
	if u == nil || !uc.hasher.Compare(u.PasswordHash, in.Password) {
		log.Warn("login rejected", zap.String("email", in.Email))
		return nil, errInvalidCredentials
	}

	log.Info("user logged in", zap.String("user_id", u.ID.String()))
	return toDTO(u), nil
}

// ListUsers returns every stored user.
func (uc *usecase) ListUsers(ctx context.Context) ([]User, error) {
	domainUsers, err := uc.repo.List(ctx)
	if err != nil {
		logger.WithContext(ctx, uc.log).Error("failed to list users", zap.Error(err))
		return nil, err
	}

	users := make([]User, len(domainUsers))
	for i := range domainUsers {
		users[i] = *toDTO(&domainUsers[i])
	}
	return users, nil
}

// GetUser retrieves a user by ID.
func (uc *usecase) GetUser(ctx context.Context, in GetUserRequest) (*User, error) {
	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid user id")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		logger.WithContext(ctx, uc.log).Warn("failed to get user", zap.String("user_id", in.ID.String()), zap.Error(err))
		return nil, err
	}
	return toDTO(u), nil
}

// UpdateUser applies the non-nil fields of the request to an existing user.
func (uc *usecase) UpdateUser(ctx context.Context, in UpdateUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("user_id", in.ID.String()))

	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid user id")
	}
	if in.Email != nil {
		email := normalizeEmail(*in.Email)
		in.Email = &email
	}
	clearBirthDate := in.BirthDate != nil && *in.BirthDate == ""
	if clearBirthDate {
		in.BirthDate = nil
	}
	if err := uc.validate.Struct(in); err != nil {
		log.Warn("update validation failed", zap.Error(err))
		return nil, err
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}

	if in.Email != nil && *in.Email != u.Email {
		existing, err := uc.repo.GetByEmail(ctx, *in.Email)
		if err != nil {
			log.Error("failed to check existing email", zap.Error(err))
			return nil, pkgerrors.NewInternalError("failed to validate email uniqueness", err)
		}
		if existing != nil && existing.ID != in.ID {
			log.Warn("email already exists", zap.String("email", *in.Email))
			return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
		}
		u.Email = *in.Email
	}
	if in.FirstName != nil {
		u.FirstName = *in.FirstName
	}
	if in.LastName != nil {
		u.LastName = *in.LastName
	}
	if clearBirthDate {
		u.BirthDate = nil
	} else if in.BirthDate != nil {
		birthDate, err := parseBirthDate(*in.BirthDate)
		if err != nil {
			return nil, err
		}
		u.BirthDate = birthDate
	}

	if err := uc.repo.Update(ctx, u); err != nil {
		log.Error("failed to update user", zap.Error(err))
		return nil, err
	}

	log.Info("user updated")
	return toDTO(u), nil
}

// DeleteUser removes a user and returns the deleted record.
// Tweets keep their author snapshot.
func (uc *usecase) DeleteUser(ctx context.Context, in DeleteUserRequest) (*User, error) {
	log := logger.WithContext(ctx, uc.log).With(zap.String("user_id", in.ID.String()))

	if in.ID == uuid.Nil {
		return nil, pkgerrors.NewValidationError("ID", "invalid user id")
	}

	u, err := uc.repo.GetByID(ctx, in.ID)
	if err != nil {
		return nil, err
	}
	if err := uc.repo.Delete(ctx, in.ID); err != nil {
		log.Error("failed to delete user", zap.Error(err))
		return nil, err
	}

	log.Info("user deleted")
	return toDTO(u), nil
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// parseBirthDate parses an already-validated YYYY-MM-DD string; empty means unset.
func parseBirthDate(s string) (*time.Time, error) {
	if s == "" {
		return nil, nil
	}
	d, err := time.Parse(domain.BirthDateLayout, s)
	if err != nil {
		return nil, pkgerrors.NewValidationError("BirthDate", "must be a date in YYYY-MM-DD format")
	}
	if d.After(time.Now()) {
		return nil, pkgerrors.NewValidationError("BirthDate", "must not be in the future")
	}
	return &d, nil
}
