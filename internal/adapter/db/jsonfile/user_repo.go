package jsonfile

import (
	"context"
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"twitter-api/internal/domain/user"
	pkgerrors "twitter-api/pkg/errors"
)

// UsersFile is the file name of the user store inside the data directory.
const UsersFile = "users.json"

// userRecord is the on-disk shape of a user.
type userRecord struct {
	ID        uuid.UUID `json:"user_id"`
	Email     string    `json:"email"`
	FirstName string    `json:"first_name"`
	LastName  string    `json:"last_name"`
	BirthDate *string   `json:"birth_date"`
	Password  string    `json:"password"`
}

// UserRepo implements the user Repository on top of a JSON file.
type UserRepo struct {
	file *file[userRecord]
	log  *zap.Logger
}

// NewUserRepo creates a UserRepo storing users in dataDir/users.json.
func NewUserRepo(dataDir string, log *zap.Logger) *UserRepo {
	return &UserRepo{
		file: newFile[userRecord](filepath.Join(dataDir, UsersFile)),
		log:  log,
	}
}

// Create appends a user. Email addresses are unique case-insensitively.
func (r *UserRepo) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}

	err := r.file.modify(ctx, func(records []userRecord) ([]userRecord, error) {
		for _, rec := range records {
			if rec.ID == u.ID {
				return nil, pkgerrors.NewAlreadyExistsError("user", "user id already exists")
			}
			if strings.EqualFold(rec.Email, u.Email) {
				return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
			}
		}
		return append(records, toUserRecord(u)), nil
	})
	if err != nil {
		r.log.Error("failed to create user in file", zap.Error(err), zap.String("email", u.Email))
		return err
	}

	r.log.Info("user created in file", zap.String("user_id", u.ID.String()))
	return nil
}

// GetByID returns the user with the given id.
func (r *UserRepo) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	records, err := r.file.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if rec.ID == id {
			return rec.toDomain()
		}
	}
	return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
}

// GetByEmail returns the user with the given email, or nil when there is none.
func (r *UserRepo) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	records, err := r.file.readAll(ctx)
	if err != nil {
		return nil, err
	}
	for _, rec := range records {
		if strings.EqualFold(rec.Email, email) {
			return rec.toDomain()
		}
	}
	return nil, nil
}

// Update replaces the stored user with the same id.
func (r *UserRepo) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return fmt.Errorf("user cannot be nil")
	}

	err := r.file.modify(ctx, func(records []userRecord) ([]userRecord, error) {
		idx := -1
		for i, rec := range records {
			if rec.ID == u.ID {
				idx = i
				continue
			}
			if strings.EqualFold(rec.Email, u.Email) {
				return nil, pkgerrors.NewAlreadyExistsError("user", "email already exists")
			}
		}
		if idx < 0 {
			return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", u.ID))
		}
		records[idx] = toUserRecord(u)
		return records, nil
	})
	if err != nil {
		r.log.Warn("failed to update user in file", zap.Error(err), zap.String("user_id", u.ID.String()))
		return err
	}

	r.log.Info("user updated in file", zap.String("user_id", u.ID.String()))
	return nil
}

// Delete removes the user with the given id.
func (r *UserRepo) Delete(ctx context.Context, id uuid.UUID) error {
	err := r.file.modify(ctx, func(records []userRecord) ([]userRecord, error) {
		for i, rec := range records {
			if rec.ID == id {
				return append(records[:i], records[i+1:]...), nil
			}
		}
		return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
	})
	if err != nil {
		r.log.Warn("failed to delete user in file", zap.Error(err), zap.String("user_id", id.String()))
		return err
	}

	r.log.Info("user deleted in file", zap.String("user_id", id.String()))
	return nil
}

// List returns every user in file order.
func (r *UserRepo) List(ctx context.Context) ([]user.User, error) {
	records, err := r.file.readAll(ctx)
	if err != nil {
		r.log.Error("failed to list users from file", zap.Error(err))
		return nil, err
	}

	users := make([]user.User, 0, len(records))
	for _, rec := range records {
		u, err := rec.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func toUserRecord(u *user.User) userRecord {
	rec := userRecord{
		ID:        u.ID,
		Email:     u.Email,
		FirstName: u.FirstName,
		LastName:  u.LastName,
		Password:  u.PasswordHash,
	}
	if u.BirthDate != nil {
		d := u.BirthDate.Format(user.BirthDateLayout)
		rec.BirthDate = &d
	}
	return rec
}

func (rec userRecord) toDomain() (*user.User, error) {
	u := &user.User{
		ID:           rec.ID,
		Email:        rec.Email,
		FirstName:    rec.FirstName,
		LastName:     rec.LastName,
		PasswordHash: rec.Password,
	}
	if rec.BirthDate != nil {
		d, err := time.Parse(user.BirthDateLayout, *rec.BirthDate)
		if err != nil {
			return nil, fmt.Errorf("%w: user %s has birth_date %q", ErrMalformed, rec.ID, *rec.BirthDate)
		}
		u.BirthDate = &d
	}
	return u, nil
}
