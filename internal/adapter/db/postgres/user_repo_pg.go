package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"twitter-api/internal/domain/user"
	pkgerrors "twitter-api/pkg/errors"
)

// UserRepoPG implements the user Repository using GORM.
type UserRepoPG struct {
	db  *gorm.DB    // GORM database connection
	log *zap.Logger // Structured logger for database operations
}

// NewUserRepoPG creates a new instance of UserRepoPG.
func NewUserRepoPG(db *gorm.DB, log *zap.Logger) *UserRepoPG {
	return &UserRepoPG{db: db, log: log}
}

// UserSchema represents the database schema for the users table.
type UserSchema struct {
	ID           string     `gorm:"primaryKey;size:36"`
	Email        string     `gorm:"not null;uniqueIndex;size:254"` // stored lower-cased
	FirstName    string     `gorm:"not null;size:50"`
	LastName     string     `gorm:"not null;size:50"`
	BirthDate    *time.Time // midnight UTC
	PasswordHash string     `gorm:"not null"`
	CreatedAt    time.Time  `gorm:"index"` // insertion order for List
}

// TableName specifies the table name for the UserSchema model.
func (UserSchema) TableName() string {
	return "users"
}

// Create inserts a new user into the database.
func (r *UserRepoPG) Create(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := toUserSchema(u)
	if err := r.db.WithContext(ctx).Create(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			r.log.Warn("duplicate user in db", zap.String("email", u.Email))
			return pkgerrors.NewAlreadyExistsError("user", "email already exists")
		}
		r.log.Error("failed to create user in db", zap.Error(err), zap.String("email", u.Email))
		return fmt.Errorf("failed to create user: %w", err)
	}

	r.log.Info("user created in db", zap.String("user_id", model.ID))
	return nil
}

// Update overwrites the mutable columns of an existing user.
func (r *UserRepoPG) Update(ctx context.Context, u *user.User) error {
	if u == nil {
		return errors.New("user cannot be nil")
	}

	model := toUserSchema(u)
	result := r.db.WithContext(ctx).Model(&UserSchema{}).Where("id = ?", model.ID).Updates(map[string]any{
		"email":         model.Email,
		"first_name":    model.FirstName,
		"last_name":     model.LastName,
		"birth_date":    model.BirthDate,
		"password_hash": model.PasswordHash,
	})
	if err := result.Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return pkgerrors.NewAlreadyExistsError("user", "email already exists")
		}
		r.log.Error("failed to update user in db", zap.Error(err), zap.String("user_id", model.ID))
		return fmt.Errorf("failed to update user: %w", err)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", u.ID))
	}

	r.log.Info("user updated in db", zap.String("user_id", model.ID))
	return nil
}

// Delete removes a user from the database by ID.
func (r *UserRepoPG) Delete(ctx context.Context, id uuid.UUID) error {
	result := r.db.WithContext(ctx).Where("id = ?", id.String()).Delete(&UserSchema{})
	if err := result.Error; err != nil {
		r.log.Error("failed to delete user in db", zap.Error(err), zap.String("user_id", id.String()))
		return fmt.Errorf("failed to delete user: %w", err)
	}
	if result.RowsAffected == 0 {
		return pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
	}

	r.log.Info("user deleted in db", zap.String("user_id", id.String()))
	return nil
}

// GetByID retrieves a user from the database by their unique ID.
func (r *UserRepoPG) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("id = ?", id.String()).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found", zap.String("user_id", id.String()))
			return nil, pkgerrors.NewNotFoundError("user", fmt.Sprintf("user not found: id=%s", id))
		}
		r.log.Error("failed to get user from db", zap.Error(err), zap.String("user_id", id.String()))
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return model.toDomain()
}

// GetByEmail retrieves a user from the database by their email address.
func (r *UserRepoPG) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	var model UserSchema
	if err := r.db.WithContext(ctx).Where("email = ?", strings.ToLower(email)).First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			r.log.Debug("user not found by email", zap.String("email", email))
			return nil, nil
		}
		r.log.Error("failed to get user by email from db", zap.Error(err), zap.String("email", email))
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return model.toDomain()
}

// List retrieves every user in insertion order.
func (r *UserRepoPG) List(ctx context.Context) ([]user.User, error) {
	var models []UserSchema
	if err := r.db.WithContext(ctx).Order("created_at, id").Find(&models).Error; err != nil {
		r.log.Error("failed to list users from db", zap.Error(err))
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	users := make([]user.User, 0, len(models))
	for _, model := range models {
		u, err := model.toDomain()
		if err != nil {
			return nil, err
		}
		users = append(users, *u)
	}
	return users, nil
}

func toUserSchema(u *user.User) UserSchema {
	return UserSchema{
		ID:           u.ID.String(),
		Email:        strings.ToLower(u.Email),
		FirstName:    u.FirstName,
		LastName:     u.LastName,
		BirthDate:    utcDate(u.BirthDate),
		PasswordHash: u.PasswordHash,
	}
}

func (m UserSchema) toDomain() (*user.User, error) {
	id, err := uuid.Parse(m.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid user id %q in db: %w", m.ID, err)
	}
	return &user.User{
		ID:           id,
		Email:        m.Email,
		FirstName:    m.FirstName,
		LastName:     m.LastName,
		BirthDate:    utcDate(m.BirthDate),
		PasswordHash: m.PasswordHash,
	}, nil
}

// utcDate truncates t to its calendar date in UTC.
func utcDate(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	y, m, d := t.UTC().Date()
	date := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &date
}
