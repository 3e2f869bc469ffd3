package security

import (
	"errors"
	"fmt"
	"unicode"
	"unicode/utf8"

	"golang.org/x/crypto/bcrypt"
)

const (
	// MinPasswordLength is the minimum number of characters in a password.
	MinPasswordLength = 8
	// MaxPasswordBytes is bcrypt's input limit; longer inputs are rejected rather than truncated.
	MaxPasswordBytes = 72
)

var (
	ErrPasswordTooShort     = fmt.Errorf("password must be at least %d characters", MinPasswordLength)
	ErrPasswordTooLong      = fmt.Errorf("password must be at most %d bytes", MaxPasswordBytes)
	ErrPasswordInvalidChars = errors.New("password contains invalid characters")
)

// ValidatePassword checks a plaintext password against the registration policy.
func ValidatePassword(password string) error {
	if utf8.RuneCountInString(password) < MinPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > MaxPasswordBytes {
		return ErrPasswordTooLong
	}
	for _, r := range password {
		if unicode.IsControl(r) {
			return ErrPasswordInvalidChars
		}
	}
	return nil
}

// PasswordHasher hashes and verifies passwords with bcrypt.
type PasswordHasher struct {
	cost int
}

// NewPasswordHasher returns a hasher using the given bcrypt cost.
// Out-of-range costs fall back to bcrypt.DefaultCost.
func NewPasswordHasher(cost int) *PasswordHasher {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordHasher{cost: cost}
}

// Hash returns the bcrypt hash of password.
func (h *PasswordHasher) Hash(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), h.cost)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether password matches hash.
func (h *PasswordHasher) Compare(hash, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hash), []byte(password)) == nil
}
