package user

import (
	"time"

	"github.com/google/uuid"
)

// BirthDateLayout is the wire and storage format of User.BirthDate.
const BirthDateLayout = "2006-01-02"

// User represents a registered user.
type User struct {
	ID           uuid.UUID  // ID is assigned on signup
	Email        string     // Email is unique across users
	FirstName    string     // FirstName is 1-50 characters
	LastName     string     // LastName is 1-50 characters
	BirthDate    *time.Time // BirthDate is optional, date only
	PasswordHash string     // PasswordHash is the bcrypt hash, never exposed
}
