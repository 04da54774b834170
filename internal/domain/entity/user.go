// Package entity contains the core business objects of the project.
package entity

import (
	"time"

	"github.com/google/uuid"
)

// User represents an account that can own and administer facilities.
// The email doubles as the login identifier and is stored lower-cased.
type User struct {
	ID           uuid.UUID
	Email        string
	PasswordHash string  // bcrypt hash of the password; never leaves the service.
	FullName     *string // Optional display name.
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
