package entity

import (
	"time"
)

// User is the aggregate root for the credential domain
// Passwords are stored as bcrypt hashes in PasswordHash and never leave the service layer.
type User struct {
	ID           string
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
