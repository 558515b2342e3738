package user

import (
	"errors"
	"strings"
	"time"
)

// Domain errors
var (
	ErrUserNotFound = errors.New("user not found")
	ErrEmailTaken   = errors.New("email already registered")
)

// User represents an application user. Every other entity is exclusively
// scoped to one user.
type User struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	Name         string    `json:"name"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a new user
type CreateParams struct {
	Email        string
	Name         string
	PasswordHash string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.Email == "" || !strings.Contains(p.Email, "@") {
		return errors.New("valid email is required")
	}
	if p.Name == "" {
		return errors.New("name is required")
	}
	if p.PasswordHash == "" {
		return errors.New("password hash is required")
	}
	return nil
}
