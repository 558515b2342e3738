package category

import (
	"errors"
	"time"
)

// Domain errors
var (
	ErrCategoryNotFound = errors.New("category not found")
	ErrInvalidKind      = errors.New("invalid category kind")
)

// Category labels transactions as a kind of income or expense.
type Category struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Name      string    `json:"name"`
	Kind      string    `json:"kind"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateParams contains parameters for creating a new category
type CreateParams struct {
	ID     string
	UserID int64
	Name   string
	Kind   string
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("category name is required")
	}
	if p.Kind != "income" && p.Kind != "expense" {
		return ErrInvalidKind
	}
	return nil
}
