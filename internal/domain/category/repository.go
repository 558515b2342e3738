package category

import "context"

// Repository defines the interface for category data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new category
	Create(ctx context.Context, params CreateParams) (*Category, error)

	// ListByUserID retrieves all categories for a specific user
	ListByUserID(ctx context.Context, userID int64) ([]*Category, error)

	// GetByIDAndUser retrieves a category filtered by both id and owner
	GetByIDAndUser(ctx context.Context, id string, userID int64) (*Category, error)

	// Delete removes a category after verifying ownership
	Delete(ctx context.Context, id string, userID int64) error
}
