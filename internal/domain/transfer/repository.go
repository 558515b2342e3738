package transfer

import "context"

// Repository defines the interface for transfer data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create inserts the transfer row and applies the balance movement
	// (atomic decrement on the source, increment on the destination) in one
	// database transaction. Returns ErrInsufficientFunds when the source
	// balance is below the amount at commit time.
	Create(ctx context.Context, params CreateParams) (*Transfer, error)

	// ListByUserID retrieves all transfers for a specific user
	ListByUserID(ctx context.Context, userID int64) ([]*Transfer, error)

	// GetByIDAndUser retrieves a transfer filtered by both id and owner
	GetByIDAndUser(ctx context.Context, id string, userID int64) (*Transfer, error)
}
