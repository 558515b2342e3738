package transaction

import "context"

// Repository defines the interface for transaction data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create inserts the transaction and applies its balance effect to the
	// wallet (atomic increment for income, decrement for expense) in one
	// database transaction.
	Create(ctx context.Context, params CreateParams) (*Transaction, error)

	// ListByUserID retrieves transactions for a user, newest first.
	// walletID narrows the result to a single wallet when non-empty.
	ListByUserID(ctx context.Context, userID int64, walletID string) ([]*Transaction, error)

	// GetByIDAndUser retrieves a transaction filtered by both id and owner
	GetByIDAndUser(ctx context.Context, id string, userID int64) (*Transaction, error)

	// Delete removes a transaction and reverses its balance effect on the
	// wallet in one database transaction
	Delete(ctx context.Context, id string, userID int64) error
}
