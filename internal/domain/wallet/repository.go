package wallet

import "context"

// Repository defines the interface for wallet data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new wallet
	Create(ctx context.Context, params CreateParams) (*Wallet, error)

	// GetByIDAndUser retrieves a wallet filtered by both id and owner.
	// Returns ErrWalletNotFound when no row matches, whether the wallet
	// does not exist or belongs to another user.
	GetByIDAndUser(ctx context.Context, id string, userID int64) (*Wallet, error)

	// ListByUserID retrieves all wallets for a specific user
	ListByUserID(ctx context.Context, userID int64) ([]*Wallet, error)

	// Update applies partial updates to a wallet
	Update(ctx context.Context, id string, params UpdateParams) (*Wallet, error)

	// SetDefault marks a wallet as the user's default, clearing any
	// previously flagged wallet in the same operation
	SetDefault(ctx context.Context, id string, userID int64) error

	// CountDependents counts transactions and transfers referencing a wallet
	CountDependents(ctx context.Context, id string) (DependentCounts, error)

	// Delete removes a wallet row without touching dependents
	Delete(ctx context.Context, id string) error

	// CascadeDelete reverses the balance effect of the wallet's transfers on
	// their counterparties, then deletes transfers, transactions, recurring
	// rules and the wallet row, all inside one database transaction
	CascadeDelete(ctx context.Context, id string) (CascadeResult, error)
}
