package transaction

import (
	"context"

	"github.com/google/uuid"

	"centavo/internal/domain/wallet"
)

// WalletGetter verifies that a wallet exists and belongs to the user.
type WalletGetter interface {
	GetWallet(ctx context.Context, walletID string, userID int64) (*wallet.Wallet, error)
}

// Service contains the business logic for transaction operations
type Service struct {
	repo    Repository
	wallets WalletGetter
}

// NewService creates a new transaction service
func NewService(repo Repository, wallets WalletGetter) *Service {
	return &Service{repo: repo, wallets: wallets}
}

// CreateTransaction posts a transaction against a wallet owned by the user.
// The wallet balance moves together with the insert.
func (s *Service) CreateTransaction(ctx context.Context, params CreateParams) (*Transaction, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	// Ownership guard; a foreign wallet reads as not found
	if _, err := s.wallets.GetWallet(ctx, params.WalletID, params.UserID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// ListTransactions retrieves the user's transactions, optionally narrowed to
// one wallet.
func (s *Service) ListTransactions(ctx context.Context, userID int64, walletID string) ([]*Transaction, error) {
	return s.repo.ListByUserID(ctx, userID, walletID)
}

// GetTransaction retrieves a transaction after verifying ownership
func (s *Service) GetTransaction(ctx context.Context, transactionID string, userID int64) (*Transaction, error) {
	if transactionID == "" {
		return nil, ErrTransactionNotFound
	}
	return s.repo.GetByIDAndUser(ctx, transactionID, userID)
}

// DeleteTransaction removes a transaction and reverses its balance effect
func (s *Service) DeleteTransaction(ctx context.Context, transactionID string, userID int64) error {
	if transactionID == "" {
		return ErrTransactionNotFound
	}
	return s.repo.Delete(ctx, transactionID, userID)
}
