package transfer

import (
	"context"
	"errors"

	"github.com/google/uuid"

	"centavo/internal/domain/wallet"
)

// WalletGetter resolves a wallet after verifying ownership.
// Implemented by the wallet service.
type WalletGetter interface {
	GetWallet(ctx context.Context, walletID string, userID int64) (*wallet.Wallet, error)
}

// Service contains the business logic for transfer operations
type Service struct {
	repo    Repository
	wallets WalletGetter
}

// NewService creates a new transfer service
func NewService(repo Repository, wallets WalletGetter) *Service {
	return &Service{repo: repo, wallets: wallets}
}

// CreateTransfer moves an amount between two wallets of the same user.
// Both wallets must belong to the caller and the source must hold at least
// the amount; the repository enforces the balance check again under a row
// lock, so the pre-check here only produces a friendlier early failure.
func (s *Service) CreateTransfer(ctx context.Context, params CreateParams) (*Transfer, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	from, err := s.wallets.GetWallet(ctx, params.FromWalletID, params.UserID)
	if err != nil {
		return nil, err
	}
	if _, err := s.wallets.GetWallet(ctx, params.ToWalletID, params.UserID); err != nil {
		return nil, err
	}

	if from.Balance.LessThan(params.Amount) {
		return nil, ErrInsufficientFunds
	}

	return s.repo.Create(ctx, params)
}

// ListTransfers retrieves all transfers for a specific user
func (s *Service) ListTransfers(ctx context.Context, userID int64) ([]*Transfer, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListByUserID(ctx, userID)
}

// GetTransfer retrieves a transfer after verifying ownership
func (s *Service) GetTransfer(ctx context.Context, transferID string, userID int64) (*Transfer, error) {
	if transferID == "" {
		return nil, ErrTransferNotFound
	}
	return s.repo.GetByIDAndUser(ctx, transferID, userID)
}
