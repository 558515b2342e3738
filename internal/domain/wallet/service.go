package wallet

import (
	"context"
	"errors"
	"fmt"
	"log"

	"github.com/google/uuid"
)

// ViewInvalidator signals that wallet-dependent views (dashboard, wallet and
// transaction lists, budgets) are stale. Fired after a successful deletion;
// never a correctness dependency.
type ViewInvalidator interface {
	WalletViewsStale(ctx context.Context, userID int64, walletID string)
}

// DeletionNotifier delivers a user-facing notification after a cascade
// deletion completed. Implemented by the notification service.
type DeletionNotifier interface {
	WalletDeleted(ctx context.Context, userID int64, walletName string, result CascadeResult)
}

// Service contains the business logic for wallet operations, including the
// deletion orchestration: ownership guard, default-wallet check, dependency
// inspection for safe deletes and the transactional cascade path.
type Service struct {
	repo        Repository
	invalidator ViewInvalidator
	notifier    DeletionNotifier
}

// NewService creates a new wallet service. invalidator and notifier may be
// nil; both are optional side channels.
func NewService(repo Repository, invalidator ViewInvalidator, notifier DeletionNotifier) *Service {
	return &Service{repo: repo, invalidator: invalidator, notifier: notifier}
}

// CreateWallet creates a new wallet with business validation
func (s *Service) CreateWallet(ctx context.Context, params CreateParams) (*Wallet, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	w, err := s.repo.Create(ctx, params)
	if err != nil {
		return nil, err
	}

	// A freshly created wallet may claim the default slot; SetDefault clears
	// the flag on every other wallet of the user first.
	if params.IsDefault {
		if err := s.repo.SetDefault(ctx, w.ID, w.UserID); err != nil {
			return nil, err
		}
		w.IsDefault = true
	}

	return w, nil
}

// GetWallet retrieves a wallet after verifying ownership. Existence and
// ownership failures are indistinguishable to the caller.
func (s *Service) GetWallet(ctx context.Context, walletID string, userID int64) (*Wallet, error) {
	if walletID == "" {
		return nil, ErrWalletNotFound
	}
	return s.repo.GetByIDAndUser(ctx, walletID, userID)
}

// ListWallets retrieves all wallets for a specific user
func (s *Service) ListWallets(ctx context.Context, userID int64) ([]*Wallet, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListByUserID(ctx, userID)
}

// UpdateWallet applies partial updates after verifying ownership
func (s *Service) UpdateWallet(ctx context.Context, walletID string, userID int64, params UpdateParams) (*Wallet, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}

	w, err := s.GetWallet(ctx, walletID, userID)
	if err != nil {
		return nil, err
	}

	kind := w.Kind
	if params.Kind != nil {
		kind = *params.Kind
	}
	limit := w.CreditLimit
	if params.CreditLimit != nil {
		limit = params.CreditLimit
	}
	if kind == "credit" {
		if limit == nil {
			return nil, ErrCreditLimitRequired
		}
		if limit.LessThan(w.Balance) {
			return nil, ErrCreditLimitTooLow
		}
	}

	return s.repo.Update(ctx, w.ID, params)
}

// SetDefaultWallet marks a wallet as the user's default after verifying
// ownership. This is the escape hatch for deleting a current default:
// reassign first, then delete.
func (s *Service) SetDefaultWallet(ctx context.Context, walletID string, userID int64) error {
	w, err := s.GetWallet(ctx, walletID, userID)
	if err != nil {
		return err
	}
	return s.repo.SetDefault(ctx, w.ID, userID)
}

// DeleteWalletSafe deletes a wallet only when nothing references it.
// Ordering of the checks is part of the contract: ownership, default flag,
// transaction count, transfer count.
func (s *Service) DeleteWalletSafe(ctx context.Context, walletID string, userID int64) error {
	w, err := s.GetWallet(ctx, walletID, userID)
	if err != nil {
		return err
	}

	if w.IsDefault {
		return ErrDefaultWallet
	}

	counts, err := s.repo.CountDependents(ctx, w.ID)
	if err != nil {
		return fmt.Errorf("failed to count wallet dependents: %w", err)
	}
	if counts.Transactions > 0 {
		return ErrHasTransactions
	}
	if counts.Transfers > 0 {
		return ErrHasTransfers
	}

	if err := s.repo.Delete(ctx, w.ID); err != nil {
		return err
	}

	s.signalStale(ctx, userID, w.ID)
	return nil
}

// DeleteWalletCascade removes a wallet together with every transaction,
// transfer and recurring rule tied to it, reversing the balance effect its
// transfers had on other wallets. The repository runs the whole mutation in
// a single database transaction; on any failure nothing is applied.
func (s *Service) DeleteWalletCascade(ctx context.Context, walletID string, userID int64) (*CascadeResult, error) {
	w, err := s.GetWallet(ctx, walletID, userID)
	if err != nil {
		return nil, err
	}

	if w.IsDefault {
		return nil, ErrDefaultWallet
	}

	result, err := s.repo.CascadeDelete(ctx, w.ID)
	if err != nil {
		return nil, fmt.Errorf("cascade delete failed: %w", err)
	}

	s.signalStale(ctx, userID, w.ID)
	if s.notifier != nil {
		s.notifier.WalletDeleted(ctx, userID, w.Name, result)
	}

	return &result, nil
}

func (s *Service) signalStale(ctx context.Context, userID int64, walletID string) {
	if s.invalidator == nil {
		return
	}
	s.invalidator.WalletViewsStale(ctx, userID, walletID)
	log.Printf("Invalidation signal sent for wallet %s (user %d)", walletID, userID)
}
