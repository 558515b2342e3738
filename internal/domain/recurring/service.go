package recurring

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"centavo/internal/domain/transaction"
	"centavo/internal/domain/wallet"
)

// WalletGetter resolves a wallet after verifying ownership.
// Implemented by the wallet service.
type WalletGetter interface {
	GetWallet(ctx context.Context, walletID string, userID int64) (*wallet.Wallet, error)
}

// Service contains the business logic for recurring rules, including the
// materialization of due rules into ordinary transactions.
type Service struct {
	repo         Repository
	transactions transaction.Repository
	wallets      WalletGetter
}

// NewService creates a new recurring rule service
func NewService(repo Repository, transactions transaction.Repository, wallets WalletGetter) *Service {
	return &Service{repo: repo, transactions: transactions, wallets: wallets}
}

// CreateRule creates a new recurring rule after verifying wallet ownership
func (s *Service) CreateRule(ctx context.Context, params CreateParams) (*Rule, error) {
	if params.ID == "" {
		params.ID = uuid.NewString()
	}

	if err := params.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.wallets.GetWallet(ctx, params.WalletID, params.UserID); err != nil {
		return nil, err
	}

	return s.repo.Create(ctx, params)
}

// ListRules retrieves all rules for a specific user
func (s *Service) ListRules(ctx context.Context, userID int64) ([]*Rule, error) {
	if userID <= 0 {
		return nil, errors.New("valid user ID is required")
	}
	return s.repo.ListByUserID(ctx, userID)
}

// SetRuleActive enables or disables a rule
func (s *Service) SetRuleActive(ctx context.Context, ruleID string, userID int64, active bool) error {
	if ruleID == "" {
		return ErrRuleNotFound
	}
	return s.repo.SetActive(ctx, ruleID, userID, active)
}

// DeleteRule removes a rule after verifying ownership
func (s *Service) DeleteRule(ctx context.Context, ruleID string, userID int64) error {
	if ruleID == "" {
		return ErrRuleNotFound
	}
	return s.repo.Delete(ctx, ruleID, userID)
}

// PostDue materializes every rule due at now into a transaction and advances
// its schedule. Each rule is handled independently: a failing rule is logged
// and skipped so one bad row cannot stall the whole batch. Returns the number
// of transactions posted.
func (s *Service) PostDue(ctx context.Context, now time.Time) (int, error) {
	due, err := s.repo.ListDue(ctx, now)
	if err != nil {
		return 0, fmt.Errorf("failed to list due rules: %w", err)
	}

	posted := 0
	for _, rule := range due {
		_, err := s.transactions.Create(ctx, transaction.CreateParams{
			ID:          uuid.NewString(),
			UserID:      rule.UserID,
			WalletID:    rule.WalletID,
			CategoryID:  rule.CategoryID,
			Amount:      rule.Amount,
			Kind:        rule.Kind,
			Description: rule.Description,
			OccurredAt:  rule.NextRunAt,
		})
		if err != nil {
			log.Printf("Recurring rule %s: failed to post transaction: %v", rule.ID, err)
			continue
		}

		next := NextAfter(rule.NextRunAt, rule.Frequency)
		// Catch up rules that missed several cycles instead of re-posting
		// them every minute until the schedule passes now.
		for !next.After(now) {
			next = NextAfter(next, rule.Frequency)
		}

		if err := s.repo.AdvanceNextRun(ctx, rule.ID, next); err != nil {
			log.Printf("Recurring rule %s: failed to advance schedule: %v", rule.ID, err)
			continue
		}
		posted++
	}

	return posted, nil
}
