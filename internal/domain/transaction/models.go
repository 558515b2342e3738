package transaction

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var transactionKinds = map[string]struct{}{
	"income":  {},
	"expense": {},
}

// Domain errors
var (
	ErrTransactionNotFound = errors.New("transaction not found")
	ErrInvalidKind         = errors.New("invalid transaction kind")
	ErrInvalidAmount       = errors.New("transaction amount must be positive")
)

// Transaction represents a single income or expense posted against a wallet.
// Posting adjusts the wallet balance; income credits it, expense debits it.
type Transaction struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	WalletID    string          `json:"walletId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	OccurredAt  time.Time       `json:"occurredAt"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateParams contains parameters for creating a new transaction
type CreateParams struct {
	ID          string
	UserID      int64
	WalletID    string
	CategoryID  string
	Amount      decimal.Decimal
	Kind        string
	Description string
	OccurredAt  time.Time
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.WalletID == "" {
		return errors.New("wallet ID is required")
	}
	if p.CategoryID == "" {
		return errors.New("category ID is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidKind
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}

// BalanceDelta returns the signed effect the transaction has on its wallet.
func (p CreateParams) BalanceDelta() decimal.Decimal {
	if p.Kind == "expense" {
		return p.Amount.Neg()
	}
	return p.Amount
}

// IsValidKind checks if the provided transaction kind is valid.
func IsValidKind(k string) bool {
	_, ok := transactionKinds[k]
	return ok
}
