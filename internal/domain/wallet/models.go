package wallet

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Allowed wallet kinds
var walletKinds = map[string]struct{}{
	"bank":       {},
	"credit":     {},
	"debit":      {},
	"savings":    {},
	"cash":       {},
	"investment": {},
}

// Domain errors
var (
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrDefaultWallet       = errors.New("cannot delete default wallet")
	ErrHasTransactions     = errors.New("wallet has linked transactions")
	ErrHasTransfers        = errors.New("wallet has linked transfers")
	ErrInvalidWalletKind   = errors.New("invalid wallet kind")
	ErrCreditLimitRequired = errors.New("credit wallets require a credit limit")
	ErrCreditLimitTooLow   = errors.New("credit limit must be greater than or equal to the balance")
)

// Wallet represents a financial account owned by a single user.
type Wallet struct {
	ID          string           `json:"id"`
	UserID      int64            `json:"userId"`
	Name        string           `json:"name"`
	Kind        string           `json:"kind"`
	Balance     decimal.Decimal  `json:"balance"`
	CreditLimit *decimal.Decimal `json:"creditLimit,omitempty"`
	IsDefault   bool             `json:"isDefault"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

// CreateParams contains parameters for creating a new wallet
type CreateParams struct {
	ID          string
	UserID      int64
	Name        string
	Kind        string
	Balance     decimal.Decimal
	CreditLimit *decimal.Decimal
	IsDefault   bool
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Name == "" {
		return errors.New("wallet name is required")
	}
	if !IsValidKind(p.Kind) {
		return ErrInvalidWalletKind
	}
	if p.Kind == "credit" {
		if p.CreditLimit == nil {
			return ErrCreditLimitRequired
		}
		if p.CreditLimit.LessThan(p.Balance) {
			return ErrCreditLimitTooLow
		}
	}
	return nil
}

// UpdateParams contains parameters for updating a wallet
type UpdateParams struct {
	Name        *string
	Kind        *string
	CreditLimit *decimal.Decimal
}

// Validate validates the update parameters
func (p UpdateParams) Validate() error {
	if p.Name != nil && *p.Name == "" {
		return errors.New("wallet name cannot be empty")
	}
	if p.Kind != nil && !IsValidKind(*p.Kind) {
		return ErrInvalidWalletKind
	}
	return nil
}

// DependentCounts holds the number of records referencing a wallet.
// Transfers are counted once whether the wallet is sender or receiver.
type DependentCounts struct {
	Transactions int64
	Transfers    int64
}

// CascadeResult reports what a cascade deletion removed.
type CascadeResult struct {
	TransactionsDeleted int64 `json:"transactionsDeleted"`
	TransfersDeleted    int64 `json:"transfersDeleted"`
}

// IsValidKind checks if the provided wallet kind is valid.
func IsValidKind(k string) bool {
	_, ok := walletKinds[k]
	return ok
}
