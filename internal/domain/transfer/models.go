package transfer

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrTransferNotFound  = errors.New("transfer not found")
	ErrSameWallet        = errors.New("transfer endpoints must differ")
	ErrInvalidAmount     = errors.New("transfer amount must be positive")
	ErrInsufficientFunds = errors.New("insufficient balance in source wallet")
)

// Transfer represents a balance movement between two wallets of one user.
// Creation decrements the source balance and increments the destination
// balance atomically.
type Transfer struct {
	ID           string          `json:"id"`
	UserID       int64           `json:"userId"`
	FromWalletID string          `json:"fromWalletId"`
	ToWalletID   string          `json:"toWalletId"`
	Amount       decimal.Decimal `json:"amount"`
	Description  string          `json:"description"`
	OccurredAt   time.Time       `json:"occurredAt"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateParams contains parameters for creating a new transfer
type CreateParams struct {
	ID           string
	UserID       int64
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
	Description  string
	OccurredAt   time.Time
}

// Validate validates the create parameters
func (p CreateParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.FromWalletID == "" || p.ToWalletID == "" {
		return errors.New("both wallet IDs are required")
	}
	if p.FromWalletID == p.ToWalletID {
		return ErrSameWallet
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	return nil
}
