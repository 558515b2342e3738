package recurring

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

var frequencies = map[string]struct{}{
	"daily":   {},
	"weekly":  {},
	"monthly": {},
}

// Domain errors
var (
	ErrRuleNotFound     = errors.New("recurring rule not found")
	ErrInvalidFrequency = errors.New("invalid recurrence frequency")
	ErrInvalidAmount    = errors.New("rule amount must be positive")
	ErrInvalidKind      = errors.New("invalid rule kind")
)

// Rule describes a transaction that repeats on a fixed schedule. Due rules
// are materialized into ordinary transactions by the scheduler; all rules of
// a wallet are removed when the wallet is cascade-deleted.
type Rule struct {
	ID          string          `json:"id"`
	UserID      int64           `json:"userId"`
	WalletID    string          `json:"walletId"`
	CategoryID  string          `json:"categoryId"`
	Amount      decimal.Decimal `json:"amount"`
	Kind        string          `json:"kind"`
	Description string          `json:"description"`
	Frequency   string          `json:"frequency"`
	NextRunAt   time.Time       `json:"nextRunAt"`
	Active      bool            `json:"active"`
	CreatedAt   time.Time       `json:"createdAt"`
}

// CreateParams contains parameters for creating a new recurring rule
type CreateParams struct {
	ID          string
	UserID      int64
	WalletID    string
	CategoryID  string
	Amount      decimal.Decimal
	Kind        string
	Description string
	Frequency   string
	NextRunAt   time.Time
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
	if p.Kind != "income" && p.Kind != "expense" {
		return ErrInvalidKind
	}
	if p.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}
	if !IsValidFrequency(p.Frequency) {
		return ErrInvalidFrequency
	}
	if p.NextRunAt.IsZero() {
		return errors.New("next run time is required")
	}
	return nil
}

// IsValidFrequency checks if the provided frequency is valid.
func IsValidFrequency(f string) bool {
	_, ok := frequencies[f]
	return ok
}

// NextAfter returns the next occurrence following t for the given frequency.
// Monthly recurrence follows time.AddDate semantics, so a Jan 31 rule lands
// on Mar 2/3 in February; acceptable for household schedules.
func NextAfter(t time.Time, frequency string) time.Time {
	switch frequency {
	case "daily":
		return t.AddDate(0, 0, 1)
	case "weekly":
		return t.AddDate(0, 0, 7)
	case "monthly":
		return t.AddDate(0, 1, 0)
	}
	return t
}
