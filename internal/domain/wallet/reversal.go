package wallet

import "github.com/shopspring/decimal"

// TransferLeg is the slice of a transfer record needed to undo its balance
// effect: the two endpoints and the amount moved between them.
type TransferLeg struct {
	ID           string
	FromWalletID string
	ToWalletID   string
	Amount       decimal.Decimal
}

// BalanceAdjustment is a single atomic correction to apply to another wallet.
type BalanceAdjustment struct {
	WalletID string
	Delta    decimal.Decimal
}

// ReversalAdjustments computes the balance corrections that undo the effect
// the given wallet's transfers had on the wallets at the other end.
//
// When the wallet being removed was the sender, the receiver had been credited
// the amount, so the receiver's balance is decremented. When it was the
// receiver, the sender had been debited, so the sender's balance is
// incremented. A transfer with both endpoints on the removed wallet has no net
// effect elsewhere and is skipped.
//
// Adjustments must be applied before the transfer rows are deleted; the rows
// are the only record of which wallets need correcting.
func ReversalAdjustments(walletID string, legs []TransferLeg) []BalanceAdjustment {
	adjustments := make([]BalanceAdjustment, 0, len(legs))

	for _, leg := range legs {
		switch {
		case leg.FromWalletID == walletID && leg.ToWalletID == walletID:
			// self-transfer, nothing to undo elsewhere
		case leg.FromWalletID == walletID:
			adjustments = append(adjustments, BalanceAdjustment{
				WalletID: leg.ToWalletID,
				Delta:    leg.Amount.Neg(),
			})
		case leg.ToWalletID == walletID:
			adjustments = append(adjustments, BalanceAdjustment{
				WalletID: leg.FromWalletID,
				Delta:    leg.Amount,
			})
		}
	}

	return adjustments
}
