package wallet

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestReversalAdjustments(t *testing.T) {
	tests := []struct {
		name     string
		walletID string
		legs     []TransferLeg
		want     []BalanceAdjustment
	}{
		{
			name:     "no transfers",
			walletID: "A",
			legs:     nil,
			want:     []BalanceAdjustment{},
		},
		{
			name:     "deleted wallet was sender, receiver loses the credit",
			walletID: "A",
			legs: []TransferLeg{
				{ID: "t1", FromWalletID: "A", ToWalletID: "B", Amount: dec("200")},
			},
			want: []BalanceAdjustment{
				{WalletID: "B", Delta: dec("-200")},
			},
		},
		{
			name:     "deleted wallet was receiver, sender gets the debit back",
			walletID: "B",
			legs: []TransferLeg{
				{ID: "t1", FromWalletID: "A", ToWalletID: "B", Amount: dec("200")},
			},
			want: []BalanceAdjustment{
				{WalletID: "A", Delta: dec("200")},
			},
		},
		{
			name:     "self-transfer is skipped",
			walletID: "A",
			legs: []TransferLeg{
				{ID: "t1", FromWalletID: "A", ToWalletID: "A", Amount: dec("50")},
			},
			want: []BalanceAdjustment{},
		},
		{
			name:     "mixed directions accumulate per transfer",
			walletID: "A",
			legs: []TransferLeg{
				{ID: "t1", FromWalletID: "A", ToWalletID: "B", Amount: dec("200")},
				{ID: "t2", FromWalletID: "C", ToWalletID: "A", Amount: dec("75.50")},
				{ID: "t3", FromWalletID: "A", ToWalletID: "C", Amount: dec("10")},
				{ID: "t4", FromWalletID: "A", ToWalletID: "A", Amount: dec("999")},
			},
			want: []BalanceAdjustment{
				{WalletID: "B", Delta: dec("-200")},
				{WalletID: "C", Delta: dec("75.50")},
				{WalletID: "C", Delta: dec("-10")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ReversalAdjustments(tt.walletID, tt.legs)

			if len(got) != len(tt.want) {
				t.Fatalf("ReversalAdjustments() returned %d adjustments, want %d", len(got), len(tt.want))
			}
			for i := range got {
				if got[i].WalletID != tt.want[i].WalletID {
					t.Errorf("adjustment %d: wallet %s, want %s", i, got[i].WalletID, tt.want[i].WalletID)
				}
				if !got[i].Delta.Equal(tt.want[i].Delta) {
					t.Errorf("adjustment %d: delta %s, want %s", i, got[i].Delta, tt.want[i].Delta)
				}
			}
		})
	}
}

// Applying the adjustments to the counterparty balances must restore them to
// their pre-transfer values: X=1000 sent 200 to Y=500 (Y already credited),
// deleting X leaves Y at 300.
func TestReversalRestoresCounterpartyBalance(t *testing.T) {
	balances := map[string]decimal.Decimal{
		"X": dec("800"), // 1000 - 200 after the transfer applied
		"Y": dec("500"), // already reflects the +200 credit
	}

	legs := []TransferLeg{
		{ID: "t1", FromWalletID: "X", ToWalletID: "Y", Amount: dec("200")},
	}

	for _, adj := range ReversalAdjustments("X", legs) {
		balances[adj.WalletID] = balances[adj.WalletID].Add(adj.Delta)
	}

	if !balances["Y"].Equal(dec("300")) {
		t.Errorf("Y balance after reversal = %s, want 300", balances["Y"])
	}
}
