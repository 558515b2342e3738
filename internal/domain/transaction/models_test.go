package transaction

import (
	"testing"

	"github.com/shopspring/decimal"
)

func dec(s string) decimal.Decimal {
	d, err := decimal.NewFromString(s)
	if err != nil {
		panic(err)
	}
	return d
}

func TestCreateParamsValidate(t *testing.T) {
	valid := CreateParams{
		UserID:     1,
		WalletID:   "w1",
		CategoryID: "c1",
		Amount:     dec("49.90"),
		Kind:       "expense",
	}

	if err := valid.Validate(); err != nil {
		t.Errorf("Validate() unexpected error: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *CreateParams)
		want   error
	}{
		{"invalid kind", func(p *CreateParams) { p.Kind = "transfer" }, ErrInvalidKind},
		{"zero amount", func(p *CreateParams) { p.Amount = dec("0") }, ErrInvalidAmount},
		{"negative amount", func(p *CreateParams) { p.Amount = dec("-1") }, ErrInvalidAmount},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			if err := p.Validate(); err != tt.want {
				t.Errorf("Validate() = %v, want %v", err, tt.want)
			}
		})
	}

	t.Run("missing wallet", func(t *testing.T) {
		p := valid
		p.WalletID = ""
		if err := p.Validate(); err == nil {
			t.Error("Validate() expected error for missing wallet, got nil")
		}
	})
}

func TestBalanceDelta(t *testing.T) {
	income := CreateParams{Kind: "income", Amount: dec("100")}
	if !income.BalanceDelta().Equal(dec("100")) {
		t.Errorf("income delta = %s, want 100", income.BalanceDelta())
	}

	expense := CreateParams{Kind: "expense", Amount: dec("100")}
	if !expense.BalanceDelta().Equal(dec("-100")) {
		t.Errorf("expense delta = %s, want -100", expense.BalanceDelta())
	}
}
