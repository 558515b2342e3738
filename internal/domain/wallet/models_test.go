package wallet

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

func decPtr(s string) *decimal.Decimal {
	d := dec(s)
	return &d
}

func TestCreateParamsValidate(t *testing.T) {
	tests := []struct {
		name    string
		params  CreateParams
		wantErr error
	}{
		{
			name: "valid bank wallet",
			params: CreateParams{
				UserID:  1,
				Name:    "Conta Corrente",
				Kind:    "bank",
				Balance: dec("1000"),
			},
		},
		{
			name: "valid credit wallet",
			params: CreateParams{
				UserID:      1,
				Name:        "Cartão",
				Kind:        "credit",
				Balance:     dec("500"),
				CreditLimit: decPtr("2000"),
			},
		},
		{
			name: "invalid kind",
			params: CreateParams{
				UserID:  1,
				Name:    "Conta",
				Kind:    "checking",
				Balance: dec("0"),
			},
			wantErr: ErrInvalidWalletKind,
		},
		{
			name: "credit wallet without limit",
			params: CreateParams{
				UserID:  1,
				Name:    "Cartão",
				Kind:    "credit",
				Balance: dec("100"),
			},
			wantErr: ErrCreditLimitRequired,
		},
		{
			name: "credit limit below balance",
			params: CreateParams{
				UserID:      1,
				Name:        "Cartão",
				Kind:        "credit",
				Balance:     dec("3000"),
				CreditLimit: decPtr("2000"),
			},
			wantErr: ErrCreditLimitTooLow,
		},
		{
			name: "credit limit equal to balance is allowed",
			params: CreateParams{
				UserID:      1,
				Name:        "Cartão",
				Kind:        "credit",
				Balance:     dec("2000"),
				CreditLimit: decPtr("2000"),
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.params.Validate()

			if tt.wantErr == nil {
				if err != nil {
					t.Errorf("Validate() unexpected error: %v", err)
				}
				return
			}
			if err != tt.wantErr {
				t.Errorf("Validate() expected %v, got %v", tt.wantErr, err)
			}
		})
	}

	t.Run("missing name", func(t *testing.T) {
		p := CreateParams{UserID: 1, Kind: "cash"}
		if err := p.Validate(); err == nil {
			t.Error("Validate() expected error for missing name, got nil")
		}
	})

	t.Run("missing user", func(t *testing.T) {
		p := CreateParams{Name: "Conta", Kind: "cash"}
		if err := p.Validate(); err == nil {
			t.Error("Validate() expected error for missing user ID, got nil")
		}
	})
}

func TestIsValidKind(t *testing.T) {
	for _, k := range []string{"bank", "credit", "debit", "savings", "cash", "investment"} {
		if !IsValidKind(k) {
			t.Errorf("IsValidKind(%q) = false, want true", k)
		}
	}
	for _, k := range []string{"", "BANK", "checking", "crypto"} {
		if IsValidKind(k) {
			t.Errorf("IsValidKind(%q) = true, want false", k)
		}
	}
}
