package wallet

import (
	"context"
	"errors"
	"testing"
	"time"
)

// MockRepository is a mock implementation of Repository interface
type MockRepository struct {
	CreateFunc          func(ctx context.Context, params CreateParams) (*Wallet, error)
	GetByIDAndUserFunc  func(ctx context.Context, id string, userID int64) (*Wallet, error)
	ListByUserIDFunc    func(ctx context.Context, userID int64) ([]*Wallet, error)
	UpdateFunc          func(ctx context.Context, id string, params UpdateParams) (*Wallet, error)
	SetDefaultFunc      func(ctx context.Context, id string, userID int64) error
	CountDependentsFunc func(ctx context.Context, id string) (DependentCounts, error)
	DeleteFunc          func(ctx context.Context, id string) error
	CascadeDeleteFunc   func(ctx context.Context, id string) (CascadeResult, error)
}

func (m *MockRepository) Create(ctx context.Context, params CreateParams) (*Wallet, error) {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, params)
	}
	return nil, nil
}

func (m *MockRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*Wallet, error) {
	if m.GetByIDAndUserFunc != nil {
		return m.GetByIDAndUserFunc(ctx, id, userID)
	}
	return nil, nil
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64) ([]*Wallet, error) {
	if m.ListByUserIDFunc != nil {
		return m.ListByUserIDFunc(ctx, userID)
	}
	return nil, nil
}

func (m *MockRepository) Update(ctx context.Context, id string, params UpdateParams) (*Wallet, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, id, params)
	}
	return nil, nil
}

func (m *MockRepository) SetDefault(ctx context.Context, id string, userID int64) error {
	if m.SetDefaultFunc != nil {
		return m.SetDefaultFunc(ctx, id, userID)
	}
	return nil
}

func (m *MockRepository) CountDependents(ctx context.Context, id string) (DependentCounts, error) {
	if m.CountDependentsFunc != nil {
		return m.CountDependentsFunc(ctx, id)
	}
	return DependentCounts{}, nil
}

func (m *MockRepository) Delete(ctx context.Context, id string) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockRepository) CascadeDelete(ctx context.Context, id string) (CascadeResult, error) {
	if m.CascadeDeleteFunc != nil {
		return m.CascadeDeleteFunc(ctx, id)
	}
	return CascadeResult{}, nil
}

// recordingInvalidator records staleness signals
type recordingInvalidator struct {
	calls int
}

func (r *recordingInvalidator) WalletViewsStale(ctx context.Context, userID int64, walletID string) {
	r.calls++
}

// recordingNotifier records deletion notifications
type recordingNotifier struct {
	calls  int
	result CascadeResult
}

func (r *recordingNotifier) WalletDeleted(ctx context.Context, userID int64, walletName string, result CascadeResult) {
	r.calls++
	r.result = result
}

func ownedWallet(id string, userID int64, isDefault bool) *Wallet {
	return &Wallet{
		ID:        id,
		UserID:    userID,
		Name:      "Conta Teste",
		Kind:      "bank",
		Balance:   dec("1000"),
		IsDefault: isDefault,
		CreatedAt: time.Now(),
		UpdatedAt: time.Now(),
	}
}

// ownershipLookup mimics the compound (id, user) query: a wallet owned by
// someone else is indistinguishable from a missing one.
func ownershipLookup(w *Wallet) func(ctx context.Context, id string, userID int64) (*Wallet, error) {
	return func(ctx context.Context, id string, userID int64) (*Wallet, error) {
		if w == nil || w.ID != id || w.UserID != userID {
			return nil, ErrWalletNotFound
		}
		return w, nil
	}
}

func TestDeleteWalletSafe(t *testing.T) {
	ctx := context.Background()

	tests := []struct {
		name       string
		walletID   string
		userID     int64
		mock       func() *MockRepository
		wantErr    error
		wantDelete bool
	}{
		{
			name:     "success with no dependents",
			walletID: "w1",
			userID:   1,
			mock: func() *MockRepository {
				return &MockRepository{
					GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
				}
			},
			wantDelete: true,
		},
		{
			name:     "another user's wallet is not found",
			walletID: "w1",
			userID:   2,
			mock: func() *MockRepository {
				return &MockRepository{
					GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
				}
			},
			wantErr: ErrWalletNotFound,
		},
		{
			name:     "default wallet is protected",
			walletID: "w1",
			userID:   1,
			mock: func() *MockRepository {
				return &MockRepository{
					GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, true)),
				}
			},
			wantErr: ErrDefaultWallet,
		},
		{
			name:     "linked transactions take priority over transfers",
			walletID: "w1",
			userID:   1,
			mock: func() *MockRepository {
				return &MockRepository{
					GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
					CountDependentsFunc: func(ctx context.Context, id string) (DependentCounts, error) {
						return DependentCounts{Transactions: 5, Transfers: 2}, nil
					},
				}
			},
			wantErr: ErrHasTransactions,
		},
		{
			name:     "linked transfers only",
			walletID: "w1",
			userID:   1,
			mock: func() *MockRepository {
				return &MockRepository{
					GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
					CountDependentsFunc: func(ctx context.Context, id string) (DependentCounts, error) {
						return DependentCounts{Transactions: 0, Transfers: 1}, nil
					},
				}
			},
			wantErr: ErrHasTransfers,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := tt.mock()
			deleted := 0
			inner := repo.DeleteFunc
			repo.DeleteFunc = func(ctx context.Context, id string) error {
				deleted++
				if inner != nil {
					return inner(ctx, id)
				}
				return nil
			}

			service := NewService(repo, nil, nil)
			err := service.DeleteWalletSafe(ctx, tt.walletID, tt.userID)

			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("DeleteWalletSafe() error = %v, want %v", err, tt.wantErr)
				}
				if deleted != 0 {
					t.Errorf("DeleteWalletSafe() deleted the wallet despite %v", tt.wantErr)
				}
				return
			}

			if err != nil {
				t.Errorf("DeleteWalletSafe() unexpected error: %v", err)
			}
			if tt.wantDelete && deleted != 1 {
				t.Errorf("DeleteWalletSafe() delete calls = %d, want 1", deleted)
			}
		})
	}
}

func TestDeleteWalletSafeRepoError(t *testing.T) {
	repo := &MockRepository{
		GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
		DeleteFunc: func(ctx context.Context, id string) error {
			return errors.New("db unavailable")
		},
	}

	service := NewService(repo, nil, nil)
	if err := service.DeleteWalletSafe(context.Background(), "w1", 1); err == nil {
		t.Error("DeleteWalletSafe() expected error, got nil")
	}
}

func TestDeleteWalletCascade(t *testing.T) {
	ctx := context.Background()

	t.Run("success reports counts and fires side channels", func(t *testing.T) {
		repo := &MockRepository{
			GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
			CascadeDeleteFunc: func(ctx context.Context, id string) (CascadeResult, error) {
				return CascadeResult{TransactionsDeleted: 5, TransfersDeleted: 1}, nil
			},
		}
		invalidator := &recordingInvalidator{}
		notifier := &recordingNotifier{}

		service := NewService(repo, invalidator, notifier)
		result, err := service.DeleteWalletCascade(ctx, "w1", 1)

		if err != nil {
			t.Fatalf("DeleteWalletCascade() unexpected error: %v", err)
		}
		if result.TransactionsDeleted != 5 || result.TransfersDeleted != 1 {
			t.Errorf("DeleteWalletCascade() result = %+v, want 5 transactions and 1 transfer", result)
		}
		if invalidator.calls != 1 {
			t.Errorf("invalidator calls = %d, want 1", invalidator.calls)
		}
		if notifier.calls != 1 {
			t.Errorf("notifier calls = %d, want 1", notifier.calls)
		}
		if notifier.result.TransfersDeleted != 1 {
			t.Errorf("notifier received %+v, want the cascade counts", notifier.result)
		}
	})

	t.Run("default wallet is protected", func(t *testing.T) {
		cascades := 0
		repo := &MockRepository{
			GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, true)),
			CascadeDeleteFunc: func(ctx context.Context, id string) (CascadeResult, error) {
				cascades++
				return CascadeResult{}, nil
			},
		}

		service := NewService(repo, nil, nil)
		if _, err := service.DeleteWalletCascade(ctx, "w1", 1); !errors.Is(err, ErrDefaultWallet) {
			t.Errorf("DeleteWalletCascade() error = %v, want %v", err, ErrDefaultWallet)
		}
		if cascades != 0 {
			t.Error("DeleteWalletCascade() ran the cascade against a default wallet")
		}
	})

	t.Run("another user's wallet is not found", func(t *testing.T) {
		repo := &MockRepository{
			GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
		}

		service := NewService(repo, nil, nil)
		if _, err := service.DeleteWalletCascade(ctx, "w1", 99); !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("DeleteWalletCascade() error = %v, want %v", err, ErrWalletNotFound)
		}
	})

	t.Run("transaction failure surfaces and skips side channels", func(t *testing.T) {
		repo := &MockRepository{
			GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false)),
			CascadeDeleteFunc: func(ctx context.Context, id string) (CascadeResult, error) {
				return CascadeResult{}, errors.New("driver: connection reset")
			},
		}
		invalidator := &recordingInvalidator{}
		notifier := &recordingNotifier{}

		service := NewService(repo, invalidator, notifier)
		_, err := service.DeleteWalletCascade(ctx, "w1", 1)

		if err == nil {
			t.Fatal("DeleteWalletCascade() expected error, got nil")
		}
		if invalidator.calls != 0 || notifier.calls != 0 {
			t.Error("DeleteWalletCascade() fired side channels despite a failure")
		}
	})

	// Repeating the cascade after success behaves like any missing wallet.
	t.Run("second cascade returns not found", func(t *testing.T) {
		w := ownedWallet("w1", 1, false)
		repo := &MockRepository{}
		repo.GetByIDAndUserFunc = func(ctx context.Context, id string, userID int64) (*Wallet, error) {
			if w == nil || w.ID != id || w.UserID != userID {
				return nil, ErrWalletNotFound
			}
			return w, nil
		}
		repo.CascadeDeleteFunc = func(ctx context.Context, id string) (CascadeResult, error) {
			w = nil
			return CascadeResult{TransactionsDeleted: 2, TransfersDeleted: 1}, nil
		}

		service := NewService(repo, nil, nil)
		if _, err := service.DeleteWalletCascade(ctx, "w1", 1); err != nil {
			t.Fatalf("first DeleteWalletCascade() unexpected error: %v", err)
		}
		if _, err := service.DeleteWalletCascade(ctx, "w1", 1); !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("second DeleteWalletCascade() error = %v, want %v", err, ErrWalletNotFound)
		}
	})
}

func TestCreateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("generates an ID and sets default when requested", func(t *testing.T) {
		var setDefaultID string
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Wallet, error) {
				return &Wallet{ID: params.ID, UserID: params.UserID, Name: params.Name, Kind: params.Kind, Balance: params.Balance}, nil
			},
			SetDefaultFunc: func(ctx context.Context, id string, userID int64) error {
				setDefaultID = id
				return nil
			},
		}

		service := NewService(repo, nil, nil)
		w, err := service.CreateWallet(ctx, CreateParams{
			UserID:    1,
			Name:      "Carteira",
			Kind:      "cash",
			Balance:   dec("0"),
			IsDefault: true,
		})

		if err != nil {
			t.Fatalf("CreateWallet() unexpected error: %v", err)
		}
		if w.ID == "" {
			t.Error("CreateWallet() did not generate an ID")
		}
		if setDefaultID != w.ID {
			t.Errorf("CreateWallet() set default on %q, want %q", setDefaultID, w.ID)
		}
		if !w.IsDefault {
			t.Error("CreateWallet() returned wallet without the default flag")
		}
	})

	t.Run("rejects invalid parameters before hitting the repository", func(t *testing.T) {
		creates := 0
		repo := &MockRepository{
			CreateFunc: func(ctx context.Context, params CreateParams) (*Wallet, error) {
				creates++
				return nil, nil
			},
		}

		service := NewService(repo, nil, nil)
		_, err := service.CreateWallet(ctx, CreateParams{UserID: 1, Name: "Cartão", Kind: "credit", Balance: dec("100")})

		if !errors.Is(err, ErrCreditLimitRequired) {
			t.Errorf("CreateWallet() error = %v, want %v", err, ErrCreditLimitRequired)
		}
		if creates != 0 {
			t.Error("CreateWallet() called the repository with invalid params")
		}
	})
}

func TestUpdateWallet(t *testing.T) {
	ctx := context.Background()

	t.Run("rejects credit limit below current balance", func(t *testing.T) {
		w := ownedWallet("w1", 1, false)
		w.Kind = "credit"
		w.Balance = dec("3000")

		repo := &MockRepository{GetByIDAndUserFunc: ownershipLookup(w)}
		service := NewService(repo, nil, nil)

		_, err := service.UpdateWallet(ctx, "w1", 1, UpdateParams{CreditLimit: decPtr("2000")})
		if !errors.Is(err, ErrCreditLimitTooLow) {
			t.Errorf("UpdateWallet() error = %v, want %v", err, ErrCreditLimitTooLow)
		}
	})

	t.Run("ownership is verified first", func(t *testing.T) {
		repo := &MockRepository{GetByIDAndUserFunc: ownershipLookup(ownedWallet("w1", 1, false))}
		service := NewService(repo, nil, nil)

		name := "Nova"
		_, err := service.UpdateWallet(ctx, "w1", 2, UpdateParams{Name: &name})
		if !errors.Is(err, ErrWalletNotFound) {
			t.Errorf("UpdateWallet() error = %v, want %v", err, ErrWalletNotFound)
		}
	})
}
