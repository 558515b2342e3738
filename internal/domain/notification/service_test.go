package notification

import (
	"context"
	"errors"
	"strings"
	"testing"

	"centavo/internal/domain/wallet"
)

// MockRepository is a mock implementation of the Repository interface
type MockRepository struct {
	UpsertDeviceTokenFunc        func(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)
	GetActiveTokensByUserIDFunc  func(ctx context.Context, userID int64) ([]*DeviceToken, error)
	DeactivateTokenFunc          func(ctx context.Context, token string) error
	CreateNotificationFunc       func(ctx context.Context, params CreateNotificationParams) (*Notification, error)
	ListByUserIDFunc             func(ctx context.Context, userID int64, limit int) ([]*Notification, error)
	MarkOpenedFunc               func(ctx context.Context, notificationID string, userID int64) error
}

func (m *MockRepository) UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	return m.UpsertDeviceTokenFunc(ctx, params)
}

func (m *MockRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error) {
	return m.GetActiveTokensByUserIDFunc(ctx, userID)
}

func (m *MockRepository) DeactivateToken(ctx context.Context, token string) error {
	return m.DeactivateTokenFunc(ctx, token)
}

func (m *MockRepository) CreateNotification(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
	return m.CreateNotificationFunc(ctx, params)
}

func (m *MockRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*Notification, error) {
	return m.ListByUserIDFunc(ctx, userID, limit)
}

func (m *MockRepository) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	return m.MarkOpenedFunc(ctx, notificationID, userID)
}

type recordingMessenger struct {
	tokens []string
	title  string
	body   string
	err    error
}

func (r *recordingMessenger) Send(ctx context.Context, token, title, body string, data map[string]string) error {
	r.tokens = append(r.tokens, token)
	r.title, r.body = title, body
	return r.err
}

func (r *recordingMessenger) SendMulticast(ctx context.Context, tokens []string, title, body string, data map[string]string) error {
	r.tokens = append(r.tokens, tokens...)
	r.title, r.body = title, body
	return r.err
}

func storingRepo(stored *CreateNotificationParams, tokens []*DeviceToken) *MockRepository {
	return &MockRepository{
		CreateNotificationFunc: func(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
			*stored = params
			return &Notification{ID: "n1", UserID: params.UserID, Title: params.Title, Message: params.Message}, nil
		},
		GetActiveTokensByUserIDFunc: func(ctx context.Context, userID int64) ([]*DeviceToken, error) {
			return tokens, nil
		},
	}
}

func TestSendToUser(t *testing.T) {
	t.Run("stores and pushes to active devices", func(t *testing.T) {
		var stored CreateNotificationParams
		repo := storingRepo(&stored, []*DeviceToken{{Token: "tok-1"}, {Token: "tok-2"}})
		msgr := &recordingMessenger{}
		svc := NewService(repo, msgr)

		created, err := svc.SendToUser(context.Background(), CreateNotificationParams{
			UserID: 7, Title: "t", Message: "m", Category: "general",
		})
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if created.ID != "n1" {
			t.Errorf("expected stored notification, got %+v", created)
		}
		if len(msgr.tokens) != 2 {
			t.Errorf("expected push to 2 devices, got %d", len(msgr.tokens))
		}
	})

	t.Run("rejects unknown category", func(t *testing.T) {
		svc := NewService(&MockRepository{}, nil)
		_, err := svc.SendToUser(context.Background(), CreateNotificationParams{
			UserID: 7, Title: "t", Message: "m", Category: "promos",
		})
		if !errors.Is(err, ErrInvalidCategory) {
			t.Errorf("expected ErrInvalidCategory, got %v", err)
		}
	})

	t.Run("push failure does not fail the call", func(t *testing.T) {
		var stored CreateNotificationParams
		repo := storingRepo(&stored, []*DeviceToken{{Token: "tok-1"}})
		msgr := &recordingMessenger{err: errors.New("fcm unavailable")}
		svc := NewService(repo, msgr)

		if _, err := svc.SendToUser(context.Background(), CreateNotificationParams{
			UserID: 7, Title: "t", Message: "m", Category: "general",
		}); err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
	})

	t.Run("storage failure aborts before push", func(t *testing.T) {
		repo := &MockRepository{
			CreateNotificationFunc: func(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
				return nil, errors.New("insert failed")
			},
		}
		msgr := &recordingMessenger{}
		svc := NewService(repo, msgr)

		if _, err := svc.SendToUser(context.Background(), CreateNotificationParams{
			UserID: 7, Title: "t", Message: "m", Category: "general",
		}); err == nil {
			t.Fatal("expected error, got nil")
		}
		if len(msgr.tokens) != 0 {
			t.Errorf("expected no push after storage failure, got %d", len(msgr.tokens))
		}
	})
}

func TestWalletDeletedNotice(t *testing.T) {
	var stored CreateNotificationParams
	repo := storingRepo(&stored, nil)
	svc := NewService(repo, nil)

	svc.WalletDeleted(context.Background(), 7, "Nubank", wallet.CascadeResult{
		TransactionsDeleted: 3,
		TransfersDeleted:    2,
	})

	if stored.Category != "wallets" {
		t.Errorf("expected wallets category, got %q", stored.Category)
	}
	if !strings.Contains(stored.Message, "3 transações") || !strings.Contains(stored.Message, "2 transferências") {
		t.Errorf("expected counts in message, got %q", stored.Message)
	}
	if stored.Data["transactionsDeleted"] != "3" || stored.Data["transfersDeleted"] != "2" {
		t.Errorf("unexpected data payload: %v", stored.Data)
	}
}

func TestRegisterDeviceValidation(t *testing.T) {
	svc := NewService(&MockRepository{}, nil)
	if _, err := svc.RegisterDevice(context.Background(), CreateDeviceTokenParams{UserID: 7}); !errors.Is(err, ErrInvalidToken) {
		t.Errorf("expected ErrInvalidToken, got %v", err)
	}
}
