package notification

import (
	"context"
	"fmt"
	"log"
	"strconv"

	"centavo/internal/domain/wallet"
	"centavo/internal/shared/messages"
)

// Service handles notification business logic
type Service struct {
	repo      Repository
	messenger Messenger
}

// NewService creates a new notification service. Messenger may be nil when
// push delivery is not configured; notifications are then only stored.
func NewService(repo Repository, messenger Messenger) *Service {
	return &Service{repo: repo, messenger: messenger}
}

// RegisterDevice registers or reassigns a push token for the user
func (s *Service) RegisterDevice(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error) {
	if err := params.Validate(); err != nil {
		return nil, err
	}
	return s.repo.UpsertDeviceToken(ctx, params)
}

// ListNotifications retrieves the user's stored notifications, newest first
func (s *Service) ListNotifications(ctx context.Context, userID int64, limit int) ([]*Notification, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	return s.repo.ListByUserID(ctx, userID, limit)
}

// MarkOpened marks a notification as opened
func (s *Service) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	return s.repo.MarkOpened(ctx, notificationID, userID)
}

// SendToUser stores a notification and pushes it to the user's active devices.
// Storage failure aborts; push failure is logged and does not bubble up.
func (s *Service) SendToUser(ctx context.Context, params CreateNotificationParams) (*Notification, error) {
	if !IsValidCategory(params.Category) {
		return nil, fmt.Errorf("%w: %s", ErrInvalidCategory, params.Category)
	}

	created, err := s.repo.CreateNotification(ctx, params)
	if err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	if s.messenger == nil {
		return created, nil
	}

	tokens, err := s.repo.GetActiveTokensByUserID(ctx, params.UserID)
	if err != nil {
		log.Printf("notification: failed to load device tokens for user %d: %v", params.UserID, err)
		return created, nil
	}
	if len(tokens) == 0 {
		return created, nil
	}

	raw := make([]string, 0, len(tokens))
	for _, t := range tokens {
		raw = append(raw, t.Token)
	}
	if err := s.messenger.SendMulticast(ctx, raw, params.Title, params.Message, params.Data); err != nil {
		log.Printf("notification: push delivery failed for user %d: %v", params.UserID, err)
	}
	return created, nil
}

// WalletDeleted notifies the owner that a cascade deletion completed.
// Satisfies the wallet service's DeletionNotifier.
func (s *Service) WalletDeleted(ctx context.Context, userID int64, walletName string, result wallet.CascadeResult) {
	_, err := s.SendToUser(ctx, CreateNotificationParams{
		UserID:   userID,
		Title:    messages.NotificationWalletDeletedTitle,
		Message:  messages.NotificationWalletDeletedBody(walletName, result.TransactionsDeleted, result.TransfersDeleted),
		Category: "wallets",
		Data: map[string]string{
			"transactionsDeleted": strconv.FormatInt(result.TransactionsDeleted, 10),
			"transfersDeleted":    strconv.FormatInt(result.TransfersDeleted, 10),
		},
	})
	if err != nil {
		log.Printf("notification: wallet deletion notice failed for user %d: %v", userID, err)
	}
}
