package notification

import "context"

// Repository defines the interface for notification data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// UpsertDeviceToken registers a device token, reassigning it if it
	// already belongs to another user
	UpsertDeviceToken(ctx context.Context, params CreateDeviceTokenParams) (*DeviceToken, error)

	// GetActiveTokensByUserID retrieves active device tokens for a user
	GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*DeviceToken, error)

	// DeactivateToken marks a token as inactive (invalid or unregistered)
	DeactivateToken(ctx context.Context, token string) error

	// CreateNotification stores a notification record
	CreateNotification(ctx context.Context, params CreateNotificationParams) (*Notification, error)

	// ListByUserID retrieves notifications for a user, newest first
	ListByUserID(ctx context.Context, userID int64, limit int) ([]*Notification, error)

	// MarkOpened marks a notification as opened by its owner
	MarkOpened(ctx context.Context, notificationID string, userID int64) error
}
