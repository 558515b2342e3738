package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"centavo/internal/domain/notification"
)

// NotificationRepository implements the notification.Repository interface for PostgreSQL
type NotificationRepository struct {
	db *DB
}

// NewNotificationRepository creates a new PostgreSQL notification repository
func NewNotificationRepository(db *DB) *NotificationRepository {
	return &NotificationRepository{db: db}
}

// UpsertDeviceToken registers a device token, reassigning it to the new user
// if it already exists. Tokens move between users when a device changes owner.
func (r *NotificationRepository) UpsertDeviceToken(ctx context.Context, params notification.CreateDeviceTokenParams) (*notification.DeviceToken, error) {
	query := `
		INSERT INTO device_tokens (id, user_id, token, platform, active)
		VALUES ($1, $2, $3, $4, TRUE)
		ON CONFLICT (token)
		DO UPDATE SET user_id = EXCLUDED.user_id, platform = EXCLUDED.platform, active = TRUE
		RETURNING id, user_id, token, platform, active, created_at
	`

	var t notification.DeviceToken
	err := r.db.QueryRowContext(ctx, query, uuid.NewString(), params.UserID, params.Token, params.Platform).
		Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.Active, &t.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to upsert device token: %w", err)
	}
	return &t, nil
}

// GetActiveTokensByUserID retrieves active device tokens for a user
func (r *NotificationRepository) GetActiveTokensByUserID(ctx context.Context, userID int64) ([]*notification.DeviceToken, error) {
	query := `
		SELECT id, user_id, token, platform, active, created_at
		FROM device_tokens
		WHERE user_id = $1 AND active
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list device tokens: %w", err)
	}
	defer rows.Close()

	var tokens []*notification.DeviceToken
	for rows.Next() {
		var t notification.DeviceToken
		if err := rows.Scan(&t.ID, &t.UserID, &t.Token, &t.Platform, &t.Active, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan device token: %w", err)
		}
		tokens = append(tokens, &t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating device tokens: %w", err)
	}

	return tokens, nil
}

// DeactivateToken marks a token as inactive
func (r *NotificationRepository) DeactivateToken(ctx context.Context, token string) error {
	if _, err := r.db.ExecContext(ctx,
		`UPDATE device_tokens SET active = FALSE WHERE token = $1`,
		token,
	); err != nil {
		return fmt.Errorf("failed to deactivate device token: %w", err)
	}
	return nil
}

// CreateNotification stores a notification record
func (r *NotificationRepository) CreateNotification(ctx context.Context, params notification.CreateNotificationParams) (*notification.Notification, error) {
	var data []byte
	if len(params.Data) > 0 {
		var err error
		data, err = json.Marshal(params.Data)
		if err != nil {
			return nil, fmt.Errorf("failed to encode notification data: %w", err)
		}
	}

	query := `
		INSERT INTO notifications (id, user_id, title, message, category, data)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, user_id, title, message, category, data, opened_at, created_at
	`

	return scanNotification(r.db.QueryRowContext(
		ctx, query,
		uuid.NewString(), params.UserID, params.Title, params.Message, params.Category, data,
	))
}

// ListByUserID retrieves notifications for a user, newest first
func (r *NotificationRepository) ListByUserID(ctx context.Context, userID int64, limit int) ([]*notification.Notification, error) {
	query := `
		SELECT id, user_id, title, message, category, data, opened_at, created_at
		FROM notifications
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2
	`

	rows, err := r.db.QueryContext(ctx, query, userID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	defer rows.Close()

	var notifications []*notification.Notification
	for rows.Next() {
		n, err := scanNotification(rows)
		if err != nil {
			return nil, err
		}
		notifications = append(notifications, n)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notifications: %w", err)
	}

	return notifications, nil
}

// MarkOpened marks a notification as opened by its owner
func (r *NotificationRepository) MarkOpened(ctx context.Context, notificationID string, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE notifications SET opened_at = CURRENT_TIMESTAMP WHERE id = $1 AND user_id = $2 AND opened_at IS NULL`,
		notificationID, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to mark notification opened: %w", err)
	}
	if _, err := result.RowsAffected(); err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	return nil
}

func scanNotification(s interface{ Scan(...any) error }) (*notification.Notification, error) {
	var n notification.Notification
	var data []byte
	var openedAt sql.NullTime

	err := s.Scan(&n.ID, &n.UserID, &n.Title, &n.Message, &n.Category, &data, &openedAt, &n.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to scan notification: %w", err)
	}

	if len(data) > 0 {
		if err := json.Unmarshal(data, &n.Data); err != nil {
			return nil, fmt.Errorf("failed to decode notification data: %w", err)
		}
	}
	if openedAt.Valid {
		n.OpenedAt = &openedAt.Time
	}
	return &n, nil
}
