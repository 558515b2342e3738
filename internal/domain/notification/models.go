package notification

import (
	"errors"
	"time"
)

// Allowed notification categories; the mobile app maps them to routes.
var categories = map[string]struct{}{
	"wallets":      {},
	"transactions": {},
	"general":      {},
}

// Domain errors
var (
	ErrInvalidCategory = errors.New("invalid notification category")
	ErrInvalidToken    = errors.New("device token is required")
)

// Notification is a stored record of a message delivered to a user
type Notification struct {
	ID        string            `json:"id"`
	UserID    int64             `json:"userId"`
	Title     string            `json:"title"`
	Message   string            `json:"message"`
	Category  string            `json:"category"`
	Data      map[string]string `json:"data,omitempty"`
	OpenedAt  *time.Time        `json:"openedAt,omitempty"`
	CreatedAt time.Time         `json:"createdAt"`
}

// DeviceToken is a push-capable device registration
type DeviceToken struct {
	ID        string    `json:"id"`
	UserID    int64     `json:"userId"`
	Token     string    `json:"token"`
	Platform  string    `json:"platform"`
	Active    bool      `json:"active"`
	CreatedAt time.Time `json:"createdAt"`
}

// CreateNotificationParams contains parameters for storing a notification record
type CreateNotificationParams struct {
	UserID   int64
	Title    string
	Message  string
	Category string
	Data     map[string]string
}

// CreateDeviceTokenParams contains parameters for registering a device token
type CreateDeviceTokenParams struct {
	UserID   int64
	Token    string
	Platform string
}

// Validate validates the device token parameters
func (p CreateDeviceTokenParams) Validate() error {
	if p.UserID <= 0 {
		return errors.New("valid user ID is required")
	}
	if p.Token == "" {
		return ErrInvalidToken
	}
	return nil
}

// IsValidCategory checks if the provided category is valid.
func IsValidCategory(c string) bool {
	_, ok := categories[c]
	return ok
}
