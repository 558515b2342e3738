package recurring

import (
	"context"
	"time"
)

// Repository defines the interface for recurring rule data access
// This interface is defined in the domain layer, but implemented in the infrastructure layer
type Repository interface {
	// Create creates a new recurring rule
	Create(ctx context.Context, params CreateParams) (*Rule, error)

	// ListByUserID retrieves all rules for a specific user
	ListByUserID(ctx context.Context, userID int64) ([]*Rule, error)

	// GetByIDAndUser retrieves a rule filtered by both id and owner
	GetByIDAndUser(ctx context.Context, id string, userID int64) (*Rule, error)

	// ListDue retrieves active rules whose next run time is at or before now
	ListDue(ctx context.Context, now time.Time) ([]*Rule, error)

	// AdvanceNextRun moves a rule's next run time forward
	AdvanceNextRun(ctx context.Context, id string, next time.Time) error

	// SetActive enables or disables a rule
	SetActive(ctx context.Context, id string, userID int64, active bool) error

	// Delete removes a rule after verifying ownership
	Delete(ctx context.Context, id string, userID int64) error
}
