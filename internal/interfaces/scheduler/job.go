package scheduler

import (
	"context"
	"fmt"
	"log"
	"time"

	"centavo/internal/domain/recurring"
)

// Job represents a unit of work that can be processed by the worker pool.
type Job interface {
	// Execute runs the job with the given context.
	// Context should be respected for cancellation and timeouts.
	Execute(ctx context.Context) error

	// UserID returns the user ID associated with this job.
	// This is useful for logging and tracking which user's data is being processed.
	UserID() string

	// Description returns a human-readable description of the job.
	Description() string
}

// RecurringPostJob materializes due recurring rules into transactions.
// It runs across all users in one batch; the recurring service handles
// per-rule failures so one bad rule cannot stall the run.
type RecurringPostJob struct {
	recurringService *recurring.Service
	now              time.Time
}

// NewRecurringPostJob creates a posting job for rules due at now
func NewRecurringPostJob(recurringService *recurring.Service, now time.Time) *RecurringPostJob {
	return &RecurringPostJob{
		recurringService: recurringService,
		now:              now,
	}
}

// Execute posts every due rule and advances its schedule
func (j *RecurringPostJob) Execute(ctx context.Context) error {
	log.Printf("Starting recurring rule posting for %s", j.now.Format(time.RFC3339))

	posted, err := j.recurringService.PostDue(ctx, j.now)
	if err != nil {
		log.Printf("Recurring rule posting failed: %v", err)
		return fmt.Errorf("posting failed: %w", err)
	}

	log.Printf("Recurring rule posting completed: Posted=%d", posted)
	return nil
}

// UserID returns the user ID associated with this job
func (j *RecurringPostJob) UserID() string {
	return "all"
}

// Description returns a human-readable description of the job
func (j *RecurringPostJob) Description() string {
	return "Recurring rule posting"
}
