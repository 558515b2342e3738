package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"centavo/internal/domain/recurring"
)

// RecurringRepository implements the recurring.Repository interface for PostgreSQL
type RecurringRepository struct {
	db *DB
}

// NewRecurringRepository creates a new PostgreSQL recurring rule repository
func NewRecurringRepository(db *DB) *RecurringRepository {
	return &RecurringRepository{db: db}
}

const ruleColumns = `id, user_id, wallet_id, category_id, amount, kind, description, frequency, next_run_at, active, created_at`

func scanRule(s interface{ Scan(...any) error }) (*recurring.Rule, error) {
	var rule recurring.Rule
	var description sql.NullString

	err := s.Scan(
		&rule.ID, &rule.UserID, &rule.WalletID, &rule.CategoryID,
		&rule.Amount, &rule.Kind, &description,
		&rule.Frequency, &rule.NextRunAt, &rule.Active, &rule.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		rule.Description = description.String
	}
	return &rule, nil
}

// Create creates a new recurring rule
func (r *RecurringRepository) Create(ctx context.Context, params recurring.CreateParams) (*recurring.Rule, error) {
	query := `
		INSERT INTO recurring_rules (id, user_id, wallet_id, category_id, amount, kind, description, frequency, next_run_at, active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, TRUE)
		RETURNING ` + ruleColumns

	rule, err := scanRule(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.WalletID, params.CategoryID,
		params.Amount, params.Kind, nullString(params.Description),
		params.Frequency, params.NextRunAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create recurring rule: %w", err)
	}
	return rule, nil
}

// ListByUserID retrieves all rules for a specific user
func (r *RecurringRepository) ListByUserID(ctx context.Context, userID int64) ([]*recurring.Rule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list recurring rules: %w", err)
	}
	defer rows.Close()

	var rules []*recurring.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating recurring rules: %w", err)
	}

	return rules, nil
}

// GetByIDAndUser retrieves a rule filtered by both id and owner
func (r *RecurringRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*recurring.Rule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE id = $1 AND user_id = $2
	`

	rule, err := scanRule(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, recurring.ErrRuleNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get recurring rule: %w", err)
	}
	return rule, nil
}

// ListDue retrieves active rules whose next run time is at or before now
func (r *RecurringRepository) ListDue(ctx context.Context, now time.Time) ([]*recurring.Rule, error) {
	query := `
		SELECT ` + ruleColumns + `
		FROM recurring_rules
		WHERE active AND next_run_at <= $1
		ORDER BY next_run_at
	`

	rows, err := r.db.QueryContext(ctx, query, now)
	if err != nil {
		return nil, fmt.Errorf("failed to list due rules: %w", err)
	}
	defer rows.Close()

	var rules []*recurring.Rule
	for rows.Next() {
		rule, err := scanRule(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan recurring rule: %w", err)
		}
		rules = append(rules, rule)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating due rules: %w", err)
	}

	return rules, nil
}

// AdvanceNextRun moves a rule's next run time forward
func (r *RecurringRepository) AdvanceNextRun(ctx context.Context, id string, next time.Time) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recurring_rules SET next_run_at = $1 WHERE id = $2`,
		next, id,
	)
	if err != nil {
		return fmt.Errorf("failed to advance rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return recurring.ErrRuleNotFound
	}
	return nil
}

// SetActive enables or disables a rule
func (r *RecurringRepository) SetActive(ctx context.Context, id string, userID int64, active bool) error {
	result, err := r.db.ExecContext(ctx,
		`UPDATE recurring_rules SET active = $1 WHERE id = $2 AND user_id = $3`,
		active, id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to update rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return recurring.ErrRuleNotFound
	}
	return nil
}

// Delete removes a rule after verifying ownership
func (r *RecurringRepository) Delete(ctx context.Context, id string, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM recurring_rules WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete rule: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return recurring.ErrRuleNotFound
	}
	return nil
}
