package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centavo/internal/domain/transaction"
)

// TransactionRepository implements the transaction.Repository interface for PostgreSQL
type TransactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new PostgreSQL transaction repository
func NewTransactionRepository(db *DB) *TransactionRepository {
	return &TransactionRepository{db: db}
}

const transactionColumns = `id, user_id, wallet_id, category_id, amount, kind, description, occurred_at, created_at`

func scanTransaction(s interface{ Scan(...any) error }) (*transaction.Transaction, error) {
	var t transaction.Transaction
	var description sql.NullString

	err := s.Scan(
		&t.ID, &t.UserID, &t.WalletID, &t.CategoryID,
		&t.Amount, &t.Kind, &description,
		&t.OccurredAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = description.String
	}
	return &t, nil
}

// Create inserts the transaction and applies its balance effect to the wallet
// in one database transaction.
func (r *TransactionRepository) Create(ctx context.Context, params transaction.CreateParams) (*transaction.Transaction, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	query := `
		INSERT INTO transactions (id, user_id, wallet_id, category_id, amount, kind, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(tx.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.WalletID, params.CategoryID,
		params.Amount, params.Kind, nullString(params.Description), params.OccurredAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		params.BalanceDelta(), params.WalletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to post transaction balance: %w", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("wallet %s missing during balance posting", params.WalletID)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// ListByUserID retrieves transactions for a user, newest first.
// walletID narrows the result to a single wallet when non-empty.
func (r *TransactionRepository) ListByUserID(ctx context.Context, userID int64, walletID string) ([]*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1 AND ($2 = '' OR wallet_id = $2)
		ORDER BY occurred_at DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID, walletID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	var transactions []*transaction.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		transactions = append(transactions, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return transactions, nil
}

// GetByIDAndUser retrieves a transaction filtered by both id and owner
func (r *TransactionRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*transaction.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1 AND user_id = $2
	`

	t, err := scanTransaction(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, transaction.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return t, nil
}

// Delete removes a transaction and reverses its balance effect on the wallet
// in one database transaction.
func (r *TransactionRepository) Delete(ctx context.Context, id string, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var existing transaction.Transaction
	err = tx.QueryRowContext(ctx,
		`SELECT wallet_id, amount, kind FROM transactions WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		id, userID,
	).Scan(&existing.WalletID, &existing.Amount, &existing.Kind)
	if err == sql.ErrNoRows {
		return transaction.ErrTransactionNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to lock transaction: %w", err)
	}

	// Undo the original posting: credit back an expense, debit an income
	delta := existing.Amount
	if existing.Kind == "income" {
		delta = delta.Neg()
	}
	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		delta, existing.WalletID,
	); err != nil {
		return fmt.Errorf("failed to reverse transaction balance: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM transactions WHERE id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete transaction: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
