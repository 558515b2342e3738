package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/transfer"
)

// TransferRepository implements the transfer.Repository interface for PostgreSQL
type TransferRepository struct {
	db *DB
}

// NewTransferRepository creates a new PostgreSQL transfer repository
func NewTransferRepository(db *DB) *TransferRepository {
	return &TransferRepository{db: db}
}

const transferColumns = `id, user_id, from_wallet_id, to_wallet_id, amount, description, occurred_at, created_at`

func scanTransfer(s interface{ Scan(...any) error }) (*transfer.Transfer, error) {
	var t transfer.Transfer
	var description sql.NullString

	err := s.Scan(
		&t.ID, &t.UserID, &t.FromWalletID, &t.ToWalletID,
		&t.Amount, &description, &t.OccurredAt, &t.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	if description.Valid {
		t.Description = description.String
	}
	return &t, nil
}

// Create inserts the transfer row and moves the balance between the two
// wallets in one database transaction. The source row is locked so the
// funds check and the decrement see the same balance.
func (r *TransferRepository) Create(ctx context.Context, params transfer.CreateParams) (*transfer.Transfer, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var sourceBalance decimal.Decimal
	err = tx.QueryRowContext(ctx,
		`SELECT balance FROM wallets WHERE id = $1 FOR UPDATE`,
		params.FromWalletID,
	).Scan(&sourceBalance)
	if err != nil {
		return nil, fmt.Errorf("failed to lock source wallet: %w", err)
	}

	if sourceBalance.LessThan(params.Amount) {
		return nil, transfer.ErrInsufficientFunds
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance - $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		params.Amount, params.FromWalletID,
	); err != nil {
		return nil, fmt.Errorf("failed to debit source wallet: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
		params.Amount, params.ToWalletID,
	); err != nil {
		return nil, fmt.Errorf("failed to credit destination wallet: %w", err)
	}

	query := `
		INSERT INTO transfers (id, user_id, from_wallet_id, to_wallet_id, amount, description, occurred_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + transferColumns

	created, err := scanTransfer(tx.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.FromWalletID, params.ToWalletID,
		params.Amount, nullString(params.Description), params.OccurredAt,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transfer: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return created, nil
}

// ListByUserID retrieves all transfers for a specific user
func (r *TransferRepository) ListByUserID(ctx context.Context, userID int64) ([]*transfer.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE user_id = $1
		ORDER BY occurred_at DESC, created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfers: %w", err)
	}
	defer rows.Close()

	var transfers []*transfer.Transfer
	for rows.Next() {
		t, err := scanTransfer(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		transfers = append(transfers, t)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}

	return transfers, nil
}

// GetByIDAndUser retrieves a transfer filtered by both id and owner
func (r *TransferRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*transfer.Transfer, error) {
	query := `
		SELECT ` + transferColumns + `
		FROM transfers
		WHERE id = $1 AND user_id = $2
	`

	t, err := scanTransfer(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, transfer.ErrTransferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transfer: %w", err)
	}
	return t, nil
}
