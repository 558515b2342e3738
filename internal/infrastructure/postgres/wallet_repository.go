package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/shopspring/decimal"

	"centavo/internal/domain/wallet"
)

// WalletRepository implements the wallet.Repository interface for PostgreSQL
type WalletRepository struct {
	db *DB
}

// NewWalletRepository creates a new PostgreSQL wallet repository
func NewWalletRepository(db *DB) *WalletRepository {
	return &WalletRepository{db: db}
}

const walletColumns = `id, user_id, name, kind, balance, credit_limit, is_default, created_at, updated_at`

func scanWallet(s interface{ Scan(...any) error }) (*wallet.Wallet, error) {
	var w wallet.Wallet
	var creditLimit decimal.NullDecimal

	err := s.Scan(
		&w.ID, &w.UserID, &w.Name, &w.Kind,
		&w.Balance, &creditLimit, &w.IsDefault,
		&w.CreatedAt, &w.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if creditLimit.Valid {
		w.CreditLimit = &creditLimit.Decimal
	}
	return &w, nil
}

// Create creates a new wallet
func (r *WalletRepository) Create(ctx context.Context, params wallet.CreateParams) (*wallet.Wallet, error) {
	query := `
		INSERT INTO wallets (id, user_id, name, kind, balance, credit_limit, is_default)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + walletColumns

	w, err := scanWallet(r.db.QueryRowContext(
		ctx, query,
		params.ID, params.UserID, params.Name, params.Kind,
		params.Balance, nullDecimal(params.CreditLimit), params.IsDefault,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}
	return w, nil
}

// GetByIDAndUser retrieves a wallet filtered by both id and owner.
// A wallet owned by someone else is indistinguishable from a missing one.
func (r *WalletRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*wallet.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE id = $1 AND user_id = $2
	`

	w, err := scanWallet(r.db.QueryRowContext(ctx, query, id, userID))
	if err == sql.ErrNoRows {
		return nil, wallet.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}
	return w, nil
}

// ListByUserID retrieves all wallets for a specific user
func (r *WalletRepository) ListByUserID(ctx context.Context, userID int64) ([]*wallet.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list wallets: %w", err)
	}
	defer rows.Close()

	var wallets []*wallet.Wallet
	for rows.Next() {
		w, err := scanWallet(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan wallet: %w", err)
		}
		wallets = append(wallets, w)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating wallets: %w", err)
	}

	return wallets, nil
}

// Update applies partial updates to a wallet. Nil fields keep their
// current value.
func (r *WalletRepository) Update(ctx context.Context, id string, params wallet.UpdateParams) (*wallet.Wallet, error) {
	query := `
		UPDATE wallets
		SET name = COALESCE($2, name),
		    kind = COALESCE($3, kind),
		    credit_limit = COALESCE($4, credit_limit),
		    updated_at = CURRENT_TIMESTAMP
		WHERE id = $1
		RETURNING ` + walletColumns

	w, err := scanWallet(r.db.QueryRowContext(
		ctx, query,
		id, nullStringPtr(params.Name), nullStringPtr(params.Kind), nullDecimal(params.CreditLimit),
	))
	if err == sql.ErrNoRows {
		return nil, wallet.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update wallet: %w", err)
	}
	return w, nil
}

// SetDefault marks a wallet as the user's default, clearing the previous
// default in the same transaction.
func (r *WalletRepository) SetDefault(ctx context.Context, id string, userID int64) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`UPDATE wallets SET is_default = FALSE, updated_at = CURRENT_TIMESTAMP WHERE user_id = $1 AND is_default`,
		userID,
	); err != nil {
		return fmt.Errorf("failed to clear default wallet: %w", err)
	}

	result, err := tx.ExecContext(ctx,
		`UPDATE wallets SET is_default = TRUE, updated_at = CURRENT_TIMESTAMP WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to set default wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return wallet.ErrWalletNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// CountDependents counts transactions and transfers referencing a wallet.
// A transfer counts once whether the wallet is its source or destination.
func (r *WalletRepository) CountDependents(ctx context.Context, id string) (wallet.DependentCounts, error) {
	query := `
		SELECT
			(SELECT COUNT(*) FROM transactions WHERE wallet_id = $1),
			(SELECT COUNT(*) FROM transfers WHERE from_wallet_id = $1 OR to_wallet_id = $1)
	`

	var counts wallet.DependentCounts
	if err := r.db.QueryRowContext(ctx, query, id).Scan(&counts.Transactions, &counts.Transfers); err != nil {
		return wallet.DependentCounts{}, fmt.Errorf("failed to count wallet dependents: %w", err)
	}
	return counts, nil
}

// Delete removes a wallet row without touching dependents
func (r *WalletRepository) Delete(ctx context.Context, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete wallet: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return wallet.ErrWalletNotFound
	}
	return nil
}

// CascadeDelete removes a wallet together with everything referencing it.
// Counterparty balances are adjusted first so that deleting the transfer rows
// does not silently keep money that arrived through them, then transfers,
// transactions and recurring rules are removed, and finally the wallet row
// itself. Everything runs in one transaction; any failure rolls the whole
// operation back.
func (r *WalletRepository) CascadeDelete(ctx context.Context, id string) (wallet.CascadeResult, error) {
	var result wallet.CascadeResult

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return result, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	// Lock the wallet row for the duration of the cascade
	var userID int64
	err = tx.QueryRowContext(ctx, `SELECT user_id FROM wallets WHERE id = $1 FOR UPDATE`, id).Scan(&userID)
	if err == sql.ErrNoRows {
		return result, wallet.ErrWalletNotFound
	}
	if err != nil {
		return result, fmt.Errorf("failed to lock wallet: %w", err)
	}

	legs, err := transferLegsTx(ctx, tx, id)
	if err != nil {
		return result, err
	}

	for _, adj := range wallet.ReversalAdjustments(id, legs) {
		if _, err := tx.ExecContext(ctx,
			`UPDATE wallets SET balance = balance + $1, updated_at = CURRENT_TIMESTAMP WHERE id = $2`,
			adj.Delta, adj.WalletID,
		); err != nil {
			return result, fmt.Errorf("failed to reverse transfer balance on wallet %s: %w", adj.WalletID, err)
		}
	}

	result.TransfersDeleted, err = execCount(ctx, tx,
		`DELETE FROM transfers WHERE from_wallet_id = $1 OR to_wallet_id = $1`, id)
	if err != nil {
		return wallet.CascadeResult{}, fmt.Errorf("failed to delete transfers: %w", err)
	}

	result.TransactionsDeleted, err = execCount(ctx, tx,
		`DELETE FROM transactions WHERE wallet_id = $1`, id)
	if err != nil {
		return wallet.CascadeResult{}, fmt.Errorf("failed to delete transactions: %w", err)
	}

	if _, err := execCount(ctx, tx,
		`DELETE FROM recurring_rules WHERE wallet_id = $1`, id); err != nil {
		return wallet.CascadeResult{}, fmt.Errorf("failed to delete recurring rules: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM wallets WHERE id = $1`, id); err != nil {
		return wallet.CascadeResult{}, fmt.Errorf("failed to delete wallet: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return wallet.CascadeResult{}, fmt.Errorf("failed to commit transaction: %w", err)
	}
	return result, nil
}

// transferLegsTx loads and locks the transfers touching a wallet.
func transferLegsTx(ctx context.Context, tx *Tx, walletID string) ([]wallet.TransferLeg, error) {
	rows, err := tx.QueryContext(ctx,
		`SELECT id, from_wallet_id, to_wallet_id, amount
		 FROM transfers
		 WHERE from_wallet_id = $1 OR to_wallet_id = $1
		 FOR UPDATE`,
		walletID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to load transfers: %w", err)
	}
	defer rows.Close()

	var legs []wallet.TransferLeg
	for rows.Next() {
		var leg wallet.TransferLeg
		if err := rows.Scan(&leg.ID, &leg.FromWalletID, &leg.ToWalletID, &leg.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan transfer: %w", err)
		}
		legs = append(legs, leg)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transfers: %w", err)
	}
	return legs, nil
}

func execCount(ctx context.Context, tx *Tx, query string, args ...any) (int64, error) {
	result, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, err
	}
	return result.RowsAffected()
}

// Helper functions

func nullStringPtr(p *string) sql.NullString {
	if p == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *p, Valid: true}
}

func nullDecimal(p *decimal.Decimal) decimal.NullDecimal {
	if p == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *p, Valid: true}
}
