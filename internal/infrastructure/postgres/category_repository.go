package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"centavo/internal/domain/category"
)

// CategoryRepository implements the category.Repository interface for PostgreSQL
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new PostgreSQL category repository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, params category.CreateParams) (*category.Category, error) {
	query := `
		INSERT INTO categories (id, user_id, name, kind)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, name, kind, created_at
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, params.ID, params.UserID, params.Name, params.Kind).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}
	return &c, nil
}

// ListByUserID retrieves all categories for a specific user
func (r *CategoryRepository) ListByUserID(ctx context.Context, userID int64) ([]*category.Category, error) {
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE user_id = $1
		ORDER BY name
	`

	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []*category.Category
	for rows.Next() {
		var c category.Category
		if err := rows.Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, &c)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating categories: %w", err)
	}

	return categories, nil
}

// GetByIDAndUser retrieves a category filtered by both id and owner
func (r *CategoryRepository) GetByIDAndUser(ctx context.Context, id string, userID int64) (*category.Category, error) {
	query := `
		SELECT id, user_id, name, kind, created_at
		FROM categories
		WHERE id = $1 AND user_id = $2
	`

	var c category.Category
	err := r.db.QueryRowContext(ctx, query, id, userID).
		Scan(&c.ID, &c.UserID, &c.Name, &c.Kind, &c.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, category.ErrCategoryNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}
	return &c, nil
}

// Delete removes a category after verifying ownership
func (r *CategoryRepository) Delete(ctx context.Context, id string, userID int64) error {
	result, err := r.db.ExecContext(ctx,
		`DELETE FROM categories WHERE id = $1 AND user_id = $2`,
		id, userID,
	)
	if err != nil {
		return fmt.Errorf("failed to delete category: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get affected rows: %w", err)
	}
	if rows == 0 {
		return category.ErrCategoryNotFound
	}
	return nil
}
