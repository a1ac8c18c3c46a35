package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/rpggio/intentcat/internal/domain/category"
	"github.com/rpggio/intentcat/internal/repository"
)

// CategoryRepository implements category.Repository for SQLite
type CategoryRepository struct {
	db *DB
}

// NewCategoryRepository creates a new CategoryRepository
func NewCategoryRepository(db *DB) *CategoryRepository {
	return &CategoryRepository{db: db}
}

// Create creates a new category
func (r *CategoryRepository) Create(ctx context.Context, tenantID string, cat *category.Category) error {
	query := `
		INSERT INTO categories (id, tenant_id, name, description, created_at)
		VALUES (?, ?, ?, ?, ?)
	`

	_, err := r.db.ExecContext(ctx, query,
		cat.ID,
		tenantID,
		cat.Name,
		cat.Description,
		cat.CreatedAt.UTC(),
	)
	if err != nil {
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create category: %w", err)
	}

	return nil
}

// Get retrieves a category by ID
func (r *CategoryRepository) Get(ctx context.Context, tenantID, id string) (*category.Category, error) {
	query := `
		SELECT id, tenant_id, name, description, created_at
		FROM categories
		WHERE id = ? AND tenant_id = ?
	`

	var cat category.Category
	err := r.db.QueryRowContext(ctx, query, id, tenantID).Scan(
		&cat.ID,
		&cat.TenantID,
		&cat.Name,
		&cat.Description,
		&cat.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return &cat, nil
}

// List returns all categories for a tenant with intent counts, oldest first
func (r *CategoryRepository) List(ctx context.Context, tenantID string) ([]category.CategorySummary, error) {
	query := `
		SELECT
			c.id,
			c.name,
			c.description,
			c.created_at,
			COUNT(i.id) AS intent_count,
			COUNT(CASE WHEN i.status = 'active' THEN i.id END) AS active_intents
		FROM categories c
		LEFT JOIN intents i ON i.category_id = c.id AND i.tenant_id = c.tenant_id
		WHERE c.tenant_id = ?
		GROUP BY c.id, c.name, c.description, c.created_at
		ORDER BY c.created_at ASC, c.id ASC
	`

	rows, err := r.db.QueryContext(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var summaries []category.CategorySummary
	for rows.Next() {
		var summary category.CategorySummary
		if err := rows.Scan(
			&summary.ID,
			&summary.Name,
			&summary.Description,
			&summary.CreatedAt,
			&summary.IntentCount,
			&summary.ActiveIntents,
		); err != nil {
			return nil, fmt.Errorf("failed to scan category summary: %w", err)
		}
		summaries = append(summaries, summary)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating category rows: %w", err)
	}

	return summaries, nil
}
