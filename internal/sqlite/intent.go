package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/rpggio/intentcat/internal/domain/intent"
	"github.com/rpggio/intentcat/internal/repository"
)

const intentColumns = `
	id, tenant_id, category_id, name, description, keywords,
	kind, status, response, usage_count, last_used_at, created_at, modified_at
`

// IntentRepository implements intent.IntentRepository and
// recognition.CatalogRepository for SQLite
type IntentRepository struct {
	db *DB
}

// NewIntentRepository creates a new IntentRepository
func NewIntentRepository(db *DB) *IntentRepository {
	return &IntentRepository{db: db}
}

// Create creates a new intent
func (r *IntentRepository) Create(ctx context.Context, tenantID string, in *intent.Intent) error {
	keywords, err := encodeKeywords(in.Keywords)
	if err != nil {
		return err
	}

	query := `
		INSERT INTO intents (
			id, tenant_id, category_id, name, description, keywords,
			kind, status, response, usage_count, last_used_at, created_at, modified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`

	_, err = r.db.ExecContext(ctx, query,
		in.ID,
		tenantID,
		nullString(in.CategoryID),
		in.Name,
		in.Description,
		keywords,
		in.Kind,
		in.Status,
		in.Response,
		in.UsageCount,
		nullTime(in.LastUsedAt),
		in.CreatedAt.UTC(),
		in.ModifiedAt.UTC(),
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		if isUniqueViolation(err) {
			return repository.ErrConflict
		}
		return fmt.Errorf("failed to create intent: %w", err)
	}

	return nil
}

// Get retrieves an intent by ID
func (r *IntentRepository) Get(ctx context.Context, tenantID, id string) (*intent.Intent, error) {
	query := `SELECT ` + intentColumns + ` FROM intents WHERE id = ? AND tenant_id = ?`

	in, err := scanIntent(r.db.QueryRowContext(ctx, query, id, tenantID))
	if err == sql.ErrNoRows {
		return nil, repository.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get intent: %w", err)
	}

	return in, nil
}

// Update overwrites the editable fields of an intent. Usage bookkeeping
// is owned by RecordUsage and left untouched.
func (r *IntentRepository) Update(ctx context.Context, tenantID string, in *intent.Intent) error {
	keywords, err := encodeKeywords(in.Keywords)
	if err != nil {
		return err
	}

	query := `
		UPDATE intents
		SET category_id = ?, name = ?, description = ?, keywords = ?,
			kind = ?, status = ?, response = ?, modified_at = ?
		WHERE id = ? AND tenant_id = ?
	`

	result, err := r.db.ExecContext(ctx, query,
		nullString(in.CategoryID),
		in.Name,
		in.Description,
		keywords,
		in.Kind,
		in.Status,
		in.Response,
		in.ModifiedAt.UTC(),
		in.ID,
		tenantID,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return repository.ErrForeignKeyViolation
		}
		return fmt.Errorf("failed to update intent: %w", err)
	}

	return requireAffected(result)
}

// Delete removes an intent
func (r *IntentRepository) Delete(ctx context.Context, tenantID, id string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM intents WHERE id = ? AND tenant_id = ?`, id, tenantID)
	if err != nil {
		return fmt.Errorf("failed to delete intent: %w", err)
	}
	return requireAffected(result)
}

// List returns intent references matching the given filters
func (r *IntentRepository) List(ctx context.Context, tenantID string, opts intent.ListIntentsOptions) ([]intent.IntentRef, error) {
	query := `
		SELECT id, category_id, name, kind, status, usage_count, last_used_at
		FROM intents
		WHERE tenant_id = ?
	`
	args := []any{tenantID}

	if opts.Kind != nil {
		query += " AND kind = ?"
		args = append(args, *opts.Kind)
	}
	if opts.Status != nil {
		query += " AND status = ?"
		args = append(args, *opts.Status)
	}
	if opts.CategoryID != "" {
		query += " AND category_id = ?"
		args = append(args, opts.CategoryID)
	}

	query += " ORDER BY created_at ASC, id ASC"

	if opts.Limit > 0 || opts.Offset > 0 {
		limit := opts.Limit
		if limit <= 0 {
			limit = -1
		}
		query += " LIMIT ? OFFSET ?"
		args = append(args, limit, opts.Offset)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list intents: %w", err)
	}
	defer rows.Close()

	var refs []intent.IntentRef
	for rows.Next() {
		var ref intent.IntentRef
		var categoryID sql.NullString
		var lastUsed sql.NullTime
		if err := rows.Scan(
			&ref.ID,
			&categoryID,
			&ref.Name,
			&ref.Kind,
			&ref.Status,
			&ref.UsageCount,
			&lastUsed,
		); err != nil {
			return nil, fmt.Errorf("failed to scan intent ref: %w", err)
		}
		ref.CategoryID = categoryID.String
		if lastUsed.Valid {
			ref.LastUsedAt = &lastUsed.Time
		}
		refs = append(refs, ref)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intent rows: %w", err)
	}

	return refs, nil
}

// ListActive returns every active intent of the given kinds in creation
// order.
func (r *IntentRepository) ListActive(ctx context.Context, tenantID string, kinds []intent.Kind) ([]intent.Intent, error) {
	if len(kinds) == 0 {
		return []intent.Intent{}, nil
	}

	placeholders := strings.TrimSuffix(strings.Repeat("?, ", len(kinds)), ", ")
	query := `SELECT ` + intentColumns + `
		FROM intents
		WHERE tenant_id = ? AND status = ? AND kind IN (` + placeholders + `)
		ORDER BY created_at ASC, id ASC
	`
	args := []any{tenantID, intent.StatusActive}
	for _, k := range kinds {
		args = append(args, k)
	}

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list active intents: %w", err)
	}
	defer rows.Close()

	intents := []intent.Intent{}
	for rows.Next() {
		in, err := scanIntent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan intent: %w", err)
		}
		intents = append(intents, *in)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating intent rows: %w", err)
	}

	return intents, nil
}

// RecordUsage increments the usage counter of an intent in a single
// statement and stamps its last use.
func (r *IntentRepository) RecordUsage(ctx context.Context, tenantID, id string, kind intent.Kind, at time.Time) error {
	query := `
		UPDATE intents
		SET usage_count = usage_count + 1, last_used_at = ?
		WHERE id = ? AND tenant_id = ? AND kind = ?
	`

	result, err := r.db.ExecContext(ctx, query, at.UTC(), id, tenantID, kind)
	if err != nil {
		return fmt.Errorf("failed to record intent usage: %w", err)
	}
	return requireAffected(result)
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanIntent(row rowScanner) (*intent.Intent, error) {
	var in intent.Intent
	var categoryID sql.NullString
	var keywords string
	var lastUsed sql.NullTime

	if err := row.Scan(
		&in.ID,
		&in.TenantID,
		&categoryID,
		&in.Name,
		&in.Description,
		&keywords,
		&in.Kind,
		&in.Status,
		&in.Response,
		&in.UsageCount,
		&lastUsed,
		&in.CreatedAt,
		&in.ModifiedAt,
	); err != nil {
		return nil, err
	}

	in.CategoryID = categoryID.String
	if lastUsed.Valid {
		in.LastUsedAt = &lastUsed.Time
	}
	if err := json.Unmarshal([]byte(keywords), &in.Keywords); err != nil {
		return nil, fmt.Errorf("%w: keywords of intent %s: %v", repository.ErrInvalidInput, in.ID, err)
	}
	if in.Keywords == nil {
		in.Keywords = []string{}
	}

	return &in, nil
}

func encodeKeywords(keywords []string) (string, error) {
	if keywords == nil {
		keywords = []string{}
	}
	data, err := json.Marshal(keywords)
	if err != nil {
		return "", fmt.Errorf("%w: keywords: %v", repository.ErrInvalidInput, err)
	}
	return string(data), nil
}

func requireAffected(result sql.Result) error {
	n, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if n == 0 {
		return repository.ErrNotFound
	}
	return nil
}

func nullString(s string) sql.NullString {
	return sql.NullString{String: s, Valid: s != ""}
}

func nullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: t.UTC(), Valid: true}
}
