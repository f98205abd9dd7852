package menu

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"sales-assistant/internal/llm"
)

// PGRepo implements Repo using Postgres.
type PGRepo struct {
	DB *sql.DB
}

// Create inserts a new analysis.
func (r *PGRepo) Create(ctx context.Context, analysis Analysis) error {
	const query = `
INSERT INTO menu_analyses (
    id,
    file_name,
    storage_key,
    mime_type,
    size_bytes,
    sha256,
    status,
    menu_items,
    error,
    created_at,
    updated_at
) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`

	items := analysis.MenuItems
	if items == nil {
		items = []llm.MenuItem{}
	}
	payload, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal menu items: %w", err)
	}

	var errText sql.NullString
	if analysis.Error != "" {
		errText = sql.NullString{String: analysis.Error, Valid: true}
	}

	_, err = r.DB.ExecContext(ctx, query,
		analysis.ID,
		analysis.FileName,
		analysis.StorageKey,
		analysis.MimeType,
		analysis.SizeBytes,
		analysis.SHA256,
		string(analysis.Status),
		payload,
		errText,
		analysis.CreatedAt,
		analysis.UpdatedAt,
	)
	return err
}

// GetByID returns an analysis by ID.
func (r *PGRepo) GetByID(ctx context.Context, id string) (Analysis, error) {
	const query = `
SELECT id, file_name, storage_key, mime_type, size_bytes, sha256, status, menu_items, error, created_at, updated_at
FROM menu_analyses
WHERE id = $1
LIMIT 1`

	var (
		a       Analysis
		status  string
		items   []byte
		errText sql.NullString
	)
	err := r.DB.QueryRowContext(ctx, query, id).Scan(
		&a.ID,
		&a.FileName,
		&a.StorageKey,
		&a.MimeType,
		&a.SizeBytes,
		&a.SHA256,
		&status,
		&items,
		&errText,
		&a.CreatedAt,
		&a.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return Analysis{}, ErrNotFound
		}
		return Analysis{}, err
	}
	a.Status = Status(status)
	a.Error = errText.String
	if len(items) > 0 {
		if err := json.Unmarshal(items, &a.MenuItems); err != nil {
			return Analysis{}, fmt.Errorf("decode menu items: %w", err)
		}
	}
	return a, nil
}
