package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"diaglistapp/internal/repository"
)

// BlobRepo stores whole collections in the collections key/value table.
type BlobRepo struct {
	db *DB
}

// NewBlobRepo creates a new blob repository.
func NewBlobRepo(db *DB) repository.BlobStore {
	return &BlobRepo{db: db}
}

// Load returns the blob stored under key, or the empty string when the
// key has never been written.
func (r *BlobRepo) Load(ctx context.Context, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx, "SELECT value FROM collections WHERE key = ?", key).Scan(&value)
	if err == sql.ErrNoRows {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("failed to load blob %s: %w", key, err)
	}
	return value, nil
}

// Save overwrites the blob stored under key.
func (r *BlobRepo) Save(ctx context.Context, key, value string) error {
	query := `
		INSERT INTO collections (key, value, updated_at)
		VALUES (?, ?, CURRENT_TIMESTAMP)
		ON CONFLICT(key) DO UPDATE SET
			value = excluded.value,
			updated_at = CURRENT_TIMESTAMP`

	if _, err := r.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to save blob %s: %w", key, err)
	}
	return nil
}
