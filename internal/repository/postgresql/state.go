package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/database"
	"github.com/Oyono-Mathias/Om-suivi-sub000/internal/pkg/statestore"
	"github.com/jackc/pgx/v5"
)

type stateStore struct {
	db *database.DB
}

// NewStateStore returns a statestore.Store backed by the app_state table.
func NewStateStore(db *database.DB) statestore.Store {
	return &stateStore{db: db}
}

func (s *stateStore) Get(ctx context.Context, key string) ([]byte, error) {
	q := GetQuerier(ctx, s.db)

	var value []byte
	err := q.QueryRow(ctx, `
		SELECT value FROM app_state
		WHERE key = $1 AND (expires_at IS NULL OR expires_at > NOW())
	`, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, statestore.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get state %s: %w", key, err)
	}
	return value, nil
}

func (s *stateStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	q := GetQuerier(ctx, s.db)

	var expiresAt *time.Time
	if ttl > 0 {
		t := time.Now().Add(ttl)
		expiresAt = &t
	}

	_, err := q.Exec(ctx, `
		INSERT INTO app_state (key, value, expires_at)
		VALUES ($1, $2, $3)
		ON CONFLICT (key) DO UPDATE SET
			value = EXCLUDED.value,
			expires_at = EXCLUDED.expires_at,
			updated_at = NOW()
	`, key, value, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set state %s: %w", key, err)
	}
	return nil
}

func (s *stateStore) Delete(ctx context.Context, key string) error {
	q := GetQuerier(ctx, s.db)

	if _, err := q.Exec(ctx, `DELETE FROM app_state WHERE key = $1`, key); err != nil {
		return fmt.Errorf("failed to delete state %s: %w", key, err)
	}
	return nil
}

// PurgeExpiredState removes rows whose TTL has passed.
func PurgeExpiredState(ctx context.Context, db *database.DB) (int64, error) {
	tag, err := GetQuerier(ctx, db).Exec(ctx, `DELETE FROM app_state WHERE expires_at <= NOW()`)
	if err != nil {
		return 0, fmt.Errorf("failed to purge expired state: %w", err)
	}
	return tag.RowsAffected(), nil
}
