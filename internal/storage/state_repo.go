package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
)

const keyActiveMission = "active_mission_id"

// StateRepo is a small key/value table for app-wide settings.
type StateRepo struct {
	db dbtx
}

func NewStateRepo(db dbtx) *StateRepo {
	return &StateRepo{db: db}
}

// Get returns "" when the key is missing.
func (r *StateRepo) Get(ctx context.Context, key string) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM app_state WHERE key = ?`, key).Scan(&v)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", nil
		}
		return "", fmt.Errorf("state get %s: %w", key, err)
	}
	return v, nil
}

func (r *StateRepo) Set(ctx context.Context, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO app_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value
	`, key, value)
	if err != nil {
		return fmt.Errorf("state set %s: %w", key, err)
	}
	return nil
}
