// Package sqlite stores session preferences in a local SQLite file for
// single-node deployments.
package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"mesa-console/internal/core/port"
)

// PreferenceRepository implements port.PreferenceRepository on SQLite.
type PreferenceRepository struct {
	db *sql.DB
}

// NewPreferenceRepository returns a repository over an opened and migrated
// database.
func NewPreferenceRepository(db *sql.DB) *PreferenceRepository {
	return &PreferenceRepository{db: db}
}

func (r *PreferenceRepository) Get(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := r.db.QueryRowContext(ctx,
		`SELECT value FROM session_preferences WHERE session_id = ? AND key = ?`,
		sessionID, key,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return "", port.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, nil
}

func (r *PreferenceRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT key, value FROM session_preferences WHERE session_id = ?`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	defer rows.Close()

	out := map[string]string{}
	for rows.Next() {
		var k, v string
		if err := rows.Scan(&k, &v); err != nil {
			return nil, fmt.Errorf("load preferences: %w", err)
		}
		out[k] = v
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	return out, nil
}

func (r *PreferenceRepository) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := r.db.ExecContext(ctx, `
        INSERT INTO session_preferences (session_id, key, value, updated_at)
        VALUES (?, ?, ?, strftime('%Y-%m-%dT%H:%M:%fZ', 'now'))
        ON CONFLICT (session_id, key)
        DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		sessionID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

func (r *PreferenceRepository) Delete(ctx context.Context, sessionID, key string) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM session_preferences WHERE session_id = ? AND key = ?`,
		sessionID, key,
	); err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}
