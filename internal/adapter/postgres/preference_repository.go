package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"mesa-console/internal/core/port"
)

// PreferenceRepository implements port.PreferenceRepository using pgxpool
// for PostgreSQL.
type PreferenceRepository struct {
	pool *pgxpool.Pool
}

// NewPreferenceRepository returns a new repository instance.
func NewPreferenceRepository(pool *pgxpool.Pool) *PreferenceRepository {
	return &PreferenceRepository{pool: pool}
}

// Get returns the value stored under key for the session.
func (r *PreferenceRepository) Get(ctx context.Context, sessionID, key string) (string, error) {
	var value string
	err := r.pool.QueryRow(ctx,
		`SELECT value FROM session_preferences WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	).Scan(&value)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", port.ErrPreferenceNotFound
	}
	if err != nil {
		return "", fmt.Errorf("get preference %q: %w", key, err)
	}
	return value, nil
}

// Load returns all values stored for the session.
func (r *PreferenceRepository) Load(ctx context.Context, sessionID string) (map[string]string, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT key, value FROM session_preferences WHERE session_id = $1`,
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	type kv struct {
		Key   string
		Value string
	}
	pairs, err := pgx.CollectRows(rows, pgx.RowToStructByPos[kv])
	if err != nil {
		return nil, fmt.Errorf("load preferences: %w", err)
	}
	out := make(map[string]string, len(pairs))
	for _, p := range pairs {
		out[p.Key] = p.Value
	}
	return out, nil
}

// Set upserts the value under key.
func (r *PreferenceRepository) Set(ctx context.Context, sessionID, key, value string) error {
	_, err := r.pool.Exec(ctx, `
        INSERT INTO session_preferences (session_id, key, value, updated_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (session_id, key)
        DO UPDATE SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at`,
		sessionID, key, value,
	)
	if err != nil {
		return fmt.Errorf("set preference %q: %w", key, err)
	}
	return nil
}

// Delete removes key for the session.
func (r *PreferenceRepository) Delete(ctx context.Context, sessionID, key string) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM session_preferences WHERE session_id = $1 AND key = $2`,
		sessionID, key,
	)
	if err != nil {
		return fmt.Errorf("delete preference %q: %w", key, err)
	}
	return nil
}
