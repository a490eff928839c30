package postgres

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/jackc/pgx/v5"

	"github.com/dtroode/flashcards-client/internal/model"
)

var _ model.KeyValueStore = (*SessionRepository)(nil)

// SessionRepository stores session values of one namespace in session_values.
type SessionRepository struct {
	db        *Connection
	namespace string
}

func NewSessionRepository(db *Connection, namespace string) *SessionRepository {
	return &SessionRepository{db: db, namespace: namespace}
}

func (r *SessionRepository) Get(ctx context.Context, key string) (string, bool, error) {
	const query = `
        SELECT value FROM session_values WHERE namespace = $1 AND key = $2
    `
	var value string
	err := r.db.QueryRow(ctx, query, r.namespace, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get session value: %w", err)
	}
	return value, true, nil
}

func (r *SessionRepository) Set(ctx context.Context, key, value string) error {
	const query = `
        INSERT INTO session_values (namespace, key, value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `
	if _, err := r.db.Exec(ctx, query, r.namespace, key, value); err != nil {
		return fmt.Errorf("failed to set session value: %w", err)
	}
	return nil
}

func (r *SessionRepository) SetMany(ctx context.Context, values map[string]string) error {
	if len(values) == 0 {
		return nil
	}
	const query = `
        INSERT INTO session_values (namespace, key, value, updated_at)
        VALUES ($1, $2, $3, NOW())
        ON CONFLICT (namespace, key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
    `
	err := pgx.BeginFunc(ctx, r.db, func(tx pgx.Tx) error {
		// Sorted keys keep row lock order stable across concurrent writers.
		batch := &pgx.Batch{}
		for _, k := range slices.Sorted(maps.Keys(values)) {
			batch.Queue(query, r.namespace, k, values[k])
		}
		return tx.SendBatch(ctx, batch).Close()
	})
	if err != nil {
		return fmt.Errorf("failed to set session values: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, keys ...string) error {
	if len(keys) == 0 {
		return nil
	}
	const query = `
        DELETE FROM session_values WHERE namespace = $1 AND key = ANY($2)
    `
	if _, err := r.db.Exec(ctx, query, r.namespace, keys); err != nil {
		return fmt.Errorf("failed to clear session values: %w", err)
	}
	return nil
}
