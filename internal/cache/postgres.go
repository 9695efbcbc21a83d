package cache

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresStore implements Store on a PostgreSQL table.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// ConnectPostgres establishes a connection pool and verifies it.
func ConnectPostgres(ctx context.Context, databaseURL string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, &StoreError{Op: "connect", Cause: err}
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, &StoreError{Op: "ping", Cause: err}
	}

	return &PostgresStore{pool: pool}, nil
}

// NewPostgresStore wraps an existing pool.
func NewPostgresStore(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the cache table if it does not exist.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx,
		`CREATE TABLE IF NOT EXISTS analysis_cache (
			key        TEXT PRIMARY KEY,
			value      BYTEA NOT NULL,
			stored_at  TIMESTAMPTZ NOT NULL DEFAULT NOW(),
			expires_at TIMESTAMPTZ NOT NULL
		)`)
	if err != nil {
		return &StoreError{Op: "ensure schema", Cause: err}
	}
	return nil
}

// Get returns the unexpired value for key, with its stored-at time and the
// TTL it was stored with.
func (s *PostgresStore) Get(ctx context.Context, key string) (*StoredValue, bool, error) {
	var value []byte
	var storedAt, expiresAt time.Time

	err := s.pool.QueryRow(ctx,
		`SELECT value, stored_at, expires_at
		 FROM analysis_cache
		 WHERE key = $1 AND expires_at > NOW()`,
		key,
	).Scan(&value, &storedAt, &expiresAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, &StoreError{Op: "get", Cause: err}
	}

	return &StoredValue{
		Data:     value,
		StoredAt: storedAt,
		TTL:      expiresAt.Sub(storedAt),
	}, true, nil
}

// Set upserts a value with the given TTL. Last writer wins.
func (s *PostgresStore) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, err := s.pool.Exec(ctx,
		`INSERT INTO analysis_cache (key, value, stored_at, expires_at)
		 VALUES ($1, $2, NOW(), NOW() + $3)
		 ON CONFLICT (key) DO UPDATE SET value = $2, stored_at = NOW(), expires_at = NOW() + $3`,
		key, value, ttl,
	)
	if err != nil {
		return &StoreError{Op: "set", Cause: err}
	}
	return nil
}

// Delete removes a key.
func (s *PostgresStore) Delete(ctx context.Context, key string) error {
	_, err := s.pool.Exec(ctx, `DELETE FROM analysis_cache WHERE key = $1`, key)
	if err != nil {
		return &StoreError{Op: "delete", Cause: err}
	}
	return nil
}

// Close closes the connection pool.
func (s *PostgresStore) Close() {
	if s.pool != nil {
		s.pool.Close()
	}
}
