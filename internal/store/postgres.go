// Package store owns the database connection pool and the startup schema
// migration.
package store

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Child rows reference their parents without ON DELETE CASCADE: cascades run
// as explicit application-level steps inside the parent's transaction.
const schemaSQL = `
CREATE TABLE IF NOT EXISTS shorted_url (
    id BIGSERIAL PRIMARY KEY,
    value VARCHAR(1000) NOT NULL UNIQUE,
    original VARCHAR(1000) NOT NULL UNIQUE,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    deleted BOOLEAN NOT NULL DEFAULT FALSE
);
CREATE INDEX IF NOT EXISTS idx_shorted_url_created_at ON shorted_url (created_at);

CREATE TABLE IF NOT EXISTS users (
    id BIGSERIAL PRIMARY KEY,
    username VARCHAR(1000) NOT NULL UNIQUE,
    password VARCHAR(1000) NOT NULL,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now()
);
CREATE INDEX IF NOT EXISTS idx_users_created_at ON users (created_at);

CREATE TABLE IF NOT EXISTS shorted_url_info (
    id BIGSERIAL PRIMARY KEY,
    created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    host VARCHAR(100) NOT NULL,
    port INTEGER NOT NULL,
    user_agent VARCHAR(1000) NOT NULL,
    url_id BIGINT NOT NULL REFERENCES shorted_url (id),
    user_id BIGINT REFERENCES users (id)
);
CREATE INDEX IF NOT EXISTS idx_shorted_url_info_url_id ON shorted_url_info (url_id);
CREATE INDEX IF NOT EXISTS idx_shorted_url_info_created_at ON shorted_url_info (created_at);

CREATE TABLE IF NOT EXISTS blacklisted_client (
    id BIGSERIAL PRIMARY KEY,
    host VARCHAR(100) NOT NULL,
    until TIMESTAMPTZ
);
CREATE INDEX IF NOT EXISTS idx_blacklisted_client_host ON blacklisted_client (host);
CREATE INDEX IF NOT EXISTS idx_blacklisted_client_until ON blacklisted_client (until);
`

// DB wraps the pool so the container can shut it down with everything else.
type DB struct {
	Pool *pgxpool.Pool
}

// Connect creates the pool and applies the schema.
func Connect(ctx context.Context, databaseURL string) (*DB, error) {
	cfg, err := pgxpool.ParseConfig(databaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database url: %w", err)
	}

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	if err := Migrate(ctx, pool); err != nil {
		pool.Close()

		return nil, err
	}

	return &DB{Pool: pool}, nil
}

// Migrate applies the inline schema. Idempotent.
func Migrate(ctx context.Context, pool *pgxpool.Pool) error {
	if _, err := pool.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("migrate schema: %w", err)
	}

	return nil
}

// Shutdown closes the pool. Implements do.Shutdownable.
func (d *DB) Shutdown() error {
	d.Pool.Close()

	return nil
}
