package storage

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

const createTableQuery = `
CREATE TABLE IF NOT EXISTS browser_storage (
    scope      TEXT        NOT NULL,
    key        TEXT        NOT NULL,
    value      TEXT        NOT NULL,
    updated_at TIMESTAMPTZ NOT NULL DEFAULT now(),
    PRIMARY KEY (scope, key)
)`

// PostgresStore хранит local-значения в таблице browser_storage
type PostgresStore struct {
	db    *pgxpool.Pool
	scope string
}

// NewPostgresStore создаёт хранилище и таблицу при необходимости
func NewPostgresStore(ctx context.Context, db *pgxpool.Pool, scope string) (*PostgresStore, error) {
	const op = "storage.NewPostgresStore"

	if _, err := db.Exec(ctx, createTableQuery); err != nil {
		return nil, fmt.Errorf("%s: failed to create table: %w", op, err)
	}
	return &PostgresStore{db: db, scope: scope}, nil
}

func (s *PostgresStore) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := s.db.QueryRow(ctx, "SELECT value FROM browser_storage WHERE scope=$1 AND key=$2", s.scope, key).
		Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *PostgresStore) Set(ctx context.Context, key, value string) error {
	_, err := s.db.Exec(ctx, `
        INSERT INTO browser_storage (scope, key, value, updated_at)
        VALUES ($1, $2, $3, now())
        ON CONFLICT (scope, key) DO UPDATE SET value = EXCLUDED.value, updated_at = now()`,
		s.scope, key, value)
	if err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *PostgresStore) Remove(ctx context.Context, key string) error {
	_, err := s.db.Exec(ctx, "DELETE FROM browser_storage WHERE scope=$1 AND key=$2", s.scope, key)
	if err != nil {
		return fmt.Errorf("failed to remove %s: %w", key, err)
	}
	return nil
}
