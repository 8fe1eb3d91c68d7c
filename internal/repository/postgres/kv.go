package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// KVStore implements domain.KVStore on the kv_entries table
type KVStore struct {
	pool *pgxpool.Pool
}

// NewKVStore opens a connection pool and verifies it. The kv_entries table
// must already exist, see RunMigrations.
func NewKVStore(ctx context.Context, cfg config.DatabaseConfig) (*KVStore, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to parse database config: %w", err)
	}

	poolConfig.MaxConns = cfg.MaxConns
	poolConfig.MinConns = cfg.MinConns

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &KVStore{pool: pool}, nil
}

// Get retrieves a value by key
func (r *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	query := `SELECT value FROM kv_entries WHERE key = $1`

	var value []byte
	err := r.pool.QueryRow(ctx, query, key).Scan(&value)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}

	return value, true, nil
}

// Set creates or replaces a value
func (r *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value, updated_at = NOW()
	`

	if _, err := r.pool.Exec(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}

	return nil
}

// SetIfAbsent inserts a value only when the key is new
func (r *KVStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	query := `
		INSERT INTO kv_entries (key, value, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (key) DO NOTHING
	`

	tag, err := r.pool.Exec(ctx, query, key, value)
	if err != nil {
		return false, fmt.Errorf("failed to insert %s: %w", key, err)
	}

	return tag.RowsAffected() == 1, nil
}

// Delete removes a key
func (r *KVStore) Delete(ctx context.Context, key string) error {
	query := `DELETE FROM kv_entries WHERE key = $1`

	if _, err := r.pool.Exec(ctx, query, key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}

	return nil
}

func (r *KVStore) Ping(ctx context.Context) error {
	return r.pool.Ping(ctx)
}

func (r *KVStore) Close() error {
	r.pool.Close()
	return nil
}

var _ domain.KVStore = (*KVStore)(nil)
