package mysql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/Rrens/skill-swap/internal/config"
	"github.com/Rrens/skill-swap/internal/domain"
	_ "github.com/go-sql-driver/mysql"
)

// KVStore implements domain.KVStore on a MySQL kv_entries table
type KVStore struct {
	db *sql.DB
}

// NewKVStore opens a connection pool and verifies it
func NewKVStore(ctx context.Context, cfg config.MySQLConfig) (*KVStore, error) {
	db, err := sql.Open("mysql", cfg.DSN())
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxConns > 0 {
		db.SetMaxOpenConns(cfg.MaxConns)
	}

	if err := db.PingContext(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &KVStore{db: db}, nil
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	var value []byte
	err := s.db.QueryRowContext(ctx, "SELECT `value` FROM kv_entries WHERE `key` = ?", key).Scan(&value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return value, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	query := "INSERT INTO kv_entries (`key`, `value`, updated_at) VALUES (?, ?, NOW()) " +
		"ON DUPLICATE KEY UPDATE `value` = VALUES(`value`), updated_at = NOW()"

	if _, err := s.db.ExecContext(ctx, query, key, value); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	res, err := s.db.ExecContext(ctx,
		"INSERT IGNORE INTO kv_entries (`key`, `value`, updated_at) VALUES (?, ?, NOW())",
		key, value,
	)
	if err != nil {
		return false, fmt.Errorf("failed to insert %s: %w", key, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("failed to read rows affected: %w", err)
	}
	return n == 1, nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	if _, err := s.db.ExecContext(ctx, "DELETE FROM kv_entries WHERE `key` = ?", key); err != nil {
		return fmt.Errorf("failed to delete %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.db.PingContext(ctx)
}

func (s *KVStore) Close() error {
	return s.db.Close()
}

var _ domain.KVStore = (*KVStore)(nil)
