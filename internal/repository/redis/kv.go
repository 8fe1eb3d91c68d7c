package redis

import (
	"context"
	"errors"
	"fmt"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/redis/go-redis/v9"
)

// KVStore implements domain.KVStore with plain Redis strings. Keys never expire.
type KVStore struct {
	client *Client
}

// NewKVStore creates a key-value store on top of client
func NewKVStore(client *Client) *KVStore {
	return &KVStore{client: client}
}

// Get retrieves a value; redis.Nil is reported as a miss
func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	data, err := s.client.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, false, nil
		}
		return nil, false, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return data, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.rdb.Set(ctx, key, value, 0).Err(); err != nil {
		return fmt.Errorf("failed to set %s: %w", key, err)
	}
	return nil
}

func (s *KVStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	ok, err := s.client.rdb.SetNX(ctx, key, value, 0).Result()
	if err != nil {
		return false, fmt.Errorf("failed to setnx %s: %w", key, err)
	}
	return ok, nil
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.client.rdb.Del(ctx, key).Err()
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.client.Ping(ctx)
}

func (s *KVStore) Close() error {
	return s.client.Close()
}

var _ domain.KVStore = (*KVStore)(nil)
