package encrypted

import (
	"context"
	"fmt"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/security"
)

// KVStore seals every value before it reaches the wrapped store. Keys stay in
// the clear so backends can still index them, and each value is bound to its
// key so sealed blobs cannot be swapped between keys.
type KVStore struct {
	next      domain.KVStore
	encryptor *security.Encryptor
}

// Wrap returns next with values encrypted by encryptor
func Wrap(next domain.KVStore, encryptor *security.Encryptor) *KVStore {
	return &KVStore{next: next, encryptor: encryptor}
}

func (s *KVStore) Get(ctx context.Context, key string) ([]byte, bool, error) {
	sealed, ok, err := s.next.Get(ctx, key)
	if err != nil || !ok {
		return nil, ok, err
	}
	plain, err := s.encryptor.Open(sealed, []byte(key))
	if err != nil {
		return nil, false, fmt.Errorf("failed to decrypt %s: %w", key, err)
	}
	return plain, true, nil
}

func (s *KVStore) Set(ctx context.Context, key string, value []byte) error {
	sealed, err := s.encryptor.Seal(value, []byte(key))
	if err != nil {
		return fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return s.next.Set(ctx, key, sealed)
}

func (s *KVStore) SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error) {
	sealed, err := s.encryptor.Seal(value, []byte(key))
	if err != nil {
		return false, fmt.Errorf("failed to encrypt %s: %w", key, err)
	}
	return s.next.SetIfAbsent(ctx, key, sealed)
}

func (s *KVStore) Delete(ctx context.Context, key string) error {
	return s.next.Delete(ctx, key)
}

func (s *KVStore) Ping(ctx context.Context) error {
	return s.next.Ping(ctx)
}

func (s *KVStore) Close() error {
	return s.next.Close()
}

var _ domain.KVStore = (*KVStore)(nil)
