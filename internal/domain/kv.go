package domain

import "context"

// KVStore is the string-keyed blob store every collection is persisted through.
// Writes are synchronous: a Get after a successful Set observes the new value.
type KVStore interface {
	// Get returns the value for key; ok is false when the key is absent.
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	// SetIfAbsent stores value only if key does not exist yet and reports whether it did.
	SetIfAbsent(ctx context.Context, key string, value []byte) (bool, error)
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
	Close() error
}
