// Package store keeps the three persisted collections (session, users, requests)
// as JSON documents in a domain.KVStore.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/google/uuid"
)

const (
	keySession  = "session"
	keyUsers    = "users"
	keyRequests = "requests"
)

// userRecord is the persisted form of a user; unlike domain.User it keeps the hash
type userRecord struct {
	domain.User
	PasswordHash string `json:"password_hash"`
}

// Store serialises read-modify-write cycles over the key-value backend so
// concurrent callers never lose an update.
type Store struct {
	kv     domain.KVStore
	prefix string
	mu     sync.Mutex
}

// New creates a store whose keys are prefixed with prefix
func New(kv domain.KVStore, prefix string) *Store {
	return &Store{kv: kv, prefix: prefix}
}

// Ping checks the backend
func (s *Store) Ping(ctx context.Context) error {
	return s.kv.Ping(ctx)
}

// Users returns the full roster in store order, password hashes included
func (s *Store) Users(ctx context.Context) ([]domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadUsers(ctx)
}

// UpdateUsers loads the roster, applies fn and writes the result back.
// Nothing is written when fn returns an error.
func (s *Store) UpdateUsers(ctx context.Context, fn func([]domain.User) ([]domain.User, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	users, err := s.loadUsers(ctx)
	if err != nil {
		return err
	}
	users, err = fn(users)
	if err != nil {
		return err
	}
	return s.saveUsers(ctx, users)
}

// Requests returns every swap request in creation order
func (s *Store) Requests(ctx context.Context) ([]domain.SwapRequest, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadRequests(ctx)
}

// UpdateRequests loads all requests, applies fn and writes the result back.
// Nothing is written when fn returns an error.
func (s *Store) UpdateRequests(ctx context.Context, fn func([]domain.SwapRequest) ([]domain.SwapRequest, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	requests, err := s.loadRequests(ctx)
	if err != nil {
		return err
	}
	requests, err = fn(requests)
	if err != nil {
		return err
	}
	return s.putJSON(ctx, keyRequests, requests)
}

// Session returns the current identity, or nil when logged out
func (s *Store) Session(ctx context.Context) (*domain.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var user domain.User
	ok, err := s.getJSON(ctx, keySession, &user)
	if err != nil || !ok {
		return nil, err
	}
	return &user, nil
}

// SetSession stores user as the current identity. The credential is never persisted here.
func (s *Store) SetSession(ctx context.Context, user domain.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.putJSON(ctx, keySession, user.Public())
}

// ReplaceSessionIf rewrites the session with user only while user is the
// current identity, and reports whether it did
func (s *Store) ReplaceSessionIf(ctx context.Context, user domain.User) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current domain.User
	ok, err := s.getJSON(ctx, keySession, &current)
	if err != nil || !ok || current.ID != user.ID {
		return false, err
	}
	return true, s.putJSON(ctx, keySession, user.Public())
}

// ClearSession removes the current identity; clearing an empty session is a no-op
func (s *Store) ClearSession(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Delete(ctx, s.key(keySession)); err != nil {
		return fmt.Errorf("failed to clear session: %w", err)
	}
	return nil
}

// ClearSessionIf removes the session only while userID is the current identity
func (s *Store) ClearSessionIf(ctx context.Context, userID uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var current domain.User
	ok, err := s.getJSON(ctx, keySession, &current)
	if err != nil || !ok || current.ID != userID {
		return false, err
	}
	if err := s.kv.Delete(ctx, s.key(keySession)); err != nil {
		return false, fmt.Errorf("failed to clear session: %w", err)
	}
	return true, nil
}

func (s *Store) loadUsers(ctx context.Context) ([]domain.User, error) {
	var records []userRecord
	if _, err := s.getJSON(ctx, keyUsers, &records); err != nil {
		return nil, err
	}
	users := make([]domain.User, len(records))
	for i, r := range records {
		users[i] = r.User
		users[i].PasswordHash = r.PasswordHash
	}
	return users, nil
}

func (s *Store) saveUsers(ctx context.Context, users []domain.User) error {
	return s.putJSON(ctx, keyUsers, toRecords(users))
}

func (s *Store) loadRequests(ctx context.Context) ([]domain.SwapRequest, error) {
	var requests []domain.SwapRequest
	if _, err := s.getJSON(ctx, keyRequests, &requests); err != nil {
		return nil, err
	}
	return requests, nil
}

func (s *Store) key(name string) string {
	return s.prefix + name
}

func (s *Store) getJSON(ctx context.Context, name string, v any) (bool, error) {
	data, ok, err := s.kv.Get(ctx, s.key(name))
	if err != nil {
		return false, fmt.Errorf("failed to read %s: %w", name, err)
	}
	if !ok {
		return false, nil
	}
	if err := json.Unmarshal(data, v); err != nil {
		return false, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return true, nil
}

func (s *Store) putJSON(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, s.key(name), data); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	return nil
}

func toRecords(users []domain.User) []userRecord {
	records := make([]userRecord, len(users))
	for i, u := range users {
		records[i] = userRecord{User: u, PasswordHash: u.PasswordHash}
	}
	return records
}
