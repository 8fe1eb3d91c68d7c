package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/google/uuid"
)

// DirectoryService answers read-only queries over the user roster
type DirectoryService struct {
	store *store.Store
}

// NewDirectoryService creates a new directory service
func NewDirectoryService(st *store.Store) *DirectoryService {
	return &DirectoryService{store: st}
}

// ListPublic returns every public profile in store order
func (s *DirectoryService) ListPublic(ctx context.Context) ([]domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	public := make([]domain.User, 0, len(users))
	for _, u := range users {
		if u.IsPublic() {
			public = append(public, u.Public())
		}
	}
	return public, nil
}

// Search narrows the public profiles by a case-insensitive substring of name,
// location or any skill, and by availability. An empty query with "all" (or
// empty) availability returns every public profile.
func (s *DirectoryService) Search(ctx context.Context, query, availability string) ([]domain.User, error) {
	users, err := s.ListPublic(ctx)
	if err != nil {
		return nil, err
	}

	query = strings.ToLower(strings.TrimSpace(query))
	availability = strings.TrimSpace(availability)

	out := users[:0]
	for _, u := range users {
		if query != "" && !matchesQuery(&u, query) {
			continue
		}
		if availability != "" && availability != domain.AvailabilityAll && string(u.Availability) != availability {
			continue
		}
		out = append(out, u)
	}
	return out, nil
}

// GetByID returns any user, public or not, by ID
func (s *DirectoryService) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	for _, u := range users {
		if u.ID == id {
			public := u.Public()
			return &public, nil
		}
	}
	return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, id)
}

func matchesQuery(u *domain.User, lowerQuery string) bool {
	if strings.Contains(strings.ToLower(u.Name), lowerQuery) ||
		strings.Contains(strings.ToLower(u.Location), lowerQuery) {
		return true
	}
	for _, skill := range u.SkillsOffered {
		if strings.Contains(strings.ToLower(skill), lowerQuery) {
			return true
		}
	}
	for _, skill := range u.SkillsWanted {
		if strings.Contains(strings.ToLower(skill), lowerQuery) {
			return true
		}
	}
	return false
}
