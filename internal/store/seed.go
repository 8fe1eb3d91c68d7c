package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// DemoPassword is the password of every seeded demo account
const DemoPassword = "password123"

var demoNamespace = uuid.MustParse("5d0a4d54-3d7b-4f55-9a4e-6f1f2c1b8e10")

// DemoUserID returns the stable ID of the demo account with the given email
func DemoUserID(email string) uuid.UUID {
	return uuid.NewSHA1(demoNamespace, []byte(email))
}

// DemoUsers returns the demo roster with passwordHash as every account's secret
func DemoUsers(passwordHash string, now time.Time) []domain.User {
	demo := func(name, email, location string, availability domain.Availability, rating float64, reviews int) domain.User {
		return domain.User{
			ID:                DemoUserID(email),
			Email:             email,
			PasswordHash:      passwordHash,
			Name:              name,
			Location:          location,
			SkillsOffered:     []string{"Java Script", "Python"},
			SkillsWanted:      []string{"React", "Graphic Design"},
			Availability:      availability,
			ProfileVisibility: domain.VisibilityPublic,
			Rating:            rating,
			ReviewCount:       reviews,
			CreatedAt:         now,
			UpdatedAt:         now,
		}
	}

	return []domain.User{
		demo("Marc Demo", "marc@demo.com", "San Francisco, CA", domain.AvailabilityWeekends, 3.4, 12),
		demo("Michell", "michell@demo.com", "New York, NY", domain.AvailabilityEvenings, 2.5, 8),
		demo("Joe Wills", "joe@demo.com", "Austin, TX", domain.AvailabilityWeekends, 4.0, 25),
	}
}

// DemoRequests returns the demo swap requests between the demo users
func DemoRequests(now time.Time) []domain.SwapRequest {
	marc := DemoUserID("marc@demo.com")
	michell := DemoUserID("michell@demo.com")
	joe := DemoUserID("joe@demo.com")

	return []domain.SwapRequest{
		{
			ID:           uuid.NewSHA1(demoNamespace, []byte("request-1")),
			FromUserID:   marc,
			ToUserID:     michell,
			SkillOffered: "Java Script",
			SkillWanted:  "React",
			Message:      "Hi! I'd love to help you with JavaScript in exchange for learning React.",
			Status:       domain.StatusPending,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
		{
			ID:           uuid.NewSHA1(demoNamespace, []byte("request-2")),
			FromUserID:   michell,
			ToUserID:     joe,
			SkillOffered: "Python",
			SkillWanted:  "Graphic Design",
			Message:      "I can teach you Python if you can help me with graphic design.",
			Status:       domain.StatusRejected,
			CreatedAt:    now,
			UpdatedAt:    now,
		},
	}
}

// Seed writes the demo roster and requests for every key that does not exist yet.
// Existing data is never overwritten, so calling Seed repeatedly is safe.
// hashPassword is only invoked when the roster actually has to be created.
func (s *Store) Seed(ctx context.Context, hashPassword func(string) (string, error)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := time.Now().UTC()

	_, hasUsers, err := s.kv.Get(ctx, s.key(keyUsers))
	if err != nil {
		return fmt.Errorf("failed to read users: %w", err)
	}
	if !hasUsers {
		hash, err := hashPassword(DemoPassword)
		if err != nil {
			return err
		}
		if err := s.putIfAbsent(ctx, keyUsers, toRecords(DemoUsers(hash, now))); err != nil {
			return err
		}
	}

	return s.putIfAbsent(ctx, keyRequests, DemoRequests(now))
}

func (s *Store) putIfAbsent(ctx context.Context, name string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	created, err := s.kv.SetIfAbsent(ctx, s.key(name), data)
	if err != nil {
		return fmt.Errorf("failed to seed %s: %w", name, err)
	}
	if created {
		log.Info().Str("key", s.key(name)).Msg("Seeded demo data")
	}
	return nil
}
