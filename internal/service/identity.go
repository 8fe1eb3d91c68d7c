package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// IdentityService handles registration, login, the current session and profile edits
type IdentityService struct {
	store  *store.Store
	hasher *security.PasswordHasher
	now    func() time.Time
}

// NewIdentityService creates a new identity service
func NewIdentityService(st *store.Store, hasher *security.PasswordHasher) *IdentityService {
	return &IdentityService{
		store:  st,
		hasher: hasher,
		now:    time.Now,
	}
}

// Register creates a new account and makes it the current session.
// Name and location are expected to be checked by the caller.
func (s *IdentityService) Register(ctx context.Context, input domain.UserCreate) (*domain.User, error) {
	email := domain.NormalizeEmail(input.Email)
	if email == "" || input.Password == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	availability := input.Availability
	if availability == "" {
		availability = domain.AvailabilityWeekends
	}
	if !availability.Valid() {
		return nil, fmt.Errorf("%w: unknown availability %q", domain.ErrValidation, availability)
	}

	// Hashed before taking the store lock
	hash, err := s.hasher.Hash(input.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := domain.User{
		ID:                uuid.New(),
		Email:             email,
		PasswordHash:      hash,
		Name:              strings.TrimSpace(input.Name),
		Location:          strings.TrimSpace(input.Location),
		SkillsOffered:     domain.NormalizeSkills(input.SkillsOffered),
		SkillsWanted:      domain.NormalizeSkills(input.SkillsWanted),
		Availability:      availability,
		ProfileVisibility: domain.VisibilityPublic,
		Rating:            0,
		ReviewCount:       0,
		CreatedAt:         now,
		UpdatedAt:         now,
	}

	err = s.store.UpdateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		for _, u := range users {
			if u.Email == email {
				return nil, domain.ErrDuplicateEmail
			}
		}
		return append(users, user), nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.store.SetSession(ctx, user); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", user.ID.String()).Msg("user registered")

	public := user.Public()
	return &public, nil
}

// Login checks the credentials and makes the matching user the current session
func (s *IdentityService) Login(ctx context.Context, email, password string) (*domain.User, error) {
	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}

	email = domain.NormalizeEmail(email)
	var found *domain.User
	for i := range users {
		if users[i].Email == email {
			found = &users[i]
			break
		}
	}
	if found == nil {
		return nil, domain.ErrInvalidCredentials
	}

	ok, err := s.hasher.Verify(found.PasswordHash, password)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrInvalidCredentials
	}

	if err := s.store.SetSession(ctx, *found); err != nil {
		return nil, err
	}

	log.Info().Str("user_id", found.ID.String()).Msg("user logged in")

	public := found.Public()
	return &public, nil
}

// Logout clears the current session. It is idempotent.
func (s *IdentityService) Logout(ctx context.Context) error {
	return s.store.ClearSession(ctx)
}

// LogoutUser clears the session only if it belongs to userID, so one client
// signing out never ends another member's session
func (s *IdentityService) LogoutUser(ctx context.Context, userID uuid.UUID) error {
	cleared, err := s.store.ClearSessionIf(ctx, userID)
	if err != nil {
		return err
	}
	if cleared {
		log.Info().Str("user_id", userID.String()).Msg("user logged out")
	}
	return nil
}

// Current returns the logged-in user, or nil when there is none
func (s *IdentityService) Current(ctx context.Context) (*domain.User, error) {
	return s.store.Session(ctx)
}

// UpdateProfile applies update to the current session's user
func (s *IdentityService) UpdateProfile(ctx context.Context, update domain.UserUpdate) (*domain.User, error) {
	current, err := s.store.Session(ctx)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, fmt.Errorf("%w: no active session", domain.ErrUnauthorized)
	}
	return s.UpdateUser(ctx, current.ID, update)
}

// UpdateUser applies update to the roster entry of userID. When that user is
// also the current session, the session projection is rewritten too.
func (s *IdentityService) UpdateUser(ctx context.Context, userID uuid.UUID, update domain.UserUpdate) (*domain.User, error) {
	if err := validateUpdate(update); err != nil {
		return nil, err
	}

	var updated domain.User
	err := s.store.UpdateUsers(ctx, func(users []domain.User) ([]domain.User, error) {
		for i := range users {
			if users[i].ID != userID {
				continue
			}
			update.Apply(&users[i])
			if !update.Empty() {
				users[i].UpdatedAt = s.now().UTC()
			}
			updated = users[i]
			return users, nil
		}
		return nil, fmt.Errorf("%w: user %s", domain.ErrNotFound, userID)
	})
	if err != nil {
		return nil, err
	}

	if _, err := s.store.ReplaceSessionIf(ctx, updated); err != nil {
		return nil, err
	}

	log.Debug().Str("user_id", userID.String()).Msg("profile updated")

	public := updated.Public()
	return &public, nil
}

func validateUpdate(u domain.UserUpdate) error {
	if u.Name != nil && strings.TrimSpace(*u.Name) == "" {
		return fmt.Errorf("%w: name cannot be blank", domain.ErrValidation)
	}
	if u.Location != nil && strings.TrimSpace(*u.Location) == "" {
		return fmt.Errorf("%w: location cannot be blank", domain.ErrValidation)
	}
	if u.Availability != nil && !u.Availability.Valid() {
		return fmt.Errorf("%w: unknown availability %q", domain.ErrValidation, *u.Availability)
	}
	if u.ProfileVisibility != nil && !u.ProfileVisibility.Valid() {
		return fmt.Errorf("%w: unknown visibility %q", domain.ErrValidation, *u.ProfileVisibility)
	}
	return nil
}
