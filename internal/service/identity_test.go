package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newUser(email string) domain.UserCreate {
	return domain.UserCreate{
		Email:         email,
		Password:      "secret123",
		Name:          "Ada",
		Location:      "London",
		SkillsOffered: []string{" Go ", "Go", ""},
		SkillsWanted:  []string{"Piano"},
	}
}

func TestIdentityService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		svc := newTestServices(t)

		user, err := svc.identity.Register(ctx, newUser("Ada@Example.com "))
		require.NoError(t, err)

		assert.Equal(t, "ada@example.com", user.Email)
		assert.Empty(t, user.PasswordHash)
		assert.Equal(t, domain.VisibilityPublic, user.ProfileVisibility)
		assert.Equal(t, domain.AvailabilityWeekends, user.Availability)
		assert.Equal(t, []string{"Go"}, user.SkillsOffered)
		assert.Zero(t, user.Rating)
		assert.Zero(t, user.ReviewCount)

		current, err := svc.identity.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, user.ID, current.ID)
		assert.Empty(t, current.PasswordHash)

		users, err := svc.store.Users(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 4)
		assert.NotEmpty(t, users[3].PasswordHash)
	})

	t.Run("duplicate email", func(t *testing.T) {
		svc := newTestServices(t)

		_, err := svc.identity.Register(ctx, newUser("ada@example.com"))
		require.NoError(t, err)

		_, err = svc.identity.Register(ctx, newUser("ADA@example.com"))
		assert.ErrorIs(t, err, domain.ErrDuplicateEmail)

		users, err := svc.store.Users(ctx)
		require.NoError(t, err)
		assert.Len(t, users, 4)
	})

	t.Run("missing credentials", func(t *testing.T) {
		svc := newTestServices(t)

		input := newUser("  ")
		_, err := svc.identity.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("unknown availability", func(t *testing.T) {
		svc := newTestServices(t)

		input := newUser("ada@example.com")
		input.Availability = "mornings"
		_, err := svc.identity.Register(ctx, input)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestIdentityService_Login(t *testing.T) {
	ctx := context.Background()

	t.Run("demo account", func(t *testing.T) {
		svc := newTestServices(t)

		user, err := svc.identity.Login(ctx, "marc@demo.com", store.DemoPassword)
		require.NoError(t, err)
		assert.Equal(t, "Marc Demo", user.Name)
		assert.Empty(t, user.PasswordHash)

		current, err := svc.identity.Current(ctx)
		require.NoError(t, err)
		require.NotNil(t, current)
		assert.Equal(t, store.DemoUserID("marc@demo.com"), current.ID)
		assert.Empty(t, current.PasswordHash)
	})

	t.Run("wrong password", func(t *testing.T) {
		svc := newTestServices(t)

		_, err := svc.identity.Login(ctx, "marc@demo.com", "nope")
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

		current, err := svc.identity.Current(ctx)
		require.NoError(t, err)
		assert.Nil(t, current)
	})

	t.Run("unknown email", func(t *testing.T) {
		svc := newTestServices(t)

		_, err := svc.identity.Login(ctx, "nobody@demo.com", store.DemoPassword)
		assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
	})
}

func TestIdentityService_Logout(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	_, err := svc.identity.Login(ctx, "joe@demo.com", store.DemoPassword)
	require.NoError(t, err)

	require.NoError(t, svc.identity.Logout(ctx))
	require.NoError(t, svc.identity.Logout(ctx))

	current, err := svc.identity.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)
}

func TestIdentityService_LogoutUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	_, err := svc.identity.Login(ctx, "joe@demo.com", store.DemoPassword)
	require.NoError(t, err)

	require.NoError(t, svc.identity.LogoutUser(ctx, marcID))
	current, err := svc.identity.Current(ctx)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, joeID, current.ID)

	require.NoError(t, svc.identity.LogoutUser(ctx, joeID))
	current, err = svc.identity.Current(ctx)
	require.NoError(t, err)
	assert.Nil(t, current)

	require.NoError(t, svc.identity.LogoutUser(ctx, joeID))
}

func TestIdentityService_UpdateProfile(t *testing.T) {
	ctx := context.Background()

	t.Run("requires session", func(t *testing.T) {
		svc := newTestServices(t)

		name := "Marcus"
		_, err := svc.identity.UpdateProfile(ctx, domain.UserUpdate{Name: &name})
		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("partial update", func(t *testing.T) {
		svc := newTestServices(t)

		_, err := svc.identity.Login(ctx, "marc@demo.com", store.DemoPassword)
		require.NoError(t, err)

		private := domain.VisibilityPrivate
		skills := []string{"Rust", " Rust"}
		updated, err := svc.identity.UpdateProfile(ctx, domain.UserUpdate{
			SkillsOffered:     &skills,
			ProfileVisibility: &private,
		})
		require.NoError(t, err)

		assert.Equal(t, "Marc Demo", updated.Name)
		assert.Equal(t, "San Francisco, CA", updated.Location)
		assert.Equal(t, []string{"Rust"}, updated.SkillsOffered)
		assert.Equal(t, []string{"React", "Graphic Design"}, updated.SkillsWanted)
		assert.Equal(t, domain.VisibilityPrivate, updated.ProfileVisibility)

		current, err := svc.identity.Current(ctx)
		require.NoError(t, err)
		assert.Equal(t, updated.SkillsOffered, current.SkillsOffered)

		roster, err := svc.directory.GetByID(ctx, updated.ID)
		require.NoError(t, err)
		assert.Equal(t, domain.VisibilityPrivate, roster.ProfileVisibility)

		// the credential survives a profile edit
		_, err = svc.identity.Login(ctx, "marc@demo.com", store.DemoPassword)
		assert.NoError(t, err)
	})

	t.Run("blank name rejected", func(t *testing.T) {
		svc := newTestServices(t)

		_, err := svc.identity.Login(ctx, "marc@demo.com", store.DemoPassword)
		require.NoError(t, err)

		blank := "   "
		_, err = svc.identity.UpdateProfile(ctx, domain.UserUpdate{Name: &blank})
		assert.ErrorIs(t, err, domain.ErrValidation)
	})
}

func TestIdentityService_UpdateUser_LeavesOtherSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	_, err := svc.identity.Login(ctx, "joe@demo.com", store.DemoPassword)
	require.NoError(t, err)

	location := "Boston, MA"
	_, err = svc.identity.UpdateUser(ctx, store.DemoUserID("michell@demo.com"), domain.UserUpdate{Location: &location})
	require.NoError(t, err)

	current, err := svc.identity.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Joe Wills", current.Name)
	assert.Equal(t, "Austin, TX", current.Location)
}

func TestIdentityService_UpdateUser_ConcurrentLoginKeepsNewSession(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)
	marc := store.DemoUserID("marc@demo.com")

	_, err := svc.identity.Login(ctx, "marc@demo.com", store.DemoPassword)
	require.NoError(t, err)

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			location := fmt.Sprintf("City %d", i)
			_, err := svc.identity.UpdateUser(ctx, marc, domain.UserUpdate{Location: &location})
			assert.NoError(t, err)
		}(i)
	}
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, err := svc.identity.Login(ctx, "joe@demo.com", store.DemoPassword)
		assert.NoError(t, err)
	}()
	wg.Wait()

	current, err := svc.identity.Current(ctx)
	require.NoError(t, err)
	assert.Equal(t, "Joe Wills", current.Name)
}

func TestIdentityService_StoreFailure(t *testing.T) {
	ctx := context.Background()
	kv := new(MockKVStore)
	kv.On("Get", mock.Anything, "test:users").Return(nil, false, errors.New("connection refused"))

	svc := NewIdentityService(store.New(kv, "test:"), security.NewPasswordHasher(bcrypt.MinCost))

	_, err := svc.Login(ctx, "marc@demo.com", store.DemoPassword)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection refused")
	assert.NotErrorIs(t, err, domain.ErrInvalidCredentials)

	kv.AssertExpectations(t)
}
