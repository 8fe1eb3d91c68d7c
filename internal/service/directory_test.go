package service

import (
	"context"
	"testing"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func names(users []domain.User) []string {
	out := make([]string, len(users))
	for i, u := range users {
		out[i] = u.Name
	}
	return out
}

func TestDirectoryService_ListPublic(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	private := domain.VisibilityPrivate
	_, err := svc.identity.UpdateUser(ctx, store.DemoUserID("michell@demo.com"), domain.UserUpdate{ProfileVisibility: &private})
	require.NoError(t, err)

	users, err := svc.directory.ListPublic(ctx)
	require.NoError(t, err)
	assert.Equal(t, []string{"Marc Demo", "Joe Wills"}, names(users))
	for _, u := range users {
		assert.Empty(t, u.PasswordHash)
	}
}

func TestDirectoryService_Search(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	tests := []struct {
		name         string
		query        string
		availability string
		want         []string
	}{
		{"identity", "", domain.AvailabilityAll, []string{"Marc Demo", "Michell", "Joe Wills"}},
		{"empty filter", "", "", []string{"Marc Demo", "Michell", "Joe Wills"}},
		{"skill any case", "PYTHON", "all", []string{"Marc Demo", "Michell", "Joe Wills"}},
		{"name", "joe", "all", []string{"Joe Wills"}},
		{"location", "new york", "all", []string{"Michell"}},
		{"availability", "", "weekends", []string{"Marc Demo", "Joe Wills"}},
		{"query and availability", "austin", "evenings", []string{}},
		{"no match", "cobol", "all", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users, err := svc.directory.Search(ctx, tt.query, tt.availability)
			require.NoError(t, err)
			assert.Equal(t, tt.want, names(users))
		})
	}
}

func TestDirectoryService_SearchSkipsPrivate(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	private := domain.VisibilityPrivate
	_, err := svc.identity.UpdateUser(ctx, store.DemoUserID("joe@demo.com"), domain.UserUpdate{ProfileVisibility: &private})
	require.NoError(t, err)

	users, err := svc.directory.Search(ctx, "", "weekends")
	require.NoError(t, err)
	assert.Equal(t, []string{"Marc Demo"}, names(users))
}

func TestDirectoryService_GetByID(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	user, err := svc.directory.GetByID(ctx, store.DemoUserID("joe@demo.com"))
	require.NoError(t, err)
	assert.Equal(t, "Joe Wills", user.Name)
	assert.Empty(t, user.PasswordHash)

	_, err = svc.directory.GetByID(ctx, uuid.New())
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
