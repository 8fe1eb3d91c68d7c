package service

import (
	"context"
	"testing"

	"github.com/Rrens/skill-swap/internal/repository/memory"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type testServices struct {
	store     *store.Store
	identity  *IdentityService
	directory *DirectoryService
	requests  *RequestService
}

// newTestServices wires every service over a seeded in-memory store
func newTestServices(t *testing.T) *testServices {
	t.Helper()

	st := store.New(memory.NewKVStore(), "test:")
	hasher := security.NewPasswordHasher(bcrypt.MinCost)
	require.NoError(t, st.Seed(context.Background(), hasher.Hash))

	directory := NewDirectoryService(st)
	return &testServices{
		store:     st,
		identity:  NewIdentityService(st, hasher),
		directory: directory,
		requests:  NewRequestService(st, directory),
	}
}
