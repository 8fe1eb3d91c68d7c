package service

import (
	"context"
	"testing"
	"time"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	marcID    = store.DemoUserID("marc@demo.com")
	michellID = store.DemoUserID("michell@demo.com")
	joeID     = store.DemoUserID("joe@demo.com")
)

func TestRequestService_AcceptFlow(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	req, err := svc.requests.Create(ctx, marcID, domain.SwapRequestCreate{
		ToUserID:     joeID,
		SkillOffered: "Python",
		SkillWanted:  "React",
		Message:      "hi",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusPending, req.Status)
	assert.NotEqual(t, uuid.Nil, req.ID)
	assert.False(t, req.CreatedAt.IsZero())

	_, err = svc.requests.UpdateStatus(ctx, joeID, req.ID, domain.StatusAccepted)
	require.NoError(t, err)

	views, err := svc.requests.ListForUserJoined(ctx, joeID, domain.RelationReceived)
	require.NoError(t, err)

	var found []domain.SwapRequestView
	for _, v := range views {
		if v.ID == req.ID {
			found = append(found, v)
		}
	}
	require.Len(t, found, 1)
	assert.Equal(t, domain.StatusAccepted, found[0].Status)
	assert.False(t, found[0].IsSent)
	require.NotNil(t, found[0].OtherUser)
	assert.Equal(t, "Marc Demo", found[0].OtherUser.Name)
	assert.Empty(t, found[0].OtherUser.PasswordHash)
}

func TestRequestService_CreateValidation(t *testing.T) {
	ctx := context.Background()

	valid := domain.SwapRequestCreate{
		ToUserID:     joeID,
		SkillOffered: "Python",
		SkillWanted:  "React",
		Message:      "hi",
	}

	tests := []struct {
		name    string
		from    uuid.UUID
		mutate  func(*domain.SwapRequestCreate)
		wantErr error
	}{
		{"blank message", marcID, func(r *domain.SwapRequestCreate) { r.Message = "   " }, domain.ErrValidation},
		{"empty message", marcID, func(r *domain.SwapRequestCreate) { r.Message = "" }, domain.ErrValidation},
		{"empty offered skill", marcID, func(r *domain.SwapRequestCreate) { r.SkillOffered = "" }, domain.ErrValidation},
		{"empty wanted skill", marcID, func(r *domain.SwapRequestCreate) { r.SkillWanted = " " }, domain.ErrValidation},
		{"self request", joeID, func(r *domain.SwapRequestCreate) {}, domain.ErrValidation},
		{"skill not offered", marcID, func(r *domain.SwapRequestCreate) { r.SkillOffered = "Cooking" }, domain.ErrValidation},
		{"skill not wanted", marcID, func(r *domain.SwapRequestCreate) { r.SkillWanted = "Cooking" }, domain.ErrValidation},
		{"unknown recipient", marcID, func(r *domain.SwapRequestCreate) { r.ToUserID = uuid.New() }, domain.ErrNotFound},
		{"unknown sender", uuid.New(), func(r *domain.SwapRequestCreate) {}, domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestServices(t)

			input := valid
			tt.mutate(&input)
			_, err := svc.requests.Create(ctx, tt.from, input)
			assert.ErrorIs(t, err, tt.wantErr)

			requests, err := svc.store.Requests(ctx)
			require.NoError(t, err)
			assert.Len(t, requests, 2)
		})
	}
}

func TestRequestService_CreateStoresProfileLabels(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	req, err := svc.requests.Create(ctx, marcID, domain.SwapRequestCreate{
		ToUserID:     joeID,
		SkillOffered: " PYTHON ",
		SkillWanted:  "graphic DESIGN",
		Message:      "  let's swap  ",
	})
	require.NoError(t, err)
	assert.Equal(t, "Python", req.SkillOffered)
	assert.Equal(t, "Graphic Design", req.SkillWanted)
	assert.Equal(t, "let's swap", req.Message)

	sender, err := svc.directory.GetByID(ctx, marcID)
	require.NoError(t, err)
	recipient, err := svc.directory.GetByID(ctx, joeID)
	require.NoError(t, err)
	assert.Contains(t, sender.SkillsOffered, req.SkillOffered)
	assert.Contains(t, recipient.SkillsWanted, req.SkillWanted)
}

func TestRequestService_UpdateStatus(t *testing.T) {
	ctx := context.Background()

	pendingID := store.DemoRequests(time.Now())[0].ID

	t.Run("not found", func(t *testing.T) {
		svc := newTestServices(t)
		_, err := svc.requests.UpdateStatus(ctx, michellID, uuid.New(), domain.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrNotFound)
	})

	t.Run("only recipient decides", func(t *testing.T) {
		svc := newTestServices(t)
		_, err := svc.requests.UpdateStatus(ctx, marcID, pendingID, domain.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrForbidden)
	})

	t.Run("back to pending rejected", func(t *testing.T) {
		svc := newTestServices(t)
		_, err := svc.requests.UpdateStatus(ctx, michellID, pendingID, domain.StatusPending)
		assert.ErrorIs(t, err, domain.ErrValidation)
	})

	t.Run("decided once", func(t *testing.T) {
		svc := newTestServices(t)

		updated, err := svc.requests.UpdateStatus(ctx, michellID, pendingID, domain.StatusRejected)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, updated.Status)

		_, err = svc.requests.UpdateStatus(ctx, michellID, pendingID, domain.StatusAccepted)
		assert.ErrorIs(t, err, domain.ErrInvalidTransition)

		requests, err := svc.store.Requests(ctx)
		require.NoError(t, err)
		assert.Equal(t, domain.StatusRejected, requests[0].Status)
	})
}

func TestRequestService_ListForUser(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	tests := []struct {
		relation domain.Relation
		user     uuid.UUID
		want     int
	}{
		{domain.RelationSent, marcID, 1},
		{domain.RelationReceived, marcID, 0},
		{domain.RelationAll, michellID, 2},
		{"", michellID, 2},
		{domain.RelationReceived, joeID, 1},
	}

	for _, tt := range tests {
		t.Run(string(tt.relation), func(t *testing.T) {
			requests, err := svc.requests.ListForUser(ctx, tt.user, tt.relation)
			require.NoError(t, err)
			assert.Len(t, requests, tt.want)
		})
	}

	_, err := svc.requests.ListForUser(ctx, marcID, "outbox")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestRequestService_ListForUserJoined_UnresolvedCounterpart(t *testing.T) {
	ctx := context.Background()
	svc := newTestServices(t)

	ghost := uuid.New()
	require.NoError(t, svc.store.UpdateRequests(ctx, func(requests []domain.SwapRequest) ([]domain.SwapRequest, error) {
		return append(requests, domain.SwapRequest{
			ID:           uuid.New(),
			FromUserID:   ghost,
			ToUserID:     marcID,
			SkillOffered: "Chess",
			SkillWanted:  "Python",
			Message:      "hello",
			Status:       domain.StatusPending,
		}), nil
	}))

	views, err := svc.requests.ListForUserJoined(ctx, marcID, domain.RelationAll)
	require.NoError(t, err)
	require.Len(t, views, 2)

	assert.True(t, views[0].IsSent)
	require.NotNil(t, views[0].OtherUser)
	assert.Equal(t, "Michell", views[0].OtherUser.Name)

	assert.False(t, views[1].IsSent)
	assert.Nil(t, views[1].OtherUser)
}
