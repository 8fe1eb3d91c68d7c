package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/store"
	"github.com/google/uuid"
	"github.com/rs/zerolog/log"
)

// RequestService handles the swap request workflow
type RequestService struct {
	store     *store.Store
	directory *DirectoryService
	now       func() time.Time
}

// NewRequestService creates a new request service
func NewRequestService(st *store.Store, directory *DirectoryService) *RequestService {
	return &RequestService{
		store:     st,
		directory: directory,
		now:       time.Now,
	}
}

// Create records a new pending request from fromUserID
func (s *RequestService) Create(ctx context.Context, fromUserID uuid.UUID, input domain.SwapRequestCreate) (*domain.SwapRequest, error) {
	skillOffered := strings.TrimSpace(input.SkillOffered)
	skillWanted := strings.TrimSpace(input.SkillWanted)
	message := strings.TrimSpace(input.Message)

	if fromUserID == input.ToUserID {
		return nil, fmt.Errorf("%w: cannot send a request to yourself", domain.ErrValidation)
	}
	if skillOffered == "" || skillWanted == "" {
		return nil, fmt.Errorf("%w: both skills are required", domain.ErrValidation)
	}
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", domain.ErrValidation)
	}

	sender, err := s.directory.GetByID(ctx, fromUserID)
	if err != nil {
		return nil, err
	}
	recipient, err := s.directory.GetByID(ctx, input.ToUserID)
	if err != nil {
		return nil, err
	}
	offeredLabel, ok := sender.OfferedLabel(skillOffered)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not one of your offered skills", domain.ErrValidation, skillOffered)
	}
	wantedLabel, ok := recipient.WantedLabel(skillWanted)
	if !ok {
		return nil, fmt.Errorf("%w: %q is not one of %s's wanted skills", domain.ErrValidation, skillWanted, recipient.Name)
	}

	now := s.now().UTC()
	req := domain.SwapRequest{
		ID:           uuid.New(),
		FromUserID:   fromUserID,
		ToUserID:     input.ToUserID,
		SkillOffered: offeredLabel,
		SkillWanted:  wantedLabel,
		Message:      message,
		Status:       domain.StatusPending,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	err = s.store.UpdateRequests(ctx, func(requests []domain.SwapRequest) ([]domain.SwapRequest, error) {
		return append(requests, req), nil
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("request_id", req.ID.String()).
		Str("from", fromUserID.String()).
		Str("to", input.ToUserID.String()).
		Msg("swap request created")

	return &req, nil
}

// UpdateStatus moves a pending request to accepted or rejected. Only the
// recipient may decide, and only once.
func (s *RequestService) UpdateStatus(ctx context.Context, callerID, requestID uuid.UUID, status domain.RequestStatus) (*domain.SwapRequest, error) {
	if !status.Final() {
		return nil, fmt.Errorf("%w: status must be accepted or rejected", domain.ErrValidation)
	}

	var updated domain.SwapRequest
	err := s.store.UpdateRequests(ctx, func(requests []domain.SwapRequest) ([]domain.SwapRequest, error) {
		for i := range requests {
			req := &requests[i]
			if req.ID != requestID {
				continue
			}
			if req.ToUserID != callerID {
				return nil, fmt.Errorf("%w: only the recipient can answer a request", domain.ErrForbidden)
			}
			if req.Status != domain.StatusPending {
				return nil, fmt.Errorf("%w: request is already %s", domain.ErrInvalidTransition, req.Status)
			}
			req.Status = status
			req.UpdatedAt = s.now().UTC()
			updated = *req
			return requests, nil
		}
		return nil, fmt.Errorf("%w: request %s", domain.ErrNotFound, requestID)
	})
	if err != nil {
		return nil, err
	}

	log.Info().
		Str("request_id", requestID.String()).
		Str("status", string(status)).
		Msg("swap request status changed")

	return &updated, nil
}

// ListForUser returns the requests userID sent, received, or both
func (s *RequestService) ListForUser(ctx context.Context, userID uuid.UUID, relation domain.Relation) ([]domain.SwapRequest, error) {
	if relation == "" {
		relation = domain.RelationAll
	}
	if !relation.Valid() {
		return nil, fmt.Errorf("%w: unknown relation %q", domain.ErrValidation, relation)
	}

	requests, err := s.store.Requests(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]domain.SwapRequest, 0, len(requests))
	for i := range requests {
		if relation.Involves(&requests[i], userID) {
			out = append(out, requests[i])
		}
	}
	return out, nil
}

// ListForUserJoined is ListForUser with each request's counterpart attached
func (s *RequestService) ListForUserJoined(ctx context.Context, userID uuid.UUID, relation domain.Relation) ([]domain.SwapRequestView, error) {
	requests, err := s.ListForUser(ctx, userID, relation)
	if err != nil {
		return nil, err
	}

	users, err := s.store.Users(ctx)
	if err != nil {
		return nil, err
	}
	byID := make(map[uuid.UUID]domain.User, len(users))
	for _, u := range users {
		byID[u.ID] = u.Public()
	}

	views := make([]domain.SwapRequestView, 0, len(requests))
	for _, req := range requests {
		isSent := req.FromUserID == userID
		otherID := req.FromUserID
		if isSent {
			otherID = req.ToUserID
		}

		view := domain.SwapRequestView{SwapRequest: req, IsSent: isSent}
		if other, ok := byID[otherID]; ok {
			view.OtherUser = &other
		}
		views = append(views, view)
	}
	return views, nil
}
