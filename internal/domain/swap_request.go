package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// RequestStatus is the lifecycle state of a swap request
type RequestStatus string

const (
	StatusPending  RequestStatus = "pending"
	StatusAccepted RequestStatus = "accepted"
	StatusRejected RequestStatus = "rejected"
)

// StatusAll disables the status filter on the request board
const StatusAll = "all"

func (s RequestStatus) Valid() bool {
	switch s {
	case StatusPending, StatusAccepted, StatusRejected:
		return true
	}
	return false
}

// Final reports whether s is a state a pending request can move to
func (s RequestStatus) Final() bool {
	return s == StatusAccepted || s == StatusRejected
}

// SwapRequest is an offer to trade one of the sender's skills for one the recipient wants
type SwapRequest struct {
	ID           uuid.UUID     `json:"id"`
	FromUserID   uuid.UUID     `json:"from_user_id"`
	ToUserID     uuid.UUID     `json:"to_user_id"`
	SkillOffered string        `json:"skill_offered"`
	SkillWanted  string        `json:"skill_wanted"`
	Message      string        `json:"message"`
	Status       RequestStatus `json:"status"`
	CreatedAt    time.Time     `json:"created_at"`
	UpdatedAt    time.Time     `json:"updated_at"`
}

// SwapRequestCreate represents the sender-supplied part of a new request
type SwapRequestCreate struct {
	ToUserID     uuid.UUID `json:"to_user_id" validate:"required"`
	SkillOffered string    `json:"skill_offered" validate:"required,max=100"`
	SkillWanted  string    `json:"skill_wanted" validate:"required,max=100"`
	Message      string    `json:"message" validate:"required,max=2000"`
}

// SwapRequestStatusUpdate is the recipient's decision on a request
type SwapRequestStatusUpdate struct {
	Status RequestStatus `json:"status" validate:"required,oneof=accepted rejected"`
}

// Relation selects which side of a request a user is on
type Relation string

const (
	RelationSent     Relation = "sent"
	RelationReceived Relation = "received"
	RelationAll      Relation = "all"
)

func (r Relation) Valid() bool {
	switch r {
	case RelationSent, RelationReceived, RelationAll:
		return true
	}
	return false
}

// Involves reports whether req matches userID under relation r
func (r Relation) Involves(req *SwapRequest, userID uuid.UUID) bool {
	switch r {
	case RelationSent:
		return req.FromUserID == userID
	case RelationReceived:
		return req.ToUserID == userID
	default:
		return req.FromUserID == userID || req.ToUserID == userID
	}
}

// SwapRequestView is a request joined with the counterpart's profile.
// OtherUser is nil when the counterpart no longer resolves.
type SwapRequestView struct {
	SwapRequest
	OtherUser *User `json:"other_user,omitempty"`
	IsSent    bool  `json:"is_sent"`
}

// RequestFilter narrows the request board by status and free-text query
type RequestFilter struct {
	Status string
	Query  string
}

// FilterRequestViews applies f to views, preserving order. The query matches the
// counterpart's name or either skill label, ignoring case.
func FilterRequestViews(views []SwapRequestView, f RequestFilter) []SwapRequestView {
	status := strings.TrimSpace(f.Status)
	query := strings.ToLower(strings.TrimSpace(f.Query))

	out := make([]SwapRequestView, 0, len(views))
	for _, v := range views {
		if status != "" && status != StatusAll && string(v.Status) != status {
			continue
		}
		if query != "" {
			matched := strings.Contains(strings.ToLower(v.SkillOffered), query) ||
				strings.Contains(strings.ToLower(v.SkillWanted), query) ||
				(v.OtherUser != nil && strings.Contains(strings.ToLower(v.OtherUser.Name), query))
			if !matched {
				continue
			}
		}
		out = append(out, v)
	}
	return out
}
