package handler

import (
	"net/http"

	"github.com/Rrens/skill-swap/internal/api/middleware"
	"github.com/Rrens/skill-swap/internal/api/response"
	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/service"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// RequestHandler handles swap request endpoints
type RequestHandler struct {
	requests *service.RequestService
	pageSize int
}

// NewRequestHandler creates a new request handler
func NewRequestHandler(requests *service.RequestService, pageSize int) *RequestHandler {
	return &RequestHandler{requests: requests, pageSize: pageSize}
}

// Create sends a swap request from the authenticated user
func (h *RequestHandler) Create(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.SwapRequestCreate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	req, err := h.requests.Create(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, req)
}

// List returns the caller's request board, filtered and paginated
func (h *RequestHandler) List(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	q := r.URL.Query()
	views, err := h.requests.ListForUserJoined(r.Context(), userID, domain.Relation(q.Get("relation")))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	views = domain.FilterRequestViews(views, domain.RequestFilter{
		Status: q.Get("status"),
		Query:  q.Get("q"),
	})

	response.OK(w, domain.Paginate(views, pageParam(r), h.pageSize))
}

// UpdateStatus records the recipient's decision on a request
func (h *RequestHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	requestID, err := uuid.Parse(chi.URLParam(r, "requestID"))
	if err != nil {
		response.BadRequest(w, "invalid request ID")
		return
	}

	var input domain.SwapRequestStatusUpdate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	req, err := h.requests.UpdateStatus(r.Context(), userID, requestID, input.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, req)
}
