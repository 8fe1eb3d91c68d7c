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

// UserHandler serves the member directory
type UserHandler struct {
	directory *service.DirectoryService
	pageSize  int
}

// NewUserHandler creates a new user handler
func NewUserHandler(directory *service.DirectoryService, pageSize int) *UserHandler {
	return &UserHandler{directory: directory, pageSize: pageSize}
}

// List handles paginated directory search
func (h *UserHandler) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	users, err := h.directory.Search(r.Context(), q.Get("q"), q.Get("availability"))
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, domain.Paginate(users, pageParam(r), h.pageSize))
}

// Get returns one profile. Private profiles are only visible to their owner.
func (h *UserHandler) Get(w http.ResponseWriter, r *http.Request) {
	userID, err := uuid.Parse(chi.URLParam(r, "userID"))
	if err != nil {
		response.BadRequest(w, "invalid user ID")
		return
	}

	user, err := h.directory.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	callerID, _ := middleware.GetUserID(r.Context())
	if !user.IsPublic() && user.ID != callerID {
		response.NotFound(w, "user not found")
		return
	}

	response.OK(w, user)
}
