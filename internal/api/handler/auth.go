package handler

import (
	"net/http"

	"github.com/Rrens/skill-swap/internal/api/middleware"
	"github.com/Rrens/skill-swap/internal/api/response"
	"github.com/Rrens/skill-swap/internal/domain"
	"github.com/Rrens/skill-swap/internal/security"
	"github.com/Rrens/skill-swap/internal/service"
)

// AuthHandler handles authentication and profile endpoints
type AuthHandler struct {
	identity   *service.IdentityService
	directory  *service.DirectoryService
	jwtManager *security.JWTManager
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(identity *service.IdentityService, directory *service.DirectoryService, jwtManager *security.JWTManager) *AuthHandler {
	return &AuthHandler{
		identity:   identity,
		directory:  directory,
		jwtManager: jwtManager,
	}
}

type authResponse struct {
	User   *domain.User      `json:"user"`
	Tokens *domain.TokenPair `json:"tokens"`
}

// Register handles user registration
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var input domain.UserCreate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.identity.Register(r.Context(), input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.Created(w, authResponse{User: user, Tokens: tokens})
}

// Login handles user login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var input domain.UserLogin
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.identity.Login(r.Context(), input.Email, input.Password)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, authResponse{User: user, Tokens: tokens})
}

// Refresh handles token refresh
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var input struct {
		RefreshToken string `json:"refresh_token" validate:"required"`
	}
	if !decodeAndValidate(w, r, &input) {
		return
	}

	userID, err := h.jwtManager.ValidateRefreshToken(input.RefreshToken)
	if err != nil {
		response.Unauthorized(w, "invalid or expired refresh token")
		return
	}

	user, err := h.directory.GetByID(r.Context(), userID)
	if err != nil {
		response.Unauthorized(w, "user not found")
		return
	}

	tokens, err := h.issueTokens(user)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, tokens)
}

// Logout clears the shared persisted session (the one the CLI also uses) when it
// belongs to the caller; another member's session is left alone. Issued JWTs
// stay valid until they expire.
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}
	if err := h.identity.LogoutUser(r.Context(), userID); err != nil {
		writeServiceError(w, err)
		return
	}
	response.NoContent(w)
}

// Me returns the current authenticated user
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	user, err := h.directory.GetByID(r.Context(), userID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, user)
}

// UpdateMe applies a partial profile update to the authenticated user
func (h *AuthHandler) UpdateMe(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		response.Unauthorized(w, "unauthorized")
		return
	}

	var input domain.UserUpdate
	if !decodeAndValidate(w, r, &input) {
		return
	}

	user, err := h.identity.UpdateUser(r.Context(), userID, input)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	response.OK(w, user)
}

func (h *AuthHandler) issueTokens(user *domain.User) (*domain.TokenPair, error) {
	access, refresh, expiresIn, err := h.jwtManager.GenerateTokenPair(user.ID, user.Email)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{
		AccessToken:  access,
		RefreshToken: refresh,
		ExpiresIn:    expiresIn,
	}, nil
}
