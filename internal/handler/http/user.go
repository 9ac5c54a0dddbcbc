package http

import (
	"log/slog"
	"net/http"

	"github.com/GdayRui/auth-server/internal/service"
	apperrors "github.com/GdayRui/auth-server/pkg/errors"
	"github.com/GdayRui/auth-server/pkg/httputil"
	"github.com/GdayRui/auth-server/pkg/middleware"
	"github.com/GdayRui/auth-server/pkg/validator"
)

// UserHandler handles HTTP requests for the profile endpoints. The target
// user is always resolved from the bearer token's email claim; there is no
// path parameter and no way to address another account.
type UserHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewUserHandler creates a new user profile HTTP handler.
func NewUserHandler(svc *service.AuthService, logger *slog.Logger) *UserHandler {
	return &UserHandler{service: svc, logger: logger}
}

// UpdateProfileRequest is the JSON request body for a profile update. All
// fields are optional; absent fields are left unchanged.
type UpdateProfileRequest struct {
	FirstName *string `json:"firstName" validate:"omitempty,max=100"`
	LastName  *string `json:"lastName" validate:"omitempty,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
}

// claimedEmail resolves the caller's email from the claims the auth
// middleware injected. Tokens without an email identity cannot address a
// profile.
func claimedEmail(r *http.Request) (string, error) {
	claims := middleware.ClaimsFromContext(r.Context())
	if claims == nil || claims.Email == "" {
		return "", apperrors.InvalidToken("token does not identify a user")
	}
	return claims.Email, nil
}

// GetProfile handles GET /user/profile
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	email, err := claimedEmail(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	user, err := h.service.GetProfile(r.Context(), email)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, user)
}

// UpdateProfile handles PUT /user/profile
func (h *UserHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	email, err := claimedEmail(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	var req UpdateProfileRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.UpdateProfile(r.Context(), email, service.UpdateProfileInput{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
	}); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Profile updated successfully"})
}

// DeleteProfile handles DELETE /user/profile
func (h *UserHandler) DeleteProfile(w http.ResponseWriter, r *http.Request) {
	email, err := claimedEmail(r)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	if err := h.service.DeleteProfile(r.Context(), email); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, httputil.Message{Message: "Profile deleted successfully"})
}
