package http

import (
	"log/slog"
	"net/http"

	"github.com/GdayRui/auth-server/internal/service"
	"github.com/GdayRui/auth-server/pkg/httputil"
	"github.com/GdayRui/auth-server/pkg/validator"
)

// TokenHandler handles HTTP requests for local token inspection.
type TokenHandler struct {
	service *service.AuthService
	logger  *slog.Logger
}

// NewTokenHandler creates a new token HTTP handler.
func NewTokenHandler(svc *service.AuthService, logger *slog.Logger) *TokenHandler {
	return &TokenHandler{service: svc, logger: logger}
}

// ValidateTokenRequest is the JSON request body for token validation.
type ValidateTokenRequest struct {
	Token string `json:"token" validate:"required"`
}

// Validate handles POST /token/validate. The token is inspected locally;
// no provider call is made.
func (h *TokenHandler) Validate(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20) // 1MB limit

	var req ValidateTokenRequest
	if err := validator.DecodeAndValidate(r, &req); err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	claims, err := h.service.ValidateToken(req.Token)
	if err != nil {
		httputil.WriteError(w, r, err, h.logger)
		return
	}

	httputil.WriteJSON(w, http.StatusOK, claims)
}
