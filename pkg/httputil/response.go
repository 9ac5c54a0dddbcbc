package httputil

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apperrors "github.com/GdayRui/auth-server/pkg/errors"
	"github.com/GdayRui/auth-server/pkg/logger"
)

// ErrorBody is the uniform error envelope returned by every handler.
type ErrorBody struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
}

// Message is the envelope for operations whose only payload is a
// human-readable confirmation.
type Message struct {
	Message string `json:"message"`
}

// WriteJSON writes a JSON response with the given status code.
// If encoding fails, the error is swallowed: headers are already sent so
// nothing meaningful can be done.
func WriteJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// WriteError maps an error to the uniform error envelope. AppErrors carry
// their own code, status, and details; anything else degrades to
// INTERNAL_ERROR with the underlying message attached as details, so no
// failure ever escapes a handler in a non-envelope shape.
//
// It prefers the request-scoped logger from context (set by the
// RequestLogger middleware) over the fallback logger.
func WriteError(w http.ResponseWriter, r *http.Request, err error, fallback *slog.Logger) {
	l := logger.FromContext(r.Context())
	if l == slog.Default() {
		l = fallback
	}

	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.Internal(err)
	}

	if appErr.Status == http.StatusInternalServerError {
		l.ErrorContext(r.Context(), "internal error",
			slog.String("error", err.Error()),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
		)
	}

	WriteJSON(w, appErr.Status, ErrorBody{
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}

// bearerPrefix is matched literally; "bearer x" or "BEARER x" is rejected.
const bearerPrefix = "Bearer "

// BearerToken extracts the bearer credential from the Authorization header.
// A missing header yields MISSING_TOKEN; a header without the literal
// "Bearer " prefix yields INVALID_TOKEN.
func BearerToken(r *http.Request) (string, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return "", apperrors.MissingToken()
	}

	token, ok := strings.CutPrefix(header, bearerPrefix)
	if !ok || token == "" {
		return "", apperrors.InvalidToken("authorization header must use the Bearer scheme")
	}

	return token, nil
}
