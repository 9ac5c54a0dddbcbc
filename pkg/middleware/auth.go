package middleware

import (
	"context"
	"errors"
	"net/http"

	apperrors "github.com/GdayRui/auth-server/pkg/errors"
	"github.com/GdayRui/auth-server/pkg/httputil"
)

type contextKeyType string

const (
	claimsKey contextKeyType = "claims"
	tokenKey  contextKeyType = "token"
)

// Claims is the projection of the bearer token's payload injected into the
// request context by the Auth middleware.
type Claims struct {
	Subject  string
	Email    string
	TokenUse string
}

// TokenValidator inspects a bearer credential and returns its claims.
// This allows the service to inject its own inspection logic.
type TokenValidator func(token string) (*Claims, error)

// Auth middleware extracts the bearer credential, runs the validator, and
// injects both the claims and the raw token into context. The raw token is
// kept because some provider operations (password change) consume it.
//
// A missing Authorization header fails with MISSING_TOKEN and a header
// without the literal "Bearer " prefix with INVALID_TOKEN; validator
// failures surface with their own code. All failures are 401 envelopes.
func Auth(validate TokenValidator) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString, err := httputil.BearerToken(r)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			claims, err := validate(tokenString)
			if err != nil {
				writeAuthError(w, err)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = context.WithValue(ctx, tokenKey, tokenString)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ClaimsFromContext extracts the token claims from the request context.
func ClaimsFromContext(ctx context.Context) *Claims {
	if claims, ok := ctx.Value(claimsKey).(*Claims); ok {
		return claims
	}
	return nil
}

// TokenFromContext extracts the raw bearer token from the request context.
func TokenFromContext(ctx context.Context) string {
	if token, ok := ctx.Value(tokenKey).(string); ok {
		return token
	}
	return ""
}

func writeAuthError(w http.ResponseWriter, err error) {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		appErr = apperrors.InvalidToken("invalid or expired token")
	}
	httputil.WriteJSON(w, appErr.Status, httputil.ErrorBody{
		Error:   appErr.Code,
		Message: appErr.Message,
		Details: appErr.Details,
	})
}
