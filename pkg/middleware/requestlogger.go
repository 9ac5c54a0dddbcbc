package middleware

import (
	"log/slog"
	"net/http"

	"github.com/GdayRui/auth-server/pkg/logger"
)

// userIDFrom resolves the acting user for log enrichment. Verified claims
// win; the X-User-ID header is a fallback for unauthenticated callers that
// still want their requests attributable.
func userIDFrom(r *http.Request) string {
	if claims := ClaimsFromContext(r.Context()); claims != nil && claims.Subject != "" {
		return claims.Subject
	}
	return r.Header.Get("X-User-ID")
}

// RequestLogger stores a request-scoped logger in context, enriched with
// correlation_id, user_id, trace_id, and span_id where available. Handlers
// retrieve it with logger.FromContext.
//
// Mount after RequestLogging and Tracing so both the correlation ID and the
// span context are already set.
func RequestLogger(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			if userID := userIDFrom(r); userID != "" {
				ctx = logger.WithUserID(ctx, userID)
			}
			ctx = logger.NewContext(ctx, logger.WithContext(ctx, base))
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
