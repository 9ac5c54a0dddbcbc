package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/GdayRui/auth-server/internal/service"
	"github.com/GdayRui/auth-server/pkg/health"
	"github.com/GdayRui/auth-server/pkg/middleware"
)

// NewRouter creates a chi router with all gateway routes registered.
func NewRouter(
	authService *service.AuthService,
	healthHandler *health.Handler,
	logger *slog.Logger,
	corsConfig middleware.CORSConfig,
	pprofCIDRs []string,
) http.Handler {
	r := chi.NewRouter()

	// Global middleware
	r.Use(middleware.CORS(corsConfig))
	r.Use(middleware.Recovery(logger))
	r.Use(chimw.Timeout(30 * time.Second))
	r.Use(middleware.RequestLogging(logger))
	r.Use(middleware.PrometheusMetrics("auth"))
	r.Use(middleware.Tracing("auth-server"))
	r.Use(middleware.RequestLogger(logger))

	// Health check endpoints
	r.Get("/health/live", healthHandler.LivenessHandler())
	r.Get("/health/ready", healthHandler.ReadinessHandler())
	r.Get("/metrics", func(w http.ResponseWriter, r *http.Request) {
		promhttp.Handler().ServeHTTP(w, r)
	})

	// Pprof debug endpoints with IP allowlist.
	middleware.RegisterPprof(r, pprofCIDRs, logger)

	authHandler := NewAuthHandler(authService, logger)
	tokenHandler := NewTokenHandler(authService, logger)
	userHandler := NewUserHandler(authService, logger)

	// Public auth endpoints
	r.Route("/auth", func(r chi.Router) {
		r.Group(func(r chi.Router) {
			r.Use(ContentTypeJSON)

			r.Post("/login", authHandler.Login)
			r.Post("/register", authHandler.Register)
			r.Post("/refresh", authHandler.Refresh)
		})

		// Logout ignores its input entirely; it must succeed no matter
		// what body or Content-Type the client sends.
		r.Post("/logout", authHandler.Logout)
	})

	// Local token inspection (public, no provider call)
	r.Route("/token", func(r chi.Router) {
		r.Use(ContentTypeJSON)

		r.Post("/validate", tokenHandler.Validate)
	})

	// Token validator bridging the auth middleware to the inspector.
	tokenValidator := func(token string) (*middleware.Claims, error) {
		claims, err := authService.ValidateToken(token)
		if err != nil {
			return nil, err
		}
		return &middleware.Claims{
			Subject:  claims.Subject,
			Email:    claims.Email,
			TokenUse: claims.TokenUse,
		}, nil
	}

	// Profile endpoints (bearer token required)
	r.Route("/user", func(r chi.Router) {
		r.Use(ContentTypeJSON)
		r.Use(middleware.Auth(tokenValidator))

		r.Get("/profile", userHandler.GetProfile)
		r.Put("/profile", userHandler.UpdateProfile)
		r.Delete("/profile", userHandler.DeleteProfile)
		r.Post("/change-password", authHandler.ChangePassword)
	})

	return r
}
