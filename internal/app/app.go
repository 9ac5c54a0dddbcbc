package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/GdayRui/auth-server/internal/config"
	handler "github.com/GdayRui/auth-server/internal/handler/http"
	"github.com/GdayRui/auth-server/internal/provider/cognito"
	"github.com/GdayRui/auth-server/internal/service"
	"github.com/GdayRui/auth-server/internal/token"
	"github.com/GdayRui/auth-server/pkg/health"
	"github.com/GdayRui/auth-server/pkg/middleware"
	"github.com/GdayRui/auth-server/pkg/tracing"
)

// App wires together all dependencies and runs the auth gateway.
type App struct {
	cfg            *config.Config
	logger         *slog.Logger
	httpServer     *http.Server
	tracerShutdown func(context.Context) error
}

// NewApp creates a new application instance, initializing all dependencies.
func NewApp(cfg *config.Config, logger *slog.Logger) (*App, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Initialize OpenTelemetry tracing.
	tracerShutdown, err := tracing.InitTracer(ctx, tracing.Config{
		ServiceName:    "auth-server",
		ServiceVersion: "0.1.0",
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		SampleRate:     1.0,
		Enabled:        cfg.TracingEnabled,
	})
	if err != nil {
		return nil, fmt.Errorf("init tracer: %w", err)
	}

	// Identity provider client. Credentials come from the ambient AWS
	// environment (env vars, instance role); nothing is stored locally.
	identity, err := cognito.New(ctx, cfg.AWSRegion, cfg.UserPoolID, cfg.ClientID)
	if err != nil {
		return nil, fmt.Errorf("init identity provider: %w", err)
	}
	logger.Info("identity provider initialized",
		slog.String("region", cfg.AWSRegion),
		slog.String("user_pool_id", cfg.UserPoolID),
	)

	// Token inspector. Signature verification is opt-in; the JWKS refresh
	// goroutine lives for the process lifetime, so it gets its own context.
	inspectorOpts := []token.Option{}
	if cfg.VerifySignature {
		jwks, err := token.NewJWKS(context.Background(), cfg.JWKSEndpoint())
		if err != nil {
			return nil, fmt.Errorf("init JWKS: %w", err)
		}
		inspectorOpts = append(inspectorOpts, token.WithJWKS(jwks))
		logger.Info("token signature verification enabled",
			slog.String("jwks_url", cfg.JWKSEndpoint()),
		)
	}
	inspector := token.NewInspector(inspectorOpts...)

	authService := service.NewAuthService(identity, inspector, logger)

	// Health checks. The gateway holds no connections, so readiness has
	// nothing beyond liveness to verify.
	healthHandler := health.NewHandler()

	router := handler.NewRouter(authService, healthHandler, logger, middleware.CORSConfig{
		AllowedOrigins: cfg.CORSAllowedOrigins,
		Environment:    cfg.Environment,
	}, cfg.PprofAllowedCIDRs)

	httpServer := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.HTTPPort),
		Handler:           router,
		ReadTimeout:       15 * time.Second,
		WriteTimeout:      15 * time.Second,
		IdleTimeout:       60 * time.Second,
		ReadHeaderTimeout: 10 * time.Second,
	}

	return &App{
		cfg:            cfg,
		logger:         logger,
		httpServer:     httpServer,
		tracerShutdown: tracerShutdown,
	}, nil
}

// Run starts the HTTP server and blocks until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	go func() {
		a.logger.Info("starting HTTP server",
			slog.String("addr", a.httpServer.Addr),
		)
		if err := a.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- fmt.Errorf("http server: %w", err)
		}
	}()

	select {
	case <-ctx.Done():
		a.logger.Info("shutdown signal received")
	case err := <-errCh:
		return err
	}

	return a.Shutdown()
}

// Shutdown gracefully stops the application: drain in-flight HTTP requests
// first, then flush pending spans so their traces are captured.
func (a *App) Shutdown() error {
	a.logger.Info("shutting down application...")

	var errs []error

	httpCtx, httpCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer httpCancel()
	if err := a.httpServer.Shutdown(httpCtx); err != nil {
		a.logger.Error("http server shutdown error", slog.String("error", err.Error()))
		errs = append(errs, err)
	}

	if a.tracerShutdown != nil {
		tracerCtx, tracerCancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer tracerCancel()
		if err := a.tracerShutdown(tracerCtx); err != nil {
			a.logger.Error("tracer shutdown error", slog.String("error", err.Error()))
			errs = append(errs, err)
		}
	}

	a.logger.Info("application shutdown complete")
	return errors.Join(errs...)
}
