package config

import (
	"fmt"

	pkgconfig "github.com/GdayRui/auth-server/pkg/config"
)

// Config holds all configuration for the auth gateway.
type Config struct {
	Environment string `env:"ENVIRONMENT" envDefault:"development"`
	LogLevel    string `env:"LOG_LEVEL" envDefault:"info"`

	// HTTP server
	HTTPPort int `env:"HTTP_PORT" envDefault:"8080"`

	// Identity provider (Cognito user pool)
	AWSRegion  string `env:"AWS_REGION" envDefault:"us-east-1"`
	UserPoolID string `env:"COGNITO_USER_POOL_ID"`
	ClientID   string `env:"COGNITO_CLIENT_ID"`

	// Token inspection. Claims are decoded without signature verification
	// unless this is enabled, in which case the pool's JWKS is fetched and
	// signatures are checked before any claim is trusted.
	VerifySignature bool `env:"TOKEN_VERIFY_SIGNATURE" envDefault:"false"`

	// CORS
	CORSAllowedOrigins []string `env:"CORS_ALLOWED_ORIGINS" envDefault:"*" envSeparator:","`

	// Pprof debug endpoints are only reachable from these CIDRs.
	PprofAllowedCIDRs []string `env:"PPROF_ALLOWED_CIDRS" envDefault:"127.0.0.1/32" envSeparator:","`

	// Tracing (opt-in)
	TracingEnabled bool   `env:"OTEL_TRACING_ENABLED" envDefault:"false"`
	OTLPEndpoint   string `env:"OTEL_EXPORTER_OTLP_ENDPOINT" envDefault:"localhost:4318"`
}

// Load reads configuration from environment variables.
func Load() (*Config, error) {
	cfg := &Config{}
	if err := pkgconfig.Load(cfg); err != nil {
		return nil, fmt.Errorf("load auth config: %w", err)
	}
	if cfg.HTTPPort < 1 || cfg.HTTPPort > 65535 {
		return nil, fmt.Errorf("invalid HTTP port: %d", cfg.HTTPPort)
	}

	// The pool coordinates are optional only in development, where the
	// service can still serve local token inspection.
	if cfg.Environment != "development" {
		if cfg.UserPoolID == "" {
			return nil, fmt.Errorf("COGNITO_USER_POOL_ID must be set in %q mode", cfg.Environment)
		}
		if cfg.ClientID == "" {
			return nil, fmt.Errorf("COGNITO_CLIENT_ID must be set in %q mode", cfg.Environment)
		}
	}

	return cfg, nil
}

// JWKSEndpoint returns the pool's published JWKS URL.
func (c *Config) JWKSEndpoint() string {
	return fmt.Sprintf(
		"https://cognito-idp.%s.amazonaws.com/%s/.well-known/jwks.json",
		c.AWSRegion, c.UserPoolID,
	)
}
