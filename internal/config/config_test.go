package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// setEnvs is a helper that sets multiple env vars with automatic cleanup.
func setEnvs(t *testing.T, envs map[string]string) {
	t.Helper()
	for k, v := range envs {
		t.Setenv(k, v)
	}
}

func TestLoad_Defaults(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "development", cfg.Environment)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, "us-east-1", cfg.AWSRegion)
	assert.False(t, cfg.VerifySignature)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoad_Development_PoolCoordinatesOptional(t *testing.T) {
	// Local token inspection works without a pool, so development mode
	// does not require the Cognito coordinates.
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Empty(t, cfg.UserPoolID)
	assert.Empty(t, cfg.ClientID)
}

func TestLoad_Production_RequiresUserPoolID(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":       "production",
		"COGNITO_CLIENT_ID": "client-abc",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "COGNITO_USER_POOL_ID must be set")
}

func TestLoad_Production_RequiresClientID(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":          "production",
		"COGNITO_USER_POOL_ID": "us-east-1_Example",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "COGNITO_CLIENT_ID must be set")
}

func TestLoad_Production_AcceptsFullCoordinates(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":          "production",
		"COGNITO_USER_POOL_ID": "us-east-1_Example",
		"COGNITO_CLIENT_ID":    "client-abc",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "us-east-1_Example", cfg.UserPoolID)
	assert.Equal(t, "client-abc", cfg.ClientID)
}

func TestLoad_RejectsInvalidPort(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT": "development",
		"HTTP_PORT":   "70000",
	})

	cfg, err := Load()

	assert.Nil(t, cfg)
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "invalid HTTP port")
}

func TestLoad_CORSOriginList(t *testing.T) {
	setEnvs(t, map[string]string{
		"ENVIRONMENT":          "development",
		"CORS_ALLOWED_ORIGINS": "https://app.example.com,https://admin.example.com",
	})

	cfg, err := Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSAllowedOrigins)
}

func TestJWKSEndpoint(t *testing.T) {
	cfg := &Config{AWSRegion: "eu-west-1", UserPoolID: "eu-west-1_Pool"}

	assert.Equal(t,
		"https://cognito-idp.eu-west-1.amazonaws.com/eu-west-1_Pool/.well-known/jwks.json",
		cfg.JWKSEndpoint(),
	)
}
