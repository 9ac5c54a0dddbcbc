package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidateToken_IDToken(t *testing.T) {
	exp := time.Now().Add(time.Hour).Unix()
	iat := time.Now().Unix()
	idToken := signTestToken(t, jwt.MapClaims{
		"sub":       "pool-sub-1",
		"email":     "a@b.com",
		"token_use": "id",
		"exp":       exp,
		"iat":       iat,
	})

	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPost, "/token/validate",
		`{"token":"`+idToken+`"}`, nil)

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "pool-sub-1", body["sub"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "id", body["tokenType"])
	assert.Equal(t, float64(exp), body["expiresAt"])
	assert.Equal(t, float64(iat), body["issuedAt"])
}

func TestValidateToken_Garbage(t *testing.T) {
	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPost, "/token/validate",
		`{"token":"not-a-jwt"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, rec)["error"])
}

func TestValidateToken_Expired(t *testing.T) {
	expired := signTestToken(t, jwt.MapClaims{
		"sub":       "pool-sub-1",
		"token_use": "access",
		"exp":       time.Now().Add(-time.Minute).Unix(),
	})

	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPost, "/token/validate",
		`{"token":"`+expired+`"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", decodeBody(t, rec)["error"])
}

func TestValidateToken_RefreshTokenRejected(t *testing.T) {
	refresh := signTestToken(t, jwt.MapClaims{
		"sub":       "pool-sub-1",
		"token_use": "refresh",
		"exp":       time.Now().Add(time.Hour).Unix(),
	})

	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPost, "/token/validate",
		`{"token":"`+refresh+`"}`, nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN_TYPE", decodeBody(t, rec)["error"])
}

func TestValidateToken_MissingField(t *testing.T) {
	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPost, "/token/validate", `{}`, nil)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "MISSING_FIELDS", decodeBody(t, rec)["error"])
}
