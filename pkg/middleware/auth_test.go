package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/GdayRui/auth-server/pkg/errors"
)

func okValidator(t *testing.T, wantToken string) TokenValidator {
	return func(token string) (*Claims, error) {
		assert.Equal(t, wantToken, token)
		return &Claims{Subject: "user-1", Email: "a@b.com", TokenUse: "access"}, nil
	}
}

func authedHandler(t *testing.T) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		claims := ClaimsFromContext(r.Context())
		require.NotNil(t, claims)
		assert.Equal(t, "a@b.com", claims.Email)
		assert.Equal(t, "abc", TokenFromContext(r.Context()))
		w.WriteHeader(http.StatusOK)
	})
}

func errorCode(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()
	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	code, _ := body["error"].(string)
	return code
}

func TestAuth_MissingHeader(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)

	Auth(okValidator(t, "abc"))(authedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", errorCode(t, rec))
}

func TestAuth_WrongScheme(t *testing.T) {
	for _, header := range []string{"Basic abc", "bearer abc", "Bearer "} {
		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
		req.Header.Set("Authorization", header)

		Auth(okValidator(t, "abc"))(authedHandler(t)).ServeHTTP(rec, req)

		assert.Equal(t, http.StatusUnauthorized, rec.Code, "header %q", header)
		assert.Equal(t, "INVALID_TOKEN", errorCode(t, rec), "header %q", header)
	}
}

func TestAuth_ValidatorErrorSurfacesItsCode(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer expired")

	failing := func(string) (*Claims, error) { return nil, apperrors.TokenExpired() }
	Auth(failing)(authedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", errorCode(t, rec))
}

func TestAuth_ValidatorErrorDetailsSurvive(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer abc")

	failing := func(string) (*Claims, error) {
		appErr := apperrors.InvalidToken("token rejected")
		appErr.Details = "kid not found in key set"
		return nil, appErr
	}
	Auth(failing)(authedHandler(t)).ServeHTTP(rec, req)

	var body map[string]any
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&body))
	assert.Equal(t, "INVALID_TOKEN", body["error"])
	assert.Equal(t, "kid not found in key set", body["details"])
}

func TestAuth_ValidTokenInjectsClaimsAndRawToken(t *testing.T) {
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/user/profile", nil)
	req.Header.Set("Authorization", "Bearer abc")

	Auth(okValidator(t, "abc"))(authedHandler(t)).ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestClaimsFromContext_Empty(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	assert.Nil(t, ClaimsFromContext(req.Context()))
	assert.Empty(t, TokenFromContext(req.Context()))
}
