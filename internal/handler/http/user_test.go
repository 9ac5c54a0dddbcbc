package http

import (
	"net/http"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/GdayRui/auth-server/internal/domain"
	"github.com/GdayRui/auth-server/internal/provider"
	apperrors "github.com/GdayRui/auth-server/pkg/errors"
)

func bearerHeader(t *testing.T, email string) map[string]string {
	t.Helper()
	return map[string]string{"Authorization": "Bearer " + accessToken(t, email)}
}

func TestGetProfile_Success(t *testing.T) {
	created := time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC)

	identity := new(mockIdentity)
	identity.On("GetUser", mock.Anything, "a@b.com").Return(&domain.User{
		ID:            "pool-sub-1",
		Email:         "a@b.com",
		FirstName:     "Ada",
		LastName:      "Lovelace",
		EmailVerified: true,
		Enabled:       true,
		Status:        "CONFIRMED",
		CreatedAt:     created,
		ModifiedAt:    created,
	}, nil)

	rec := doJSON(t, testRouter(identity), http.MethodGet, "/user/profile", "", bearerHeader(t, "a@b.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "pool-sub-1", body["id"])
	assert.Equal(t, "a@b.com", body["email"])
	assert.Equal(t, "Ada", body["firstName"])
	assert.Equal(t, true, body["emailVerified"])
	assert.Equal(t, "CONFIRMED", body["status"])
}

func TestGetProfile_MissingToken(t *testing.T) {
	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodGet, "/user/profile", "", nil)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "MISSING_TOKEN", decodeBody(t, rec)["error"])
}

func TestGetProfile_LowercaseBearerRejected(t *testing.T) {
	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodGet, "/user/profile", "",
		map[string]string{"Authorization": "bearer " + accessToken(t, "a@b.com")})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "INVALID_TOKEN", decodeBody(t, rec)["error"])
}

func TestGetProfile_ExpiredToken(t *testing.T) {
	expired := signTestToken(t, map[string]any{
		"sub":       "user-1",
		"username":  "a@b.com",
		"token_use": "access",
		"exp":       time.Now().Add(-time.Minute).Unix(),
	})

	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodGet, "/user/profile", "",
		map[string]string{"Authorization": "Bearer " + expired})

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "TOKEN_EXPIRED", decodeBody(t, rec)["error"])
}

func TestGetProfile_UserGone(t *testing.T) {
	identity := new(mockIdentity)
	identity.On("GetUser", mock.Anything, "a@b.com").Return(nil, apperrors.UserNotFound())

	rec := doJSON(t, testRouter(identity), http.MethodGet, "/user/profile", "", bearerHeader(t, "a@b.com"))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "USER_NOT_FOUND", decodeBody(t, rec)["error"])
}

func TestUpdateProfile_PartialFields(t *testing.T) {
	first := "Grace"

	identity := new(mockIdentity)
	identity.On("UpdateAttributes", mock.Anything, "a@b.com", provider.AttributeUpdates{
		FirstName: &first,
	}).Return(nil)

	rec := doJSON(t, testRouter(identity), http.MethodPut, "/user/profile",
		`{"firstName":"Grace"}`, bearerHeader(t, "a@b.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile updated successfully", decodeBody(t, rec)["message"])
	identity.AssertExpectations(t)
}

func TestUpdateProfile_EmptyBodyIsNoUpdates(t *testing.T) {
	identity := new(mockIdentity)

	rec := doJSON(t, testRouter(identity), http.MethodPut, "/user/profile",
		`{}`, bearerHeader(t, "a@b.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_UPDATES", decodeBody(t, rec)["error"])
	// The provider must never be reached when there is nothing to update.
	identity.AssertNotCalled(t, "UpdateAttributes", mock.Anything, mock.Anything, mock.Anything)
}

func TestUpdateProfile_UnknownFieldsOnlyIsNoUpdates(t *testing.T) {
	identity := new(mockIdentity)

	rec := doJSON(t, testRouter(identity), http.MethodPut, "/user/profile",
		`{"nickname":"ada"}`, bearerHeader(t, "a@b.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "NO_UPDATES", decodeBody(t, rec)["error"])
}

func TestUpdateProfile_InvalidEmail(t *testing.T) {
	rec := doJSON(t, testRouter(new(mockIdentity)), http.MethodPut, "/user/profile",
		`{"email":"not-an-email"}`, bearerHeader(t, "a@b.com"))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "VALIDATION_ERROR", decodeBody(t, rec)["error"])
}

func TestDeleteProfile_Success(t *testing.T) {
	identity := new(mockIdentity)
	identity.On("DeleteUser", mock.Anything, "a@b.com").Return(nil)

	rec := doJSON(t, testRouter(identity), http.MethodDelete, "/user/profile", "", bearerHeader(t, "a@b.com"))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Profile deleted successfully", decodeBody(t, rec)["message"])
	identity.AssertExpectations(t)
}
