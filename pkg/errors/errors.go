package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Standard sentinel errors for common cases.
var (
	ErrNotFound      = errors.New("resource not found")
	ErrAlreadyExists = errors.New("resource already exists")
	ErrInvalidInput  = errors.New("invalid input")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrInternal      = errors.New("internal error")
)

// AppError represents a structured application error with HTTP status mapping.
// Details carries optional machine-readable context (for example the list of
// missing fields) and is serialized verbatim into the error envelope.
type AppError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details any    `json:"details,omitempty"`
	Status  int    `json:"-"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// --- Token inspection errors (401) ---

// MissingToken creates a 401 error for a request without a bearer credential.
func MissingToken() *AppError {
	return &AppError{
		Code:    "MISSING_TOKEN",
		Message: "authorization header is required",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// InvalidToken creates a 401 error for a malformed bearer credential or a
// token that cannot be decoded.
func InvalidToken(message string) *AppError {
	return &AppError{
		Code:    "INVALID_TOKEN",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// TokenExpired creates a 401 error for a token whose exp claim is in the past.
func TokenExpired() *AppError {
	return &AppError{
		Code:    "TOKEN_EXPIRED",
		Message: "token has expired",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// InvalidTokenType creates a 401 error for a token whose token_use claim is
// neither "access" nor "id".
func InvalidTokenType(use string) *AppError {
	return &AppError{
		Code:    "INVALID_TOKEN_TYPE",
		Message: fmt.Sprintf("token use %q is not accepted", use),
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// --- Provider outcome errors ---

// UserNotFound creates a 404 error.
func UserNotFound() *AppError {
	return &AppError{
		Code:    "USER_NOT_FOUND",
		Message: "user not found",
		Status:  http.StatusNotFound,
		Err:     ErrNotFound,
	}
}

// UserExists creates a 409 error for a registration against a taken email.
func UserExists() *AppError {
	return &AppError{
		Code:    "USER_EXISTS",
		Message: "an account with this email already exists",
		Status:  http.StatusConflict,
		Err:     ErrAlreadyExists,
	}
}

// InvalidPassword creates a 400 error for a password rejected by the
// provider's password policy.
func InvalidPassword(message string) *AppError {
	return &AppError{
		Code:    "INVALID_PASSWORD",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// InvalidCredentials creates a 401 error for a failed login.
func InvalidCredentials() *AppError {
	return &AppError{
		Code:    "INVALID_CREDENTIALS",
		Message: "incorrect email or password",
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// AuthenticationFailed creates a 401 error for a provider rejection that is
// not a plain credential mismatch (revoked refresh token, disabled user).
func AuthenticationFailed(message string) *AppError {
	return &AppError{
		Code:    "AUTHENTICATION_FAILED",
		Message: message,
		Status:  http.StatusUnauthorized,
		Err:     ErrUnauthorized,
	}
}

// UserNotConfirmed creates a 400 error for an account that has not completed
// email confirmation.
func UserNotConfirmed() *AppError {
	return &AppError{
		Code:    "USER_NOT_CONFIRMED",
		Message: "user account is not confirmed",
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// --- Request shape errors (400) ---

// NoUpdates creates a 400 error for a profile update with no recognized field.
func NoUpdates() *AppError {
	return &AppError{
		Code:    "NO_UPDATES",
		Message: "no valid fields to update",
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// MalformedInput creates a 400 error for a body that is not valid JSON.
func MalformedInput(message string) *AppError {
	return &AppError{
		Code:    "MALFORMED_INPUT",
		Message: message,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// MissingFields creates a 400 error enumerating every absent required field,
// not just the first one encountered.
func MissingFields(fields []string) *AppError {
	return &AppError{
		Code:    "MISSING_FIELDS",
		Message: "required fields are missing",
		Details: fields,
		Status:  http.StatusBadRequest,
		Err:     ErrInvalidInput,
	}
}

// Internal creates a 500 error. The underlying message is attached as details
// so unmapped provider failures remain diagnosable from the envelope alone.
func Internal(err error) *AppError {
	appErr := &AppError{
		Code:    "INTERNAL_ERROR",
		Message: "an internal error occurred",
		Status:  http.StatusInternalServerError,
		Err:     err,
	}
	if err != nil {
		appErr.Details = err.Error()
	}
	return appErr
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	return fmt.Errorf("%s: %w", message, err)
}

// HTTPStatus returns the HTTP status code for the given error.
func HTTPStatus(err error) int {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr.Status
	}

	switch {
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrInvalidInput):
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}
