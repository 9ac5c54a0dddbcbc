package cognito

import (
	"errors"

	"github.com/aws/smithy-go"

	apperrors "github.com/GdayRui/auth-server/pkg/errors"
)

// errorTable maps Cognito API error codes onto the application taxonomy.
// The table is the single place provider failures are classified; anything
// absent degrades to INTERNAL_ERROR rather than leaking a raw provider
// error or crashing.
var errorTable = map[string]func(apiErr smithy.APIError) *apperrors.AppError{
	"UserNotFoundException": func(smithy.APIError) *apperrors.AppError {
		return apperrors.UserNotFound()
	},
	"UsernameExistsException": func(smithy.APIError) *apperrors.AppError {
		return apperrors.UserExists()
	},
	"InvalidPasswordException": func(apiErr smithy.APIError) *apperrors.AppError {
		return apperrors.InvalidPassword(apiErr.ErrorMessage())
	},
	// NotAuthorizedException covers both a wrong password and a rejected or
	// revoked token; the message distinguishes them for the client.
	"NotAuthorizedException": func(apiErr smithy.APIError) *apperrors.AppError {
		if apiErr.ErrorMessage() == "Incorrect username or password." {
			return apperrors.InvalidCredentials()
		}
		return apperrors.AuthenticationFailed(apiErr.ErrorMessage())
	},
	"UserNotConfirmedException": func(smithy.APIError) *apperrors.AppError {
		return apperrors.UserNotConfirmed()
	},
	"InvalidParameterException": func(apiErr smithy.APIError) *apperrors.AppError {
		return apperrors.MalformedInput(apiErr.ErrorMessage())
	},
	"PasswordResetRequiredException": func(apiErr smithy.APIError) *apperrors.AppError {
		return apperrors.AuthenticationFailed(apiErr.ErrorMessage())
	},
	"LimitExceededException": func(apiErr smithy.APIError) *apperrors.AppError {
		return apperrors.AuthenticationFailed(apiErr.ErrorMessage())
	},
	"TooManyRequestsException": func(apiErr smithy.APIError) *apperrors.AppError {
		return apperrors.AuthenticationFailed(apiErr.ErrorMessage())
	},
}

// mapError translates a provider failure via the error table. Network
// failures and unrecognized codes surface as INTERNAL_ERROR with the
// underlying message in details.
func mapError(err error) error {
	var apiErr smithy.APIError
	if errors.As(err, &apiErr) {
		if translate, ok := errorTable[apiErr.ErrorCode()]; ok {
			return translate(apiErr)
		}
	}
	return apperrors.Internal(err)
}
