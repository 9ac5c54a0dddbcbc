// Package provider defines the capability boundary to the external managed
// identity service. The gateway never stores credentials or tokens itself;
// every operation here is a single remote call whose outcome fully
// determines the response.
package provider

import (
	"context"

	"github.com/GdayRui/auth-server/internal/domain"
)

// SignUpInput holds the parameters for registering a new user.
// FirstName and LastName are optional.
type SignUpInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// AttributeUpdates holds the profile fields a user may change. Nil means
// "leave unchanged"; callers are responsible for rejecting an update where
// every field is nil.
type AttributeUpdates struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// Identity is the injected identity-provider capability. Implementations
// translate provider-specific failures into the application error taxonomy
// so callers never see raw provider errors.
type Identity interface {
	// Authenticate performs a password login and returns the issued tokens.
	Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error)

	// SignUp registers a new user under the given email.
	SignUp(ctx context.Context, input SignUpInput) error

	// Refresh exchanges a refresh token for a new access/identity token
	// pair. The provider does not reissue the refresh token.
	Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error)

	// GetUser projects the provider's attribute list for the given email
	// into the fixed read view.
	GetUser(ctx context.Context, email string) (*domain.User, error)

	// UpdateAttributes applies the non-nil fields of updates to the user.
	UpdateAttributes(ctx context.Context, email string, updates AttributeUpdates) error

	// DeleteUser removes the user from the provider's store.
	DeleteUser(ctx context.Context, email string) error

	// ChangePassword verifies oldPassword and sets newPassword on behalf of
	// the holder of accessToken.
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
}
