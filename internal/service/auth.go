package service

import (
	"context"
	"log/slog"

	"github.com/GdayRui/auth-server/internal/domain"
	"github.com/GdayRui/auth-server/internal/provider"
	"github.com/GdayRui/auth-server/internal/token"
	apperrors "github.com/GdayRui/auth-server/pkg/errors"
)

// AuthService implements the gateway's operations. Each method performs at
// most one provider call; nothing is cached, retried, or persisted, so every
// invocation is independent and stateless.
type AuthService struct {
	identity  provider.Identity
	inspector *token.Inspector
	logger    *slog.Logger
}

// NewAuthService creates a new auth service.
func NewAuthService(identity provider.Identity, inspector *token.Inspector, logger *slog.Logger) *AuthService {
	return &AuthService{
		identity:  identity,
		inspector: inspector,
		logger:    logger,
	}
}

// --- Input types ---

// LoginInput holds the parameters for a password login.
type LoginInput struct {
	Email    string
	Password string
}

// RegisterInput holds the parameters for registering a new user.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// UpdateProfileInput holds the profile fields a user may change. Nil means
// "leave unchanged".
type UpdateProfileInput struct {
	FirstName *string
	LastName  *string
	Email     *string
}

// --- Operations ---

// Login authenticates the user against the provider and returns its token
// bundle unchanged.
func (s *AuthService) Login(ctx context.Context, input LoginInput) (*domain.AuthResult, error) {
	result, err := s.identity.Authenticate(ctx, input.Email, input.Password)
	if err != nil {
		return nil, err
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.String("email", input.Email),
	)

	return result, nil
}

// Register creates the user at the provider. Credential storage, password
// policy, and confirmation flow all belong to the provider.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) error {
	if err := s.identity.SignUp(ctx, provider.SignUpInput{
		Email:     input.Email,
		Password:  input.Password,
		FirstName: input.FirstName,
		LastName:  input.LastName,
	}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.String("email", input.Email),
	)

	return nil
}

// Refresh exchanges a refresh token for a new partial token bundle.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	return s.identity.Refresh(ctx, refreshToken)
}

// Logout is deliberately a no-op: tokens are invalidated by the client
// discarding its copy, so there is no provider call and no failure mode.
func (s *AuthService) Logout(ctx context.Context) {
	s.logger.DebugContext(ctx, "logout requested")
}

// ValidateToken inspects the token locally and returns its claim projection.
func (s *AuthService) ValidateToken(tokenString string) (*domain.TokenClaims, error) {
	return s.inspector.Inspect(tokenString)
}

// GetProfile projects the provider's view of the user identified by email.
func (s *AuthService) GetProfile(ctx context.Context, email string) (*domain.User, error) {
	return s.identity.GetUser(ctx, email)
}

// UpdateProfile applies the non-nil fields. A request with no recognized
// field fails with NO_UPDATES before any provider call is made.
func (s *AuthService) UpdateProfile(ctx context.Context, email string, input UpdateProfileInput) error {
	if input.FirstName == nil && input.LastName == nil && input.Email == nil {
		return apperrors.NoUpdates()
	}

	if err := s.identity.UpdateAttributes(ctx, email, provider.AttributeUpdates{
		FirstName: input.FirstName,
		LastName:  input.LastName,
		Email:     input.Email,
	}); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user profile updated",
		slog.String("email", email),
	)

	return nil
}

// DeleteProfile removes the user from the provider's store.
func (s *AuthService) DeleteProfile(ctx context.Context, email string) error {
	if err := s.identity.DeleteUser(ctx, email); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.String("email", email),
	)

	return nil
}

// ChangePassword forwards the access token with both passwords; the
// provider verifies the old one.
func (s *AuthService) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	if err := s.identity.ChangePassword(ctx, accessToken, oldPassword, newPassword); err != nil {
		return err
	}

	s.logger.InfoContext(ctx, "password changed")

	return nil
}
