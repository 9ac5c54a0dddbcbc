// Package token provides local inspection of provider-issued JWTs.
package token

import (
	"context"
	"fmt"
	"time"

	"github.com/MicahParks/keyfunc/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/GdayRui/auth-server/internal/domain"
	apperrors "github.com/GdayRui/auth-server/pkg/errors"
)

// Inspector decodes a token's payload and checks its expiry and declared
// use. By default the signature is NOT verified and the resulting claims
// are advisory only; construct with WithJWKS to verify signatures against
// the provider's published key set before any claim is trusted.
type Inspector struct {
	jwks *keyfunc.JWKS
	now  func() time.Time
}

// Option configures an Inspector.
type Option func(*Inspector)

// WithJWKS enables signature verification against the given key set.
func WithJWKS(jwks *keyfunc.JWKS) Option {
	return func(i *Inspector) {
		i.jwks = jwks
	}
}

// WithClock overrides the time source, used by tests.
func WithClock(now func() time.Time) Option {
	return func(i *Inspector) {
		i.now = now
	}
}

// NewInspector creates an Inspector.
func NewInspector(opts ...Option) *Inspector {
	i := &Inspector{now: time.Now}
	for _, opt := range opts {
		opt(i)
	}
	return i
}

// NewJWKS fetches and caches the JWKS at the given URL, refreshing it in the
// background until ctx is canceled.
func NewJWKS(ctx context.Context, url string) (*keyfunc.JWKS, error) {
	jwks, err := keyfunc.Get(url, keyfunc.Options{
		Ctx:             ctx,
		RefreshInterval: time.Hour,
	})
	if err != nil {
		return nil, fmt.Errorf("fetch JWKS from %s: %w", url, err)
	}
	return jwks, nil
}

// Inspect decodes the token and returns its claim projection. Failures map
// onto the token error taxonomy: an undecodable token is INVALID_TOKEN, a
// past exp is TOKEN_EXPIRED, and a token_use other than "access" or "id" is
// INVALID_TOKEN_TYPE.
func (i *Inspector) Inspect(tokenString string) (*domain.TokenClaims, error) {
	claims := jwt.MapClaims{}

	if i.jwks != nil {
		// Signature first, then the same claim checks as the unverified
		// path so error codes stay consistent between modes.
		if _, err := jwt.ParseWithClaims(tokenString, claims, i.jwks.Keyfunc,
			jwt.WithoutClaimsValidation()); err != nil {
			return nil, apperrors.InvalidToken("token signature verification failed")
		}
	} else if _, _, err := jwt.NewParser().ParseUnverified(tokenString, claims); err != nil {
		return nil, apperrors.InvalidToken("token could not be decoded")
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return nil, apperrors.InvalidToken("token has no usable exp claim")
	}
	if exp.Before(i.now()) {
		return nil, apperrors.TokenExpired()
	}

	use, _ := claims["token_use"].(string)
	if use != domain.TokenUseAccess && use != domain.TokenUseID {
		return nil, apperrors.InvalidTokenType(use)
	}

	subject, _ := claims.GetSubject()

	// Access tokens carry the pool username instead of an email claim; the
	// pool uses emails as usernames, so both name the same account.
	email, _ := claims["email"].(string)
	if email == "" {
		email, _ = claims["username"].(string)
	}

	projection := &domain.TokenClaims{
		Subject:   subject,
		Email:     email,
		TokenUse:  use,
		ExpiresAt: exp.Unix(),
	}
	if iat, err := claims.GetIssuedAt(); err == nil && iat != nil {
		projection.IssuedAt = iat.Unix()
	}

	return projection, nil
}
