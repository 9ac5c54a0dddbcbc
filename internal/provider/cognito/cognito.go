// Package cognito implements the identity-provider capability against an
// AWS Cognito user pool via aws-sdk-go-v2.
package cognito

import (
	"context"
	"fmt"
	"strconv"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	cip "github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider"
	"github.com/aws/aws-sdk-go-v2/service/cognitoidentityprovider/types"

	"github.com/GdayRui/auth-server/internal/domain"
	"github.com/GdayRui/auth-server/internal/provider"
)

// API is the subset of the Cognito client used by the adapter, extracted as
// an interface to enable mock injection in tests.
type API interface {
	InitiateAuth(ctx context.Context, params *cip.InitiateAuthInput, optFns ...func(*cip.Options)) (*cip.InitiateAuthOutput, error)
	SignUp(ctx context.Context, params *cip.SignUpInput, optFns ...func(*cip.Options)) (*cip.SignUpOutput, error)
	AdminGetUser(ctx context.Context, params *cip.AdminGetUserInput, optFns ...func(*cip.Options)) (*cip.AdminGetUserOutput, error)
	AdminUpdateUserAttributes(ctx context.Context, params *cip.AdminUpdateUserAttributesInput, optFns ...func(*cip.Options)) (*cip.AdminUpdateUserAttributesOutput, error)
	AdminDeleteUser(ctx context.Context, params *cip.AdminDeleteUserInput, optFns ...func(*cip.Options)) (*cip.AdminDeleteUserOutput, error)
	ChangePassword(ctx context.Context, params *cip.ChangePasswordInput, optFns ...func(*cip.Options)) (*cip.ChangePasswordOutput, error)
}

// Provider adapts a Cognito user pool to the provider.Identity interface.
type Provider struct {
	client     API
	userPoolID string
	clientID   string
}

var _ provider.Identity = (*Provider)(nil)

// New creates a Provider backed by a regional Cognito client using the
// default AWS credential chain.
func New(ctx context.Context, region, userPoolID, clientID string) (*Provider, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx, awsconfig.WithRegion(region))
	if err != nil {
		return nil, fmt.Errorf("load AWS config: %w", err)
	}
	return NewWithClient(cip.NewFromConfig(cfg), userPoolID, clientID), nil
}

// NewWithClient creates a Provider with an explicit client, used by tests.
func NewWithClient(client API, userPoolID, clientID string) *Provider {
	return &Provider{
		client:     client,
		userPoolID: userPoolID,
		clientID:   clientID,
	}
}

// Authenticate performs a USER_PASSWORD_AUTH flow.
func (p *Provider) Authenticate(ctx context.Context, email, password string) (*domain.AuthResult, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeUserPasswordAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"USERNAME": email,
			"PASSWORD": password,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	return authResult(out.AuthenticationResult)
}

// SignUp registers a new user with the email as username. Optional name
// attributes are only sent when present.
func (p *Provider) SignUp(ctx context.Context, input provider.SignUpInput) error {
	attrs := []types.AttributeType{
		{Name: aws.String("email"), Value: aws.String(input.Email)},
	}
	if input.FirstName != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("given_name"), Value: aws.String(input.FirstName)})
	}
	if input.LastName != "" {
		attrs = append(attrs, types.AttributeType{Name: aws.String("family_name"), Value: aws.String(input.LastName)})
	}

	_, err := p.client.SignUp(ctx, &cip.SignUpInput{
		ClientId:       aws.String(p.clientID),
		Username:       aws.String(input.Email),
		Password:       aws.String(input.Password),
		UserAttributes: attrs,
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// Refresh performs a REFRESH_TOKEN_AUTH flow. The provider omits the refresh
// token from the result, so the caller receives a partial bundle.
func (p *Provider) Refresh(ctx context.Context, refreshToken string) (*domain.AuthResult, error) {
	out, err := p.client.InitiateAuth(ctx, &cip.InitiateAuthInput{
		AuthFlow: types.AuthFlowTypeRefreshTokenAuth,
		ClientId: aws.String(p.clientID),
		AuthParameters: map[string]string{
			"REFRESH_TOKEN": refreshToken,
		},
	})
	if err != nil {
		return nil, mapError(err)
	}
	return authResult(out.AuthenticationResult)
}

// GetUser projects the pool's attribute list into the fixed read view.
func (p *Provider) GetUser(ctx context.Context, email string) (*domain.User, error) {
	out, err := p.client.AdminGetUser(ctx, &cip.AdminGetUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return nil, mapError(err)
	}

	user := &domain.User{
		Enabled: out.Enabled,
		Status:  string(out.UserStatus),
	}
	if out.UserCreateDate != nil {
		user.CreatedAt = out.UserCreateDate.UTC()
	}
	if out.UserLastModifiedDate != nil {
		user.ModifiedAt = out.UserLastModifiedDate.UTC()
	}
	for _, attr := range out.UserAttributes {
		name := aws.ToString(attr.Name)
		value := aws.ToString(attr.Value)
		switch name {
		case "sub":
			user.ID = value
		case "email":
			user.Email = value
		case "given_name":
			user.FirstName = value
		case "family_name":
			user.LastName = value
		case "email_verified":
			verified, err := strconv.ParseBool(value)
			if err == nil {
				user.EmailVerified = verified
			}
		}
	}
	return user, nil
}

// UpdateAttributes applies the non-nil updates as attribute writes.
func (p *Provider) UpdateAttributes(ctx context.Context, email string, updates provider.AttributeUpdates) error {
	var attrs []types.AttributeType
	if updates.FirstName != nil {
		attrs = append(attrs, types.AttributeType{Name: aws.String("given_name"), Value: aws.String(*updates.FirstName)})
	}
	if updates.LastName != nil {
		attrs = append(attrs, types.AttributeType{Name: aws.String("family_name"), Value: aws.String(*updates.LastName)})
	}
	if updates.Email != nil {
		attrs = append(attrs, types.AttributeType{Name: aws.String("email"), Value: aws.String(*updates.Email)})
	}

	_, err := p.client.AdminUpdateUserAttributes(ctx, &cip.AdminUpdateUserAttributesInput{
		UserPoolId:     aws.String(p.userPoolID),
		Username:       aws.String(email),
		UserAttributes: attrs,
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// DeleteUser removes the user from the pool.
func (p *Provider) DeleteUser(ctx context.Context, email string) error {
	_, err := p.client.AdminDeleteUser(ctx, &cip.AdminDeleteUserInput{
		UserPoolId: aws.String(p.userPoolID),
		Username:   aws.String(email),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// ChangePassword forwards the holder's access token along with the old and
// new passwords; the pool performs the actual verification.
func (p *Provider) ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error {
	_, err := p.client.ChangePassword(ctx, &cip.ChangePasswordInput{
		AccessToken:      aws.String(accessToken),
		PreviousPassword: aws.String(oldPassword),
		ProposedPassword: aws.String(newPassword),
	})
	if err != nil {
		return mapError(err)
	}
	return nil
}

// authResult converts the SDK token bundle; a nil bundle (e.g. a challenge
// response we do not support) is treated as an authentication failure.
func authResult(result *types.AuthenticationResultType) (*domain.AuthResult, error) {
	if result == nil {
		return nil, mapError(fmt.Errorf("authentication result missing from provider response"))
	}

	tokenType := aws.ToString(result.TokenType)
	if tokenType == "" {
		tokenType = "Bearer"
	}

	return &domain.AuthResult{
		AccessToken:  aws.ToString(result.AccessToken),
		IDToken:      aws.ToString(result.IdToken),
		RefreshToken: aws.ToString(result.RefreshToken),
		ExpiresIn:    result.ExpiresIn,
		TokenType:    tokenType,
	}, nil
}
