package domain

// AuthResult is the token bundle issued by the provider. It is reshaped into
// the response envelope as-is, never mutated or persisted. RefreshToken is
// empty on refresh responses because the provider does not reissue it.
type AuthResult struct {
	AccessToken  string `json:"accessToken"`
	IDToken      string `json:"idToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
	ExpiresIn    int32  `json:"expiresIn"`
	TokenType    string `json:"tokenType"`
}

// Token use discriminators carried in the token_use claim.
const (
	TokenUseAccess = "access"
	TokenUseID     = "id"
)

// TokenClaims is the claim projection produced by local token inspection.
// Claims are advisory only: unless signature verification is enabled they
// must never be treated as a trust boundary.
type TokenClaims struct {
	Subject   string `json:"sub"`
	Email     string `json:"email,omitempty"`
	TokenUse  string `json:"tokenType"`
	ExpiresAt int64  `json:"expiresAt"`
	IssuedAt  int64  `json:"issuedAt"`
}
