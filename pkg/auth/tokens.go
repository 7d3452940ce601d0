package auth

import "context"

// TokenPair is an access/refresh token couple returned on login and refresh.
type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

// TokenIssuer abstracts token creation and refresh-token verification
// (e.g., JWT). It allows use cases to stay framework-agnostic.
type TokenIssuer interface {
	Pair(ctx context.Context, user User) (TokenPair, error)
	// VerifyRefresh validates a refresh token and returns its subject email.
	// Access tokens presented here must be rejected.
	VerifyRefresh(ctx context.Context, token string) (string, error)
}
