package auth

import "context"

// AuthService issues and revokes access tokens.
type AuthService interface {
	// Login verifies credentials and returns a signed access token.
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Logout revokes the presented access token.
	Logout(ctx context.Context, token string) error
}
