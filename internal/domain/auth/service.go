package auth

import (
	"context"
)

// AuthService authenticates teachers by credentials and issues tokens.
type AuthService interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, error)

	// Refresh exchanges a valid refresh token for a new access token.
	Refresh(ctx context.Context, refreshToken string) (RefreshResponse, error)
}
