package auth

import "errors"

// Auth domain errors
var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid or missing token")
	ErrTokenExpired       = errors.New("token expired")
	ErrAdminRequired      = errors.New("admin privilege required")
)
