package auth

import "errors"

var (
	ErrInvalidCredentials  = errors.New("invalid email or password")
	ErrTokenExpired        = errors.New("token expired")
	ErrRefreshTokenRevoked = errors.New("refresh token revoked")
	ErrOAuthStateMismatch  = errors.New("oauth state mismatch")
	ErrInvalidToken        = errors.New("invalid or missing token")
	ErrRefreshCookieEmpty  = errors.New("refresh token cookie missing or empty")
)
