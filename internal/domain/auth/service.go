package auth

import "context"

type Service interface {
	Register(ctx context.Context, req RegisterRequest) (TokenResponse, error)
	Login(ctx context.Context, req LoginRequest) (TokenResponse, error)
	Refresh(ctx context.Context, refreshToken string) (TokenResponse, error)
	Logout(ctx context.Context, refreshToken string) error
	Profile(ctx context.Context) (ProfileResponse, error)

	// Google OAuth
	LoginWithGoogle(ctx context.Context, userAgent string) (redirectURL string, state string, err error)
	OAuthCallbackGoogle(ctx context.Context, code string) (TokenResponse, error)
}
