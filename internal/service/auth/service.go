package auth

import (
	"context"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/jackc/pgx/v5"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/auth"
	"github.com/shiftclock/shiftclock-backend-go/internal/domain/user"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/jwt"
	"github.com/shiftclock/shiftclock-backend-go/internal/pkg/oauth"
	"golang.org/x/crypto/bcrypt"
)

type authServiceImpl struct {
	userRepo user.Repository
	jwt      jwt.Service
	google   oauth.GoogleService
}

func NewAuthService(userRepo user.Repository, jwtService jwt.Service, googleService oauth.GoogleService) auth.Service {
	return &authServiceImpl{
		userRepo: userRepo,
		jwt:      jwtService,
		google:   googleService,
	}
}

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

// Register implements auth.Service.
func (a *authServiceImpl) Register(ctx context.Context, req auth.RegisterRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	if _, err := a.userRepo.GetByEmail(ctx, req.Email); err == nil {
		return auth.TokenResponse{}, user.ErrEmailExists
	} else if err != pgx.ErrNoRows {
		return auth.TokenResponse{}, fmt.Errorf("failed to check existing email: %w", err)
	}

	hashed, err := hashPassword(req.Password)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to hash password: %w", err)
	}

	created, err := a.userRepo.Create(ctx, user.User{
		Email:        req.Email,
		PasswordHash: &hashed,
		DisplayName:  req.DisplayName,
	})
	if err != nil {
		return auth.TokenResponse{}, err
	}

	return a.issueTokens(created)
}

// Login implements auth.Service.
func (a *authServiceImpl) Login(ctx context.Context, req auth.LoginRequest) (auth.TokenResponse, error) {
	if err := req.Validate(); err != nil {
		return auth.TokenResponse{}, err
	}

	userData, err := a.userRepo.GetByEmail(ctx, req.Email)
	if err != nil {
		if err == pgx.ErrNoRows {
			return auth.TokenResponse{}, auth.ErrInvalidCredentials
		}
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
	}

	// Google-only accounts have no password hash.
	if userData.PasswordHash == nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(*userData.PasswordHash), []byte(req.Password)); err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	return a.issueTokens(userData)
}

// Refresh implements auth.Service. A revoked refresh token stays revoked;
// rotation revokes the presented token before issuing the next pair.
func (a *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (auth.TokenResponse, error) {
	if a.jwt.IsTokenRevoked(refreshToken) {
		return auth.TokenResponse{}, auth.ErrRefreshTokenRevoked
	}

	userID, err := a.jwt.ValidateRefreshToken(refreshToken)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrTokenExpired
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	a.jwt.RevokeToken(refreshToken)

	return a.issueTokens(userData)
}

// Logout implements auth.Service.
func (a *authServiceImpl) Logout(ctx context.Context, refreshToken string) error {
	if refreshToken == "" {
		return nil
	}
	a.jwt.RevokeToken(refreshToken)
	return nil
}

// Profile implements auth.Service.
func (a *authServiceImpl) Profile(ctx context.Context) (auth.ProfileResponse, error) {
	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return auth.ProfileResponse{}, fmt.Errorf("failed to extract claims from context: %w", err)
	}

	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return auth.ProfileResponse{}, fmt.Errorf("user_id claim is missing or invalid")
	}

	userData, err := a.userRepo.GetByID(ctx, userID)
	if err != nil {
		return auth.ProfileResponse{}, err
	}

	return auth.ProfileResponse{
		ID:          userData.ID,
		Email:       userData.Email,
		DisplayName: userData.DisplayName,
		CreatedAt:   userData.CreatedAt.Format(time.RFC3339),
	}, nil
}

// LoginWithGoogle implements auth.Service.
func (a *authServiceImpl) LoginWithGoogle(ctx context.Context, userAgent string) (string, string, error) {
	state := a.google.GenerateState(userAgent)
	if state == "" {
		return "", "", fmt.Errorf("failed to generate oauth state")
	}
	return a.google.RedirectURL(state), state, nil
}

// OAuthCallbackGoogle implements auth.Service. Unknown Google accounts get
// a fresh user; known ones log straight in.
func (a *authServiceImpl) OAuthCallbackGoogle(ctx context.Context, code string) (auth.TokenResponse, error) {
	info, err := a.google.FetchUser(ctx, code)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to verify google account: %w", err)
	}
	if !info.VerifiedEmail {
		return auth.TokenResponse{}, auth.ErrInvalidCredentials
	}

	userData, err := a.userRepo.GetByGoogleID(ctx, info.GoogleID)
	if err == pgx.ErrNoRows {
		// Link by email if the account was registered with a password first.
		userData, err = a.userRepo.GetByEmail(ctx, info.Email)
		if err == pgx.ErrNoRows {
			displayName := info.Name
			if displayName == "" {
				displayName = info.Email
			}
			userData, err = a.userRepo.Create(ctx, user.User{
				Email:       info.Email,
				DisplayName: displayName,
				GoogleID:    &info.GoogleID,
			})
			if err != nil {
				return auth.TokenResponse{}, err
			}
		} else if err != nil {
			return auth.TokenResponse{}, fmt.Errorf("failed to get user by email: %w", err)
		} else {
			userData.GoogleID = &info.GoogleID
			if err := a.userRepo.Update(ctx, userData); err != nil {
				return auth.TokenResponse{}, err
			}
		}
	} else if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to get user by google id: %w", err)
	}

	return a.issueTokens(userData)
}

func (a *authServiceImpl) issueTokens(u user.User) (auth.TokenResponse, error) {
	var response auth.TokenResponse
	var err error

	response.AccessToken, response.ExpiresAt, err = a.jwt.GenerateAccessToken(u.ID, u.Email)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create access token: %w", err)
	}

	response.RefreshToken, _, err = a.jwt.GenerateRefreshToken(u.ID)
	if err != nil {
		return auth.TokenResponse{}, fmt.Errorf("failed to create refresh token: %w", err)
	}

	return response, nil
}
