package domain

import (
	"context"

	"github.com/sadeeshasathsara/nexa-sub000/utils"
)

// Identity is the resolved caller attached to every authenticated request,
// regardless of which authentication variant resolved it.
type Identity struct {
	UUID  string `json:"uuid"`
	Email string `json:"email"`
	Role  string `json:"role"`
	Name  string `json:"name"`
}

type AuthTokens struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type RegisterInput struct {
	Name     string
	Email    string
	Password string
	Role     string
	Bio      string // tutor
	Website  string // institution
}

type AuthUseCase interface {
	Register(ctx context.Context, in RegisterInput) error
	Login(ctx context.Context, email, password string) (*AuthTokens, error)
	Refresh(ctx context.Context, refreshToken string) (*AuthTokens, error)

	// AdminLogin opens a server-side session and returns its id.
	AdminLogin(ctx context.Context, email, password, clientIP, userAgent string) (string, error)
	AdminLogout(ctx context.Context, sessionID string) error

	SendOTP(ctx context.Context, email, clientIP string) error
	ValidateOTP(ctx context.Context, email, code string) error

	ForgotPassword(ctx context.Context, email string) error
	ResetPassword(ctx context.Context, email, token, newPassword string) error
	ChangePassword(ctx context.Context, userUUID, oldPassword, newPassword string) error

	Me(ctx context.Context, userUUID string) (*User, error)

	GetAccessTokenManager() *utils.JWTManager
	GetRefreshTokenManager() *utils.JWTManager
}
