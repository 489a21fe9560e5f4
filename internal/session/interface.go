package session

import (
	"context"

	"github.com/magabrotheeeer/cafe-maiolini/internal/apiclient"
	"github.com/magabrotheeeer/cafe-maiolini/internal/backend"
	"github.com/magabrotheeeer/cafe-maiolini/internal/models"
)

// Backend вызовы бэкенда, нужные сессии.
type Backend interface {
	Login(ctx context.Context, email, password string) (*backend.AuthResponse, error)
	Register(ctx context.Context, reg models.Registration) (*backend.AuthResponse, error)
	Me(ctx context.Context, creds apiclient.Credentials) (*models.User, error)
	UpdateProfile(ctx context.Context, creds apiclient.Credentials, upd models.ProfileUpdate) (string, error)
	ChangePassword(ctx context.Context, creds apiclient.Credentials, current, next string) (string, error)
	ForgotPassword(ctx context.Context, email string) (*backend.ForgotResponse, error)
	ValidateResetToken(ctx context.Context, token string) (*models.ResetValidation, error)
	ResetPassword(ctx context.Context, token, password string) (string, error)
}

// UserCache кэш результатов /auth/me.
type UserCache interface {
	Get(ctx context.Context, sid, token string) (*models.User, bool, error)
	Set(ctx context.Context, sid, token string, user *models.User) error
	Invalidate(ctx context.Context, sid string) error
}
