// Package httpapi maps the HTTP surface onto the auth provider, the admin
// record service and the notifier. It is served from the API Lambda through
// the API Gateway proxy adapter.
package httpapi

import (
	"context"
	"log/slog"
	"os"

	"github.com/sparcsup/auth-service/internal/admin"
	"github.com/sparcsup/auth-service/internal/cognito"
	"github.com/sparcsup/auth-service/internal/notify"
)

var logger = slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
	Level: slog.LevelInfo,
}))

// AuthProvider defines the identity-provider operations the API depends on.
type AuthProvider interface {
	SignUp(ctx context.Context, email, password string) (string, error)
	ConfirmSignUp(ctx context.Context, email, code string) error
	Login(ctx context.Context, email, password string) (*cognito.LoginResult, error)
	Refresh(ctx context.Context, sub, refreshToken string) (*cognito.Tokens, error)
	Logout(ctx context.Context, accessToken string) error
	ForgotPassword(ctx context.Context, email string) error
	ConfirmForgotPassword(ctx context.Context, email, code, newPassword string) error
	ChangePassword(ctx context.Context, accessToken, oldPassword, newPassword string) error
	RespondToNewPasswordChallenge(ctx context.Context, email, newPassword, session string) (*cognito.Tokens, error)
	AdminCreateUser(ctx context.Context, email, temporaryPassword string) (string, error)
	AdminAddToGroup(ctx context.Context, email, group string) error
	AdminDeleteUser(ctx context.Context, email string) error
}

// AdminService defines the admin record operations the API depends on.
type AdminService interface {
	CreateAdmin(ctx context.Context, sub string, in admin.CreateInput, actor string) (*admin.Admin, error)
	GetAdmin(ctx context.Context, entryID string) (*admin.Admin, error)
	ListAdmins(ctx context.Context) ([]*admin.Admin, error)
	UpdateAdmin(ctx context.Context, entryID string, patch admin.Patch, actor string) (*admin.Admin, error)
	DeleteAdmin(ctx context.Context, entryID, actor string) error
}

// API wires the HTTP surface to its collaborators.
type API struct {
	auth        AuthProvider
	admins      AdminService
	notifier    notify.Notifier
	frontendURL string
}

// New creates a new API.
func New(auth AuthProvider, admins AdminService, notifier notify.Notifier, frontendURL string) *API {
	return &API{
		auth:        auth,
		admins:      admins,
		notifier:    notifier,
		frontendURL: frontendURL,
	}
}
