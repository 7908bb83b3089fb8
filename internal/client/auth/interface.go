package auth

import (
	"context"

	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

//go:generate moq -out api_client_mock.go . APIClient

// APIClient defines the transport surface the auth service depends on.
// Implemented by internal/client/api.Client; mocked in tests.
type APIClient interface {
	// RequestOtp asks the server to send a one-time code to an email
	RequestOtp(ctx context.Context, email string) error

	// Login exchanges an OTP code for a credential pair + user
	Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.AuthResponse, error)

	// LoginTelegram exchanges signed initData for a credential pair + user
	LoginTelegram(ctx context.Context, initData string) (*pkgapi.AuthResponse, error)

	// LoginGoogle exchanges a Google ID token for a credential pair + user
	LoginGoogle(ctx context.Context, idToken string) (*pkgapi.AuthResponse, error)

	// Me fetches the current user profile
	Me(ctx context.Context) (*pkgapi.User, error)

	// UpdateMe applies a partial profile update
	UpdateMe(ctx context.Context, req pkgapi.UpdateProfileRequest) error

	// LinkEmail attaches an email identity to the current account
	LinkEmail(ctx context.Context, req pkgapi.LinkEmailRequest) error

	// LinkTelegram attaches a Telegram identity to the current account
	LinkTelegram(ctx context.Context, req pkgapi.LinkTelegramRequest) error

	// Logout invalidates the current server-side session
	Logout(ctx context.Context) error

	// LogoutAll invalidates every server-side session of the user
	LogoutAll(ctx context.Context) error
}
