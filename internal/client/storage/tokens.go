package storage

import (
	"context"
)

// TokenStorage defines interface for persisting the credential pair on client.
// Every call goes straight to the underlying store: no in-memory caching,
// so an externally rotated pair is always observed on the next read.
type TokenStorage interface {
	// SetTokens stores both tokens as a single record (atomic pairing).
	// An empty refreshToken is legal: it marks a session without refresh
	// capability (legacy Telegram deep-link login).
	SetTokens(ctx context.Context, accessToken, refreshToken string) error

	// GetAccessToken returns the stored access token.
	// Returns ErrTokensNotFound if no credential pair exists.
	GetAccessToken(ctx context.Context) (string, error)

	// GetRefreshToken returns the stored refresh token.
	// Returns ErrTokensNotFound if no credential pair exists; an empty
	// string with nil error means the pair exists but cannot be refreshed.
	GetRefreshToken(ctx context.Context) (string, error)

	// ClearTokens removes the credential pair (logout).
	// Clearing an empty store is not an error.
	ClearTokens(ctx context.Context) error
}

// TokenPair represents the credential pair in storage.
// Both tokens live in one record so that readers can never observe an
// access token paired with a refresh token from a different session.
type TokenPair struct {
	AccessToken  string `json:"remindr_access_token"`
	RefreshToken string `json:"remindr_refresh_token"`
	SavedAt      int64  `json:"saved_at"` // unix seconds, когда пара была записана
}
