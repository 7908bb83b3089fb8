package cli

import (
	"context"
	"errors"
	"time"

	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/storage"
)

// runStatus показывает состояние сессии и срок действия access token
func (c *Cli) runStatus(ctx context.Context) error {
	state := c.session.State()

	if !state.IsAuthenticated {
		c.io.Println("Not signed in")
		return nil
	}

	c.io.Println("Signed in")
	if state.User != nil {
		c.io.Printf("  User:     %s\n", state.User.DisplayName)
		if state.User.Email != "" {
			c.io.Printf("  Email:    %s\n", state.User.Email)
		}
		c.io.Printf("  Provider: %s\n", state.User.Provider)
	}

	accessToken, err := c.tokens.GetAccessToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokensNotFound) {
			return nil
		}
		return err
	}

	// Срок действия только для отображения: подпись не проверяется
	expiry, err := auth.TokenExpiry(accessToken)
	if err != nil {
		c.io.Println("  Token:    opaque (no expiry info)")
		return nil
	}

	if time.Now().After(expiry) {
		c.io.Printf("  Token:    expired at %s (will refresh on next request)\n", expiry.Format(time.RFC3339))
	} else {
		c.io.Printf("  Token:    valid until %s\n", expiry.Format(time.RFC3339))
	}

	refreshToken, err := c.tokens.GetRefreshToken(ctx)
	if err == nil && refreshToken == "" {
		// Legacy telegram сессия: без refresh token истечение необратимо
		c.io.Println("  Warning:  session cannot refresh, expiry will sign you out")
	}

	return nil
}
