package cli

import (
	"context"
	"fmt"
	"strings"

	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// runProfile показывает профиль или обновляет display name
func (c *Cli) runProfile(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return c.showProfile(ctx)
	}

	// Аргументы - новое отображаемое имя
	displayName := strings.Join(args, " ")
	req := pkgapi.UpdateProfileRequest{DisplayName: &displayName}

	user, err := c.auth.UpdateProfile(ctx, req)
	if err != nil {
		return err
	}

	// Обновляем кэш профиля в состоянии сессии
	c.session.RefreshUser(ctx)

	c.io.Printf("✓ Display name updated: %s\n", user.DisplayName)
	return nil
}

// showProfile печатает актуальный профиль с сервера
func (c *Cli) showProfile(ctx context.Context) error {
	user, err := c.auth.GetProfile(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch profile: %w", err)
	}

	c.io.Printf("ID:           %s\n", user.ID)
	c.io.Printf("Display name: %s\n", user.DisplayName)
	if user.Email != "" {
		c.io.Printf("Email:        %s\n", user.Email)
	}
	c.io.Printf("Provider:     %s\n", user.Provider)
	c.io.Printf("Created:      %s\n", user.CreatedAt.Format("2006-01-02"))

	return nil
}
