package cli

import (
	"context"
	"fmt"

	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// runLinkEmail привязывает email к текущему аккаунту
func (c *Cli) runLinkEmail(ctx context.Context) error {
	c.io.Println("=== Link email ===")

	email, code, err := c.readLinkInput()
	if err != nil {
		return err
	}

	req := pkgapi.LinkEmailRequest{Email: email, Code: code}
	if err := c.auth.LinkEmail(ctx, req); err != nil {
		return err
	}

	// Пара токенов не меняется, но профиль - да
	c.session.RefreshUser(ctx)

	c.io.Println("✓ Email linked")
	return nil
}

// runLinkTelegram привязывает Telegram к текущему аккаунту
func (c *Cli) runLinkTelegram(ctx context.Context) error {
	c.io.Println("=== Link Telegram ===")

	email, code, err := c.readLinkInput()
	if err != nil {
		return err
	}

	req := pkgapi.LinkTelegramRequest{Email: email, Code: code}
	if err := c.auth.LinkTelegram(ctx, req); err != nil {
		return err
	}

	c.session.RefreshUser(ctx)

	c.io.Println("✓ Telegram linked")
	return nil
}

// readLinkInput читает email и код подтверждения для привязки
func (c *Cli) readLinkInput() (email, code string, err error) {
	email, err = c.io.ReadInput("Email: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read email: %w", err)
	}
	code, err = c.io.ReadSecret("Code: ")
	if err != nil {
		return "", "", fmt.Errorf("failed to read code: %w", err)
	}
	return email, code, nil
}
