package cli

import (
	"context"
	"fmt"

	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/deeplink"
)

// runTelegram выполняет вход через Telegram-бота:
// печатаем ссылку на бота, ждем от пользователя deep link из ответа бота
func (c *Cli) runTelegram(ctx context.Context) error {
	c.io.Println("=== Sign in with Telegram ===")
	c.io.Println("")

	startURL, err := auth.BotStartURL(c.botURL)
	if err != nil {
		return err
	}

	c.io.Printf("Open the bot and confirm the login:\n  %s\n", startURL)
	c.io.Println("")

	link, err := c.io.ReadInput("Paste the login link from the bot: ")
	if err != nil {
		return fmt.Errorf("failed to read login link: %w", err)
	}

	payload, err := deeplink.Parse(link)
	if err != nil {
		return err
	}

	if err := c.session.LoginWithTelegram(ctx, payload); err != nil {
		return err
	}

	c.printWelcome()
	return nil
}

// runGoogle выполняет вход по Google ID token
func (c *Cli) runGoogle(ctx context.Context) error {
	c.io.Println("=== Sign in with Google ===")
	c.io.Println("")

	idToken, err := c.io.ReadSecret("Google ID token: ")
	if err != nil {
		return fmt.Errorf("failed to read id token: %w", err)
	}

	if err := c.session.LoginWithGoogle(ctx, idToken); err != nil {
		return err
	}

	c.printWelcome()
	return nil
}
