package cli

import (
	"context"
	"fmt"
)

// runLogin выполняет вход по email и одноразовому коду
func (c *Cli) runLogin(ctx context.Context, args []string) error {
	c.io.Println("=== Sign in with email ===")
	c.io.Println("")

	// Email можно передать аргументом или ввести интерактивно
	var email string
	if len(args) > 0 {
		email = args[0]
	} else {
		var err error
		email, err = c.io.ReadInput("Email: ")
		if err != nil {
			return fmt.Errorf("failed to read email: %w", err)
		}
	}

	// 1. Просим сервер отправить код
	if err := c.auth.RequestOtp(ctx, email); err != nil {
		return err
	}
	c.io.Printf("Verification code sent to %s\n", email)

	// 2. Читаем код и обмениваем его на сессию
	code, err := c.io.ReadSecret("Code: ")
	if err != nil {
		return fmt.Errorf("failed to read code: %w", err)
	}

	if err := c.session.LoginWithOtp(ctx, email, code); err != nil {
		return err
	}

	c.printWelcome()
	return nil
}

// printWelcome печатает приветствие после успешного входа
func (c *Cli) printWelcome() {
	state := c.session.State()
	c.io.Println("")
	c.io.Println("✓ Signed in")
	if state.User != nil {
		name := state.User.DisplayName
		if name == "" {
			name = state.User.Email
		}
		c.io.Printf("Welcome, %s\n", name)
	}
}
