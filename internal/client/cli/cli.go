package cli

import (
	"context"
	"fmt"

	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/iocli"
	"github.com/remindr/remindr-cli/internal/client/session"
	"github.com/remindr/remindr-cli/internal/client/storage"
)

// Cli связывает команды терминала с сессией и операциями аутентификации
type Cli struct {
	io      iocli.IO
	auth    *auth.Service
	session *session.Manager
	tokens  storage.TokenStorage
	botURL  string
}

// New создает CLI поверх готовых зависимостей
func New(io iocli.IO, authService *auth.Service, sessionManager *session.Manager, tokens storage.TokenStorage, botURL string) *Cli {
	return &Cli{
		io:      io,
		auth:    authService,
		session: sessionManager,
		tokens:  tokens,
		botURL:  botURL,
	}
}

// Run выполняет одну команду
func (c *Cli) Run(ctx context.Context, command string, args []string) error {
	switch command {
	case "login":
		return c.runLogin(ctx, args)
	case "telegram":
		return c.runTelegram(ctx)
	case "google":
		return c.runGoogle(ctx)
	case "status":
		return c.runStatus(ctx)
	case "profile":
		return c.runProfile(ctx, args)
	case "link-email":
		return c.runLinkEmail(ctx)
	case "link-telegram":
		return c.runLinkTelegram(ctx)
	case "logout":
		return c.runLogout(ctx)
	case "logout-all":
		return c.runLogoutAll(ctx)
	default:
		c.PrintUsage()
		return fmt.Errorf("unknown command: %s", command)
	}
}

// PrintUsage печатает справку по командам
func (c *Cli) PrintUsage() {
	c.io.Println("Usage: remindr [flags] <command>")
	c.io.Println("")
	c.io.Println("Commands:")
	c.io.Println("  login [email]    Sign in with an email one-time code")
	c.io.Println("  telegram         Sign in through the Telegram bot")
	c.io.Println("  google           Sign in with a Google ID token")
	c.io.Println("  status           Show session status and token expiry")
	c.io.Println("  profile [name]   Show profile or update display name")
	c.io.Println("  link-email       Attach an email to the current account")
	c.io.Println("  link-telegram    Attach Telegram to the current account")
	c.io.Println("  logout           Sign out on this device")
	c.io.Println("  logout-all       Sign out everywhere")
}
