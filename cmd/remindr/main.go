package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/remindr/remindr-cli/internal/client/api"
	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/cli"
	"github.com/remindr/remindr-cli/internal/client/events"
	"github.com/remindr/remindr-cli/internal/client/iocli"
	"github.com/remindr/remindr-cli/internal/client/session"
	"github.com/remindr/remindr-cli/internal/client/storage/boltdb"
	"github.com/remindr/remindr-cli/internal/crypto"
)

var (
	// Version information set via ldflags during build
	Version   = "dev"
	BuildDate = "unknown"
	GitCommit = "unknown"
)

func main() {
	// Глобальные флаги
	showVersion := flag.Bool("version", false, "Show version information")
	serverURL := flag.String("server", defaultServerURL(), "Remindr API URL")
	dbPath := flag.String("db", "remindr-client.db", "Path to local token database")
	keyPath := flag.String("key", "remindr-client.key", "Path to local encryption key file")
	botURL := flag.String("bot", os.Getenv("REMINDR_TELEGRAM_BOT_URL"), "Telegram bot URL for telegram login")

	flag.Parse()

	if *showVersion {
		printVersion()
		os.Exit(0)
	}

	// Получаем команду
	args := flag.Args()
	if len(args) == 0 {
		io := iocli.NewStdio()
		cli.New(io, nil, nil, nil, "").PrintUsage()
		os.Exit(1)
	}
	command := args[0]

	ctx := context.Background()

	// Ключ шифрования токенов at-rest (создается при первом запуске)
	encryptionKey, err := crypto.LoadOrCreateLocalKey(*keyPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load encryption key: %v\n", err)
		os.Exit(1)
	}

	// Открываем хранилище токенов
	tokenStorage, err := boltdb.New(ctx, *dbPath, encryptionKey)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to open token database: %v\n", err)
		os.Exit(1)
	}
	defer func() {
		if err := tokenStorage.Close(); err != nil {
			slog.Error("failed to close token database", "error", err)
		}
	}()

	// Собираем слои: шина -> транспорт -> операции -> состояние сессии
	bus := events.NewBus()
	apiClient := api.NewClient(*serverURL, tokenStorage, bus)
	authService := auth.NewService(apiClient, tokenStorage)

	sessionManager := session.NewManager(authService, tokenStorage, bus)
	defer sessionManager.Close()

	// Bootstrap из сохраненных токенов; команды входа сами переведут
	// сессию в Authenticated при успехе
	sessionManager.Bootstrap(ctx)

	io := iocli.NewStdio()
	c := cli.New(io, authService, sessionManager, tokenStorage, *botURL)

	if err := c.Run(ctx, command, args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// defaultServerURL берет адрес сервера из окружения или localhost
func defaultServerURL() string {
	if url := os.Getenv("REMINDR_SERVER_URL"); url != "" {
		return url
	}
	return "http://localhost:3000"
}

func printVersion() {
	fmt.Printf("Remindr Client\n")
	fmt.Printf("Version:    %s\n", Version)
	fmt.Printf("Build Date: %s\n", BuildDate)
	fmt.Printf("Git Commit: %s\n", GitCommit)
}
