package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remindr/remindr-cli/internal/client/api"
	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/events"
	"github.com/remindr/remindr-cli/internal/client/session"
	"github.com/remindr/remindr-cli/internal/client/storage/boltdb"
	"github.com/remindr/remindr-cli/internal/crypto"
	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// fakeIO собирает вывод и отдает заранее заданные строки ввода
type fakeIO struct {
	output  strings.Builder
	inputs  []string
	secrets []string
}

func (f *fakeIO) Println(a ...any) {
	f.output.WriteString(fmt.Sprintln(a...))
}

func (f *fakeIO) Printf(format string, a ...any) {
	f.output.WriteString(fmt.Sprintf(format, a...))
}

func (f *fakeIO) ReadInput(prompt string) (string, error) {
	if len(f.inputs) == 0 {
		return "", fmt.Errorf("no scripted input for prompt %q", prompt)
	}
	in := f.inputs[0]
	f.inputs = f.inputs[1:]
	return in, nil
}

func (f *fakeIO) ReadSecret(prompt string) (string, error) {
	if len(f.secrets) == 0 {
		return "", fmt.Errorf("no scripted secret for prompt %q", prompt)
	}
	s := f.secrets[0]
	f.secrets = f.secrets[1:]
	return s, nil
}

// newTestBackend поднимает минимальный auth сервер для сквозных сценариев
func newTestBackend(t *testing.T) *httptest.Server {
	t.Helper()

	user := pkgapi.User{ID: "user-1", Email: "a@b.com", DisplayName: "Alice", Provider: pkgapi.ProviderEmail}

	mux := http.NewServeMux()
	mux.HandleFunc("/auth/otp/request", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("/auth/login", func(w http.ResponseWriter, r *http.Request) {
		var req pkgapi.LoginRequest
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		if req.Code != "123456" {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: "invalid code"})
			return
		}
		_ = json.NewEncoder(w).Encode(pkgapi.AuthResponse{
			AccessToken:  "access-1",
			RefreshToken: "refresh-1",
			User:         user,
		})
	})
	mux.HandleFunc("/auth/me", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			_ = json.NewEncoder(w).Encode(pkgapi.ErrorResponse{Message: "unauthorized"})
			return
		}
		_ = json.NewEncoder(w).Encode(user)
	})
	mux.HandleFunc("/auth/logout", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNoContent)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

// newTestCli собирает полный клиентский стек на временном хранилище
func newTestCli(t *testing.T, serverURL string, io *fakeIO) (*Cli, *session.Manager) {
	t.Helper()

	dir := t.TempDir()
	key, err := crypto.LoadOrCreateLocalKey(filepath.Join(dir, "test.key"))
	require.NoError(t, err)

	store, err := boltdb.New(context.Background(), filepath.Join(dir, "test.db"), key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = store.Close() })

	bus := events.NewBus()
	apiClient := api.NewClient(serverURL, store, bus)
	authService := auth.NewService(apiClient, store)
	manager := session.NewManager(authService, store, bus)
	t.Cleanup(manager.Close)
	manager.Bootstrap(context.Background())

	return New(io, authService, manager, store, "https://t.me/remindr_bot"), manager
}

// TestCli_LoginFlow проходит сценарий входа по email от запроса кода
// до приветствия
func TestCli_LoginFlow(t *testing.T) {
	srv := newTestBackend(t)
	io := &fakeIO{secrets: []string{"123456"}}
	cli, manager := newTestCli(t, srv.URL, io)

	err := cli.Run(context.Background(), "login", []string{"a@b.com"})
	require.NoError(t, err)

	assert.True(t, manager.State().IsAuthenticated)
	out := io.output.String()
	assert.Contains(t, out, "Verification code sent to a@b.com")
	assert.Contains(t, out, "Welcome, Alice")
}

func TestCli_LoginFlow_PromptsForEmail(t *testing.T) {
	srv := newTestBackend(t)
	io := &fakeIO{inputs: []string{"a@b.com"}, secrets: []string{"123456"}}
	cli, manager := newTestCli(t, srv.URL, io)

	err := cli.Run(context.Background(), "login", nil)
	require.NoError(t, err)
	assert.True(t, manager.State().IsAuthenticated)
}

func TestCli_LoginFlow_WrongCode(t *testing.T) {
	srv := newTestBackend(t)
	io := &fakeIO{secrets: []string{"999999"}}
	cli, manager := newTestCli(t, srv.URL, io)

	err := cli.Run(context.Background(), "login", []string{"a@b.com"})
	require.Error(t, err)
	assert.False(t, manager.State().IsAuthenticated)
}

func TestCli_Status(t *testing.T) {
	srv := newTestBackend(t)

	t.Run("not signed in", func(t *testing.T) {
		io := &fakeIO{}
		cli, _ := newTestCli(t, srv.URL, io)

		require.NoError(t, cli.Run(context.Background(), "status", nil))
		assert.Contains(t, io.output.String(), "Not signed in")
	})

	t.Run("signed in", func(t *testing.T) {
		io := &fakeIO{secrets: []string{"123456"}}
		cli, _ := newTestCli(t, srv.URL, io)
		require.NoError(t, cli.Run(context.Background(), "login", []string{"a@b.com"}))

		require.NoError(t, cli.Run(context.Background(), "status", nil))
		out := io.output.String()
		assert.Contains(t, out, "Signed in")
		assert.Contains(t, out, "Alice")
		// Токен бэкенда не JWT, срок действия неизвестен
		assert.Contains(t, out, "opaque")
	})
}

func TestCli_Logout(t *testing.T) {
	srv := newTestBackend(t)
	io := &fakeIO{secrets: []string{"123456"}}
	cli, manager := newTestCli(t, srv.URL, io)
	require.NoError(t, cli.Run(context.Background(), "login", []string{"a@b.com"}))

	err := cli.Run(context.Background(), "logout", nil)
	require.NoError(t, err)
	assert.False(t, manager.State().IsAuthenticated)
}

func TestCli_UnknownCommand(t *testing.T) {
	srv := newTestBackend(t)
	io := &fakeIO{}
	cli, _ := newTestCli(t, srv.URL, io)

	err := cli.Run(context.Background(), "frobnicate", nil)
	require.Error(t, err)
	assert.Contains(t, io.output.String(), "Usage:")
}
