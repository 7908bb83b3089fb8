package session

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"github.com/remindr/remindr-cli/internal/client/auth"
	"github.com/remindr/remindr-cli/internal/client/events"
	"github.com/remindr/remindr-cli/internal/client/storage"
	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// State описывает снимок состояния сессии для владельца UI.
// IsLoading true во время bootstrap и любого выполняющегося login/logout.
type State struct {
	User            *pkgapi.User
	IsAuthenticated bool
	IsLoading       bool
}

// AuthService defines the auth operations the session manager drives.
// Implemented by auth.Service; mocked in tests.
type AuthService interface {
	Login(ctx context.Context, email, code string) (*pkgapi.User, error)
	LoginWithTelegram(ctx context.Context, payload auth.TelegramPayload) (*pkgapi.User, error)
	LoginWithGoogle(ctx context.Context, idToken string) (*pkgapi.User, error)
	GetProfile(ctx context.Context) (*pkgapi.User, error)
	Logout(ctx context.Context) error
	LogoutAll(ctx context.Context) error
}

// Manager владеет состоянием сессии процесса.
// Зависимости внедряются конструктором; наблюдатели получают снимки
// состояния через Subscribe (никаких глобальных переменных).
//
// Машина состояний: Bootstrapping -> {Authenticated, Unauthenticated},
// дальше переходы только через login/logout/forced logout.
type Manager struct {
	auth   AuthService
	tokens storage.TokenStorage

	mu        sync.Mutex
	state     State
	observers []observer
	nextObsID int

	unsubscribeBus func()
}

type observer struct {
	fn func(State)
	id int
}

// NewManager создает менеджер сессии и подписывает его на шину событий.
// Транспорт к этому моменту уже очистил хранилище, поэтому callback
// выполняет локальный teardown без сетевого вызова.
func NewManager(authService AuthService, tokens storage.TokenStorage, bus *events.Bus) *Manager {
	m := &Manager{
		auth:   authService,
		tokens: tokens,
		state:  State{IsLoading: true},
	}
	m.unsubscribeBus = bus.Subscribe(m.handleForcedLogout)
	return m
}

// Close отписывает менеджер от шины событий
func (m *Manager) Close() {
	if m.unsubscribeBus != nil {
		m.unsubscribeBus()
		m.unsubscribeBus = nil
	}
}

// State возвращает текущий снимок состояния сессии
func (m *Manager) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Subscribe регистрирует наблюдателя состояния и возвращает функцию
// отписки. Наблюдатель вызывается на каждом изменении состояния.
func (m *Manager) Subscribe(fn func(State)) (unsubscribe func()) {
	m.mu.Lock()
	id := m.nextObsID
	m.nextObsID++
	m.observers = append(m.observers, observer{fn: fn, id: id})
	m.mu.Unlock()

	return func() {
		m.mu.Lock()
		defer m.mu.Unlock()
		for i, o := range m.observers {
			if o.id == id {
				m.observers = append(m.observers[:i], m.observers[i+1:]...)
				return
			}
		}
	}
}

// Bootstrap инициализирует сессию из сохраненных токенов при старте:
//   - токена нет: Unauthenticated без сетевого вызова;
//   - токен есть: пробуем получить профиль; любой отказ (включая 401
//     после неудачного refresh) чистит хранилище и дает Unauthenticated.
func (m *Manager) Bootstrap(ctx context.Context) {
	m.setState(State{IsLoading: true})

	token, err := m.tokens.GetAccessToken(ctx)
	if err != nil || token == "" {
		if err != nil && !errors.Is(err, storage.ErrTokensNotFound) {
			slog.Warn("failed to read stored token during bootstrap", "error", err)
		}
		m.setState(State{})
		return
	}

	user, err := m.auth.GetProfile(ctx)
	if err != nil {
		slog.Debug("bootstrap profile fetch failed, resetting session", "error", err)
		// Транспорт мог уже очистить хранилище при неудачном refresh;
		// повторная очистка идемпотентна
		if clearErr := m.tokens.ClearTokens(ctx); clearErr != nil && !errors.Is(clearErr, storage.ErrTokensNotFound) {
			slog.Warn("failed to clear tokens during bootstrap", "error", clearErr)
		}
		m.setState(State{})
		return
	}

	m.setState(State{IsAuthenticated: true, User: user})
}

// LoginWithOtp выполняет вход по email и OTP коду.
// При отказе состояние остается Unauthenticated, ошибка уходит вызывающему.
func (m *Manager) LoginWithOtp(ctx context.Context, email, code string) error {
	return m.login(ctx, func(ctx context.Context) (*pkgapi.User, error) {
		return m.auth.Login(ctx, email, code)
	})
}

// LoginWithTelegram выполняет вход через Telegram payload
func (m *Manager) LoginWithTelegram(ctx context.Context, payload auth.TelegramPayload) error {
	return m.login(ctx, func(ctx context.Context) (*pkgapi.User, error) {
		return m.auth.LoginWithTelegram(ctx, payload)
	})
}

// LoginWithGoogle выполняет вход по Google ID token
func (m *Manager) LoginWithGoogle(ctx context.Context, idToken string) error {
	return m.login(ctx, func(ctx context.Context) (*pkgapi.User, error) {
		return m.auth.LoginWithGoogle(ctx, idToken)
	})
}

// login проводит общий переход Unauthenticated -> Authenticated
func (m *Manager) login(ctx context.Context, op func(context.Context) (*pkgapi.User, error)) error {
	m.setLoading(true)

	user, err := op(ctx)
	if err != nil {
		m.setState(State{})
		return err
	}

	m.setState(State{IsAuthenticated: true, User: user})
	return nil
}

// Logout выполняет выход: серверная инвалидация best effort,
// локальный сброс состояния безусловный. Ошибок наружу нет -
// пользователь всегда может выйти на устройстве.
func (m *Manager) Logout(ctx context.Context) {
	m.setLoading(true)

	if err := m.auth.Logout(ctx); err != nil {
		slog.Warn("logout cleanup failed", "error", err)
	}

	m.setState(State{})
}

// LogoutAll инвалидирует все сессии аккаунта на сервере (best effort)
// и выполняет тот же локальный сброс, что и обычный logout
func (m *Manager) LogoutAll(ctx context.Context) {
	m.setLoading(true)

	if err := m.auth.LogoutAll(ctx); err != nil {
		slog.Warn("logout-all cleanup failed", "error", err)
	}

	m.setState(State{})
}

// RefreshUser перечитывает профиль, не трогая флаг аутентификации.
// Отказ не фатален (например сетевой сбой после фонового обновления
// профиля): логируем и оставляем прежние данные.
func (m *Manager) RefreshUser(ctx context.Context) {
	user, err := m.auth.GetProfile(ctx)
	if err != nil {
		slog.Warn("failed to refresh user profile", "error", err)
		return
	}

	m.mu.Lock()
	if !m.state.IsAuthenticated {
		// Сессия успела завершиться, пока шел запрос
		m.mu.Unlock()
		return
	}
	m.state.User = user
	state := m.state
	observers := m.snapshotObservers()
	m.mu.Unlock()

	notify(observers, state)
}

// handleForcedLogout реагирует на forced logout от транспорта:
// тот же переход, что и явный logout, но без сетевого вызова
func (m *Manager) handleForcedLogout() {
	m.setState(State{})
}

// setLoading помечает начало длительной операции, сохраняя остальные поля
func (m *Manager) setLoading(loading bool) {
	m.mu.Lock()
	m.state.IsLoading = loading
	state := m.state
	observers := m.snapshotObservers()
	m.mu.Unlock()

	notify(observers, state)
}

// setState заменяет состояние целиком и уведомляет наблюдателей
func (m *Manager) setState(s State) {
	m.mu.Lock()
	m.state = s
	observers := m.snapshotObservers()
	m.mu.Unlock()

	notify(observers, s)
}

// snapshotObservers копирует список наблюдателей; вызывается под мьютексом
func (m *Manager) snapshotObservers() []observer {
	obs := make([]observer, len(m.observers))
	copy(obs, m.observers)
	return obs
}

// notify вызывает наблюдателей вне мьютекса в порядке подписки
func notify(observers []observer, state State) {
	for _, o := range observers {
		o.fn(state)
	}
}
