package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/remindr/remindr-cli/internal/client/storage"
	"github.com/remindr/remindr-cli/internal/validation"
	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// OtpResendCooldown - минимальный интервал между повторными отправками
// кода на тот же email, который должен выдерживать фронтенд
const OtpResendCooldown = 30 * time.Second

// Service предоставляет операции аутентификации поверх транспорта
// и хранилища токенов. Сервис stateless: все состояние сессии живет
// в хранилище и в session.Manager.
type Service struct {
	apiClient APIClient
	tokens    storage.TokenStorage
}

// NewService создает новый сервис авторизации
func NewService(apiClient APIClient, tokens storage.TokenStorage) *Service {
	return &Service{
		apiClient: apiClient,
		tokens:    tokens,
	}
}

// RequestOtp просит сервер отправить одноразовый код на email.
// Состояние сессии не меняется.
func (s *Service) RequestOtp(ctx context.Context, email string) error {
	if err := validation.ValidateEmail(email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	return s.apiClient.RequestOtp(ctx, email)
}

// Login обменивает OTP код на пару токенов и профиль.
// Пустой email означает код, пришедший через Telegram-бота:
// сервер определяет пользователя по самому коду.
func (s *Service) Login(ctx context.Context, email, code string) (*pkgapi.User, error) {
	if err := validation.ValidateOtpCode(code); err != nil {
		return nil, fmt.Errorf("invalid code: %w", err)
	}

	req := pkgapi.LoginRequest{Code: code}
	if email != "" {
		if err := validation.ValidateEmail(email); err != nil {
			return nil, fmt.Errorf("invalid email: %w", err)
		}
		req.Email = &email
	}

	resp, err := s.apiClient.Login(ctx, req)
	if err != nil {
		return nil, err
	}

	// Сохраняем пару токенов до возврата результата
	if err := s.tokens.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	return &resp.User, nil
}

// LoginWithTelegram выполняет вход одним из двух поддерживаемых способов:
//   - InitDataPayload: один вызов /auth/telegram, профиль приходит в ответе;
//   - LegacyCodePayload: токены из deep link сохраняются напрямую,
//     затем профиль читается через GET /auth/me.
func (s *Service) LoginWithTelegram(ctx context.Context, payload TelegramPayload) (*pkgapi.User, error) {
	switch p := payload.(type) {
	case InitDataPayload:
		if p.InitData == "" {
			return nil, ErrInvalidTelegramPayload
		}
		resp, err := s.apiClient.LoginTelegram(ctx, p.InitData)
		if err != nil {
			return nil, err
		}
		if err := s.tokens.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to persist tokens: %w", err)
		}
		return &resp.User, nil

	case LegacyCodePayload:
		if p.Code == "" {
			return nil, ErrInvalidTelegramPayload
		}
		// 1. Сохраняем токены из ссылки как есть; refresh token может
		// быть пустым - такая сессия живет до первого истечения
		if err := s.tokens.SetTokens(ctx, p.Code, p.RefreshToken); err != nil {
			return nil, fmt.Errorf("failed to persist tokens: %w", err)
		}
		// 2. Проверяем токен и получаем профиль
		user, err := s.apiClient.Me(ctx)
		if err != nil {
			return nil, fmt.Errorf("failed to fetch profile after telegram login: %w", err)
		}
		return user, nil

	default:
		return nil, ErrInvalidTelegramPayload
	}
}

// LoginWithGoogle обменивает Google ID token на пару токенов и профиль
func (s *Service) LoginWithGoogle(ctx context.Context, idToken string) (*pkgapi.User, error) {
	if idToken == "" {
		return nil, fmt.Errorf("google id token cannot be empty")
	}

	resp, err := s.apiClient.LoginGoogle(ctx, idToken)
	if err != nil {
		return nil, err
	}

	if err := s.tokens.SetTokens(ctx, resp.AccessToken, resp.RefreshToken); err != nil {
		return nil, fmt.Errorf("failed to persist tokens: %w", err)
	}

	return &resp.User, nil
}

// GetProfile возвращает профиль текущего пользователя
func (s *Service) GetProfile(ctx context.Context) (*pkgapi.User, error) {
	return s.apiClient.Me(ctx)
}

// UpdateProfile применяет частичное обновление и возвращает
// авторитетный профиль, перечитанный с сервера
func (s *Service) UpdateProfile(ctx context.Context, req pkgapi.UpdateProfileRequest) (*pkgapi.User, error) {
	if err := s.apiClient.UpdateMe(ctx, req); err != nil {
		return nil, err
	}
	return s.apiClient.Me(ctx)
}

// LinkEmail привязывает email к текущему аккаунту.
// Активная пара токенов не меняется.
func (s *Service) LinkEmail(ctx context.Context, req pkgapi.LinkEmailRequest) error {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateOtpCode(req.Code); err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	return s.apiClient.LinkEmail(ctx, req)
}

// LinkTelegram привязывает Telegram к текущему аккаунту
func (s *Service) LinkTelegram(ctx context.Context, req pkgapi.LinkTelegramRequest) error {
	if err := validation.ValidateEmail(req.Email); err != nil {
		return fmt.Errorf("invalid email: %w", err)
	}
	if err := validation.ValidateOtpCode(req.Code); err != nil {
		return fmt.Errorf("invalid code: %w", err)
	}
	return s.apiClient.LinkTelegram(ctx, req)
}

// Logout выполняет выход из системы.
// Серверный вызов best effort: пользователь должен иметь возможность
// выйти на устройстве даже при недоступном сервере.
func (s *Service) Logout(ctx context.Context) error {
	if err := s.apiClient.Logout(ctx); err != nil {
		slog.Warn("failed to logout on server", "error", err)
	}
	return s.clearLocal(ctx)
}

// LogoutAll инвалидирует все сессии на сервере (best effort)
// и безусловно чистит локальное хранилище
func (s *Service) LogoutAll(ctx context.Context) error {
	if err := s.apiClient.LogoutAll(ctx); err != nil {
		slog.Warn("failed to logout all sessions on server", "error", err)
	}
	return s.clearLocal(ctx)
}

// clearLocal безусловно удаляет локальную пару токенов
func (s *Service) clearLocal(ctx context.Context) error {
	if err := s.tokens.ClearTokens(ctx); err != nil && !errors.Is(err, storage.ErrTokensNotFound) {
		return fmt.Errorf("failed to clear local tokens: %w", err)
	}
	return nil
}

// BotStartURL возвращает ссылку на Telegram-бота с одноразовым nonce
// в параметре start. Бот ответит deep link-ом, который разбирается
// пакетом deeplink.
func BotStartURL(botURL string) (string, error) {
	if botURL == "" {
		return "", fmt.Errorf("bot URL is not configured")
	}
	return fmt.Sprintf("%s?start=%s", botURL, uuid.New().String()), nil
}
