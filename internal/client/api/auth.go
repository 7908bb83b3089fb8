package api

import (
	"context"
	"fmt"
	"net/http"

	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// RequestOtp просит сервер отправить одноразовый код на email
func (c *Client) RequestOtp(ctx context.Context, email string) error {
	req := pkgapi.OtpRequest{Email: email}
	if err := c.do(ctx, http.MethodPost, "/auth/otp/request", req, nil); err != nil {
		return fmt.Errorf("otp request failed: %w", err)
	}
	return nil
}

// Login обменивает OTP код на пару токенов и профиль
func (c *Client) Login(ctx context.Context, req pkgapi.LoginRequest) (*pkgapi.AuthResponse, error) {
	var resp pkgapi.AuthResponse
	if err := c.do(ctx, http.MethodPost, "/auth/login", req, &resp); err != nil {
		return nil, fmt.Errorf("login request failed: %w", err)
	}
	return &resp, nil
}

// LoginTelegram обменивает подписанный initData на пару токенов и профиль
func (c *Client) LoginTelegram(ctx context.Context, initData string) (*pkgapi.AuthResponse, error) {
	var resp pkgapi.AuthResponse
	req := pkgapi.TelegramAuthRequest{InitData: initData}
	if err := c.do(ctx, http.MethodPost, "/auth/telegram", req, &resp); err != nil {
		return nil, fmt.Errorf("telegram login request failed: %w", err)
	}
	return &resp, nil
}

// LoginGoogle обменивает Google ID token на пару токенов и профиль
func (c *Client) LoginGoogle(ctx context.Context, idToken string) (*pkgapi.AuthResponse, error) {
	var resp pkgapi.AuthResponse
	req := pkgapi.GoogleAuthRequest{Token: idToken}
	if err := c.do(ctx, http.MethodPost, "/auth/google", req, &resp); err != nil {
		return nil, fmt.Errorf("google login request failed: %w", err)
	}
	return &resp, nil
}

// Me возвращает профиль текущего пользователя
func (c *Client) Me(ctx context.Context) (*pkgapi.User, error) {
	var user pkgapi.User
	if err := c.do(ctx, http.MethodGet, "/auth/me", nil, &user); err != nil {
		return nil, fmt.Errorf("profile request failed: %w", err)
	}
	return &user, nil
}

// UpdateMe выполняет частичное обновление профиля
func (c *Client) UpdateMe(ctx context.Context, req pkgapi.UpdateProfileRequest) error {
	if err := c.do(ctx, http.MethodPut, "/auth/me", req, nil); err != nil {
		return fmt.Errorf("profile update failed: %w", err)
	}
	return nil
}

// LinkEmail привязывает email к текущему аккаунту
func (c *Client) LinkEmail(ctx context.Context, req pkgapi.LinkEmailRequest) error {
	if err := c.do(ctx, http.MethodPost, "/auth/link/email", req, nil); err != nil {
		return fmt.Errorf("link email failed: %w", err)
	}
	return nil
}

// LinkTelegram привязывает Telegram к текущему аккаунту
func (c *Client) LinkTelegram(ctx context.Context, req pkgapi.LinkTelegramRequest) error {
	if err := c.do(ctx, http.MethodPost, "/auth/link/telegram", req, nil); err != nil {
		return fmt.Errorf("link telegram failed: %w", err)
	}
	return nil
}

// Logout инвалидирует текущую сессию на сервере
func (c *Client) Logout(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout", nil, nil); err != nil {
		return fmt.Errorf("logout request failed: %w", err)
	}
	return nil
}

// LogoutAll инвалидирует все сессии пользователя на сервере
func (c *Client) LogoutAll(ctx context.Context) error {
	if err := c.do(ctx, http.MethodPost, "/auth/logout-all", nil, nil); err != nil {
		return fmt.Errorf("logout-all request failed: %w", err)
	}
	return nil
}
