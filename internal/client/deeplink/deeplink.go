// Package deeplink разбирает ссылки, которыми Telegram-бот возвращает
// пользователя в приложение после подтверждения входа.
package deeplink

import (
	"errors"
	"fmt"
	"net/url"
	"strings"

	"github.com/remindr/remindr-cli/internal/client/auth"
)

// ErrNoCredentials возвращается, когда ссылка разобрана, но не несет
// ни токена, ни кода
var ErrNoCredentials = errors.New("deep link carries no token or code")

// Пути, по которым бот может вернуть пользователя:
// актуальный "login" и legacy "auth/telegram"
const (
	loginPath          = "login"
	legacyTelegramPath = "auth/telegram"
)

// Parse разбирает deep link в Telegram payload для auth.Service.
// Поддерживаемые query параметры: token / accessToken (access token)
// с опциональным refreshToken, либо legacy code.
func Parse(rawURL string) (auth.TelegramPayload, error) {
	if rawURL == "" {
		return nil, fmt.Errorf("deep link is empty")
	}

	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("failed to parse deep link: %w", err)
	}

	if !matchesPath(u, loginPath) && !matchesPath(u, legacyTelegramPath) {
		return nil, fmt.Errorf("unsupported deep link path: %q", u.Path)
	}

	q := u.Query()

	// token и accessToken - синонимы, token имеет приоритет
	accessToken := q.Get("token")
	if accessToken == "" {
		accessToken = q.Get("accessToken")
	}
	if accessToken != "" {
		return auth.LegacyCodePayload{
			Code:         accessToken,
			RefreshToken: q.Get("refreshToken"),
		}, nil
	}

	if code := q.Get("code"); code != "" {
		return auth.LegacyCodePayload{Code: code}, nil
	}

	return nil, ErrNoCredentials
}

// matchesPath проверяет путь ссылки с учетом того, что у кастомных схем
// (remindr://login) первый сегмент оказывается в Host, а не в Path
func matchesPath(u *url.URL, want string) bool {
	path := strings.Trim(u.Path, "/")
	if u.Host != "" && !strings.Contains(want, "/") {
		if u.Host == want && path == "" {
			return true
		}
	}
	if u.Host != "" && strings.Contains(want, "/") {
		// remindr://auth/telegram: host "auth", path "telegram"
		combined := u.Host + "/" + path
		if combined == want {
			return true
		}
	}
	return path == want || strings.HasSuffix(path, "/"+want)
}
