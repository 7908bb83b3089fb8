package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/remindr/remindr-cli/internal/client/storage"
	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

// refreshResult несет исход завершившегося refresh всем ожидавшим его запросам
type refreshResult struct {
	err         error
	accessToken string
}

// awaitRefresh возвращает свежий access token, гарантируя что в любой
// момент выполняется не более одного вызова /auth/refresh.
//
// Если refresh уже идет, попытка встает в очередь и получает его исход;
// иначе текущая горутина становится лидером и выполняет refresh сама.
// Очередь разрешается в порядке постановки после завершения refresh.
func (c *Client) awaitRefresh(ctx context.Context) (string, error) {
	c.mu.Lock()
	if c.refreshing {
		ch := make(chan refreshResult, 1)
		c.waiters = append(c.waiters, ch)
		c.mu.Unlock()

		select {
		case res := <-ch:
			return res.accessToken, res.err
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}
	c.refreshing = true
	c.mu.Unlock()

	token, err := c.refreshTokens(ctx)

	// Снимаем флаг и разрешаем очередь атомарно относительно новых 401
	c.mu.Lock()
	waiters := c.waiters
	c.waiters = nil
	c.refreshing = false
	c.mu.Unlock()

	for _, ch := range waiters {
		ch <- refreshResult{accessToken: token, err: err}
	}

	return token, err
}

// refreshTokens выполняет сам обмен refresh token на новую пару.
// Вызывается только лидером single-flight.
func (c *Client) refreshTokens(ctx context.Context) (string, error) {
	// 1. Читаем refresh token из хранилища
	refreshToken, err := c.tokens.GetRefreshToken(ctx)
	if err != nil && !errors.Is(err, storage.ErrTokensNotFound) {
		return "", fmt.Errorf("failed to read refresh token: %w", err)
	}

	// 2. Без refresh token сессия невосстановима: чистим хранилище,
	// публикуем forced logout и отказываем без сетевого вызова
	if refreshToken == "" {
		c.forceLogout(ctx)
		return "", ErrSessionExpired
	}

	// 3. Вызываем refresh эндпоинт напрямую через send, минуя do:
	// иначе его собственный 401 попал бы под перехват
	var resp pkgapi.RefreshResponse
	req := pkgapi.RefreshRequest{RefreshToken: refreshToken}
	if err := c.send(ctx, http.MethodPost, refreshPath, req, &resp, ""); err != nil {
		c.forceLogout(ctx)
		return "", fmt.Errorf("%w: %w", ErrSessionExpired, err)
	}

	// 4. Сервер может не ротировать refresh token - тогда сохраняем прежний
	newRefresh := resp.RefreshToken
	if newRefresh == "" {
		newRefresh = refreshToken
	}
	if err := c.tokens.SetTokens(ctx, resp.AccessToken, newRefresh); err != nil {
		return "", fmt.Errorf("failed to persist refreshed tokens: %w", err)
	}

	return resp.AccessToken, nil
}

// forceLogout выполняет локальный teardown сессии со стороны транспорта
func (c *Client) forceLogout(ctx context.Context) {
	if err := c.tokens.ClearTokens(ctx); err != nil {
		slog.Warn("failed to clear tokens on forced logout", "error", err)
	}
	c.bus.TriggerLogout()
}
