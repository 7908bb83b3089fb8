package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"
	"time"

	"github.com/remindr/remindr-cli/internal/client/events"
	"github.com/remindr/remindr-cli/internal/client/storage"
	pkgapi "github.com/remindr/remindr-cli/pkg/api"
)

const refreshPath = "/auth/refresh"

// Client представляет HTTP клиент для взаимодействия с сервером Remindr.
// Перед каждым запросом читает access token из хранилища и подставляет
// заголовок Authorization; на 401 прозрачно обновляет токены и повторяет
// запрос один раз (см. refresh.go).
type Client struct {
	httpClient *http.Client
	tokens     storage.TokenStorage
	bus        *events.Bus
	baseURL    string

	// Охраняет single-flight refresh: флаг "refresh уже выполняется"
	// и очередь ожидающих его исхода запросов.
	mu         sync.Mutex
	refreshing bool
	waiters    []chan refreshResult
}

// NewClient создает новый API клиент
func NewClient(baseURL string, tokens storage.TokenStorage, bus *events.Bus) *Client {
	return &Client{
		baseURL: baseURL,
		tokens:  tokens,
		bus:     bus,
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
			// Настройка обработки редиректов
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				// Ограничиваем количество редиректов
				if len(via) >= 10 {
					return fmt.Errorf("stopped after 10 redirects")
				}
				// Копируем заголовок Authorization при редиректе
				if len(via) > 0 && via[0].Header.Get("Authorization") != "" {
					req.Header.Set("Authorization", via[0].Header.Get("Authorization"))
				}
				return nil
			},
		},
	}
}

// attempt описывает одну логическую попытку запроса.
// Признак повтора живет здесь, а не на http.Request: сам запрос
// пересоздается на каждую отправку и никогда не мутируется.
type attempt struct {
	method  string
	path    string
	retried bool
}

// do выполняет авторизованный запрос с протоколом refresh-on-401:
//  1. Подставляем текущий access token (если есть) и отправляем запрос.
//  2. На 401 (кроме самого refresh эндпоинта и уже повторенных попыток)
//     дожидаемся единственного refresh и повторяем запрос с новым токеном.
//  3. Второго refresh для той же попытки не бывает - повторный 401 терминален.
func (c *Client) do(ctx context.Context, method, path string, body, result any) error {
	att := attempt{method: method, path: path}

	token, err := c.currentAccessToken(ctx)
	if err != nil {
		return err
	}

	for {
		err := c.send(ctx, att.method, att.path, body, result, token)
		if err == nil || !IsUnauthorized(err) {
			return err
		}
		if att.path == refreshPath || att.retried {
			// Терминальный отказ: refresh эндпоинт не перехватывается,
			// повторенная попытка не порождает второй refresh
			return err
		}

		token, err = c.awaitRefresh(ctx)
		if err != nil {
			return err
		}
		// Новая попытка с необратимо взведенным признаком повтора
		att = attempt{method: method, path: path, retried: true}
	}
}

// currentAccessToken читает access token из хранилища.
// Отсутствие пары токенов не ошибка: запрос уйдет без Authorization.
func (c *Client) currentAccessToken(ctx context.Context) (string, error) {
	token, err := c.tokens.GetAccessToken(ctx)
	if err != nil {
		if errors.Is(err, storage.ErrTokensNotFound) {
			return "", nil
		}
		return "", fmt.Errorf("failed to read access token: %w", err)
	}
	return token, nil
}

// send выполняет один HTTP запрос без какого-либо перехвата
func (c *Client) send(ctx context.Context, method, path string, body, result any, token string) error {
	url := c.baseURL + path

	var bodyReader io.Reader
	if body != nil {
		jsonData, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to marshal request body: %w", err)
		}
		bodyReader = bytes.NewReader(jsonData)
	}

	req, err := http.NewRequestWithContext(ctx, method, url, bodyReader)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	// Читаем тело ответа
	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	// Проверяем статус код
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		apiErr := &APIError{Status: resp.StatusCode, Message: string(respBody)}
		var errResp pkgapi.ErrorResponse
		if err := json.Unmarshal(respBody, &errResp); err == nil && errResp.Message != "" {
			apiErr.Message = errResp.Message
		}
		return apiErr
	}

	// Декодируем успешный ответ
	if result != nil {
		if err := json.Unmarshal(respBody, result); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}
