package api

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrSessionExpired возвращается, когда сессию невозможно восстановить:
// refresh token отсутствует или сервер отказал в обновлении.
// Локальные токены к этому моменту уже удалены, событие forced logout
// опубликовано.
var ErrSessionExpired = errors.New("session expired, login required")

// APIError представляет ошибку HTTP API с кодом статуса
type APIError struct {
	Message string
	Status  int
}

func (e *APIError) Error() string {
	return fmt.Sprintf("server error (%d): %s", e.Status, e.Message)
}

// IsUnauthorized reports whether err is an HTTP 401 from the server
func IsUnauthorized(err error) bool {
	var apiErr *APIError
	return errors.As(err, &apiErr) && apiErr.Status == http.StatusUnauthorized
}
