package api

import "time"

// Providers, которыми может быть создан аккаунт
const (
	ProviderGoogle   = "google"
	ProviderTelegram = "telegram"
	ProviderEmail    = "email"
)

// User представляет профиль пользователя Remindr
// Профиль принадлежит серверу: клиент хранит только read-through копию,
// полученную из GET /auth/me или из ответа на логин.
type User struct {
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
	ID          string    `json:"id"`
	Email       string    `json:"email,omitempty"`
	DisplayName string    `json:"displayName,omitempty"`
	AvatarURL   string    `json:"avatarUrl,omitempty"`
	Provider    string    `json:"provider"` // "google" | "telegram" | "email"
}

// OtpRequest представляет запрос на отправку одноразового кода на email
type OtpRequest struct {
	Email string `json:"email"`
}

// LoginRequest представляет запрос на обмен OTP кода на токены
// Email == nil означает код, полученный через Telegram-бота:
// сервер определяет пользователя по самому коду.
type LoginRequest struct {
	Email *string `json:"email"`
	Code  string  `json:"code"`
}

// TelegramAuthRequest представляет запрос на вход по подписанному initData
type TelegramAuthRequest struct {
	InitData string `json:"initData"`
}

// GoogleAuthRequest представляет запрос на вход по Google ID token
type GoogleAuthRequest struct {
	Token string `json:"token"`
}

// AuthResponse представляет ответ сервера на успешный вход
type AuthResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
	User         User   `json:"user"`
}

// RefreshRequest представляет запрос на обновление access token
type RefreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

// RefreshResponse представляет ответ на обновление токена
// RefreshToken может отсутствовать: тогда клиент продолжает
// использовать прежний refresh token (ротация опциональна на сервере).
type RefreshResponse struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken,omitempty"`
}

// UpdateProfileRequest представляет частичное обновление профиля
type UpdateProfileRequest struct {
	DisplayName *string `json:"displayName,omitempty"`
	AvatarURL   *string `json:"avatarUrl,omitempty"`
}

// LinkEmailRequest представляет запрос на привязку email к аккаунту
type LinkEmailRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// LinkTelegramRequest представляет запрос на привязку Telegram к аккаунту
type LinkTelegramRequest struct {
	Email string `json:"email"`
	Code  string `json:"code"`
}

// ErrorResponse представляет ответ сервера с ошибкой
type ErrorResponse struct {
	Error   string `json:"error"`             // описание ошибки
	Message string `json:"message,omitempty"` // дополнительное сообщение
}
