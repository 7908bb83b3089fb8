package auth

import "errors"

// ErrInvalidTelegramPayload возвращается, когда payload не содержит
// ровно один способ входа (initData или code)
var ErrInvalidTelegramPayload = errors.New("telegram payload must carry exactly one of initData or code")

// TelegramPayload ограничивает допустимые варианты входа через Telegram.
// Закрытое объединение: варианты определены здесь и только здесь,
// динамическая форма исходного payload заменена явными типами.
type TelegramPayload interface {
	telegramPayload()
}

// InitDataPayload представляет вход по подписанному initData:
// личность подтверждается одним вызовом /auth/telegram.
type InitDataPayload struct {
	InitData string
}

func (InitDataPayload) telegramPayload() {}

// LegacyCodePayload представляет legacy вход по deep link от бота:
// Code - это access token из ссылки, RefreshToken может отсутствовать.
// Такая сессия не умеет обновляться и истекает с первым 401
// (сознательно сохраненное деградированное поведение старого потока).
type LegacyCodePayload struct {
	Code         string
	RefreshToken string
}

func (LegacyCodePayload) telegramPayload() {}
