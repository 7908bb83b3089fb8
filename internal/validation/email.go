package validation

import (
	"fmt"
	"regexp"
)

// EmailPattern определяет минимально требуемую форму email адреса:
// непустая локальная часть, @, непустой домен с точкой
var EmailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

// OtpCodePattern определяет формат одноразового кода: ровно 6 цифр
var OtpCodePattern = regexp.MustCompile(`^[0-9]{6}$`)

// OtpCodeLen - длина одноразового кода
const OtpCodeLen = 6

// ValidateEmail проверяет, что строка похожа на email адрес.
// Глубокая валидация не нужна: авторитетную проверку делает сервер,
// клиент лишь отсекает очевидный мусор до сетевого вызова.
func ValidateEmail(email string) error {
	if email == "" {
		return fmt.Errorf("email cannot be empty")
	}
	if !EmailPattern.MatchString(email) {
		return fmt.Errorf("invalid email address format")
	}
	return nil
}

// ValidateOtpCode проверяет, что код состоит ровно из 6 цифр
func ValidateOtpCode(code string) error {
	if code == "" {
		return fmt.Errorf("code cannot be empty")
	}
	if !OtpCodePattern.MatchString(code) {
		return fmt.Errorf("code must be exactly %d digits", OtpCodeLen)
	}
	return nil
}
