package crypto

import (
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"golang.org/x/crypto/argon2"
)

// Параметры Argon2id для растяжения локального секрета
const (
	// Argon2Time - количество итераций (time cost)
	Argon2Time = 1
	// Argon2Memory - объем памяти в KB (64MB = 64*1024 KB)
	Argon2Memory = 64 * 1024
	// Argon2Threads - количество параллельных потоков
	Argon2Threads = 4
	// SaltSize - размер соли в байтах
	SaltSize = 32
	// secretSize - размер локального секрета в байтах
	secretSize = 32
)

// localKeyFile описывает формат файла с локальным секретом
// Секрет и соль генерируются один раз при первом запуске;
// сам ключ шифрования в файле не хранится, он деривируется заново.
type localKeyFile struct {
	Secret string `json:"secret"` // base64
	Salt   string `json:"salt"`   // base64
}

// LoadOrCreateLocalKey возвращает ключ шифрования токенов at-rest.
// При первом вызове создает файл с случайным секретом (права 0600),
// при последующих - деривирует тот же ключ из сохраненного секрета.
// Это клиентская замена системного keychain для CLI окружения.
func LoadOrCreateLocalKey(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("failed to read key file: %w", err)
		}
		return createLocalKey(path)
	}

	var kf localKeyFile
	if err := json.Unmarshal(data, &kf); err != nil {
		return nil, fmt.Errorf("failed to parse key file: %w", err)
	}

	secret, err := base64.StdEncoding.DecodeString(kf.Secret)
	if err != nil {
		return nil, fmt.Errorf("failed to decode secret: %w", err)
	}
	salt, err := base64.StdEncoding.DecodeString(kf.Salt)
	if err != nil {
		return nil, fmt.Errorf("failed to decode salt: %w", err)
	}
	if len(secret) != secretSize || len(salt) != SaltSize {
		return nil, fmt.Errorf("malformed key file: secret %d bytes, salt %d bytes", len(secret), len(salt))
	}

	return deriveKey(secret, salt), nil
}

// createLocalKey генерирует новый секрет и соль и записывает файл
func createLocalKey(path string) ([]byte, error) {
	secret := make([]byte, secretSize)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate secret: %w", err)
	}
	salt := make([]byte, SaltSize)
	if _, err := rand.Read(salt); err != nil {
		return nil, fmt.Errorf("failed to generate salt: %w", err)
	}

	kf := localKeyFile{
		Secret: base64.StdEncoding.EncodeToString(secret),
		Salt:   base64.StdEncoding.EncodeToString(salt),
	}
	data, err := json.Marshal(kf)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal key file: %w", err)
	}

	if err := os.WriteFile(path, data, 0o600); err != nil {
		return nil, fmt.Errorf("failed to write key file: %w", err)
	}

	return deriveKey(secret, salt), nil
}

// deriveKey растягивает локальный секрет в ключ AES-256 через Argon2id
func deriveKey(secret, salt []byte) []byte {
	return argon2.IDKey(secret, salt, Argon2Time, Argon2Memory, Argon2Threads, KeySize)
}
