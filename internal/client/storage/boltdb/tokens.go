package boltdb

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/remindr/remindr-cli/internal/client/storage"
	"github.com/remindr/remindr-cli/internal/crypto"
)

var tokensKey = []byte("current")

// Compile-time check that Storage implements storage.TokenStorage
var _ storage.TokenStorage = (*Storage)(nil)

// SetTokens stores the credential pair as a single sealed record.
// Оба токена пишутся одной транзакцией: читатель никогда не увидит
// новый access token рядом со старым refresh token.
func (s *Storage) SetTokens(ctx context.Context, accessToken, refreshToken string) error {
	pair := storage.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		SavedAt:      time.Now().Unix(),
	}

	plaintext, err := json.Marshal(pair)
	if err != nil {
		return fmt.Errorf("failed to marshal token pair: %w", err)
	}

	// Шифруем запись целиком
	sealed, err := crypto.Encrypt(plaintext, s.key)
	if err != nil {
		return fmt.Errorf("failed to encrypt token pair: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}
		if err := bucket.Put(tokensKey, sealed); err != nil {
			return fmt.Errorf("failed to save token pair: %w", err)
		}
		return nil
	})
}

// GetAccessToken returns the stored access token
func (s *Storage) GetAccessToken(ctx context.Context) (string, error) {
	pair, err := s.getPair(ctx)
	if err != nil {
		return "", err
	}
	return pair.AccessToken, nil
}

// GetRefreshToken returns the stored refresh token
// Пустая строка при nil ошибке означает сессию без refresh capability
// (legacy вход по deep link).
func (s *Storage) GetRefreshToken(ctx context.Context) (string, error) {
	pair, err := s.getPair(ctx)
	if err != nil {
		return "", err
	}
	return pair.RefreshToken, nil
}

// ClearTokens removes the credential pair (logout)
func (s *Storage) ClearTokens(ctx context.Context) error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}
		// Удаление отсутствующей записи не ошибка: logout должен быть идемпотентным
		if err := bucket.Delete(tokensKey); err != nil {
			return fmt.Errorf("failed to delete token pair: %w", err)
		}
		return nil
	})
}

// getPair читает и расшифровывает запись с парой токенов
func (s *Storage) getPair(ctx context.Context) (*storage.TokenPair, error) {
	var sealed []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		bucket := tx.Bucket(bucketTokens)
		if bucket == nil {
			return fmt.Errorf("tokens bucket not found")
		}
		data := bucket.Get(tokensKey)
		if data == nil {
			return storage.ErrTokensNotFound
		}
		// Копируем: данные валидны только внутри транзакции
		sealed = make([]byte, len(data))
		copy(sealed, data)
		return nil
	})
	if err != nil {
		return nil, err
	}

	plaintext, err := crypto.Decrypt(sealed, s.key)
	if err != nil {
		return nil, fmt.Errorf("failed to decrypt token pair: %w", err)
	}

	pair := &storage.TokenPair{}
	if err := json.Unmarshal(plaintext, pair); err != nil {
		return nil, fmt.Errorf("failed to unmarshal token pair: %w", err)
	}

	return pair, nil
}
