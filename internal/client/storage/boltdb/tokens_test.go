package boltdb

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/remindr/remindr-cli/internal/client/storage"
	"github.com/remindr/remindr-cli/internal/crypto"
)

func newTestStorage(t *testing.T) (*Storage, string) {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "tokens.db")
	key := make([]byte, crypto.KeySize)
	for i := range key {
		key[i] = byte(i)
	}

	s, err := New(context.Background(), dbPath, key)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	return s, dbPath
}

func TestNew_RequiresValidKey(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tokens.db")

	_, err := New(context.Background(), dbPath, []byte("short"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "encryption key")
}

func TestStorage_SetGetRoundTrip(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	err := s.SetTokens(ctx, "access-1", "refresh-1")
	require.NoError(t, err)

	access, err := s.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "access-1", access)

	refresh, err := s.GetRefreshToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "refresh-1", refresh)
}

func TestStorage_NotFound(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	_, err := s.GetAccessToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)

	_, err = s.GetRefreshToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)
}

// TestStorage_PairOverwrittenAtomically проверяет, что перезапись пары
// не оставляет старый refresh token рядом с новым access token
func TestStorage_PairOverwrittenAtomically(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, s.SetTokens(ctx, "access-2", "refresh-2"))

	access, err := s.GetAccessToken(ctx)
	require.NoError(t, err)
	refresh, err := s.GetRefreshToken(ctx)
	require.NoError(t, err)

	assert.Equal(t, "access-2", access)
	assert.Equal(t, "refresh-2", refresh)
}

// TestStorage_EmptyRefreshToken проверяет legacy случай: пара с пустым
// refresh token хранится и читается без ошибок
func TestStorage_EmptyRefreshToken(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetTokens(ctx, "deep-link-access", ""))

	access, err := s.GetAccessToken(ctx)
	require.NoError(t, err)
	assert.Equal(t, "deep-link-access", access)

	refresh, err := s.GetRefreshToken(ctx)
	require.NoError(t, err)
	assert.Empty(t, refresh)
}

func TestStorage_ClearTokens(t *testing.T) {
	s, _ := newTestStorage(t)
	ctx := context.Background()

	require.NoError(t, s.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, s.ClearTokens(ctx))

	_, err := s.GetAccessToken(ctx)
	assert.ErrorIs(t, err, storage.ErrTokensNotFound)

	// Повторная очистка идемпотентна
	require.NoError(t, s.ClearTokens(ctx))
}

// TestStorage_TokensEncryptedAtRest проверяет, что plaintext токенов
// не попадает в файл базы
func TestStorage_TokensEncryptedAtRest(t *testing.T) {
	s, dbPath := newTestStorage(t)
	ctx := context.Background()

	const accessToken = "very-recognizable-access-token-value"
	require.NoError(t, s.SetTokens(ctx, accessToken, "very-recognizable-refresh-token-value"))
	require.NoError(t, s.Close())

	raw, err := os.ReadFile(dbPath)
	require.NoError(t, err)

	assert.False(t, bytes.Contains(raw, []byte(accessToken)), "access token stored in plaintext")
	assert.False(t, bytes.Contains(raw, []byte("very-recognizable-refresh-token-value")), "refresh token stored in plaintext")
}

// TestStorage_WrongKeyFailsToRead проверяет, что данные, записанные
// одним ключом, не читаются другим
func TestStorage_WrongKeyFailsToRead(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "tokens.db")
	ctx := context.Background()

	key1 := make([]byte, crypto.KeySize)
	key1[0] = 1
	s1, err := New(ctx, dbPath, key1)
	require.NoError(t, err)
	require.NoError(t, s1.SetTokens(ctx, "access-1", "refresh-1"))
	require.NoError(t, s1.Close())

	key2 := make([]byte, crypto.KeySize)
	key2[0] = 2
	s2, err := New(ctx, dbPath, key2)
	require.NoError(t, err)
	defer func() { _ = s2.Close() }()

	_, err = s2.GetAccessToken(ctx)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "decrypt")
}
