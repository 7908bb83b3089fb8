package boltdb

import (
	"context"
	"fmt"

	"go.etcd.io/bbolt"

	"github.com/remindr/remindr-cli/internal/crypto"
)

// BoltDB bucket names
var bucketTokens = []byte("tokens")

// Storage represents BoltDB token storage for the client.
// Tokens are sealed with AES-256-GCM before they touch disk; the key is
// derived from a local secret file (see crypto.LoadOrCreateLocalKey).
type Storage struct {
	db  *bbolt.DB
	key []byte
}

// New creates a new BoltDB storage instance
// dbPath is the path to the BoltDB database file,
// encryptionKey must be crypto.KeySize bytes
func New(ctx context.Context, dbPath string, encryptionKey []byte) (*Storage, error) {
	if len(encryptionKey) != crypto.KeySize {
		return nil, fmt.Errorf("encryption key must be %d bytes, got %d", crypto.KeySize, len(encryptionKey))
	}

	// Открываем BoltDB
	db, err := bbolt.Open(dbPath, 0o600, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to open boltdb: %w", err)
	}

	storage := &Storage{db: db, key: encryptionKey}

	// Инициализируем buckets
	if err := storage.initBuckets(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to initialize buckets: %w", err)
	}

	return storage, nil
}

// Close closes the database connection
func (s *Storage) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

// initBuckets создает необходимые buckets если они не существуют
func (s *Storage) initBuckets() error {
	return s.db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketTokens); err != nil {
			return fmt.Errorf("failed to create tokens bucket: %w", err)
		}
		return nil
	})
}
