package storage

import "errors"

// Common client storage errors
var (
	// ErrTokensNotFound indicates that no credential pair is stored
	ErrTokensNotFound = errors.New("credential pair not found")

	// ErrStorageClosed indicates that storage is closed
	ErrStorageClosed = errors.New("storage is closed")
)
