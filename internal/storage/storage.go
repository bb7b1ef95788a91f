// Package storage provides durable key-value stores for the task list.
//
// A store holds opaque values under string keys, the way browser local
// storage does. Three backends are available:
//
//   - file: one file per key under a data directory, replaced atomically
//   - sqlite: a single kv table in <data dir>/tasklist.db
//   - memory: a process-local map, for tests
package storage

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Backend names accepted by Open.
const (
	BackendFile   = "file"
	BackendSQLite = "sqlite"
	BackendMemory = "memory"
)

var (
	// ErrNotFound is returned by Get when the key has no value.
	ErrNotFound = errors.New("key not found")
	// ErrInvalidKey is returned for keys that cannot be stored.
	ErrInvalidKey = errors.New("invalid key")
)

// Store is a durable key-value store.
type Store interface {
	// Get returns the value stored under key, or ErrNotFound.
	Get(ctx context.Context, key string) ([]byte, error)
	// Set writes value under key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes key. Deleting a missing key is not an error.
	// The widget uses it to purge a list entirely.
	Delete(ctx context.Context, key string) error
	// Location describes where values are kept, for diagnostics.
	Location() string
	// Close releases resources held by the store.
	Close() error
}

// Open opens the named backend rooted at dataDir.
func Open(backend, dataDir string) (Store, error) {
	switch NormalizeBackend(backend) {
	case BackendFile:
		s, err := NewFileStore(dataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendSQLite:
		s, err := NewSQLiteStore(dataDir)
		if err != nil {
			return nil, err
		}
		return s, nil
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown store %q (expected file|sqlite|memory)", backend)
	}
}

// NormalizeBackend lowercases and trims a backend name. Empty means file.
func NormalizeBackend(backend string) string {
	b := strings.ToLower(strings.TrimSpace(backend))
	if b == "" {
		return BackendFile
	}
	return b
}

// ValidBackend reports whether backend names a known store.
func ValidBackend(backend string) bool {
	switch NormalizeBackend(backend) {
	case BackendFile, BackendSQLite, BackendMemory:
		return true
	}
	return false
}

// ValidateKey accepts keys made of letters, digits, '.', '_' and '-'.
func ValidateKey(key string) error {
	if key == "" || key == "." || key == ".." {
		return fmt.Errorf("%w: %q", ErrInvalidKey, key)
	}
	for i := 0; i < len(key); i++ {
		c := key[i]
		valid := (c >= 'A' && c <= 'Z') ||
			(c >= 'a' && c <= 'z') ||
			(c >= '0' && c <= '9') ||
			c == '.' || c == '_' || c == '-'
		if !valid {
			return fmt.Errorf("%w: %q", ErrInvalidKey, key)
		}
	}
	return nil
}
