package shopper

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"go.uber.org/zap"
)

// Storage is the durable key-value layer behind the cart and favorites
// stores. It stands in for the browser's localStorage: synchronous
// writes, last write wins, no cross-profile consistency.
type Storage interface {
	Read(key string) ([]byte, error)
	Write(key string, data []byte) error
}

// FileStorage keeps each key as a JSON document inside one shopper
// profile directory.
type FileStorage struct {
	dir string
}

// NewFileStorage creates the profile directory if needed.
func NewFileStorage(dir string) (*FileStorage, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create state directory: %w", err)
	}
	return &FileStorage{dir: dir}, nil
}

// Read returns the stored value, or nil when the key has never been
// written.
func (s *FileStorage) Read(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(s.dir, key+".json"))
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return data, nil
}

// Write replaces the stored value.
func (s *FileStorage) Write(key string, data []byte) error {
	return os.WriteFile(filepath.Join(s.dir, key+".json"), data, 0o644)
}

// MemoryStorage is a Storage kept entirely in memory, used by tests and
// throwaway sessions.
type MemoryStorage struct {
	mu     sync.Mutex
	values map[string][]byte
}

// NewMemoryStorage creates an empty MemoryStorage.
func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{values: make(map[string][]byte)}
}

func (s *MemoryStorage) Read(key string) ([]byte, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.values[key], nil
}

func (s *MemoryStorage) Write(key string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = append([]byte(nil), data...)
	return nil
}

// loadState hydrates v from storage. Unreadable or corrupted content is
// logged and treated as empty; hydration never fails to the caller, the
// worst outcome is starting from an empty collection.
func loadState(storage Storage, key string, v interface{}, logger *zap.Logger) {
	data, err := storage.Read(key)
	if err != nil {
		logger.Warn("Failed to read persisted state",
			zap.String("key", key),
			zap.Error(err),
		)
		return
	}
	if len(data) == 0 {
		return
	}
	if err := json.Unmarshal(data, v); err != nil {
		logger.Warn("Discarding corrupted persisted state",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// saveState mirrors v to storage. Failures are logged and swallowed so
// a broken disk never interrupts the shopping flow.
func saveState(storage Storage, key string, v interface{}, logger *zap.Logger) {
	data, err := json.Marshal(v)
	if err != nil {
		logger.Error("Failed to encode state", zap.String("key", key), zap.Error(err))
		return
	}
	if err := storage.Write(key, data); err != nil {
		logger.Warn("Failed to persist state", zap.String("key", key), zap.Error(err))
	}
}
