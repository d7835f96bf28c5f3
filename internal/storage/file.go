package storage

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"sync"

	"github.com/pkg/errors"
)

// FileStore persists all keys in a single JSON file. It mirrors the
// single-device model of the app: one file, last write wins. A corrupt or
// missing file loads as empty rather than failing.
type FileStore struct {
	path string

	mu   sync.Mutex
	data map[string]json.RawMessage
}

// NewFileStore creates a file-backed store at path, loading any existing
// contents.
func NewFileStore(path string) (*FileStore, error) {
	s := &FileStore{
		path: path,
		data: make(map[string]json.RawMessage),
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, errors.Wrap(err, "failed to read store file")
	}

	// Corrupt contents degrade to an empty store
	var data map[string]json.RawMessage
	if err := json.Unmarshal(raw, &data); err == nil && data != nil {
		s.data = data
	}

	return s, nil
}

// Get returns the value for key.
func (s *FileStore) Get(_ context.Context, key string) ([]byte, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	value, ok := s.data[key]
	if !ok {
		return nil, false, nil
	}
	return []byte(value), true, nil
}

// Set writes the value for key and flushes the file.
func (s *FileStore) Set(_ context.Context, key string, value []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.data[key] = json.RawMessage(value)
	return s.flush()
}

// Delete removes the key and flushes the file.
func (s *FileStore) Delete(_ context.Context, key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.data, key)
	return s.flush()
}

// flush writes the whole map to disk. Caller holds the lock.
func (s *FileStore) flush() error {
	dir := filepath.Dir(s.path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0700); err != nil {
			return errors.Wrap(err, "failed to create store directory")
		}
	}

	data, err := json.MarshalIndent(s.data, "", "  ")
	if err != nil {
		return errors.Wrap(err, "failed to marshal store")
	}

	if err := os.WriteFile(s.path, data, 0600); err != nil {
		return errors.Wrap(err, "failed to write store file")
	}

	return nil
}
