package pesoshield

import "github.com/pesoshield/pesoshield-go/internal/storage"

// Store is the key-value store abstraction backing all persisted state.
// Any implementation can be injected through ClientOptions; tests use the
// in-memory store.
type Store = storage.Store

// NewFileStore creates a store persisted as a single JSON file.
func NewFileStore(path string) (Store, error) {
	return storage.NewFileStore(path)
}

// NewMemoryStore creates a volatile in-memory store.
func NewMemoryStore() Store {
	return storage.NewMemoryStore()
}

// NewRedisStore creates a Redis-backed store.
func NewRedisStore(addr string) Store {
	return storage.NewRedisStore(addr)
}
