// Package storage provides the key-value store abstraction that backs all
// locally persisted state: the transaction ledger, the planned budget, the
// alert dismissal record and the previous-rates cache. Implementations must
// treat a missing key as a normal condition, not an error.
package storage

import "context"

// Store is a minimal key-value store. Values are opaque byte slices;
// callers layer JSON on top.
type Store interface {
	// Get returns the value for key. The second return is false when the
	// key is absent.
	Get(ctx context.Context, key string) ([]byte, bool, error)

	// Set writes the value for key, replacing any previous value.
	Set(ctx context.Context, key string, value []byte) error

	// Delete removes the key. Deleting an absent key is not an error.
	Delete(ctx context.Context, key string) error
}
