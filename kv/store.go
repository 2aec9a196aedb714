// Package kv defines the contract for the underlying key-value primitive.
//
// The store is deliberately minimal: Get, Set, Delete, Has. There is no
// cross-key atomicity, no compare-and-swap, and no query capability beyond
// point lookups. Everything the repository layer guarantees (index
// consistency, archive exclusivity) is built on top of these four calls and
// must therefore tolerate partially applied multi-key mutations.
package kv

import "context"

// Store is the opaque key-value primitive the record layer is built on.
//
// Implementations must be safe for concurrent use. A read of a missing key
// is not an error: Get reports presence through its second return value.
// Transport or engine failures surface as apperr.KindStoreUnavailable.
type Store interface {
	// Get returns the value stored under key. The boolean reports whether
	// the key was present.
	Get(ctx context.Context, key string) ([]byte, bool, error)
	// Set inserts or replaces the value stored under key.
	Set(ctx context.Context, key string, value []byte) error
	// Delete removes the key. Deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Has reports whether the key exists without fetching the value.
	Has(ctx context.Context, key string) (bool, error)
}
