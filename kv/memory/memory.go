// Package memory provides the in-process kv.Store engine.
//
// The engine keeps all values in a sharded concurrent map (xsync.MapOf) and
// never fails: it exists for tests, the example programs, and single-node
// deployments that do not need persistence.
package memory

import (
	"context"

	"github.com/puzpuzpuz/xsync/v3"

	"github.com/goliatone/go-catalog-sync/kv"
)

// Store is an in-memory kv.Store backed by a concurrent map.
type Store struct {
	data *xsync.MapOf[string, []byte]
}

var _ kv.Store = (*Store)(nil)

// New creates an empty in-memory store.
func New() *Store {
	return &Store{data: xsync.NewMapOf[string, []byte]()}
}

func (s *Store) Get(_ context.Context, key string) ([]byte, bool, error) {
	value, ok := s.data.Load(key)
	if !ok {
		return nil, false, nil
	}
	// Copy so callers cannot mutate the stored value in place.
	out := make([]byte, len(value))
	copy(out, value)
	return out, true, nil
}

func (s *Store) Set(_ context.Context, key string, value []byte) error {
	stored := make([]byte, len(value))
	copy(stored, value)
	s.data.Store(key, stored)
	return nil
}

func (s *Store) Delete(_ context.Context, key string) error {
	s.data.Delete(key)
	return nil
}

func (s *Store) Has(_ context.Context, key string) (bool, error) {
	_, ok := s.data.Load(key)
	return ok, nil
}

// Len returns the number of stored keys.
func (s *Store) Len() int {
	return s.data.Size()
}
