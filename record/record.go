// Package record implements the generic, kind-parameterized repository that
// turns the flat key-value store into an indexed record store.
//
// Every record kind owns two ordered id-list indexes: one for the active
// set and one for the archived ("soft deleted") set. An identifier lives in
// at most one of the two at any time. Because the store has no cross-key
// atomicity, index entries are treated as hints on read: an id that does not
// resolve to a record is dropped instead of failing the whole listing, and
// the next index write heals the drift.
package record

import (
	"context"
	"time"
)

// Archival carries the soft-delete metadata stamped onto a record when it
// is archived and stripped again on restore.
type Archival struct {
	At time.Time `json:"at" msgpack:"at"`
	By string    `json:"by,omitempty" msgpack:"by,omitempty"`
}

// Handlers supplies the per-kind accessors the generic repository needs.
// Records are passed and returned by value; every setter returns the
// modified copy.
type Handlers[T any] struct {
	// Kind names the record kind and prefixes every store key.
	Kind string
	// ID extracts the identifier.
	ID func(T) string
	// SetID writes the identifier. The repository calls this on every write
	// path so caller-supplied payloads can never change an identifier.
	SetID func(T, string) T
	// SetCreatedAt stamps the creation timestamp on freshly created records.
	SetCreatedAt func(T, time.Time) T
	// SetArchival stamps archival metadata; a nil Archival clears it.
	SetArchival func(T, *Archival) T
}

// API is the operation surface of a repository for one record kind.
// Both the plain Repository and the caching decorator implement it.
type API[T any] interface {
	List(ctx context.Context) ([]T, error)
	ListArchived(ctx context.Context) ([]T, error)
	Get(ctx context.Context, id string) (T, error)
	Create(ctx context.Context, rec T) (T, error)
	Update(ctx context.Context, id string, apply func(T) T) (T, error)
	Archive(ctx context.Context, id, actor string) (T, error)
	Restore(ctx context.Context, id string) (T, error)
	BulkCreate(ctx context.Context, recs []T) ([]T, error)
	BulkDeleteAll(ctx context.Context) (int, error)
}
