package record

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
	"github.com/google/uuid"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/kv"
)

// Repository implements API over a kv.Store for one record kind.
//
// Every index mutation is a read-modify-write over a single index value with
// no compare-and-swap in the store. A per-repository mutex serializes those
// read-modify-writes within the process, which is the required mitigation
// for the lost-append race between concurrent Create/Archive/Restore calls.
// The mutex cannot protect against a second process writing the same store;
// readers still verify every index entry against the record it points to.
type Repository[T any] struct {
	store kv.Store
	codec Codec
	h     Handlers[T]

	// mu serializes index read-modify-writes for this kind.
	mu sync.Mutex

	newID   func() string
	nowFunc func() time.Time
}

var _ API[any] = (*Repository[any])(nil)

// NewRepository creates a repository for one record kind.
func NewRepository[T any](store kv.Store, codec Codec, handlers Handlers[T]) *Repository[T] {
	if handlers.Kind == "" {
		panic("record: handlers.Kind must not be empty")
	}
	return &Repository[T]{
		store:   store,
		codec:   codec,
		h:       handlers,
		newID:   uuid.NewString,
		nowFunc: time.Now,
	}
}

// --------------------------------------------------------------------------
// Key layout
// --------------------------------------------------------------------------

func (r *Repository[T]) recordKey(id string) string  { return r.h.Kind + ":" + id }
func (r *Repository[T]) archiveKey(id string) string { return r.h.Kind + ":archived:" + id }
func (r *Repository[T]) indexKey() string            { return r.h.Kind + ":index" }
func (r *Repository[T]) archiveIndexKey() string     { return r.h.Kind + ":archived:index" }

func (r *Repository[T]) count(op string) {
	metrics.GetOrCreateCounter(fmt.Sprintf(`record_ops_total{kind=%q,op=%q}`, r.h.Kind, op)).Inc()
}

// --------------------------------------------------------------------------
// Index helpers
// --------------------------------------------------------------------------

func (r *Repository[T]) readIndex(ctx context.Context, key string) ([]string, error) {
	data, ok, err := r.store.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, nil
	}
	var ids []string
	if err := r.codec.Unmarshal(data, &ids); err != nil {
		return nil, apperr.Wrap(apperr.KindInternal, "corrupt id-list index "+key, err)
	}
	return ids, nil
}

func (r *Repository[T]) writeIndex(ctx context.Context, key string, ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := r.codec.Marshal(ids)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode id-list index "+key, err)
	}
	return r.store.Set(ctx, key, data)
}

// appendID appends id to the index unless it is already present.
func appendID(ids []string, id string) []string {
	for _, existing := range ids {
		if existing == id {
			return ids
		}
	}
	return append(ids, id)
}

// removeID drops every occurrence of id from the index.
func removeID(ids []string, id string) []string {
	out := ids[:0]
	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}
	return out
}

// --------------------------------------------------------------------------
// Record helpers
// --------------------------------------------------------------------------

func (r *Repository[T]) readRecord(ctx context.Context, key string) (T, bool, error) {
	var zero T
	data, ok, err := r.store.Get(ctx, key)
	if err != nil || !ok {
		return zero, false, err
	}
	var rec T
	if err := r.codec.Unmarshal(data, &rec); err != nil {
		return zero, false, apperr.Wrap(apperr.KindInternal, "corrupt record "+key, err)
	}
	return rec, true, nil
}

func (r *Repository[T]) writeRecord(ctx context.Context, key string, rec T) error {
	data, err := r.codec.Marshal(rec)
	if err != nil {
		return apperr.Wrap(apperr.KindInternal, "encode record "+key, err)
	}
	return r.store.Set(ctx, key, data)
}

// fetchAll resolves ids to records concurrently, preserving index order.
// Identifiers without a record are dropped: index entries are hints, not
// proof of existence.
func (r *Repository[T]) fetchAll(ctx context.Context, ids []string, keyFn func(string) string) ([]T, error) {
	type slot struct {
		rec T
		ok  bool
		err error
	}

	slots := make([]slot, len(ids))
	var wg sync.WaitGroup
	for i, id := range ids {
		wg.Add(1)
		go func(i int, id string) {
			defer wg.Done()
			rec, ok, err := r.readRecord(ctx, keyFn(id))
			slots[i] = slot{rec: rec, ok: ok, err: err}
		}(i, id)
	}
	wg.Wait()

	out := make([]T, 0, len(ids))
	for _, s := range slots {
		if s.err != nil {
			return nil, s.err
		}
		if s.ok {
			out = append(out, s.rec)
		}
	}
	return out, nil
}

// --------------------------------------------------------------------------
// API implementation
// --------------------------------------------------------------------------

// List returns every active record in index order.
func (r *Repository[T]) List(ctx context.Context) ([]T, error) {
	r.count("list")
	ids, err := r.readIndex(ctx, r.indexKey())
	if err != nil {
		return nil, err
	}
	return r.fetchAll(ctx, ids, r.recordKey)
}

// ListArchived returns every archived record in archive index order.
func (r *Repository[T]) ListArchived(ctx context.Context) ([]T, error) {
	r.count("list_archived")
	ids, err := r.readIndex(ctx, r.archiveIndexKey())
	if err != nil {
		return nil, err
	}
	return r.fetchAll(ctx, ids, r.archiveKey)
}

// Get returns the active record for id.
func (r *Repository[T]) Get(ctx context.Context, id string) (T, error) {
	r.count("get")
	rec, ok, err := r.readRecord(ctx, r.recordKey(id))
	if err != nil {
		return rec, err
	}
	if !ok {
		var zero T
		return zero, apperr.Newf(apperr.KindNotFound, "%s %s not found", r.h.Kind, id)
	}
	return rec, nil
}

// Create stores rec under a freshly generated identifier and appends the id
// to the active index. Identifiers are never caller supplied.
func (r *Repository[T]) Create(ctx context.Context, rec T) (T, error) {
	r.count("create")
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.createLocked(ctx, rec)
}

func (r *Repository[T]) createLocked(ctx context.Context, rec T) (T, error) {
	var zero T

	id := r.newID()
	rec = r.h.SetID(rec, id)
	rec = r.h.SetCreatedAt(rec, r.nowFunc().UTC())

	if err := r.writeRecord(ctx, r.recordKey(id), rec); err != nil {
		return zero, err
	}

	ids, err := r.readIndex(ctx, r.indexKey())
	if err != nil {
		return zero, err
	}
	if err := r.writeIndex(ctx, r.indexKey(), appendID(ids, id)); err != nil {
		return zero, err
	}
	return rec, nil
}

// Update merges changes into the active record for id via apply. Fields the
// caller did not supply are preserved by the apply closure; the identifier
// is re-stamped afterwards so no merge can overwrite it.
func (r *Repository[T]) Update(ctx context.Context, id string, apply func(T) T) (T, error) {
	r.count("update")
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	cur, ok, err := r.readRecord(ctx, r.recordKey(id))
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, apperr.Newf(apperr.KindNotFound, "%s %s not found", r.h.Kind, id)
	}

	updated := apply(cur)
	updated = r.h.SetID(updated, id)

	if err := r.writeRecord(ctx, r.recordKey(id), updated); err != nil {
		return zero, err
	}
	return updated, nil
}

// Archive moves the record for id from the active set to the archive set,
// stamping it with archival metadata. The four store writes execute in
// program order with no atomicity between them; a failure partway leaves a
// state the hint-based readers tolerate.
func (r *Repository[T]) Archive(ctx context.Context, id, actor string) (T, error) {
	r.count("archive")
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	cur, ok, err := r.readRecord(ctx, r.recordKey(id))
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, apperr.Newf(apperr.KindNotFound, "%s %s not found", r.h.Kind, id)
	}

	stamped := r.h.SetArchival(cur, &Archival{At: r.nowFunc().UTC(), By: actor})

	if err := r.writeRecord(ctx, r.archiveKey(id), stamped); err != nil {
		return zero, err
	}
	archiveIDs, err := r.readIndex(ctx, r.archiveIndexKey())
	if err != nil {
		return zero, err
	}
	if err := r.writeIndex(ctx, r.archiveIndexKey(), appendID(archiveIDs, id)); err != nil {
		return zero, err
	}
	if err := r.store.Delete(ctx, r.recordKey(id)); err != nil {
		return zero, err
	}
	activeIDs, err := r.readIndex(ctx, r.indexKey())
	if err != nil {
		return zero, err
	}
	if err := r.writeIndex(ctx, r.indexKey(), removeID(activeIDs, id)); err != nil {
		return zero, err
	}
	return stamped, nil
}

// Restore moves the record for id back from the archive set to the active
// set, stripping archival metadata. Calling it twice leaves the active index
// containing id exactly once.
func (r *Repository[T]) Restore(ctx context.Context, id string) (T, error) {
	r.count("restore")
	r.mu.Lock()
	defer r.mu.Unlock()

	var zero T
	cur, ok, err := r.readRecord(ctx, r.archiveKey(id))
	if err != nil {
		return zero, err
	}
	if !ok {
		return zero, apperr.Newf(apperr.KindNotFound, "archived %s %s not found", r.h.Kind, id)
	}

	restored := r.h.SetArchival(cur, nil)

	if err := r.writeRecord(ctx, r.recordKey(id), restored); err != nil {
		return zero, err
	}
	activeIDs, err := r.readIndex(ctx, r.indexKey())
	if err != nil {
		return zero, err
	}
	if err := r.writeIndex(ctx, r.indexKey(), appendID(activeIDs, id)); err != nil {
		return zero, err
	}
	if err := r.store.Delete(ctx, r.archiveKey(id)); err != nil {
		return zero, err
	}
	archiveIDs, err := r.readIndex(ctx, r.archiveIndexKey())
	if err != nil {
		return zero, err
	}
	if err := r.writeIndex(ctx, r.archiveIndexKey(), removeID(archiveIDs, id)); err != nil {
		return zero, err
	}
	return restored, nil
}

// BulkCreate creates each record sequentially. On a store failure partway,
// previously created records remain; there is no rollback on the
// non-transactional store.
func (r *Repository[T]) BulkCreate(ctx context.Context, recs []T) ([]T, error) {
	r.count("bulk_create")
	r.mu.Lock()
	defer r.mu.Unlock()

	created := make([]T, 0, len(recs))
	for _, rec := range recs {
		stored, err := r.createLocked(ctx, rec)
		if err != nil {
			return created, err
		}
		created = append(created, stored)
	}
	return created, nil
}

// BulkDeleteAll hard-deletes every active record and resets the active
// index. The archive index is deliberately untouched: this is an
// administrative reset of the active set, not an archive operation.
func (r *Repository[T]) BulkDeleteAll(ctx context.Context) (int, error) {
	r.count("bulk_delete_all")
	r.mu.Lock()
	defer r.mu.Unlock()

	ids, err := r.readIndex(ctx, r.indexKey())
	if err != nil {
		return 0, err
	}
	for _, id := range ids {
		if err := r.store.Delete(ctx, r.recordKey(id)); err != nil {
			return 0, err
		}
	}
	if err := r.writeIndex(ctx, r.indexKey(), nil); err != nil {
		return 0, err
	}
	return len(ids), nil
}
