package repositorycache

import (
	"context"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/cache"
	"github.com/goliatone/go-catalog-sync/kv/memory"
	"github.com/goliatone/go-catalog-sync/record"
)

// mapCacheService is a minimal CacheService backed by a plain map. It gives
// the tests deterministic hit/miss behaviour without timers or shards.
type mapCacheService struct {
	mu      sync.Mutex
	entries map[string]any
}

func newMapCacheService() *mapCacheService {
	return &mapCacheService{entries: make(map[string]any)}
}

func (m *mapCacheService) GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error) {
	m.mu.Lock()
	if v, ok := m.entries[key]; ok {
		m.mu.Unlock()
		return v, nil
	}
	m.mu.Unlock()

	v, err := fetch(ctx)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	m.entries[key] = v
	m.mu.Unlock()
	return v, nil
}

func (m *mapCacheService) Delete(ctx context.Context, key string) error {
	m.mu.Lock()
	delete(m.entries, key)
	m.mu.Unlock()
	return nil
}

func (m *mapCacheService) DeleteByPrefix(ctx context.Context, prefix string) error {
	m.mu.Lock()
	for key := range m.entries {
		if strings.HasPrefix(key, prefix) {
			delete(m.entries, key)
		}
	}
	m.mu.Unlock()
	return nil
}

func (m *mapCacheService) has(key string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	_, ok := m.entries[key]
	return ok
}

// countingRepository wraps a real repository and counts read calls so the
// tests can tell cache hits from misses.
type countingRepository[T any] struct {
	record.API[T]

	listCalls int
	getCalls  int
}

func (c *countingRepository[T]) List(ctx context.Context) ([]T, error) {
	c.listCalls++
	return c.API.List(ctx)
}

func (c *countingRepository[T]) Get(ctx context.Context, id string) (T, error) {
	c.getCalls++
	return c.API.Get(ctx, id)
}

type note struct {
	ID        string           `json:"id"`
	Body      string           `json:"body"`
	CreatedAt time.Time        `json:"created_at"`
	Archived  *record.Archival `json:"archived,omitempty"`
}

func noteHandlers(kind string) record.Handlers[note] {
	return record.Handlers[note]{
		Kind: kind,
		ID:   func(n note) string { return n.ID },
		SetID: func(n note, id string) note {
			n.ID = id
			return n
		},
		SetCreatedAt: func(n note, t time.Time) note {
			n.CreatedAt = t
			return n
		},
		SetArchival: func(n note, a *record.Archival) note {
			n.Archived = a
			return n
		},
	}
}

func newCachedNotes(t *testing.T) (*CachedRepository[note], *countingRepository[note], *mapCacheService) {
	t.Helper()
	base := &countingRepository[note]{
		API: record.NewRepository(memory.New(), record.NewJSONCodec(), noteHandlers("note")),
	}
	svc := newMapCacheService()
	return New[note](base, "note", svc), base, svc
}

func TestCachedRepository_GetServedFromCache(t *testing.T) {
	ctx := context.Background()
	cached, base, _ := newCachedNotes(t)

	created, err := cached.Create(ctx, note{Body: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		got, err := cached.Get(ctx, created.ID)
		if err != nil {
			t.Fatalf("get %d: %v", i, err)
		}
		if got.Body != "first" {
			t.Fatalf("get %d: unexpected record %+v", i, got)
		}
	}

	if base.getCalls != 1 {
		t.Errorf("expected 1 base Get call, got %d", base.getCalls)
	}
}

func TestCachedRepository_ListServedFromCache(t *testing.T) {
	ctx := context.Background()
	cached, base, _ := newCachedNotes(t)

	if _, err := cached.Create(ctx, note{Body: "first"}); err != nil {
		t.Fatalf("create: %v", err)
	}

	for i := 0; i < 3; i++ {
		notes, err := cached.List(ctx)
		if err != nil {
			t.Fatalf("list %d: %v", i, err)
		}
		if len(notes) != 1 {
			t.Fatalf("list %d: expected 1 note, got %d", i, len(notes))
		}
	}

	if base.listCalls != 1 {
		t.Errorf("expected 1 base List call, got %d", base.listCalls)
	}
}

func TestCachedRepository_WriteInvalidatesReads(t *testing.T) {
	ctx := context.Background()
	cached, base, _ := newCachedNotes(t)

	created, err := cached.Create(ctx, note{Body: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cached.List(ctx); err != nil {
		t.Fatalf("warm list: %v", err)
	}

	if _, err := cached.Update(ctx, created.ID, func(n note) note {
		n.Body = "second"
		return n
	}); err != nil {
		t.Fatalf("update: %v", err)
	}

	notes, err := cached.List(ctx)
	if err != nil {
		t.Fatalf("list after update: %v", err)
	}
	if len(notes) != 1 || notes[0].Body != "second" {
		t.Errorf("expected updated listing, got %+v", notes)
	}
	if base.listCalls != 2 {
		t.Errorf("expected list to refetch after write, base calls = %d", base.listCalls)
	}
}

func TestCachedRepository_ArchiveInvalidatesBothListings(t *testing.T) {
	ctx := context.Background()
	cached, _, _ := newCachedNotes(t)

	created, err := cached.Create(ctx, note{Body: "first"})
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if _, err := cached.List(ctx); err != nil {
		t.Fatalf("warm list: %v", err)
	}
	if _, err := cached.ListArchived(ctx); err != nil {
		t.Fatalf("warm archived list: %v", err)
	}

	if _, err := cached.Archive(ctx, created.ID, "admin"); err != nil {
		t.Fatalf("archive: %v", err)
	}

	active, err := cached.List(ctx)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(active) != 0 {
		t.Errorf("expected no active notes after archive, got %d", len(active))
	}

	archived, err := cached.ListArchived(ctx)
	if err != nil {
		t.Fatalf("list archived: %v", err)
	}
	if len(archived) != 1 {
		t.Errorf("expected 1 archived note, got %d", len(archived))
	}
}

func TestCachedRepository_ErrorsAreNotCached(t *testing.T) {
	ctx := context.Background()
	cached, base, _ := newCachedNotes(t)

	if _, err := cached.Get(ctx, "missing"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	if _, err := cached.Get(ctx, "missing"); !apperr.IsKind(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}

	if base.getCalls != 2 {
		t.Errorf("expected failed reads to bypass the cache, base calls = %d", base.getCalls)
	}
}

func TestCachedRepository_KindsDoNotShareEntries(t *testing.T) {
	ctx := context.Background()
	svc := newMapCacheService()

	store := memory.New()
	codec := record.NewJSONCodec()
	notes := New[note](record.NewRepository(store, codec, noteHandlers("note")), "note", svc)
	drafts := New[note](record.NewRepository(store, codec, noteHandlers("draft")), "draft", svc)

	if _, err := notes.Create(ctx, note{Body: "kept"}); err != nil {
		t.Fatalf("create note: %v", err)
	}
	if _, err := notes.List(ctx); err != nil {
		t.Fatalf("warm notes: %v", err)
	}
	if _, err := drafts.List(ctx); err != nil {
		t.Fatalf("warm drafts: %v", err)
	}

	// A draft write must leave the cached note listing untouched.
	if _, err := drafts.Create(ctx, note{Body: "other"}); err != nil {
		t.Fatalf("create draft: %v", err)
	}

	if !svc.has(cache.Key("note", "List")) {
		t.Error("expected the note listing to stay cached across draft writes")
	}
	if svc.has(cache.Key("draft", "List")) {
		t.Error("expected the draft listing to be invalidated")
	}
}
