package repositorycache

import (
	"context"

	"github.com/goliatone/go-catalog-sync/cache"
	"github.com/goliatone/go-catalog-sync/record"
)

// Interface assertion to ensure CachedRepository implements record.API[T].
var _ record.API[any] = (*CachedRepository[any])(nil)

// CachedRepository decorates a record repository with read-through caching.
// Read operations are answered from the cache; write operations pass through
// to the base repository and then invalidate every cached read for the kind.
type CachedRepository[T any] struct {
	base  record.API[T]
	kind  string
	cache cache.CacheService
}

// New wraps base with caching. The kind names the cache namespace and must
// match the handlers the base repository was built with; every key the
// decorator issues starts with it, so one DeleteByPrefix call clears the
// whole kind.
func New[T any](base record.API[T], kind string, cacheService cache.CacheService) *CachedRepository[T] {
	return &CachedRepository[T]{
		base:  base,
		kind:  kind,
		cache: cacheService,
	}
}

// List retrieves the active records, with caching.
func (c *CachedRepository[T]) List(ctx context.Context) ([]T, error) {
	key := cache.Key(c.kind, "List")
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]T, error) {
		return c.base.List(ctx)
	})
}

// ListArchived retrieves the archived records, with caching.
func (c *CachedRepository[T]) ListArchived(ctx context.Context) ([]T, error) {
	key := cache.Key(c.kind, "ListArchived")
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) ([]T, error) {
		return c.base.ListArchived(ctx)
	})
}

// Get retrieves a single active record by id, with caching.
func (c *CachedRepository[T]) Get(ctx context.Context, id string) (T, error) {
	key := cache.Key(c.kind, "Get", id)
	return cache.GetOrFetch(ctx, c.cache, key, func(ctx context.Context) (T, error) {
		return c.base.Get(ctx, id)
	})
}

// Create stores a new record. Write operations pass through to the base
// repository.
func (c *CachedRepository[T]) Create(ctx context.Context, rec T) (T, error) {
	result, err := c.base.Create(ctx, rec)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return result, err
}

// Update applies a mutation to a stored record.
func (c *CachedRepository[T]) Update(ctx context.Context, id string, apply func(T) T) (T, error) {
	result, err := c.base.Update(ctx, id, apply)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return result, err
}

// Archive moves a record to the archived set.
func (c *CachedRepository[T]) Archive(ctx context.Context, id, actor string) (T, error) {
	result, err := c.base.Archive(ctx, id, actor)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return result, err
}

// Restore moves an archived record back to the active set.
func (c *CachedRepository[T]) Restore(ctx context.Context, id string) (T, error) {
	result, err := c.base.Restore(ctx, id)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return result, err
}

// BulkCreate stores multiple records.
func (c *CachedRepository[T]) BulkCreate(ctx context.Context, recs []T) ([]T, error) {
	result, err := c.base.BulkCreate(ctx, recs)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return result, err
}

// BulkDeleteAll removes every active record.
func (c *CachedRepository[T]) BulkDeleteAll(ctx context.Context) (int, error) {
	count, err := c.base.BulkDeleteAll(ctx)
	if err == nil {
		c.invalidateKind(ctx)
	}
	return count, err
}

// invalidateKind drops every cached read for the kind. Archive and restore
// move records between the active and archived sets, so targeting single
// keys would still have to clear both listings; clearing the namespace keeps
// the write paths uniform.
func (c *CachedRepository[T]) invalidateKind(ctx context.Context) {
	_ = c.cache.DeleteByPrefix(ctx, c.kind+cache.KeySeparator)
}
