// Package cache provides the read-through caching contracts used by the
// repository decorators.
//
// # Overview
//
// The package exports one main interface and a type-safe wrapper:
//
//   - CacheService: read-through cache operations (GetOrFetch, Delete, DeleteByPrefix)
//   - GetOrFetch[T]: generic wrapper that recovers the concrete type from the cache
//
// # Basic Usage
//
// Build keys from the record kind, the method, and any identifiers:
//
//	key := cache.Key("item", "Get", itemID)
//	item, err := cache.GetOrFetch(ctx, service, key, func(ctx context.Context) (catalog.Item, error) {
//		return repo.Get(ctx, itemID)
//	})
//
// # Key Strategy
//
// Keys are plain strings joined with KeySeparator. Every cache key for a
// record kind shares the kind as its first segment, so write paths can
// invalidate the whole kind with a single DeleteByPrefix call. Keys are
// stable across processes; there is no per-process state in them.
//
// # Error Handling
//
// A fetch error is returned as-is and nothing is cached for that key.
// GetOrFetch[T] returns ErrInvalidResultType when a cached value does not
// match the requested type, which indicates two call sites share a key.
//
// # See Also
//
// For the repository decorators built on this package, see repositorycache.
// For the sturdyc-backed default implementation, see internal/cacheinfra.
package cache
