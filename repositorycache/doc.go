// Package repositorycache provides the caching decorator for record
// repositories.
//
// # Overview
//
// CachedRepository wraps a record.API implementation and intercepts read
// operations to serve them from a cache, while write operations pass through
// to the base repository and invalidate the cached reads for the kind.
//
// # Basic Usage
//
// Create a cached repository by wrapping an existing repository:
//
//	base := record.NewRepository(store, codec, catalog.ItemHandlers())
//	service, err := cache.NewCacheService(cache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	cached := repositorycache.New[catalog.Item](base, "item", service)
//
//	// Use exactly like the base repository.
//	item, err := cached.Get(ctx, "item-123")
//
// # Cached vs Pass-through Operations
//
// Read operations (List, ListArchived, Get) are cached. Write operations
// (Create, Update, Archive, Restore, BulkCreate, BulkDeleteAll) pass
// through and then clear the kind's cache namespace.
//
// # Invalidation
//
// Every key the decorator issues starts with the kind, so invalidation is a
// single DeleteByPrefix over "<kind>::". This is deliberately coarse: the
// record store keeps listings as id-list indexes, so any write can change a
// listing, and archive/restore moves records between two listings at once.
// Per-key invalidation would save little and risk serving stale listings.
//
// # Error Handling
//
// Errors from the base repository are propagated unchanged and nothing is
// cached for the failed call. Invalidation errors after a successful write
// are ignored; the cache TTL bounds how long a stale entry can survive.
//
// # See Also
//
// For cache configuration and key construction, see the cache package.
// For dependency injection setup, see the pkg/di package.
package repositorycache
