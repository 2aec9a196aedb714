package cache

import (
	"context"
	"errors"
	"fmt"
)

// FetchFn is the function signature CacheService expects when fetching from
// the source of truth.
type FetchFn[T any] func(ctx context.Context) (T, error)

// CacheService exposes the read-through caching operations the repository
// decorators need. It is exported so that other packages can provide
// alternate cache backends; the default implementation lives in
// internal/cacheinfra.
type CacheService interface {
	// GetOrFetch returns the cached value for key, or runs fetch, caches
	// the result, and returns it.
	GetOrFetch(ctx context.Context, key string, fetch func(ctx context.Context) (any, error)) (any, error)
	// Delete removes a single entry.
	Delete(ctx context.Context, key string) error
	// DeleteByPrefix removes every entry whose key starts with prefix.
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// ErrInvalidResultType reports that a cached value did not match the type
// the caller asked for. It indicates a key collision between call sites.
var ErrInvalidResultType = errors.New("cache: cached value has unexpected type")

// GetOrFetch is the type-safe wrapper over CacheService.GetOrFetch.
func GetOrFetch[T any](ctx context.Context, service CacheService, key string, fetch FetchFn[T]) (T, error) {
	var zero T

	result, err := service.GetOrFetch(ctx, key, func(ctx context.Context) (any, error) {
		return fetch(ctx)
	})
	if err != nil {
		return zero, err
	}
	if result == nil {
		return zero, nil
	}

	typed, ok := result.(T)
	if !ok {
		return zero, fmt.Errorf("%w: key %q holds %T", ErrInvalidResultType, key, result)
	}
	return typed, nil
}
