// Package catalogsync implements the consumer-side synchronization layer:
// serve cached catalog data immediately, refresh it in the background, and
// only surface errors when there is nothing cached to fall back on.
package catalogsync

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"

	"github.com/goliatone/go-catalog-sync/catalog"
	"github.com/goliatone/go-catalog-sync/clientcache"
	"github.com/goliatone/go-catalog-sync/pkg/logging"
)

// Source is where the controller fetches fresh catalog data from, typically
// an HTTP client for the catalog API.
type Source interface {
	Categories(ctx context.Context) ([]catalog.Category, error)
	Items(ctx context.Context) ([]catalog.Item, error)
}

// Config holds the controller settings.
type Config struct {
	// CollectionTTL bounds how long a cached collection is served without
	// a revalidating fetch. Must be greater than 0.
	CollectionTTL time.Duration
	// DerivedTTL applies to the per-category item views, which are derived
	// data and go stale faster. Must be greater than 0.
	DerivedTTL time.Duration
	// RefreshTimeout bounds a background refresh fetch. Must be greater
	// than 0.
	RefreshTimeout time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		CollectionTTL:  time.Minute,
		DerivedTTL:     15 * time.Second,
		RefreshTimeout: 10 * time.Second,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.CollectionTTL <= 0 {
		return fmt.Errorf("catalogsync: CollectionTTL must be greater than 0")
	}
	if c.DerivedTTL <= 0 {
		return fmt.Errorf("catalogsync: DerivedTTL must be greater than 0")
	}
	if c.RefreshTimeout <= 0 {
		return fmt.Errorf("catalogsync: RefreshTimeout must be greater than 0")
	}
	return nil
}

// collection is the per-collection state machine. Every fetch is tagged
// with a monotonic sequence number and a completion is applied only when
// its sequence is newer than the last applied one, so a slow fetch can
// never clobber fresher data.
type collection[T any] struct {
	name string

	mu      sync.Mutex
	state   State
	seq     uint64
	applied uint64

	cache *clientcache.Cache[[]T]
	ttl   time.Duration

	refreshOK        *metrics.Counter
	refreshFailed    *metrics.Counter
	refreshDiscarded *metrics.Counter
}

const collectionKey = "all"

func newCollection[T any](name string, ttl time.Duration) (*collection[T], error) {
	cache, err := clientcache.New[[]T](clientcache.Config{
		Name:       "sync-" + name,
		MaxEntries: 1,
		DefaultTTL: ttl,
	})
	if err != nil {
		return nil, err
	}
	return &collection[T]{
		name:  name,
		state: StateEmpty,
		cache: cache,
		ttl:   ttl,

		refreshOK:        metrics.GetOrCreateCounter(fmt.Sprintf(`catalogsync_refresh_total{collection=%q,result="ok"}`, name)),
		refreshFailed:    metrics.GetOrCreateCounter(fmt.Sprintf(`catalogsync_refresh_total{collection=%q,result="error"}`, name)),
		refreshDiscarded: metrics.GetOrCreateCounter(fmt.Sprintf(`catalogsync_refresh_total{collection=%q,result="discarded"}`, name)),
	}, nil
}

// Controller coordinates the category and item collections plus the derived
// per-category views.
type Controller struct {
	source Source
	cfg    Config
	log    *logging.Logger

	categories *collection[catalog.Category]
	items      *collection[catalog.Item]
	derived    *clientcache.Cache[[]catalog.Item]

	// refreshWG tracks in-flight background refreshes so Close can drain
	// them.
	refreshWG sync.WaitGroup
}

// New creates a controller over source.
func New(source Source, cfg Config, log *logging.Logger) (*Controller, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	categories, err := newCollection[catalog.Category]("categories", cfg.CollectionTTL)
	if err != nil {
		return nil, err
	}
	items, err := newCollection[catalog.Item]("items", cfg.CollectionTTL)
	if err != nil {
		return nil, err
	}
	derived, err := clientcache.New[[]catalog.Item](clientcache.Config{
		Name:       "sync-derived",
		MaxEntries: 256,
		DefaultTTL: cfg.DerivedTTL,
	})
	if err != nil {
		return nil, err
	}

	return &Controller{
		source:     source,
		cfg:        cfg,
		log:        log,
		categories: categories,
		items:      items,
		derived:    derived,
	}, nil
}

// Categories returns the category collection, cached data first. A cache
// hit is served immediately and revalidated in the background; a fetch
// error surfaces only when nothing is cached.
func (c *Controller) Categories(ctx context.Context) ([]catalog.Category, error) {
	return getCollection(ctx, c, c.categories, func(ctx context.Context) ([]catalog.Category, error) {
		categories, err := c.source.Categories(ctx)
		if err != nil {
			return nil, err
		}
		return sortCategories(categories), nil
	})
}

// Items returns the item collection, cached data first, sorted by category
// display order then item display order.
func (c *Controller) Items(ctx context.Context) ([]catalog.Item, error) {
	return getCollection(ctx, c, c.items, func(ctx context.Context) ([]catalog.Item, error) {
		items, err := c.source.Items(ctx)
		if err != nil {
			return nil, err
		}
		return sortItems(items, c.categoryOrder()), nil
	})
}

// ItemsForCategory returns the items of one category. The view derives from
// the item collection and is cached separately under the shorter derived
// TTL.
func (c *Controller) ItemsForCategory(ctx context.Context, categoryID string) ([]catalog.Item, error) {
	key := "category::" + categoryID
	if view, ok := c.derived.Get(key); ok {
		return view, nil
	}

	items, err := c.Items(ctx)
	if err != nil {
		return nil, err
	}

	view := make([]catalog.Item, 0, len(items))
	for _, item := range items {
		if item.CategoryID == categoryID {
			view = append(view, item)
		}
	}
	c.derived.Set(key, view)
	return view, nil
}

// CategoriesState reports the category collection state.
func (c *Controller) CategoriesState() State {
	return c.categories.currentState()
}

// ItemsState reports the item collection state.
func (c *Controller) ItemsState() State {
	return c.items.currentState()
}

// Invalidate drops every cached collection and derived view. In-flight
// refreshes started before the call are discarded when they complete.
func (c *Controller) Invalidate() {
	c.categories.invalidate()
	c.items.invalidate()
	c.derived.Clear()
}

// Close drains in-flight refreshes and releases the caches.
func (c *Controller) Close() {
	c.refreshWG.Wait()
	c.categories.cache.Close()
	c.items.cache.Close()
	c.derived.Close()
}

// categoryOrder resolves category display orders from whatever category
// snapshot is currently cached. With no snapshot every id is unresolved and
// items fall back to their own display order.
func (c *Controller) categoryOrder() func(string) (int, bool) {
	snapshot, _ := c.categories.peek()
	return categoryOrderResolver(snapshot)
}

// getCollection runs the per-collection read path.
func getCollection[T any](ctx context.Context, ctrl *Controller, col *collection[T], fetch func(context.Context) ([]T, error)) ([]T, error) {
	col.mu.Lock()

	if cached, ok := col.cache.Get(collectionKey); ok {
		launch := col.state != StateRefreshing
		if launch {
			col.state = StateRefreshing
			col.seq++
			seq := col.seq
			ctrl.refreshWG.Add(1)
			go func() {
				defer ctrl.refreshWG.Done()
				rctx, cancel := context.WithTimeout(context.Background(), ctrl.cfg.RefreshTimeout)
				defer cancel()
				data, err := fetch(rctx)
				col.apply(seq, data, err, ctrl.log)
			}()
		} else {
			col.state = StateCachedReady
		}
		col.mu.Unlock()
		return cached, nil
	}

	col.state = StateLoading
	col.seq++
	seq := col.seq
	col.mu.Unlock()

	data, err := fetch(ctx)
	if err != nil {
		col.mu.Lock()
		col.state = StateError
		col.mu.Unlock()
		return nil, err
	}

	col.mu.Lock()
	defer col.mu.Unlock()
	if seq > col.applied {
		col.applied = seq
		col.cache.SetTTL(collectionKey, data, col.ttl)
		col.state = StateReady
		return data, nil
	}
	// A newer fetch already applied; serve its result instead of ours.
	col.refreshDiscarded.Inc()
	if cached, ok := col.cache.Get(collectionKey); ok {
		return cached, nil
	}
	return data, nil
}

// apply records a refresh completion. Completions older than the last
// applied one are discarded.
func (col *collection[T]) apply(seq uint64, data []T, err error, log *logging.Logger) {
	col.mu.Lock()
	defer col.mu.Unlock()

	if err != nil {
		// Cached data keeps being served; the failure is logged, not
		// surfaced.
		col.refreshFailed.Inc()
		col.state = StateCachedReady
		if log != nil {
			log.Warnf("%s refresh failed, serving cached data: %v", col.name, err)
		}
		return
	}

	if seq <= col.applied {
		col.refreshDiscarded.Inc()
		if col.state == StateRefreshing {
			col.state = StateReady
		}
		return
	}

	col.applied = seq
	col.cache.SetTTL(collectionKey, data, col.ttl)
	col.state = StateReady
	col.refreshOK.Inc()
}

// peek returns the cached snapshot without changing state or launching a
// refresh.
func (col *collection[T]) peek() ([]T, bool) {
	return col.cache.Get(collectionKey)
}

func (col *collection[T]) currentState() State {
	col.mu.Lock()
	defer col.mu.Unlock()
	return col.state
}

// invalidate drops the cached snapshot and fast-forwards the applied
// counter so refreshes launched before the invalidation cannot resurrect
// the dropped data.
func (col *collection[T]) invalidate() {
	col.mu.Lock()
	defer col.mu.Unlock()
	col.cache.Delete(collectionKey)
	col.applied = col.seq
	col.state = StateEmpty
}
