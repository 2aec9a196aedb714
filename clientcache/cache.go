// Package clientcache implements the consumer-side cache: a small, generic
// TTL cache with a hard entry cap. It differs from the server-side
// read-through cache on purpose. Entries expire lazily on access, and when
// the cache is full the single oldest-inserted entry is evicted, not a
// percentage and not the least recently used one. Reads never extend a
// lifetime, so a stale entry can never pin itself into the cache.
package clientcache

import (
	"container/list"
	"fmt"
	"sync"
	"time"

	"github.com/VictoriaMetrics/metrics"
)

// Config holds the cache settings.
type Config struct {
	// Name labels the cache in metrics. Required.
	Name string
	// MaxEntries caps the number of live entries. Must be greater than 0.
	MaxEntries int
	// DefaultTTL applies to entries stored with Set. Must be greater than 0;
	// SetTTL overrides it per entry.
	DefaultTTL time.Duration
	// SweepInterval enables a periodic sweep that deletes expired entries
	// and updates the size gauge. Zero disables the sweeper; correctness
	// never depends on it because Get and Has expire lazily.
	SweepInterval time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
// The caller still has to pick a Name.
func DefaultConfig() Config {
	return Config{
		MaxEntries: 1000,
		DefaultTTL: 5 * time.Minute,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("clientcache: Name is required")
	}
	if c.MaxEntries <= 0 {
		return fmt.Errorf("clientcache: MaxEntries must be greater than 0")
	}
	if c.DefaultTTL <= 0 {
		return fmt.Errorf("clientcache: DefaultTTL must be greater than 0")
	}
	if c.SweepInterval < 0 {
		return fmt.Errorf("clientcache: SweepInterval must be non-negative")
	}
	return nil
}

type entry[V any] struct {
	key        string
	value      V
	insertedAt time.Time
	ttl        time.Duration

	elem *list.Element
}

// Cache is a TTL cache with insertion-order eviction. All methods are safe
// for concurrent use.
type Cache[V any] struct {
	mu      sync.Mutex
	entries map[string]*entry[V]
	// order holds *entry[V] values, oldest insertion at the front.
	// Overwriting a key re-inserts it at the back.
	order *list.List

	cfg  Config
	done chan struct{}

	nowFunc func() time.Time

	hits      *metrics.Counter
	misses    *metrics.Counter
	evictions *metrics.Counter
	size      *metrics.Gauge
}

// New creates a cache from cfg. It returns an error when the configuration
// is invalid. Close releases the sweeper when SweepInterval is set.
func New[V any](cfg Config) (*Cache[V], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := &Cache[V]{
		entries: make(map[string]*entry[V]),
		order:   list.New(),
		cfg:     cfg,
		done:    make(chan struct{}),
		nowFunc: time.Now,

		hits:      metrics.GetOrCreateCounter(fmt.Sprintf(`clientcache_hits_total{cache=%q}`, cfg.Name)),
		misses:    metrics.GetOrCreateCounter(fmt.Sprintf(`clientcache_misses_total{cache=%q}`, cfg.Name)),
		evictions: metrics.GetOrCreateCounter(fmt.Sprintf(`clientcache_evictions_total{cache=%q}`, cfg.Name)),
	}
	c.size = metrics.GetOrCreateGauge(fmt.Sprintf(`clientcache_entries{cache=%q}`, cfg.Name), func() float64 {
		c.mu.Lock()
		defer c.mu.Unlock()
		return float64(len(c.entries))
	})

	if cfg.SweepInterval > 0 {
		go c.sweepLoop()
	}
	return c, nil
}

// Set stores value under key with the default TTL.
func (c *Cache[V]) Set(key string, value V) {
	c.SetTTL(key, value, c.cfg.DefaultTTL)
}

// SetTTL stores value under key with an explicit TTL. Overwriting an
// existing key refreshes its insertion position. When the cache is at
// capacity, the single oldest-inserted entry is evicted first.
func (c *Cache[V]) SetTTL(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		ttl = c.cfg.DefaultTTL
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.entries[key]; ok {
		e.value = value
		e.insertedAt = c.nowFunc()
		e.ttl = ttl
		c.order.MoveToBack(e.elem)
		return
	}

	if len(c.entries) >= c.cfg.MaxEntries {
		c.evictOldestLocked()
	}

	e := &entry[V]{
		key:        key,
		value:      value,
		insertedAt: c.nowFunc(),
		ttl:        ttl,
	}
	e.elem = c.order.PushBack(e)
	c.entries[key] = e
}

// Get returns the live value for key. An expired entry is deleted and
// reported as a miss.
func (c *Cache[V]) Get(key string) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.liveLocked(key)
	if !ok {
		c.misses.Inc()
		var zero V
		return zero, false
	}
	c.hits.Inc()
	return e.value, true
}

// Has reports whether Get would hit for key, without counting a hit or miss.
func (c *Cache[V]) Has(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	_, ok := c.liveLocked(key)
	return ok
}

// Delete removes key. Deleting an absent key is a no-op.
func (c *Cache[V]) Delete(key string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(key)
}

// Clear removes every entry.
func (c *Cache[V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*entry[V])
	c.order.Init()
}

// Len returns the number of stored entries, expired ones included until
// they are touched or swept.
func (c *Cache[V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// Close stops the background sweeper. The cache stays usable afterwards.
func (c *Cache[V]) Close() {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
}

// liveLocked resolves key to a non-expired entry, deleting it when expired.
func (c *Cache[V]) liveLocked(key string) (*entry[V], bool) {
	e, ok := c.entries[key]
	if !ok {
		return nil, false
	}
	if c.nowFunc().Sub(e.insertedAt) > e.ttl {
		c.removeLocked(key)
		return nil, false
	}
	return e, true
}

func (c *Cache[V]) removeLocked(key string) {
	if e, ok := c.entries[key]; ok {
		c.order.Remove(e.elem)
		delete(c.entries, key)
	}
}

func (c *Cache[V]) evictOldestLocked() {
	front := c.order.Front()
	if front == nil {
		return
	}
	e := front.Value.(*entry[V])
	c.removeLocked(e.key)
	c.evictions.Inc()
}

func (c *Cache[V]) sweepLoop() {
	ticker := time.NewTicker(c.cfg.SweepInterval)
	defer ticker.Stop()

	for {
		select {
		case <-c.done:
			return
		case <-ticker.C:
			c.sweep()
		}
	}
}

// sweep deletes expired entries. It exists to keep the size gauge honest on
// idle caches; reads do not need it.
func (c *Cache[V]) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.nowFunc()
	for key, e := range c.entries {
		if now.Sub(e.insertedAt) > e.ttl {
			c.removeLocked(key)
		}
	}
}
