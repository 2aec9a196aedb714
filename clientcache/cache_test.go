package clientcache

import (
	"fmt"
	"testing"
	"time"
)

func newTestCache(t *testing.T, cfg Config) *Cache[string] {
	t.Helper()
	if cfg.Name == "" {
		cfg.Name = t.Name()
	}
	c, err := New[string](cfg)
	if err != nil {
		t.Fatalf("new cache: %v", err)
	}
	t.Cleanup(c.Close)
	return c
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantError bool
	}{
		{"valid default with name", func(c *Config) {}, false},
		{"missing name", func(c *Config) { c.Name = "" }, true},
		{"zero max entries", func(c *Config) { c.MaxEntries = 0 }, true},
		{"zero ttl", func(c *Config) { c.DefaultTTL = 0 }, true},
		{"negative sweep interval", func(c *Config) { c.SweepInterval = -time.Second }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.Name = "validate-test"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantError && err == nil {
				t.Error("expected validation error but got none")
			}
			if !tt.wantError && err != nil {
				t.Errorf("expected no validation error but got: %v", err)
			}
		})
	}
}

func TestCache_SetGet(t *testing.T) {
	cfg := DefaultConfig()
	c := newTestCache(t, cfg)

	c.Set("a", "alpha")

	got, ok := c.Get("a")
	if !ok || got != "alpha" {
		t.Fatalf("expected hit with alpha, got %q ok=%v", got, ok)
	}
	if _, ok := c.Get("missing"); ok {
		t.Fatal("expected miss for absent key")
	}
}

func TestCache_LazyExpiry(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = time.Minute
	c := newTestCache(t, cfg)

	now := time.Now()
	c.nowFunc = func() time.Time { return now }

	c.Set("a", "alpha")

	if _, ok := c.Get("a"); !ok {
		t.Fatal("expected fresh entry to hit")
	}

	c.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
	if _, ok := c.Get("a"); ok {
		t.Fatal("expected expired entry to miss")
	}

	// The expired entry was deleted, not just hidden.
	if c.Len() != 0 {
		t.Fatalf("expected expired entry to be removed, len = %d", c.Len())
	}
}

func TestCache_HasMatchesGet(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = time.Minute
	c := newTestCache(t, cfg)

	now := time.Now()
	c.nowFunc = func() time.Time { return now }

	c.Set("a", "alpha")
	if !c.Has("a") {
		t.Fatal("expected Has to report the fresh entry")
	}
	if c.Has("missing") {
		t.Fatal("expected Has to report absent key as miss")
	}

	c.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
	if c.Has("a") {
		t.Fatal("expected Has to report the expired entry as miss")
	}
}

func TestCache_EvictsExactlyOneOldest(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntries = 3
	c := newTestCache(t, cfg)

	c.Set("first", "1")
	c.Set("second", "2")
	c.Set("third", "3")

	// Reading an old entry must not protect it; eviction is by insertion
	// order, not recency of use.
	if _, ok := c.Get("first"); !ok {
		t.Fatal("expected first to be cached")
	}

	c.Set("fourth", "4")

	if c.Has("first") {
		t.Error("expected the oldest entry to be evicted")
	}
	for _, key := range []string{"second", "third", "fourth"} {
		if !c.Has(key) {
			t.Errorf("expected %q to survive the eviction", key)
		}
	}
	if c.Len() != 3 {
		t.Errorf("expected exactly one eviction, len = %d", c.Len())
	}
}

func TestCache_OverwriteRefreshesInsertionOrder(t *testing.T) {
	cfg := DefaultConfig()
	cfg.MaxEntries = 2
	c := newTestCache(t, cfg)

	c.Set("a", "1")
	c.Set("b", "2")

	// Overwriting does not evict and moves "a" to the back of the order.
	c.Set("a", "1-again")
	if c.Len() != 2 {
		t.Fatalf("expected overwrite to keep len at 2, got %d", c.Len())
	}

	c.Set("c", "3")

	if c.Has("b") {
		t.Error("expected b to be evicted as the oldest insertion")
	}
	if got, ok := c.Get("a"); !ok || got != "1-again" {
		t.Errorf("expected refreshed a to survive, got %q ok=%v", got, ok)
	}
}

func TestCache_SetTTLOverridesDefault(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = time.Hour
	c := newTestCache(t, cfg)

	now := time.Now()
	c.nowFunc = func() time.Time { return now }

	c.Set("long", "l")
	c.SetTTL("short", "s", time.Minute)

	c.nowFunc = func() time.Time { return now.Add(10 * time.Minute) }

	if !c.Has("long") {
		t.Error("expected default-TTL entry to survive")
	}
	if c.Has("short") {
		t.Error("expected short-TTL entry to expire")
	}
}

func TestCache_DeleteIsIdempotent(t *testing.T) {
	c := newTestCache(t, DefaultConfig())

	c.Set("a", "alpha")
	c.Delete("a")
	if c.Has("a") {
		t.Fatal("expected entry to be gone after delete")
	}
	c.Delete("a")
	c.Delete("never-stored")
}

func TestCache_SweepRemovesExpired(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DefaultTTL = time.Minute
	c := newTestCache(t, cfg)

	now := time.Now()
	c.nowFunc = func() time.Time { return now }

	for i := 0; i < 5; i++ {
		c.Set(fmt.Sprintf("key-%d", i), "v")
	}

	c.nowFunc = func() time.Time { return now.Add(2 * time.Minute) }
	c.sweep()

	if c.Len() != 0 {
		t.Fatalf("expected sweep to remove expired entries, len = %d", c.Len())
	}
}
