// Package di wires the catalog server's components together. It owns the
// choice of storage engine and codec, builds the cache layer, and hands out
// the fully assembled catalog service and auth store.
package di

import (
	"context"
	"fmt"
	"strings"

	"github.com/goliatone/go-catalog-sync/auth"
	"github.com/goliatone/go-catalog-sync/cache"
	"github.com/goliatone/go-catalog-sync/catalog"
	"github.com/goliatone/go-catalog-sync/kv"
	"github.com/goliatone/go-catalog-sync/kv/memory"
	"github.com/goliatone/go-catalog-sync/kv/redis"
	"github.com/goliatone/go-catalog-sync/pkg/logging"
	"github.com/goliatone/go-catalog-sync/record"
	"github.com/goliatone/go-catalog-sync/repositorycache"
)

// Storage engines selectable through Config.Engine.
const (
	EngineMemory = "memory"
	EngineRedis  = "redis"
)

// Codecs selectable through Config.Codec.
const (
	CodecJSON    = "json"
	CodecMsgpack = "msgpack"
)

// Config holds everything needed to assemble a container.
type Config struct {
	// Engine selects the kv store backing the catalog: memory or redis.
	Engine string
	// Redis configures the redis engine. Ignored for the memory engine.
	Redis redis.Config
	// Codec selects the record wire format: json or msgpack.
	Codec string
	// Cache configures the server-side read-through cache. CacheDisabled
	// skips the cache layer entirely, wiring repositories directly.
	Cache         cache.Config
	CacheDisabled bool
	// Auth configures session handling and admin seeding.
	Auth auth.Config
	// LogLevel is one of debug, info, warn, error.
	LogLevel string
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		Engine:   EngineMemory,
		Redis:    redis.DefaultConfig(),
		Codec:    CodecJSON,
		Cache:    cache.DefaultConfig(),
		Auth:     auth.DefaultConfig(),
		LogLevel: "info",
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	switch strings.ToLower(c.Engine) {
	case EngineMemory:
	case EngineRedis:
		if err := c.Redis.Validate(); err != nil {
			return err
		}
	default:
		return fmt.Errorf("di config: unknown engine %q (must be %s or %s)", c.Engine, EngineMemory, EngineRedis)
	}

	switch strings.ToLower(c.Codec) {
	case CodecJSON, CodecMsgpack:
	default:
		return fmt.Errorf("di config: unknown codec %q (must be %s or %s)", c.Codec, CodecJSON, CodecMsgpack)
	}

	if !c.CacheDisabled {
		if err := c.Cache.Validate(); err != nil {
			return err
		}
	}
	if _, err := logging.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("di config: %w", err)
	}
	return nil
}

// Container manages singleton instances of the server's components.
type Container struct {
	config       Config
	store        kv.Store
	codec        record.Codec
	cacheService cache.CacheService
	catalog      *catalog.Service
	auth         *auth.Store
	log          *logging.Logger
}

// NewContainer assembles a container from the provided configuration. The
// admin credentials record is seeded as part of assembly so the server is
// ready to authenticate as soon as construction returns.
func NewContainer(ctx context.Context, cfg Config) (*Container, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	level, _ := logging.ParseLevel(cfg.LogLevel)
	log := logging.New("catalog").WithLevel(level)

	store, err := newStore(cfg)
	if err != nil {
		return nil, err
	}

	codec := record.NewJSONCodec()
	if strings.EqualFold(cfg.Codec, CodecMsgpack) {
		codec = record.NewMsgpackCodec()
	}

	c := &Container{
		config: cfg,
		store:  store,
		codec:  codec,
		log:    log,
	}

	categories := record.NewRepository(store, codec, catalog.CategoryHandlers())
	items := record.NewRepository(store, codec, catalog.ItemHandlers())
	orders := record.NewRepository(store, codec, catalog.OrderHandlers())

	if cfg.CacheDisabled {
		c.catalog = catalog.NewService(categories, items, orders)
	} else {
		cacheService, err := cache.NewCacheService(cfg.Cache)
		if err != nil {
			return nil, err
		}
		c.cacheService = cacheService
		c.catalog = catalog.NewService(
			repositorycache.New[catalog.Category](categories, "category", cacheService),
			repositorycache.New[catalog.Item](items, "item", cacheService),
			repositorycache.New[catalog.Order](orders, "order", cacheService),
		)
	}

	c.auth = auth.NewStore(store, codec, cfg.Auth)
	if err := c.auth.EnsureAdmin(ctx); err != nil {
		return nil, fmt.Errorf("seed admin credentials: %w", err)
	}

	return c, nil
}

// NewContainerWithDefaults assembles a container using default configuration.
func NewContainerWithDefaults(ctx context.Context) (*Container, error) {
	return NewContainer(ctx, DefaultConfig())
}

func newStore(cfg Config) (kv.Store, error) {
	if strings.EqualFold(cfg.Engine, EngineRedis) {
		return redis.New(cfg.Redis)
	}
	return memory.New(), nil
}

// Store returns the singleton kv store instance.
func (c *Container) Store() kv.Store { return c.store }

// Codec returns the record codec selected by the configuration.
func (c *Container) Codec() record.Codec { return c.codec }

// CacheService returns the cache service, or nil when caching is disabled.
func (c *Container) CacheService() cache.CacheService { return c.cacheService }

// Catalog returns the assembled catalog service.
func (c *Container) Catalog() *catalog.Service { return c.catalog }

// Auth returns the assembled auth store.
func (c *Container) Auth() *auth.Store { return c.auth }

// Logger returns the container's logger.
func (c *Container) Logger() *logging.Logger { return c.log }

// Config returns a copy of the configuration used by this container.
func (c *Container) Config() Config { return c.config }

// Close releases resources held by the store engine.
func (c *Container) Close() error {
	if closer, ok := c.store.(interface{ Close() error }); ok {
		return closer.Close()
	}
	return nil
}
