// Package redis provides a Redis-backed kv.Store engine for deployments
// where the catalog must survive process restarts or be shared between
// server instances.
package redis

import (
	"context"
	"fmt"
	"time"

	goredis "github.com/redis/go-redis/v9"

	"github.com/goliatone/go-catalog-sync/apperr"
	"github.com/goliatone/go-catalog-sync/kv"
)

// Config holds the connection settings for the Redis engine.
type Config struct {
	// URL is a redis connection URL, e.g. redis://localhost:6379/0.
	URL string
	// KeyPrefix namespaces every key written by this store. Default: "catalog:".
	KeyPrefix string
	// PingTimeout bounds the connectivity check at construction time.
	PingTimeout time.Duration
}

// DefaultConfig returns a Config populated with sensible defaults.
func DefaultConfig() Config {
	return Config{
		URL:         "redis://localhost:6379/0",
		KeyPrefix:   "catalog:",
		PingTimeout: 5 * time.Second,
	}
}

// Validate checks whether the configuration values are valid.
func (c Config) Validate() error {
	if c.URL == "" {
		return fmt.Errorf("redis config: URL must not be empty")
	}
	if c.PingTimeout <= 0 {
		return fmt.Errorf("redis config: PingTimeout must be greater than 0")
	}
	return nil
}

// Store is a kv.Store backed by a Redis instance.
type Store struct {
	client *goredis.Client
	prefix string
}

var _ kv.Store = (*Store)(nil)

// New connects to Redis and verifies the connection with a bounded ping.
func New(cfg Config) (*Store, error) {
	if cfg.KeyPrefix == "" {
		cfg.KeyPrefix = "catalog:"
	}
	if cfg.PingTimeout == 0 {
		cfg.PingTimeout = 5 * time.Second
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	opt, err := goredis.ParseURL(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := goredis.NewClient(opt)

	ctx, cancel := context.WithTimeout(context.Background(), cfg.PingTimeout)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, apperr.Wrap(apperr.KindStoreUnavailable, "failed to connect to redis", err)
	}

	return &Store{client: client, prefix: cfg.KeyPrefix}, nil
}

func (s *Store) key(k string) string {
	return s.prefix + k
}

func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	value, err := s.client.Get(ctx, s.key(key)).Bytes()
	if err == goredis.Nil {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, apperr.Wrap(apperr.KindStoreUnavailable, "redis get", err)
	}
	return value, true, nil
}

func (s *Store) Set(ctx context.Context, key string, value []byte) error {
	if err := s.client.Set(ctx, s.key(key), value, 0).Err(); err != nil {
		return apperr.Wrap(apperr.KindStoreUnavailable, "redis set", err)
	}
	return nil
}

func (s *Store) Delete(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, s.key(key)).Err(); err != nil {
		return apperr.Wrap(apperr.KindStoreUnavailable, "redis delete", err)
	}
	return nil
}

func (s *Store) Has(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Exists(ctx, s.key(key)).Result()
	if err != nil {
		return false, apperr.Wrap(apperr.KindStoreUnavailable, "redis exists", err)
	}
	return n > 0, nil
}

// Close releases the underlying client connection pool.
func (s *Store) Close() error {
	return s.client.Close()
}
