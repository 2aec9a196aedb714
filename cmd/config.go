package cmd

import (
	"context"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/goliatone/go-catalog-sync/pkg/di"
)

// addContainerFlags registers the flags every container-building command
// shares. Defaults mirror di.DefaultConfig so flag help stays truthful.
func addContainerFlags(cmd *cobra.Command) {
	defaults := di.DefaultConfig()

	cmd.PersistentFlags().String("store-engine", defaults.Engine, "storage engine (memory, redis)")
	cmd.PersistentFlags().String("redis-url", defaults.Redis.URL, "redis connection URL (redis engine only)")
	cmd.PersistentFlags().String("redis-key-prefix", defaults.Redis.KeyPrefix, "key prefix for the redis engine")
	cmd.PersistentFlags().String("codec", defaults.Codec, "record wire format (json, msgpack)")
	cmd.PersistentFlags().Int("cache-capacity", defaults.Cache.Capacity, "maximum number of cached entries")
	cmd.PersistentFlags().Duration("cache-ttl", defaults.Cache.TTL, "cache entry time to live")
	cmd.PersistentFlags().Bool("cache-disabled", false, "disable the read-through cache")
	cmd.PersistentFlags().String("admin-email", "", "admin account email, seeded at startup")
	cmd.PersistentFlags().String("admin-password", "", "admin account password, seeded at startup")
	cmd.PersistentFlags().Duration("session-ttl", defaults.Auth.SessionTTL, "session lifetime")
	cmd.PersistentFlags().String("log-level", defaults.LogLevel, "log level (debug, info, warn, error)")
}

// bindContainerFlags binds a command's flags to viper so environment
// variables override defaults and flags override both.
func bindContainerFlags(cmd *cobra.Command, _ []string) error {
	return viper.BindPFlags(cmd.Flags())
}

// containerConfig reads the resolved configuration out of viper.
func containerConfig() di.Config {
	cfg := di.DefaultConfig()

	cfg.Engine = viper.GetString("store-engine")
	cfg.Redis.URL = viper.GetString("redis-url")
	cfg.Redis.KeyPrefix = viper.GetString("redis-key-prefix")
	cfg.Codec = viper.GetString("codec")
	cfg.Cache.Capacity = viper.GetInt("cache-capacity")
	cfg.Cache.TTL = viper.GetDuration("cache-ttl")
	cfg.CacheDisabled = viper.GetBool("cache-disabled")
	cfg.Auth.AdminEmail = viper.GetString("admin-email")
	cfg.Auth.AdminPassword = viper.GetString("admin-password")
	cfg.Auth.SessionTTL = viper.GetDuration("session-ttl")
	cfg.LogLevel = viper.GetString("log-level")

	return cfg
}

// buildContainer assembles a container from the resolved configuration.
func buildContainer(ctx context.Context) (*di.Container, error) {
	return di.NewContainer(ctx, containerConfig())
}
