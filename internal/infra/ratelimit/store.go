// Package ratelimit provides the storage behind the inbound request limiter.
package ratelimit

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	memoryStorage "github.com/gofiber/storage/memory/v2"
	redisStorage "github.com/gofiber/storage/redis/v2"
	"github.com/redis/go-redis/v9"

	"hellojoke/internal/infra/logging"
)

const pingTimeout = 2 * time.Second

// RedisConfig locates the redis instance shared by all replicas.
type RedisConfig struct {
	Addr string
	DB   int
}

// NewStore returns a redis-backed store when Addr is set and reachable and
// an in-memory store otherwise. It never returns nil.
func NewStore(cfg RedisConfig) fiber.Storage {
	if cfg.Addr == "" {
		return memoryStorage.New()
	}
	if err := ping(cfg); err != nil {
		logging.Warn("Redis unreachable, using in-memory limiter store", "addr", cfg.Addr, "error", err)
		return memoryStorage.New()
	}
	store := newRedisStore(cfg)
	if store == nil {
		return memoryStorage.New()
	}
	logging.Info("Using Redis for rate limiting", "addr", cfg.Addr, "db", cfg.DB)
	return store
}

func ping(cfg RedisConfig) error {
	rdb := redis.NewClient(&redis.Options{
		Addr:        cfg.Addr,
		DB:          cfg.DB,
		DialTimeout: pingTimeout,
	})
	defer rdb.Close()

	ctx, cancel := context.WithTimeout(context.Background(), pingTimeout)
	defer cancel()
	return rdb.Ping(ctx).Err()
}

// newRedisStore returns nil if the storage constructor panics.
func newRedisStore(cfg RedisConfig) (store fiber.Storage) {
	defer func() {
		if r := recover(); r != nil {
			logging.Error("Redis limiter store init panicked, falling back to memory", "panic", r)
			store = nil
		}
	}()
	return redisStorage.New(redisStorage.Config{
		Addrs:    []string{cfg.Addr},
		Database: cfg.DB,
	})
}
