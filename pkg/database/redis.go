package database

import (
	"context"
	"cyberar_admin_backend/internal/config"
	"cyberar_admin_backend/pkg/logger"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
	"go.uber.org/zap"
)

// RedisOptions maps the redis config section onto client options. Unset
// pool settings keep the client defaults.
func RedisOptions(cfg *config.RedisConfig) *redis.Options {
	opts := &redis.Options{
		Addr:     fmt.Sprintf("%s:%d", cfg.Host, cfg.Port),
		Password: cfg.Password,
		DB:       cfg.DB,
	}
	if cfg.PoolSize > 0 {
		opts.PoolSize = cfg.PoolSize
	}
	if cfg.MinIdleConns > 0 {
		opts.MinIdleConns = cfg.MinIdleConns
	}
	if cfg.DialTimeout > 0 {
		opts.DialTimeout = cfg.DialTimeout
	}
	return opts
}

// InitRedis connects the client backing the shared rate limiter and
// verifies it with a ping.
func InitRedis(ctx context.Context, cfg *config.RedisConfig) (*redis.Client, error) {
	opts := RedisOptions(cfg)
	rdb := redis.NewClient(opts)

	timeout := opts.DialTimeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	pingCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := rdb.Ping(pingCtx).Err(); err != nil {
		rdb.Close()
		return nil, fmt.Errorf("ping redis at %s: %w", opts.Addr, err)
	}

	logger.Log.Info("Redis connection established", zap.String("addr", opts.Addr), zap.Int("db", opts.DB))
	return rdb, nil
}
