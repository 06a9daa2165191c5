package database

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/config"
)

// RedisOptions builds client options for the login throttle from cfg. The
// throttle issues one short script per login, so a small pool is enough.
func RedisOptions(cfg *config.Config) (*redis.Options, error) {
	opt, err := redis.ParseURL(cfg.RedisURL)
	if err != nil {
		return nil, fmt.Errorf("parse redis URL: %w", err)
	}
	if cfg.ConnectTimeout > 0 {
		opt.DialTimeout = cfg.ConnectTimeout
	}
	if opt.PoolSize == 0 {
		opt.PoolSize = 4
	}
	return opt, nil
}

// NewRedisClient connects the login throttle store. Startup fails when the
// server does not answer a PING within ConnectTimeout.
func NewRedisClient(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*redis.Client, error) {
	opt, err := RedisOptions(cfg)
	if err != nil {
		return nil, err
	}

	rdb := redis.NewClient(opt)

	pingCtx, cancel := connectContext(ctx, cfg)
	defer cancel()
	if err := rdb.Ping(pingCtx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", opt.Addr, err)
	}

	log.Info().
		Str("addr", opt.Addr).
		Int("db", opt.DB).
		Int("pool_size", opt.PoolSize).
		Msg("Login throttle store connected")

	return rdb, nil
}
