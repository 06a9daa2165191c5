package database

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
	"github.com/stemsi/admin-panel-backend/internal/config"
)

// PostgresPoolConfig builds the pool settings for the user store from cfg.
// Pool bounds and connection lifetimes come from config; the per-connection
// dial timeout is ConnectTimeout.
func PostgresPoolConfig(cfg *config.Config) (*pgxpool.Config, error) {
	poolCfg, err := pgxpool.ParseConfig(cfg.DatabaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse database URL: %w", err)
	}

	poolCfg.MaxConns = cfg.MaxDBConns
	poolCfg.MinConns = cfg.MinDBConns
	if cfg.DBConnMaxLifetime > 0 {
		poolCfg.MaxConnLifetime = cfg.DBConnMaxLifetime
	}
	if cfg.DBConnMaxIdleTime > 0 {
		poolCfg.MaxConnIdleTime = cfg.DBConnMaxIdleTime
	}
	if cfg.ConnectTimeout > 0 {
		poolCfg.ConnConfig.ConnectTimeout = cfg.ConnectTimeout
	}
	if _, ok := poolCfg.ConnConfig.RuntimeParams["application_name"]; !ok {
		poolCfg.ConnConfig.RuntimeParams["application_name"] = "admin-panel-backend"
	}

	return poolCfg, nil
}

// NewPostgresPool opens the PostgreSQL user store pool and fails fast when
// the server does not answer within ConnectTimeout.
func NewPostgresPool(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*pgxpool.Pool, error) {
	poolCfg, err := PostgresPoolConfig(cfg)
	if err != nil {
		return nil, err
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolCfg)
	if err != nil {
		return nil, fmt.Errorf("create pool: %w", err)
	}

	pingCtx, cancel := connectContext(ctx, cfg)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("ping database %s/%s: %w", poolCfg.ConnConfig.Host, poolCfg.ConnConfig.Database, err)
	}

	log.Info().
		Str("host", poolCfg.ConnConfig.Host).
		Str("database", poolCfg.ConnConfig.Database).
		Int32("min_conns", poolCfg.MinConns).
		Int32("max_conns", poolCfg.MaxConns).
		Dur("max_conn_lifetime", poolCfg.MaxConnLifetime).
		Msg("User store connected")

	return pool, nil
}

// connectContext bounds startup pings by ConnectTimeout when one is set.
func connectContext(ctx context.Context, cfg *config.Config) (context.Context, context.CancelFunc) {
	if cfg.ConnectTimeout <= 0 {
		return context.WithCancel(ctx)
	}
	return context.WithTimeout(ctx, cfg.ConnectTimeout)
}
