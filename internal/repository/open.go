package repository

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/stemsi/admin-panel-backend/internal/config"
	"github.com/stemsi/admin-panel-backend/internal/database"
)

// OpenUserStore connects the backend named by cfg.StoreDriver. The returned
// func releases its connections.
func OpenUserStore(ctx context.Context, cfg *config.Config, log zerolog.Logger) (UserStore, func(), error) {
	switch cfg.StoreDriver {
	case config.StoreDriverPostgres:
		pool, err := database.NewPostgresPool(ctx, cfg, log)
		if err != nil {
			return nil, nil, err
		}
		return NewUserRepository(pool), pool.Close, nil

	case config.StoreDriverSQLite:
		db, err := database.NewSQLite(ctx, cfg.SQLitePath, log)
		if err != nil {
			return nil, nil, err
		}
		closeFn := func() {
			if sqlDB, err := db.DB(); err == nil {
				_ = sqlDB.Close()
			}
		}
		return NewSQLiteUserRepository(db), closeFn, nil

	default:
		return nil, nil, fmt.Errorf("unknown store driver %q", cfg.StoreDriver)
	}
}
