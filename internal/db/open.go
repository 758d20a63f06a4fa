package db

import (
	"fmt"

	"github.com/Marga-Ghale/flatmeals-backend/internal/config"
	"github.com/Marga-Ghale/flatmeals-backend/internal/kv"
)

// Store is a kv.Store that owns a connection.
type Store interface {
	kv.Store
	Close() error
}

// Open connects the backend selected by cfg.StoreBackend. Postgres
// migrations run before the pool is opened.
func Open(cfg *config.Config) (Store, error) {
	switch cfg.StoreBackend {
	case "memory":
		return kv.NewMemoryStore(), nil
	case "redis":
		return NewRedisDB(cfg.RedisURL)
	case "postgres":
		if err := RunMigrations(cfg.DatabaseURL, cfg.MigrationsPath); err != nil {
			return nil, err
		}
		return NewPostgresDB(cfg.DatabaseURL)
	case "sqlite":
		return NewSQLiteDB(cfg.SQLitePath)
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}
