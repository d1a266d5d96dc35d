package main

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/spec-kit/catalog-service/internal/api/http/handlers"
	"github.com/spec-kit/catalog-service/internal/config"
	"github.com/spec-kit/catalog-service/internal/persistence"
	"github.com/spec-kit/catalog-service/internal/repository"
)

// storage holds the repositories for the configured driver together with the
// handles that must be closed on shutdown.
type storage struct {
	products     repository.ProductRepository
	users        repository.UserRepository
	dependencies map[string]handlers.Pinger

	executor      persistence.Executor
	migrationsDir string
	runMigrations bool
	closers       []func()
}

func openStorage(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*storage, error) {
	s := &storage{dependencies: map[string]handlers.Pinger{}}

	switch cfg.Storage.Driver {
	case config.DriverPostgres:
		pg, err := persistence.NewPostgres(ctx, cfg.Postgres, logger)
		if err != nil {
			return nil, fmt.Errorf("connect postgres: %w", err)
		}
		s.closers = append(s.closers, pg.Close)
		s.products = repository.NewPostgresProductRepository(pg.PoolHandle())
		s.users = repository.NewPostgresUserRepository(pg.PoolHandle())
		s.dependencies["postgres"] = pg
		s.executor, s.migrationsDir, s.runMigrations = pg, cfg.Postgres.MigrationsDir, cfg.Postgres.RunMigrations
	case config.DriverMySQL:
		db, err := persistence.NewMySQL(ctx, cfg.MySQL, logger)
		if err != nil {
			return nil, fmt.Errorf("connect mysql: %w", err)
		}
		s.closers = append(s.closers, db.Close)
		s.products = repository.NewMySQLProductRepository(db.DB)
		s.users = repository.NewMySQLUserRepository(db.DB)
		s.dependencies["mysql"] = db
		s.executor, s.migrationsDir, s.runMigrations = db, cfg.MySQL.MigrationsDir, cfg.MySQL.RunMigrations
	default:
		memory := repository.NewMemoryStore()
		s.products = memory.Products()
		s.users = memory.Users()
		logger.Warn("using in-memory storage; data is lost on restart")
	}

	if rdb := persistence.NewRedis(ctx, cfg.Redis, logger); rdb != nil {
		s.closers = append(s.closers, rdb.Close)
		s.products = repository.NewCachedProductRepository(s.products, rdb.Client, cfg.Redis.CacheTTL, logger)
		s.dependencies["redis"] = rdb
	}
	return s, nil
}

// migrate applies migrations when enabled in config or when forced.
func (s *storage) migrate(ctx context.Context, force bool, logger *zap.Logger) error {
	if s.executor == nil || !(force || s.runMigrations) {
		return nil
	}
	if err := persistence.RunMigrations(ctx, s.executor, s.migrationsDir, logger); err != nil {
		return fmt.Errorf("run migrations: %w", err)
	}
	return nil
}

func (s *storage) Close() {
	for i := len(s.closers) - 1; i >= 0; i-- {
		s.closers[i]()
	}
}
