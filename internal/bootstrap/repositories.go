package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/osse101/RecipeBOM_Go/internal/config"
	"github.com/osse101/RecipeBOM_Go/internal/database"
	"github.com/osse101/RecipeBOM_Go/internal/database/memory"
	"github.com/osse101/RecipeBOM_Go/internal/database/postgres"
	"github.com/osse101/RecipeBOM_Go/internal/database/sqlite"
	"github.com/osse101/RecipeBOM_Go/internal/repository"
)

// Storage is the opened catalog store plus whatever must be released with it
type Storage struct {
	Driver  string
	Catalog repository.Catalog
	closers []func() error
	version func(ctx context.Context) (int64, error)
}

// SchemaVersion reports the applied migration version; the memory driver has none
func (s *Storage) SchemaVersion(ctx context.Context) (int64, error) {
	if s.version == nil {
		return 0, nil
	}
	return s.version(ctx)
}

// Close releases every handle held by the store
func (s *Storage) Close() error {
	var errs []error
	for i := len(s.closers) - 1; i >= 0; i-- {
		if err := s.closers[i](); err != nil {
			errs = append(errs, err)
		}
	}
	s.closers = nil
	return errors.Join(errs...)
}

// OpenStorage opens the store selected by cfg.DBDriver and brings its schema
// up to date. The memory driver needs neither.
func OpenStorage(ctx context.Context, cfg *config.Config) (*Storage, error) {
	st := &Storage{Driver: cfg.DBDriver}

	switch cfg.DBDriver {
	case config.DriverMemory:
		st.Catalog = memory.NewCatalog()

	case config.DriverSQLite:
		db, err := sqlite.Open(ctx, cfg.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgOpenSQLite, err)
		}
		repo := sqlite.NewCatalogRepository(db)
		st.Catalog = repo
		st.closers = append(st.closers, repo.Close)
		st.version = func(ctx context.Context) (int64, error) {
			return database.SchemaVersion(ctx, db, database.DialectSQLite)
		}

	case config.DriverPostgres:
		pool, err := database.NewPool(ctx, cfg.GetDBConnString(), database.PoolOptions{
			MaxConns: cfg.DBMaxConns,
			MaxIdle:  cfg.DBMaxIdle,
			MaxLife:  cfg.DBMaxLife,
		})
		if err != nil {
			return nil, fmt.Errorf("%s: %w", ErrMsgConnectPostgres, err)
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			return nil, fmt.Errorf("%s: %w", ErrMsgMigratePostgres, err)
		}
		st.Catalog = postgres.NewCatalogRepository(pool)
		st.closers = append(st.closers, func() error {
			pool.Close()
			return nil
		})
		st.version = func(ctx context.Context) (int64, error) {
			return database.SchemaVersionPool(ctx, pool)
		}

	default:
		return nil, fmt.Errorf("%s: %q", ErrMsgUnknownDriver, cfg.DBDriver)
	}

	slog.Info(LogMsgStorageOpened, "driver", cfg.DBDriver)
	return st, nil
}
