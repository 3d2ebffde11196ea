package postgres

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/osse101/RecipeBOM_Go/internal/database"
)

var (
	testPool       *pgxpool.Pool
	testPoolErr    error
	testPoolOnce   sync.Once
	testContainer  *tcpostgres.PostgresContainer
	testPoolCancel func()
)

// startTestPool starts one postgres container per package run and applies migrations
func startTestPool() (*pgxpool.Pool, error) {
	testPoolOnce.Do(func() {
		// Handle potential panics from testcontainers
		defer func() {
			if r := recover(); r != nil {
				testPoolErr = fmt.Errorf("docker unavailable: %v", r)
			}
		}()

		ctx := context.Background()
		pgContainer, err := tcpostgres.Run(ctx,
			"postgres:15-alpine",
			tcpostgres.WithDatabase("testdb"),
			tcpostgres.WithUsername("testuser"),
			tcpostgres.WithPassword("testpass"),
			testcontainers.WithWaitStrategy(
				wait.ForLog("database system is ready to accept connections").
					WithOccurrence(2).
					WithStartupTimeout(30*time.Second)),
		)
		if err != nil {
			testPoolErr = fmt.Errorf("failed to start postgres container: %w", err)
			return
		}
		testContainer = pgContainer

		connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
		if err != nil {
			testPoolErr = fmt.Errorf("failed to get connection string: %w", err)
			return
		}

		pool, err := database.NewPool(ctx, connStr, database.PoolOptions{MaxConns: 10})
		if err != nil {
			testPoolErr = err
			return
		}
		if err := database.MigratePool(ctx, pool); err != nil {
			pool.Close()
			testPoolErr = err
			return
		}

		testPool = pool
		testPoolCancel = func() {
			pool.Close()
			_ = pgContainer.Terminate(ctx)
		}
	})
	return testPool, testPoolErr
}

// newTestRepository returns a repository over an emptied database, skipping when
// Docker is unavailable or in short mode
func newTestRepository(t *testing.T) *CatalogRepository {
	t.Helper()
	if testing.Short() {
		t.Skip("Skipping integration test in short mode")
	}

	pool, err := startTestPool()
	if err != nil {
		t.Skipf("Skipping integration test: %v", err)
	}

	repo := NewCatalogRepository(pool)
	if err := repo.ClearAll(context.Background()); err != nil {
		t.Fatalf("failed to reset catalog: %v", err)
	}
	return repo
}
