// Package testutil provides shared testing utilities for the easel project.
//
// This package contains reusable test infrastructure used across packages,
// following the pattern of standard library packages like net/http/httptest
// and testing/iotest.
package testutil

import (
	"context"
	"testing"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/easelhq/easel/db"
	"github.com/easelhq/easel/internal/sqlc"
)

// TestDB wraps a PostgreSQL test container with a ready connection pool and
// query layer. The schema is migrated to head before it is returned.
type TestDB struct {
	Container *postgres.PostgresContainer
	Pool      *pgxpool.Pool
	Queries   *sqlc.Queries
	ConnStr   string
}

// SetupTestDB starts an isolated PostgreSQL container, applies the embedded
// migrations, and returns a TestDB. Cleanup is registered with t.Cleanup, so
// callers do not need to terminate the container themselves.
//
// Example:
//
//	func TestStore(t *testing.T) {
//	    tdb := testutil.SetupTestDB(t)
//	    store := artifact.New(tdb.Queries, tdb.Pool, log.NewNop())
//	    ...
//	}
func SetupTestDB(t *testing.T) *TestDB {
	t.Helper()

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx,
		"postgres:16-alpine",
		postgres.WithDatabase("easel_test"),
		postgres.WithUsername("easel_test"),
		postgres.WithPassword("test_password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	if err != nil {
		t.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	t.Cleanup(func() {
		_ = pgContainer.Terminate(context.Background())
	})

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		t.Fatalf("Failed to get connection string: %v", err)
	}

	if err := db.Migrate(connStr); err != nil {
		t.Fatalf("Failed to run migrations: %v", err)
	}

	pool, err := pgxpool.New(ctx, connStr)
	if err != nil {
		t.Fatalf("Failed to create connection pool: %v", err)
	}
	t.Cleanup(pool.Close)

	if err := pool.Ping(ctx); err != nil {
		t.Fatalf("Failed to ping database: %v", err)
	}

	return &TestDB{
		Container: pgContainer,
		Pool:      pool,
		Queries:   sqlc.New(pool),
		ConnStr:   connStr,
	}
}
