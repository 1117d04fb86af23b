package postgres

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	pgcontainer "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"exchange-metrics/internal/storage/migrations"
)

// setupTestDB creates a PostgreSQL container for testing and applies the
// embedded schema. Returns a cleanup function that must be called after
// tests complete.
func setupTestDB(t *testing.T) (*Pool, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	container, err := pgcontainer.Run(ctx, "postgres:15-alpine",
		pgcontainer.WithDatabase("testdb"),
		pgcontainer.WithUsername("test"),
		pgcontainer.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second),
		),
	)
	require.NoError(t, err, "failed to start postgres container")

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err, "failed to get connection string")

	pool, err := NewPool(ctx, dsn)
	require.NoError(t, err, "failed to create pool")

	stmts, err := migrations.Statements(migrations.PostgresFS, "postgres")
	require.NoError(t, err, "failed to load schema")
	for _, stmt := range stmts {
		_, err := pool.Exec(ctx, stmt)
		require.NoError(t, err, "failed to apply schema statement")
	}

	cleanup := func() {
		pool.Close()
		if err := container.Terminate(ctx); err != nil {
			t.Logf("failed to terminate container: %v", err)
		}
	}

	return pool, cleanup
}

// insertBalance seeds one balance_data row.
func insertBalance(t *testing.T, ctx context.Context, pool *Pool, exchangeID int64, symbol string, wallet, transfer float64, ts time.Time) {
	t.Helper()

	_, err := pool.Exec(ctx, `
		INSERT INTO balance_data (exchange_id, token_symbol, wallet_balance, transfer_balance, timestamp)
		VALUES ($1, $2, $3, $4, $5)
	`, exchangeID, symbol, wallet, transfer, ts)
	require.NoError(t, err)
}

// insertVolume seeds one volume_data row.
func insertVolume(t *testing.T, ctx context.Context, pool *Pool, exchangeID int64, symbol string, volume, price, dayTotal float64, ts time.Time) {
	t.Helper()

	_, err := pool.Exec(ctx, `
		INSERT INTO volume_data (exchange_id, token_symbol, total_volume, price, day_total_volume, timestamp)
		VALUES ($1, $2, $3, $4, $5, $6)
	`, exchangeID, symbol, volume, price, dayTotal, ts)
	require.NoError(t, err)
}

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}
