package clickhouse

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"

	"exchange-metrics/internal/storage/migrations"
)

// setupTestDB creates a ClickHouse container, applies the embedded schema
// and returns a connection. Returns a cleanup function that must be called
// when done.
func setupTestDB(t *testing.T) (*Conn, func()) {
	t.Helper()

	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()

	req := testcontainers.ContainerRequest{
		Image:        "clickhouse/clickhouse-server:24.1-alpine",
		ExposedPorts: []string{"9000/tcp", "8123/tcp"},
		WaitingFor: wait.ForAll(
			wait.ForLog("Application: Ready for connections").
				WithStartupTimeout(60*time.Second),
			wait.ForListeningPort("9000/tcp"),
		),
		Env: map[string]string{
			"CLICKHOUSE_DB":       "test",
			"CLICKHOUSE_USER":     "default",
			"CLICKHOUSE_PASSWORD": "",
		},
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
	})
	require.NoError(t, err)

	host, err := container.Host(ctx)
	require.NoError(t, err)

	port, err := container.MappedPort(ctx, "9000")
	require.NoError(t, err)

	dsn := fmt.Sprintf("clickhouse://%s:%s/test", host, port.Port())

	conn, err := NewConn(ctx, dsn)
	require.NoError(t, err)

	stmts, err := migrations.Statements(migrations.ClickhouseFS, "clickhouse")
	require.NoError(t, err, "failed to load schema")
	for _, stmt := range stmts {
		require.NoError(t, conn.Exec(ctx, stmt), "failed to apply schema statement")
	}

	cleanup := func() {
		conn.Close()
		_ = container.Terminate(ctx)
	}

	return conn, cleanup
}

// insertBalance seeds one balance_data row.
func insertBalance(t *testing.T, ctx context.Context, conn *Conn, exchangeID int64, symbol string, wallet, transfer float64, ts time.Time) {
	t.Helper()

	err := conn.Exec(ctx, `
		INSERT INTO balance_data (exchange_id, token_symbol, wallet_balance, transfer_balance, timestamp)
		VALUES (?, ?, ?, ?, ?)
	`, exchangeID, symbol, wallet, transfer, ts)
	require.NoError(t, err)
}

// insertVolume seeds one volume_data row.
func insertVolume(t *testing.T, ctx context.Context, conn *Conn, exchangeID int64, symbol string, volume, price, dayTotal float64, ts time.Time) {
	t.Helper()

	err := conn.Exec(ctx, `
		INSERT INTO volume_data (exchange_id, token_symbol, total_volume, price, day_total_volume, timestamp)
		VALUES (?, ?, ?, ?, ?, ?)
	`, exchangeID, symbol, volume, price, dayTotal, ts)
	require.NoError(t, err)
}

// ptr is a helper to create pointers to values.
func ptr[T any](v T) *T {
	return &v
}
