// Package main runs the exchange metrics API: read-only time-series
// balance and volume endpoints over a PostgreSQL or ClickHouse store.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"exchange-metrics/internal/api"
	"exchange-metrics/internal/series"
	"exchange-metrics/internal/storage"
	chstore "exchange-metrics/internal/storage/clickhouse"
	"exchange-metrics/internal/storage/memory"
	pgstore "exchange-metrics/internal/storage/postgres"
)

func main() {
	// Load .env file if exists
	loadEnvFile()

	// Parse flags (env vars as defaults)
	addr := flag.String("addr", envOr("METRICS_ADDR", ":9000"), "HTTP listen address")
	backend := flag.String("backend", envOr("METRICS_BACKEND", "postgres"), "Series store backend: postgres or clickhouse")
	postgresDSN := flag.String("postgres-dsn", os.Getenv("POSTGRES_DSN"), "PostgreSQL connection string")
	clickhouseDSN := flag.String("clickhouse-dsn", os.Getenv("CLICKHOUSE_DSN"), "ClickHouse connection string")
	useMemory := flag.Bool("use-memory", false, "Use in-memory storage instead of a database")

	flag.Parse()

	// Setup logger
	logger := log.New(os.Stdout, "[server] ", log.LstdFlags|log.Lshortfile)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Create stores
	balances, volumes, cleanup, err := createStores(ctx, *backend, *postgresDSN, *clickhouseDSN, *useMemory)
	if err != nil {
		logger.Fatalf("Failed to create stores: %v", err)
	}
	defer cleanup()

	svc := series.New(balances, volumes, log.New(os.Stdout, "[series] ", log.LstdFlags|log.Lshortfile))
	server := api.NewServer(svc, log.New(os.Stdout, "[api] ", log.LstdFlags|log.Lshortfile))

	srv := &http.Server{
		Addr:              *addr,
		Handler:           server.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Handle shutdown signals
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		sig := <-sigCh
		logger.Printf("Received signal %v, shutting down...", sig)

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Printf("Shutdown error: %v", err)
		}
		cancel()
	}()

	logger.Printf("Serving metrics API on %s (backend=%s, memory=%v)", *addr, *backend, *useMemory)
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		logger.Fatalf("Server error: %v", err)
	}

	logger.Println("Shutdown complete")
}

// createStores creates the balance and volume series stores for the
// selected backend. The returned cleanup closes the underlying handles.
func createStores(ctx context.Context, backend, postgresDSN, clickhouseDSN string, useMemory bool) (storage.BalanceSeriesStore, storage.VolumeSeriesStore, func(), error) {
	if useMemory {
		return memory.NewBalanceStore(), memory.NewVolumeStore(), func() {}, nil
	}

	switch backend {
	case "postgres":
		if postgresDSN == "" {
			return nil, nil, nil, fmt.Errorf("--postgres-dsn is required (use --use-memory for in-memory storage)")
		}
		pool, err := pgstore.NewPool(ctx, postgresDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to postgres: %w", err)
		}
		return pgstore.NewBalanceStore(pool), pgstore.NewVolumeStore(pool), pool.Close, nil

	case "clickhouse":
		if clickhouseDSN == "" {
			return nil, nil, nil, fmt.Errorf("--clickhouse-dsn is required (use --use-memory for in-memory storage)")
		}
		conn, err := chstore.NewConn(ctx, clickhouseDSN)
		if err != nil {
			return nil, nil, nil, fmt.Errorf("connect to clickhouse: %w", err)
		}
		cleanup := func() { conn.Close() }
		return chstore.NewBalanceStore(conn), chstore.NewVolumeStore(conn), cleanup, nil

	default:
		return nil, nil, nil, fmt.Errorf("unknown backend %q (want postgres or clickhouse)", backend)
	}
}

// envOr returns the environment variable value or a fallback.
func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// loadEnvFile loads environment variables from .env file if it exists.
func loadEnvFile() {
	data, err := os.ReadFile(".env")
	if err != nil {
		return // File doesn't exist, use system env vars
	}

	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		parts := strings.SplitN(line, "=", 2)
		if len(parts) != 2 {
			continue
		}

		key := strings.TrimSpace(parts[0])
		value := strings.TrimSpace(parts[1])

		// Don't override existing env vars
		if os.Getenv(key) == "" {
			os.Setenv(key, value)
		}
	}
}
