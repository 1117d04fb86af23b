package clickhouse

import (
	"context"
	"fmt"
	"time"

	"github.com/ClickHouse/clickhouse-go/v2/lib/driver"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/observability"
	"exchange-metrics/internal/storage"
)

// BalanceStore implements storage.BalanceSeriesStore using ClickHouse.
type BalanceStore struct {
	conn *Conn
}

// NewBalanceStore creates a new BalanceStore.
func NewBalanceStore(conn *Conn) *BalanceStore {
	return &BalanceStore{conn: conn}
}

// Compile-time interface check.
var _ storage.BalanceSeriesStore = (*BalanceStore)(nil)

// Select retrieves samples matching the query filters, ordered by timestamp ASC.
func (s *BalanceStore) Select(ctx context.Context, q domain.SeriesQuery) (samples []*domain.BalanceSample, err error) {
	start := time.Now()
	defer func() { observability.RecordDBQuery("clickhouse", "balance_select", time.Since(start).Seconds(), err) }()

	where, args := whereClause(q.Predicates())
	query := fmt.Sprintf(`
		SELECT exchange_id, token_symbol, wallet_balance, transfer_balance, timestamp
		FROM balance_data
		WHERE %s
		ORDER BY timestamp ASC
	`, where)

	rows, err := s.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select balance samples: %w", err)
	}
	defer rows.Close()

	return scanBalanceSamples(rows)
}

// LatestByExchange retrieves every row carrying the maximum timestamp for
// the given exchange.
func (s *BalanceStore) LatestByExchange(ctx context.Context, exchangeID int64) (samples []*domain.BalanceSample, err error) {
	start := time.Now()
	defer func() { observability.RecordDBQuery("clickhouse", "balance_latest", time.Since(start).Seconds(), err) }()

	query := `
		SELECT exchange_id, token_symbol, wallet_balance, transfer_balance, timestamp
		FROM balance_data
		WHERE exchange_id = ?
		  AND timestamp = (SELECT MAX(timestamp) FROM balance_data WHERE exchange_id = ?)
	`

	rows, err := s.conn.Query(ctx, query, exchangeID, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("select latest balance: %w", err)
	}
	defer rows.Close()

	return scanBalanceSamples(rows)
}

// scanBalanceSamples scans multiple rows into a slice of BalanceSample.
func scanBalanceSamples(rows driver.Rows) ([]*domain.BalanceSample, error) {
	var samples []*domain.BalanceSample

	for rows.Next() {
		var b domain.BalanceSample

		err := rows.Scan(
			&b.ExchangeID,
			&b.TokenSymbol,
			&b.WalletBalance,
			&b.TransferBalance,
			&b.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan balance row: %w", err)
		}

		samples = append(samples, &b)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate balance rows: %w", err)
	}

	return samples, nil
}
