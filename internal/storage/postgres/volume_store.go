package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/observability"
	"exchange-metrics/internal/storage"
)

// VolumeStore implements storage.VolumeSeriesStore using PostgreSQL.
type VolumeStore struct {
	pool *Pool
}

// NewVolumeStore creates a new VolumeStore.
func NewVolumeStore(pool *Pool) *VolumeStore {
	return &VolumeStore{pool: pool}
}

// Compile-time interface check.
var _ storage.VolumeSeriesStore = (*VolumeStore)(nil)

// AggregateByBucket groups matching samples by (bucket, exchange_id,
// token_symbol), aggregation pushed down to the database.
func (s *VolumeStore) AggregateByBucket(ctx context.Context, q domain.SeriesQuery) (result []*domain.VolumeBucketRow, err error) {
	start := time.Now()
	defer func() { observability.RecordDBQuery("postgres", "volume_aggregate", time.Since(start).Seconds(), err) }()

	where, args := whereClause(q.Predicates())
	query := fmt.Sprintf(`
		SELECT %s AS bucket, exchange_id, token_symbol,
		       SUM(total_volume) AS total_quantity,
		       AVG(price) AS average_price,
		       MAX(day_total_volume) AS total_volume_day
		FROM volume_data
		WHERE %s
		GROUP BY bucket, exchange_id, token_symbol
		ORDER BY bucket ASC
	`, bucketExpr(q.Bucket), where)

	rows, err := s.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("aggregate volume by bucket: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var r domain.VolumeBucketRow

		err := rows.Scan(
			&r.Bucket,
			&r.ExchangeID,
			&r.TokenSymbol,
			&r.TotalQuantity,
			&r.AveragePrice,
			&r.TotalVolumeDay,
		)
		if err != nil {
			return nil, fmt.Errorf("scan volume bucket row: %w", err)
		}

		result = append(result, &r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume bucket rows: %w", err)
	}

	return result, nil
}

// RecentSamples retrieves up to limit samples for an exchange, newest first.
func (s *VolumeStore) RecentSamples(ctx context.Context, exchangeID int64, limit int) (samples []*domain.VolumeSample, err error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	start := time.Now()
	defer func() { observability.RecordDBQuery("postgres", "volume_recent", time.Since(start).Seconds(), err) }()

	query := `
		SELECT exchange_id, token_symbol, total_volume, price, day_total_volume, timestamp
		FROM volume_data
		WHERE exchange_id = $1
		ORDER BY timestamp DESC
		LIMIT $2
	`

	rows, err := s.pool.Query(ctx, query, exchangeID, limit)
	if err != nil {
		return nil, fmt.Errorf("select recent volume samples: %w", err)
	}
	defer rows.Close()

	return scanVolumeSamples(rows)
}

// LatestSample returns the newest sample for an exchange.
func (s *VolumeStore) LatestSample(ctx context.Context, exchangeID int64) (sample *domain.VolumeSample, err error) {
	start := time.Now()
	defer func() { observability.RecordDBQuery("postgres", "volume_latest", time.Since(start).Seconds(), err) }()

	query := `
		SELECT exchange_id, token_symbol, total_volume, price, day_total_volume, timestamp
		FROM volume_data
		WHERE exchange_id = $1
		ORDER BY timestamp DESC
		LIMIT 1
	`

	var v domain.VolumeSample
	err = s.pool.QueryRow(ctx, query, exchangeID).Scan(
		&v.ExchangeID,
		&v.TokenSymbol,
		&v.TotalVolume,
		&v.Price,
		&v.DayTotalVolume,
		&v.Timestamp,
	)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("select latest volume sample: %w", err)
	}

	return &v, nil
}

// scanVolumeSamples scans multiple rows into a slice of VolumeSample.
func scanVolumeSamples(rows pgx.Rows) ([]*domain.VolumeSample, error) {
	var samples []*domain.VolumeSample

	for rows.Next() {
		var v domain.VolumeSample

		err := rows.Scan(
			&v.ExchangeID,
			&v.TokenSymbol,
			&v.TotalVolume,
			&v.Price,
			&v.DayTotalVolume,
			&v.Timestamp,
		)
		if err != nil {
			return nil, fmt.Errorf("scan volume row: %w", err)
		}

		samples = append(samples, &v)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate volume rows: %w", err)
	}

	return samples, nil
}
