package storage

import (
	"context"

	"exchange-metrics/internal/domain"
)

// BalanceSeriesStore provides read access to balance_data.
type BalanceSeriesStore interface {
	// Select retrieves samples matching the query's filter predicates,
	// ordered by timestamp ASC. Bucketing and deduplication happen in the
	// caller, not the store.
	Select(ctx context.Context, q domain.SeriesQuery) ([]*domain.BalanceSample, error)

	// LatestByExchange retrieves every row carrying the maximum timestamp
	// for the given exchange. Empty result if the exchange has no rows.
	LatestByExchange(ctx context.Context, exchangeID int64) ([]*domain.BalanceSample, error)
}

// VolumeSeriesStore provides read access to volume_data.
type VolumeSeriesStore interface {
	// AggregateByBucket groups samples matching the query's filter
	// predicates by (bucket, exchange_id, token_symbol) and computes
	// SUM(total_volume), AVG(price), MAX(day_total_volume) per group,
	// ordered by bucket ASC.
	AggregateByBucket(ctx context.Context, q domain.SeriesQuery) ([]*domain.VolumeBucketRow, error)

	// RecentSamples retrieves up to limit samples for an exchange, newest
	// first. Returns ErrInvalidInput if limit is not positive.
	RecentSamples(ctx context.Context, exchangeID int64, limit int) ([]*domain.VolumeSample, error)

	// LatestSample returns the newest sample for an exchange.
	// Returns ErrNotFound if the exchange has no rows.
	LatestSample(ctx context.Context, exchangeID int64) (*domain.VolumeSample, error)
}
