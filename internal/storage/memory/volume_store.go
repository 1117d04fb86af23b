package memory

import (
	"context"
	"sort"
	"sync"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/storage"
)

// VolumeStore is an in-memory implementation of storage.VolumeSeriesStore.
type VolumeStore struct {
	mu      sync.RWMutex
	samples []*domain.VolumeSample
}

// NewVolumeStore creates a new in-memory volume store.
func NewVolumeStore() *VolumeStore {
	return &VolumeStore{}
}

var _ storage.VolumeSeriesStore = (*VolumeStore)(nil)

// Add stores samples. Used for seeding in tests and memory-backed runs.
func (s *VolumeStore) Add(samples ...*domain.VolumeSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, v := range samples {
		copy := *v
		s.samples = append(s.samples, &copy)
	}
}

// volumeGroupKey identifies one aggregation group.
type volumeGroupKey struct {
	bucket      int64
	exchangeID  int64
	tokenSymbol string
}

// volumeAccumulator collects SUM/AVG/MAX state for one group.
type volumeAccumulator struct {
	row      *domain.VolumeBucketRow
	priceSum float64
	count    int
}

// AggregateByBucket groups matching samples by (bucket, exchange_id,
// token_symbol) and computes SUM(total_volume), AVG(price),
// MAX(day_total_volume) per group, ordered by bucket ASC.
func (s *VolumeStore) AggregateByBucket(_ context.Context, q domain.SeriesQuery) ([]*domain.VolumeBucketRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	groups := make(map[volumeGroupKey]*volumeAccumulator)

	for _, v := range s.samples {
		if !matchesVolume(v, q) {
			continue
		}

		bucket := domain.BucketFor(v.Timestamp, q.Bucket)
		key := volumeGroupKey{bucket: bucket.Unix(), exchangeID: v.ExchangeID, tokenSymbol: v.TokenSymbol}

		acc, ok := groups[key]
		if !ok {
			acc = &volumeAccumulator{row: &domain.VolumeBucketRow{
				Bucket:      bucket,
				ExchangeID:  v.ExchangeID,
				TokenSymbol: v.TokenSymbol,
			}}
			groups[key] = acc
		}

		acc.row.TotalQuantity += v.TotalVolume
		acc.priceSum += v.Price
		acc.count++
		if v.DayTotalVolume > acc.row.TotalVolumeDay {
			acc.row.TotalVolumeDay = v.DayTotalVolume
		}
	}

	result := make([]*domain.VolumeBucketRow, 0, len(groups))
	for _, acc := range groups {
		acc.row.AveragePrice = acc.priceSum / float64(acc.count)
		result = append(result, acc.row)
	}

	sort.Slice(result, func(i, j int) bool {
		if !result[i].Bucket.Equal(result[j].Bucket) {
			return result[i].Bucket.Before(result[j].Bucket)
		}
		if result[i].ExchangeID != result[j].ExchangeID {
			return result[i].ExchangeID < result[j].ExchangeID
		}
		return result[i].TokenSymbol < result[j].TokenSymbol
	})

	return result, nil
}

// RecentSamples retrieves up to limit samples for an exchange, newest first.
func (s *VolumeStore) RecentSamples(_ context.Context, exchangeID int64, limit int) ([]*domain.VolumeSample, error) {
	if limit <= 0 {
		return nil, storage.ErrInvalidInput
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.VolumeSample
	for _, v := range s.samples {
		if v.ExchangeID == exchangeID {
			copy := *v
			result = append(result, &copy)
		}
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.After(result[j].Timestamp)
	})

	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

// LatestSample returns the newest sample for an exchange.
func (s *VolumeStore) LatestSample(ctx context.Context, exchangeID int64) (*domain.VolumeSample, error) {
	samples, err := s.RecentSamples(ctx, exchangeID, 1)
	if err != nil {
		return nil, err
	}
	if len(samples) == 0 {
		return nil, storage.ErrNotFound
	}
	return samples[0], nil
}

// matchesVolume applies the query's conjunctive filter predicates.
func matchesVolume(v *domain.VolumeSample, q domain.SeriesQuery) bool {
	if v.TokenSymbol != q.Symbol {
		return false
	}
	if q.ExchangeID != nil && v.ExchangeID != *q.ExchangeID {
		return false
	}
	if q.Window.Bounded && v.Timestamp.Before(q.Window.Start) {
		return false
	}
	return true
}
