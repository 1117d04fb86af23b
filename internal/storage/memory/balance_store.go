package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/storage"
)

// BalanceStore is an in-memory implementation of storage.BalanceSeriesStore.
type BalanceStore struct {
	mu      sync.RWMutex
	samples []*domain.BalanceSample
}

// NewBalanceStore creates a new in-memory balance store.
func NewBalanceStore() *BalanceStore {
	return &BalanceStore{}
}

var _ storage.BalanceSeriesStore = (*BalanceStore)(nil)

// Add stores samples. Used for seeding in tests and memory-backed runs.
func (s *BalanceStore) Add(samples ...*domain.BalanceSample) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, b := range samples {
		copy := *b
		s.samples = append(s.samples, &copy)
	}
}

// Select retrieves samples matching the query filters, ordered by timestamp ASC.
func (s *BalanceStore) Select(_ context.Context, q domain.SeriesQuery) ([]*domain.BalanceSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var result []*domain.BalanceSample
	for _, b := range s.samples {
		if !matchesBalance(b, q) {
			continue
		}
		copy := *b
		result = append(result, &copy)
	}

	sort.SliceStable(result, func(i, j int) bool {
		return result[i].Timestamp.Before(result[j].Timestamp)
	})

	return result, nil
}

// LatestByExchange retrieves every row carrying the maximum timestamp for
// the given exchange.
func (s *BalanceStore) LatestByExchange(_ context.Context, exchangeID int64) ([]*domain.BalanceSample, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var max time.Time
	for _, b := range s.samples {
		if b.ExchangeID == exchangeID && b.Timestamp.After(max) {
			max = b.Timestamp
		}
	}

	var result []*domain.BalanceSample
	for _, b := range s.samples {
		if b.ExchangeID == exchangeID && b.Timestamp.Equal(max) {
			copy := *b
			result = append(result, &copy)
		}
	}
	return result, nil
}

// matchesBalance applies the query's conjunctive filter predicates.
func matchesBalance(b *domain.BalanceSample, q domain.SeriesQuery) bool {
	if b.TokenSymbol != q.Symbol {
		return false
	}
	if q.ExchangeID != nil && b.ExchangeID != *q.ExchangeID {
		return false
	}
	if q.Window.Bounded && b.Timestamp.Before(q.Window.Start) {
		return false
	}
	return true
}
