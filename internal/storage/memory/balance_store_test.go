package memory

import (
	"context"
	"testing"
	"time"

	"exchange-metrics/internal/domain"
)

func TestBalanceStore_SelectFiltersAndOrders(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	t0 := time.Date(2024, 6, 15, 10, 0, 0, 0, time.UTC)
	store.Add(
		&domain.BalanceSample{ExchangeID: 0, TokenSymbol: "BTC", WalletBalance: 1, Timestamp: t0.Add(2 * time.Hour)},
		&domain.BalanceSample{ExchangeID: 0, TokenSymbol: "BTC", WalletBalance: 2, Timestamp: t0},
		&domain.BalanceSample{ExchangeID: 1, TokenSymbol: "BTC", WalletBalance: 3, Timestamp: t0.Add(time.Hour)},
		&domain.BalanceSample{ExchangeID: 0, TokenSymbol: "ETH", WalletBalance: 4, Timestamp: t0.Add(time.Hour)},
		&domain.BalanceSample{ExchangeID: 0, TokenSymbol: "BTC", WalletBalance: 5, Timestamp: t0.Add(-time.Hour)},
	)

	exchangeID := int64(0)
	samples, err := store.Select(ctx, domain.SeriesQuery{
		Symbol:     "BTC",
		ExchangeID: &exchangeID,
		Window:     domain.Window{Start: t0, Bounded: true},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	// The ETH row, exchange 1 row and pre-window row are filtered out.
	if len(samples) != 2 {
		t.Fatalf("expected 2 samples, got %d", len(samples))
	}
	if !samples[0].Timestamp.Equal(t0) || !samples[1].Timestamp.Equal(t0.Add(2*time.Hour)) {
		t.Errorf("expected ascending timestamp order, got %v then %v", samples[0].Timestamp, samples[1].Timestamp)
	}
}

func TestBalanceStore_SelectUnboundedWindow(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	old := time.Date(2019, 1, 1, 0, 0, 0, 0, time.UTC)
	store.Add(&domain.BalanceSample{ExchangeID: 0, TokenSymbol: "BTC", Timestamp: old})

	samples, err := store.Select(ctx, domain.SeriesQuery{Symbol: "BTC"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 1 {
		t.Errorf("expected unbounded window to include old samples, got %d", len(samples))
	}
}

func TestBalanceStore_LatestByExchange(t *testing.T) {
	store := NewBalanceStore()
	ctx := context.Background()

	max := time.Date(2024, 6, 15, 11, 0, 0, 0, time.UTC)
	store.Add(
		&domain.BalanceSample{ExchangeID: 2, TokenSymbol: "BTC", Timestamp: max.Add(-time.Hour)},
		&domain.BalanceSample{ExchangeID: 2, TokenSymbol: "BTC", Timestamp: max},
		&domain.BalanceSample{ExchangeID: 2, TokenSymbol: "ETH", Timestamp: max},
		&domain.BalanceSample{ExchangeID: 3, TokenSymbol: "BTC", Timestamp: max.Add(time.Hour)},
	)

	samples, err := store.LatestByExchange(ctx, 2)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 2 {
		t.Fatalf("expected both rows at the max timestamp, got %d", len(samples))
	}
	for _, b := range samples {
		if !b.Timestamp.Equal(max) {
			t.Errorf("expected timestamp %v, got %v", max, b.Timestamp)
		}
	}
}

func TestBalanceStore_LatestByExchangeEmpty(t *testing.T) {
	store := NewBalanceStore()

	samples, err := store.LatestByExchange(context.Background(), 7)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(samples) != 0 {
		t.Errorf("expected no samples, got %d", len(samples))
	}
}
