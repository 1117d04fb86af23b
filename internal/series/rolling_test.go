package series

import (
	"context"
	"testing"
	"time"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/storage/memory"
)

// seedRollingVolumes gives every rolling exchange one recent sample.
func seedRollingVolumes(volumes *memory.VolumeStore, at time.Time) {
	for _, id := range domain.RollingExchangeIDs {
		volumes.Add(&domain.VolumeSample{
			ExchangeID:     id,
			TokenSymbol:    "BTC-USD",
			TotalVolume:    2,
			Price:          10,
			DayTotalVolume: 12345,
			Timestamp:      at,
		})
	}
}

func TestRolling24h_RowPerExchangeAscending(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	volumes := memory.NewVolumeStore()
	seedRollingVolumes(volumes, now.Add(-time.Minute))

	svc := newTestService(memory.NewBalanceStore(), volumes, now)

	rows, err := svc.Rolling24h(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(rows) != 5 {
		t.Fatalf("expected 5 rows, got %d", len(rows))
	}
	for i, row := range rows {
		if row[0] != formatInt(int64(i)) {
			t.Errorf("row %d: expected exchange id %d, got %v", i, i, row)
		}
		if row[2] != "10" {
			t.Errorf("row %d: expected latest price 10, got %v", i, row)
		}
	}
}

func TestRolling24h_RawTickExchangesSumVolumeTimesPrice(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	volumes := memory.NewVolumeStore()
	seedRollingVolumes(volumes, now.Add(-2*time.Minute))

	// Exchange 0 gets one more sample: total 2×10 + 3×20 = 80.
	volumes.Add(&domain.VolumeSample{
		ExchangeID: 0, TokenSymbol: "BTC-USD", TotalVolume: 3, Price: 20, Timestamp: now.Add(-time.Minute),
	})

	svc := newTestService(memory.NewBalanceStore(), volumes, now)

	rows, err := svc.Rolling24h(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[0][1] != "80" {
		t.Errorf("expected exchange 0 volume 80, got %v", rows[0])
	}
	// Latest price follows the newest sample.
	if rows[0][2] != "20" {
		t.Errorf("expected exchange 0 price 20, got %v", rows[0])
	}
}

func TestRolling24h_AggregatorExchangeUsesDailyTotal(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	volumes := memory.NewVolumeStore()
	seedRollingVolumes(volumes, now.Add(-2*time.Minute))

	// Exchange 1's newest sample carries the daily total that wins.
	volumes.Add(&domain.VolumeSample{
		ExchangeID: 1, TokenSymbol: "BTC-USD", TotalVolume: 99, Price: 11, DayTotalVolume: 54321, Timestamp: now.Add(-time.Minute),
	})

	svc := newTestService(memory.NewBalanceStore(), volumes, now)

	rows, err := svc.Rolling24h(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if rows[1][1] != "54321" {
		t.Errorf("expected exchange 1 volume 54321, got %v", rows[1])
	}
	if rows[1][2] != "11" {
		t.Errorf("expected exchange 1 price 11, got %v", rows[1])
	}
}

func TestRolling24h_SampleCapBoundsLookback(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	volumes := memory.NewVolumeStore()
	seedRollingVolumes(volumes, now.Add(-48*time.Hour))

	// One sample beyond the cap for exchange 0; the oldest must fall out.
	for i := 0; i <= domain.RollingSampleCount; i++ {
		volumes.Add(&domain.VolumeSample{
			ExchangeID:  0,
			TokenSymbol: "BTC-USD",
			TotalVolume: 1,
			Price:       1,
			Timestamp:   now.Add(-time.Duration(i) * time.Minute),
		})
	}

	svc := newTestService(memory.NewBalanceStore(), volumes, now)

	rows, err := svc.Rolling24h(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// 1441 eligible samples (plus the 48h-old seed), capped at 1440.
	if rows[0][1] != formatFloat(float64(domain.RollingSampleCount)) {
		t.Errorf("expected capped volume %d, got %v", domain.RollingSampleCount, rows[0])
	}
}

func TestRolling24h_MissingExchangeFailsWholeRequest(t *testing.T) {
	now := time.Date(2024, 6, 15, 12, 0, 0, 0, time.UTC)
	volumes := memory.NewVolumeStore()

	// Seed every exchange except 3.
	for _, id := range []int64{0, 1, 2, 4} {
		volumes.Add(&domain.VolumeSample{
			ExchangeID: id, TokenSymbol: "BTC-USD", TotalVolume: 1, Price: 1, Timestamp: now,
		})
	}

	svc := newTestService(memory.NewBalanceStore(), volumes, now)

	if _, err := svc.Rolling24h(context.Background()); err == nil {
		t.Error("expected whole-request failure when one exchange has no samples")
	}
}
