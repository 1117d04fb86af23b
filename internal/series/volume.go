package series

import (
	"context"
	"fmt"

	"exchange-metrics/internal/domain"
	"exchange-metrics/internal/observability"
)

// VolumeRequest carries the parameters of a volume series query.
type VolumeRequest struct {
	Symbol     string
	Interval   string
	ExchangeID *int64
	Unit       string // requested output unit, base or quote asset of the pair
}

// VolumeSeries returns bucketed, unit-normalized volume rows for the
// requested symbol and interval, each row encoded as
// [unix_seconds, exchange_id, quantity]. Rows whose symbol is not a
// BASE-QUOTE pair, or whose pair matches neither side of the requested
// unit, are dropped silently. An unrecognized interval yields an empty
// result without touching the store.
func (s *Service) VolumeSeries(ctx context.Context, req VolumeRequest) ([][]string, error) {
	window, bucket, ok := domain.ResolveInterval(req.Interval, s.now())
	if !ok {
		return [][]string{}, nil
	}

	q := domain.SeriesQuery{
		Symbol:     req.Symbol,
		ExchangeID: req.ExchangeID,
		Window:     window,
		Bucket:     bucket,
	}
	rows, err := s.volumes.AggregateByBucket(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("aggregate volume (symbol=%s interval=%s): %w", req.Symbol, req.Interval, err)
	}

	out := make([][]string, 0, len(rows))
	for _, row := range rows {
		quantity, ok := NormalizeVolume(row, req.Unit)
		if !ok {
			reason := "unit_mismatch"
			if _, _, pairOK := domain.SplitPair(row.TokenSymbol); !pairOK {
				reason = "bad_symbol"
			}
			observability.RecordRowDropped(reason)
			continue
		}
		out = append(out, []string{
			formatUnix(row.Bucket),
			formatInt(row.ExchangeID),
			formatFloat(quantity),
		})
	}
	return out, nil
}

// NormalizeVolume converts an aggregated volume row into the requested
// unit. RawTicks exchanges report base-asset volume: quote-unit requests
// multiply by the average price and base-unit requests pass through.
// PrecomputedDaily exchanges report a quote-denominated daily total:
// quote-unit requests pass through and base-unit requests divide by the
// average price. ok is false when the symbol is not a valid pair or the
// unit matches neither side of it.
func NormalizeVolume(row *domain.VolumeBucketRow, unit string) (quantity float64, ok bool) {
	base, quote, ok := domain.SplitPair(row.TokenSymbol)
	if !ok {
		return 0, false
	}

	repr := domain.RepresentationOf(row.ExchangeID)

	quantity = row.TotalQuantity
	if repr == domain.PrecomputedDaily {
		quantity = row.TotalVolumeDay
	}

	multiplier := 1.0
	switch unit {
	case quote:
		if repr == domain.RawTicks {
			multiplier = row.AveragePrice
		}
	case base:
		if repr == domain.PrecomputedDaily {
			multiplier = 1 / row.AveragePrice
		}
	default:
		return 0, false
	}

	return quantity * multiplier, true
}
