package series

import (
	"context"
	"fmt"

	"exchange-metrics/internal/domain"
)

// Rolling24h computes the fixed 24-hour volume and latest price summary,
// one row [exchange_id, volume, price] per exchange in ascending id order.
// It is independent of the interval/bucket machinery: RawTicks exchanges
// sum volume×price over their most recent RollingSampleCount samples,
// the PrecomputedDaily exchange reports its latest daily total directly.
// A query failure on any exchange fails the whole request; no partial
// results are returned.
func (s *Service) Rolling24h(ctx context.Context) ([][]string, error) {
	out := make([][]string, 0, len(domain.RollingExchangeIDs))

	for _, id := range domain.RollingExchangeIDs {
		latest, err := s.volumes.LatestSample(ctx, id)
		if err != nil {
			return nil, fmt.Errorf("latest volume sample (exchange=%d): %w", id, err)
		}

		var volume float64
		if domain.RepresentationOf(id) == domain.PrecomputedDaily {
			volume = latest.DayTotalVolume
		} else {
			samples, err := s.volumes.RecentSamples(ctx, id, domain.RollingSampleCount)
			if err != nil {
				return nil, fmt.Errorf("recent volume samples (exchange=%d): %w", id, err)
			}
			for _, sample := range samples {
				volume += sample.TotalVolume * sample.Price
			}
		}

		out = append(out, []string{
			formatInt(id),
			formatFloat(volume),
			formatFloat(latest.Price),
		})
	}

	return out, nil
}
