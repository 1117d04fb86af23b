package series

import (
	"context"
	"fmt"
	"sort"
	"time"

	"exchange-metrics/internal/domain"
)

// BalanceRequest carries the parameters of a balance series query.
type BalanceRequest struct {
	Symbol     string
	Interval   string
	ExchangeID *int64
}

// balanceKey is the deduplication key of the balance projection. The
// balance values themselves are part of the key: the projection returns
// one row per distinct observed balance within each bucket, it does not
// sum or average.
type balanceKey struct {
	bucket          int64
	exchangeID      int64
	tokenSymbol     string
	walletBalance   float64
	transferBalance float64
}

// BalanceSeries returns bucketed balance rows for the requested symbol and
// interval, each row encoded as
// [unix_seconds, exchange_id, token_symbol, wallet_balance, transfer_balance].
// An unrecognized interval yields an empty result without touching the store.
func (s *Service) BalanceSeries(ctx context.Context, req BalanceRequest) ([][]string, error) {
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
	samples, err := s.balances.Select(ctx, q)
	if err != nil {
		return nil, fmt.Errorf("select balance samples (symbol=%s interval=%s): %w", req.Symbol, req.Interval, err)
	}

	return projectBalances(samples, bucket), nil
}

// projectBalances assigns each sample its bucket, drops duplicate
// (bucket, balance-pair) combinations and returns the remaining rows
// ordered by bucket ascending.
func projectBalances(samples []*domain.BalanceSample, mode domain.BucketMode) [][]string {
	type row struct {
		bucket time.Time
		sample *domain.BalanceSample
	}

	seen := make(map[balanceKey]struct{}, len(samples))
	rows := make([]row, 0, len(samples))

	for _, b := range samples {
		bucket := domain.BucketFor(b.Timestamp, mode)
		key := balanceKey{
			bucket:          bucket.Unix(),
			exchangeID:      b.ExchangeID,
			tokenSymbol:     b.TokenSymbol,
			walletBalance:   b.WalletBalance,
			transferBalance: b.TransferBalance,
		}
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		rows = append(rows, row{bucket: bucket, sample: b})
	}

	sort.SliceStable(rows, func(i, j int) bool {
		return rows[i].bucket.Before(rows[j].bucket)
	})

	out := make([][]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, encodeBalance(r.bucket, r.sample))
	}
	return out
}

// LatestBalance returns the most recent balance row(s) for one exchange,
// in the same string-encoded shape as BalanceSeries but keyed by the raw
// sample timestamp.
func (s *Service) LatestBalance(ctx context.Context, exchangeID int64) ([][]string, error) {
	samples, err := s.balances.LatestByExchange(ctx, exchangeID)
	if err != nil {
		return nil, fmt.Errorf("latest balance (exchange=%d): %w", exchangeID, err)
	}

	out := make([][]string, 0, len(samples))
	for _, b := range samples {
		out = append(out, encodeBalance(b.Timestamp, b))
	}
	return out, nil
}

func encodeBalance(ts time.Time, b *domain.BalanceSample) []string {
	return []string{
		formatUnix(ts),
		formatInt(b.ExchangeID),
		b.TokenSymbol,
		formatFloat(b.WalletBalance),
		formatFloat(b.TransferBalance),
	}
}
