// Package series implements the read-transform-respond core behind the
// metrics endpoints: interval resolution, balance projection, volume
// aggregation and normalization, and the fixed 24-hour rolling summary.
// Every operation is a stateless read; nothing is cached between requests.
package series

import (
	"log"
	"strconv"
	"time"

	"exchange-metrics/internal/storage"
)

// Service executes series queries against injected store handles.
type Service struct {
	balances storage.BalanceSeriesStore
	volumes  storage.VolumeSeriesStore
	logger   *log.Logger
	now      func() time.Time
}

// New creates a Service reading from the given stores.
func New(balances storage.BalanceSeriesStore, volumes storage.VolumeSeriesStore, logger *log.Logger) *Service {
	return &Service{
		balances: balances,
		volumes:  volumes,
		logger:   logger,
		now:      time.Now,
	}
}

// All numeric response fields are string-encoded for client compatibility.

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatInt(v int64) string {
	return strconv.FormatInt(v, 10)
}

func formatUnix(t time.Time) string {
	return strconv.FormatInt(t.Unix(), 10)
}
