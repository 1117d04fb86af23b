package domain

import (
	"strings"
	"time"
)

// AggregatorExchangeID identifies the exchange whose volume feed is a
// precomputed rolling daily total in quote-asset terms rather than raw
// per-tick volume. This is a fixed domain constant, not configuration.
const AggregatorExchangeID int64 = 1

// RollingExchangeIDs is the fixed exchange set covered by the 24-hour
// volume summary, in the order its rows are returned.
var RollingExchangeIDs = []int64{0, 1, 2, 3, 4}

// RollingSampleCount caps the per-exchange lookback of the 24-hour summary.
// Samples arrive on a roughly one-minute cadence, so 1440 samples ≈ 24h.
const RollingSampleCount = 1440

// PairSeparator splits a trading pair symbol into BASE-QUOTE.
const PairSeparator = "-"

// VolumeSample is one observed volume/price reading.
// Corresponds to the volume_data table.
type VolumeSample struct {
	ExchangeID     int64     // exchange identifier
	TokenSymbol    string    // BASE-QUOTE pair symbol
	TotalVolume    float64   // per-tick volume in base units
	Price          float64   // price at this tick
	DayTotalVolume float64   // rolling daily total, aggregator exchange only
	Timestamp      time.Time // observation time (UTC)
}

// VolumeBucketRow is one aggregated group of volume samples.
type VolumeBucketRow struct {
	Bucket         time.Time // bucket start
	ExchangeID     int64     // exchange identifier
	TokenSymbol    string    // BASE-QUOTE pair symbol
	TotalQuantity  float64   // SUM(total_volume)
	AveragePrice   float64   // AVG(price)
	TotalVolumeDay float64   // MAX(day_total_volume)
}

// VolumeRepresentation describes how an exchange reports volume.
type VolumeRepresentation int

const (
	// RawTicks exchanges report per-tick base-asset volume plus price.
	RawTicks VolumeRepresentation = iota
	// PrecomputedDaily exchanges report a rolling daily total that is
	// already denominated in the quote asset.
	PrecomputedDaily
)

// RepresentationOf selects the volume representation for an exchange.
func RepresentationOf(exchangeID int64) VolumeRepresentation {
	if exchangeID == AggregatorExchangeID {
		return PrecomputedDaily
	}
	return RawTicks
}

// SplitPair parses a BASE-QUOTE pair symbol. Returns ok=false unless the
// symbol has exactly two non-empty parts.
func SplitPair(symbol string) (base, quote string, ok bool) {
	parts := strings.SplitN(symbol, PairSeparator, 2)
	if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
		return "", "", false
	}
	return parts[0], parts[1], true
}
