package domain

import "time"

// Interval tokens accepted by the series endpoints. Anything else
// yields an empty result set, not an error.
const (
	IntervalDay   = "1D"
	IntervalWeek  = "7D"
	IntervalMonth = "1M"
	IntervalYear  = "1Y"
	IntervalAll   = "All"
)

// BucketMode selects the time resolution samples are grouped at.
// Short lookbacks get five-minute buckets, long lookbacks hourly ones;
// both bound the result-set size for their window.
type BucketMode int

const (
	// BucketFiveMinute groups by hour-truncated timestamp plus the
	// nearest preceding 5-minute mark.
	BucketFiveMinute BucketMode = iota
	// BucketHourly groups by plain hour truncation.
	BucketHourly
)

// Window is the lookback window of a series query. An unbounded window
// (Bounded=false) applies no lower timestamp filter.
type Window struct {
	Start   time.Time
	Bounded bool
}

// ResolveInterval translates an interval token into a lookback window and
// bucket mode relative to now. ok is false for unrecognized tokens.
//
// "1M" and "1Y" roll the calendar component back and clamp the day of
// month to the last valid day of the target month, so 2024-03-31 minus one
// month resolves to 2024-02-29.
func ResolveInterval(token string, now time.Time) (Window, BucketMode, bool) {
	switch token {
	case IntervalDay:
		return Window{Start: now.Add(-24 * time.Hour), Bounded: true}, BucketFiveMinute, true
	case IntervalWeek:
		return Window{Start: now.Add(-7 * 24 * time.Hour), Bounded: true}, BucketFiveMinute, true
	case IntervalMonth:
		return Window{Start: monthsBack(now, 1), Bounded: true}, BucketHourly, true
	case IntervalYear:
		return Window{Start: monthsBack(now, 12), Bounded: true}, BucketHourly, true
	case IntervalAll:
		return Window{}, BucketHourly, true
	default:
		return Window{}, 0, false
	}
}

// monthsBack returns midnight UTC of the date months calendar months
// before now, with the day of month clamped to the target month's length.
func monthsBack(now time.Time, months int) time.Time {
	year, month, day := now.UTC().Date()

	index := year*12 + int(month) - 1 - months
	targetYear := index / 12
	targetMonth := time.Month(index%12 + 1)

	if last := daysIn(targetYear, targetMonth); day > last {
		day = last
	}
	return time.Date(targetYear, targetMonth, day, 0, 0, 0, 0, time.UTC)
}

// daysIn returns the number of days in the given month.
func daysIn(year int, month time.Month) int {
	// Day zero of the next month normalizes to the last day of this one.
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

// BucketFor truncates a sample timestamp to its bucket under the given
// mode. Buckets are derived grouping keys, never persisted.
func BucketFor(ts time.Time, mode BucketMode) time.Time {
	hour := ts.UTC().Truncate(time.Hour)
	if mode == BucketFiveMinute {
		return hour.Add(time.Duration(ts.UTC().Minute()/5*5) * time.Minute)
	}
	return hour
}
