package calendar

import (
	"fmt"
	"time"
)

// Interval selects the sampling granularity of a date axis.
type Interval string

// Supported intervals.
const (
	Daily   Interval = "d"
	Weekly  Interval = "w"
	Monthly Interval = "m"
)

// Valid reports whether the interval is one of the supported values.
func (i Interval) Valid() bool {
	switch i {
	case Daily, Weekly, Monthly:
		return true
	}
	return false
}

// InvalidIntervalError reports an interval outside the supported set.
type InvalidIntervalError struct {
	Interval Interval
}

func (e *InvalidIntervalError) Error() string {
	return fmt.Sprintf("invalid interval %q: allowed intervals are \"d\", \"w\", \"m\"", string(e.Interval))
}

// Reduce derives the date axis for the given interval from a daily
// trading-day sequence sorted ascending.
func Reduce(days []time.Time, interval Interval) ([]time.Time, error) {
	switch interval {
	case Daily:
		return days, nil
	case Weekly:
		return ReduceWeekly(days), nil
	case Monthly:
		return ReduceMonthly(days), nil
	}
	return nil, &InvalidIntervalError{Interval: interval}
}

// ReduceWeekly emits the trading day on which each new week begins: for each
// adjacent pair the later day is kept when its Monday-based weekday ordinal
// drops below the earlier day's. A holiday Monday shifts the marker to the
// first open day of that week. A trailing partial week yields no marker.
func ReduceWeekly(days []time.Time) []time.Time {
	var out []time.Time
	for i := 0; i+1 < len(days); i++ {
		if mondayOrdinal(days[i]) > mondayOrdinal(days[i+1]) {
			out = append(out, days[i+1])
		}
	}
	return out
}

// ReduceMonthly emits the trading day on which each new calendar month
// begins. Same trailing-boundary behavior as ReduceWeekly.
func ReduceMonthly(days []time.Time) []time.Time {
	var out []time.Time
	for i := 0; i+1 < len(days); i++ {
		if days[i].Month() != days[i+1].Month() {
			out = append(out, days[i+1])
		}
	}
	return out
}

// mondayOrdinal maps Monday..Sunday to 0..6.
func mondayOrdinal(t time.Time) int {
	return (int(t.Weekday()) + 6) % 7
}
