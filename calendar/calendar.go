package calendar

import (
	"fmt"
	"sort"
	"time"
)

// InvalidRangeError reports a date range whose start falls after its end.
type InvalidRangeError struct {
	Start time.Time
	End   time.Time
}

func (e *InvalidRangeError) Error() string {
	return fmt.Sprintf("invalid date range: start %s after end %s",
		e.Start.Format("2006-01-02"), e.End.Format("2006-01-02"))
}

// InvalidExchangeError reports an exchange identifier outside the supported set.
type InvalidExchangeError struct {
	Exchange string
}

func (e *InvalidExchangeError) Error() string {
	return fmt.Sprintf("unknown exchange %q", e.Exchange)
}

// profiles maps each supported exchange identifier to its holiday rule set.
// Unknown identifiers are rejected, never defaulted.
var profiles = map[string]func(year int) []time.Time{
	"NYSE":   usHolidays,
	"NASDAQ": usHolidays,
	"BATS":   usHolidays,
	"stock":  usHolidays,
	"NYFE":   usHolidays,
	"ICEUS":  usHolidays,
	"CME":    cmeHolidays,
	"CBOT":   cmeHolidays,
	"COMEX":  cmeHolidays,
	"NYMEX":  cmeHolidays,
	"CFE":    cmeHolidays,
	"ICE":    cmeHolidays,
	"LSE":    ukHolidays,
	"EUREX":  eurexHolidays,
	"SIX":    swissHolidays,
	"TSX":    canadaHolidays,
	"TSXV":   canadaHolidays,
	"BMF":    brazilHolidays,
	"JPX":    japanHolidays,
	"OSE":    japanHolidays,
	"SSE":    chinaHolidays,
	"HKEX":   hongKongHolidays,
}

// Exchanges returns the supported exchange identifiers in sorted order.
func Exchanges() []string {
	out := make([]string, 0, len(profiles))
	for name := range profiles {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Supported reports whether the exchange identifier is recognized.
func Supported(exchange string) bool {
	_, ok := profiles[exchange]
	return ok
}

// TradingDays returns the ordered sequence of days in [start, end] on which
// the named exchange is open. Time-of-day and location of the inputs are
// ignored; output dates are midnight UTC.
func TradingDays(start, end time.Time, exchange string) ([]time.Time, error) {
	holidayRule, ok := profiles[exchange]
	if !ok {
		return nil, &InvalidExchangeError{Exchange: exchange}
	}

	start = midnight(start)
	end = midnight(end)
	if start.After(end) {
		return nil, &InvalidRangeError{Start: start, End: end}
	}

	closed := make(map[time.Time]struct{})
	for year := start.Year(); year <= end.Year(); year++ {
		for _, h := range holidayRule(year) {
			closed[h] = struct{}{}
		}
	}

	var days []time.Time
	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if wd := d.Weekday(); wd == time.Saturday || wd == time.Sunday {
			continue
		}
		if _, isHoliday := closed[d]; isHoliday {
			continue
		}
		days = append(days, d)
	}
	return days, nil
}

func midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
