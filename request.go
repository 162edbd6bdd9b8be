package yahoohdd

import (
	"errors"
	"fmt"
	"time"

	"github.com/sdiz/yahoo-hdd/calendar"
)

// DateLayout is the wire format of request dates.
const DateLayout = "2006-01-02"

// Interval selects the sampling granularity of the output.
type Interval = calendar.Interval

// Supported intervals.
const (
	Daily   = calendar.Daily
	Weekly  = calendar.Weekly
	Monthly = calendar.Monthly
)

// DataKind identifies which historical series the download endpoint serves.
type DataKind string

// Event-type tokens of the download endpoint.
const (
	History   DataKind = "history"
	Dividends DataKind = "div"
	Splits    DataKind = "split"
)

// DefaultColumns is the projection used for history requests that leave
// Columns unset.
var DefaultColumns = []string{"Open", "High", "Low", "Close", "Adj Close", "Volume"}

// Request describes one multi-ticker download.
type Request struct {
	Start    string   // inclusive start date, "yyyy-mm-dd"
	End      string   // inclusive end date, "yyyy-mm-dd"
	Tickers  []string // case-insensitive; normalized to upper case
	Interval Interval
	Exchange string   // trading-calendar profile, e.g. "NYSE"
	Columns  []string // requested fields, e.g. "Open", "Close", "Adj Close"
}

// Validate checks the request invariants. It runs before any I/O; a
// validation failure aborts the whole request.
func (r *Request) Validate() error {
	start, end, err := r.dateRange()
	if err != nil {
		return err
	}
	if start.After(end) {
		return &calendar.InvalidRangeError{Start: start, End: end}
	}
	if !r.Interval.Valid() {
		return &calendar.InvalidIntervalError{Interval: r.Interval}
	}
	if !calendar.Supported(r.Exchange) {
		return &calendar.InvalidExchangeError{Exchange: r.Exchange}
	}
	if len(r.Tickers) == 0 {
		return errors.New("at least one ticker is required")
	}
	for _, t := range r.Tickers {
		if t == "" {
			return errors.New("empty ticker")
		}
	}
	return nil
}

// dateRange parses the request dates in the local time zone, matching the
// epoch-second conversion the download endpoint expects.
func (r *Request) dateRange() (start, end time.Time, err error) {
	start, err = time.ParseInLocation(DateLayout, r.Start, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse start date %q: %w", r.Start, err)
	}
	end, err = time.ParseInLocation(DateLayout, r.End, time.Local)
	if err != nil {
		return time.Time{}, time.Time{}, fmt.Errorf("parse end date %q: %w", r.End, err)
	}
	return start, end, nil
}
