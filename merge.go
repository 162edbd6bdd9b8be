package yahoohdd

import (
	"time"

	"github.com/sdiz/yahoo-hdd/frame"
)

// dateColumn is the key column every series is joined on.
const dateColumn = "Date"

// align folds the per-ticker fetch results onto the date axis and returns
// the merged, date-keyed table. Failed tickers contribute no columns; their
// errors come back as the FetchErrors aggregate. A non-nil error return
// means the merge itself broke an invariant.
func align(axis []time.Time, results []Result, columns []string, kind DataKind) (*frame.Frame, FetchErrors, error) {
	projected := ensureDate(columns)

	merged := frame.New(dateColumn)
	for _, d := range axis {
		merged.AppendRow(d.Format(DateLayout))
	}

	var failures FetchErrors
	for _, res := range results {
		if res.Err != nil {
			if fe, ok := res.Err.(*FetchError); ok {
				failures = append(failures, fe)
			} else {
				failures = append(failures, &FetchError{Ticker: res.Ticker, Err: res.Err})
			}
			continue
		}

		series := res.Series
		if kind == History {
			// Dividends and splits come back as a single value column and
			// are used unmodified; price history is projected down to the
			// requested fields.
			var err error
			series, err = series.Select(projected)
			if err != nil {
				return nil, failures, &MergeError{Ticker: res.Ticker, Err: err}
			}
		}

		// Build the per-ticker column mapping before joining.
		renames := make(map[string]string)
		for _, col := range series.Columns() {
			if col != dateColumn {
				renames[col] = col + "_" + res.Ticker
			}
		}
		series = series.Rename(renames)

		var err error
		merged, err = merged.LeftJoin(series, dateColumn)
		if err != nil {
			return nil, failures, &MergeError{Ticker: res.Ticker, Err: err}
		}
	}

	merged, err := merged.SetKey(dateColumn)
	if err != nil {
		return nil, failures, &MergeError{Err: err}
	}
	return merged.DropAllEmpty(), failures, nil
}

// ensureDate returns the projection column list with Date guaranteed at
// position 0.
func ensureDate(columns []string) []string {
	for _, c := range columns {
		if c == dateColumn {
			out := make([]string, len(columns))
			copy(out, columns)
			return out
		}
	}
	out := make([]string, 0, len(columns)+1)
	out = append(out, dateColumn)
	return append(out, columns...)
}
