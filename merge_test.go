package yahoohdd

import (
	"errors"
	"reflect"
	"testing"
	"time"

	"github.com/sdiz/yahoo-hdd/frame"
)

func axisDays(dates ...string) []time.Time {
	out := make([]time.Time, len(dates))
	for i, d := range dates {
		t, err := time.ParseInLocation(DateLayout, d, time.Local)
		if err != nil {
			panic(err)
		}
		out[i] = t
	}
	return out
}

func seriesFrom(t *testing.T, records [][]string) *frame.Frame {
	t.Helper()
	f, err := frame.FromRecords(records)
	if err != nil {
		t.Fatalf("building series: %v", err)
	}
	return f
}

func TestAlign(t *testing.T) {
	t.Run("projects and suffixes history columns", func(t *testing.T) {
		axis := axisDays("2010-12-01", "2010-12-02", "2010-12-03")
		series := seriesFrom(t, [][]string{
			{"Date", "Open", "Close"},
			{"2010-12-01", "45.00", "45.20"},
			{"2010-12-02", "45.20", "45.45"},
			{"2010-12-03", "45.40", "45.35"},
		})

		merged, failures, err := align(axis, []Result{{Ticker: "AAPL", Series: series}}, []string{"Close"}, History)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if len(failures) != 0 {
			t.Fatalf("unexpected failures: %v", failures)
		}
		if want := []string{"Date", "Close_AAPL"}; !reflect.DeepEqual(merged.Columns(), want) {
			t.Errorf("columns = %v, want %v", merged.Columns(), want)
		}
		if v, ok := merged.Value("2010-12-02", "Close_AAPL"); !ok || v != "45.45" {
			t.Errorf("Close_AAPL[2010-12-02] = %q, %v", v, ok)
		}
	})

	t.Run("column order follows ticker order", func(t *testing.T) {
		axis := axisDays("2010-12-01")
		aapl := seriesFrom(t, [][]string{{"Date", "Close"}, {"2010-12-01", "45.20"}})
		vz := seriesFrom(t, [][]string{{"Date", "Close"}, {"2010-12-01", "32.10"}})

		merged, _, err := align(axis, []Result{
			{Ticker: "AAPL", Series: aapl},
			{Ticker: "VZ", Series: vz},
		}, []string{"Close"}, History)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if want := []string{"Date", "Close_AAPL", "Close_VZ"}; !reflect.DeepEqual(merged.Columns(), want) {
			t.Errorf("columns = %v, want %v", merged.Columns(), want)
		}
	})

	t.Run("dividends pass through unprojected", func(t *testing.T) {
		axis := axisDays("2010-11-15", "2010-11-16")
		series := seriesFrom(t, [][]string{
			{"Date", "Dividends"},
			{"2010-11-15", "0.30"},
		})

		// Projection columns are for history only; a div series keeps its
		// own payload column regardless.
		merged, _, err := align(axis, []Result{{Ticker: "VZ", Series: series}}, []string{"Close"}, Dividends)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if want := []string{"Date", "Dividends_VZ"}; !reflect.DeepEqual(merged.Columns(), want) {
			t.Errorf("columns = %v, want %v", merged.Columns(), want)
		}
	})

	t.Run("drops axis rows no ticker covers", func(t *testing.T) {
		axis := axisDays("2010-11-15", "2010-11-16", "2010-11-17")
		series := seriesFrom(t, [][]string{
			{"Date", "Dividends"},
			{"2010-11-15", "0.30"},
			{"2010-11-17", "0.31"},
		})

		merged, _, err := align(axis, []Result{{Ticker: "VZ", Series: series}}, nil, Dividends)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		dates, _ := merged.Col("Date")
		if want := []string{"2010-11-15", "2010-11-17"}; !reflect.DeepEqual(dates, want) {
			t.Errorf("dates = %v, want %v", dates, want)
		}
	})

	t.Run("gaps stay empty when another ticker covers the row", func(t *testing.T) {
		axis := axisDays("2010-12-01", "2010-12-02")
		aapl := seriesFrom(t, [][]string{
			{"Date", "Close"},
			{"2010-12-01", "45.20"},
			{"2010-12-02", "45.45"},
		})
		ipo := seriesFrom(t, [][]string{
			{"Date", "Close"},
			{"2010-12-02", "20.00"},
		})

		merged, _, err := align(axis, []Result{
			{Ticker: "AAPL", Series: aapl},
			{Ticker: "NEW", Series: ipo},
		}, []string{"Close"}, History)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if merged.Len() != 2 {
			t.Fatalf("rows = %d, want 2", merged.Len())
		}
		if v, _ := merged.Value("2010-12-01", "Close_NEW"); v != "" {
			t.Errorf("Close_NEW[2010-12-01] = %q, want empty", v)
		}
		if v, _ := merged.Value("2010-12-01", "Close_AAPL"); v != "45.20" {
			t.Errorf("Close_AAPL[2010-12-01] = %q", v)
		}
	})

	t.Run("failed tickers collected, not fatal", func(t *testing.T) {
		axis := axisDays("2010-12-01")
		series := seriesFrom(t, [][]string{{"Date", "Close"}, {"2010-12-01", "45.20"}})

		results := []Result{
			{Ticker: "AAPL", Series: series},
			{Ticker: "BAD", Err: &FetchError{Ticker: "BAD", Err: errors.New("404")}},
		}
		merged, failures, err := align(axis, results, []string{"Close"}, History)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if len(failures) != 1 || failures[0].Ticker != "BAD" {
			t.Fatalf("failures = %v", failures)
		}
		if want := []string{"Date", "Close_AAPL"}; !reflect.DeepEqual(merged.Columns(), want) {
			t.Errorf("columns = %v, want %v", merged.Columns(), want)
		}
	})

	t.Run("missing projection column is a MergeError", func(t *testing.T) {
		axis := axisDays("2010-12-01")
		series := seriesFrom(t, [][]string{{"Date", "Open"}, {"2010-12-01", "45.00"}})

		_, _, err := align(axis, []Result{{Ticker: "AAPL", Series: series}}, []string{"Close"}, History)
		var mergeErr *MergeError
		if !errors.As(err, &mergeErr) {
			t.Fatalf("err = %v, want MergeError", err)
		}
		if mergeErr.Ticker != "AAPL" {
			t.Errorf("Ticker = %q", mergeErr.Ticker)
		}
	})

	t.Run("date requested explicitly is not doubled", func(t *testing.T) {
		axis := axisDays("2010-12-01")
		series := seriesFrom(t, [][]string{{"Date", "Close"}, {"2010-12-01", "45.20"}})

		merged, _, err := align(axis, []Result{{Ticker: "AAPL", Series: series}}, []string{"Date", "Close"}, History)
		if err != nil {
			t.Fatalf("align failed: %v", err)
		}
		if want := []string{"Date", "Close_AAPL"}; !reflect.DeepEqual(merged.Columns(), want) {
			t.Errorf("columns = %v, want %v", merged.Columns(), want)
		}
	})
}
