// Package yahoohdd downloads historical financial time series (price
// history, dividends, stock splits) from the Yahoo Finance download
// endpoint and aligns them onto a shared trading-calendar date axis.
//
// Per-ticker series are fetched concurrently by a bounded worker pool,
// then merged into a single date-keyed table with one column per
// (requested field x ticker) pair:
//
//	yf, err := yahoohdd.New(ctx)
//	if err != nil { ... }
//
//	table, err := yf.GetHistory(ctx, yahoohdd.Request{
//		Start:    "2010-12-01",
//		End:      "2019-08-20",
//		Tickers:  []string{"AAPL", "VZ", "JPM"},
//		Interval: yahoohdd.Weekly,
//		Exchange: "NYSE",
//		Columns:  []string{"Open", "Close"},
//	})
//
// A fetch failure for one ticker never aborts the batch: the returned table
// carries the succeeding tickers' columns and the error is a FetchErrors
// aggregate identifying the failed ones.
package yahoohdd
