package yahoohdd

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"log/slog"
	"math/rand"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/sdiz/yahoo-hdd/frame"
)

// DefaultDownloadURL is the download endpoint template: ticker, period1,
// period2, events token, crumb. The granularity token is fixed at 1d; the
// weekly/monthly intervals are produced by date-axis reduction, not by the
// endpoint.
const DefaultDownloadURL = "https://query1.finance.yahoo.com/v7/finance/download/%s?period1=%d&period2=%d&interval=1d&events=%s&crumb=%s"

// defaultWorkers is the fixed width of the fetch pool. Bounding concurrency
// keeps the endpoint from throttling bursts while still overlapping the
// network waits.
const defaultWorkers = 4

// Result carries one ticker's fetch outcome. Exactly one of Series and Err
// is set.
type Result struct {
	Ticker string
	Series *frame.Frame
	Err    error
}

// statusError is an HTTP-level download failure.
type statusError struct {
	StatusCode int
	URL        string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("GET %s: %d %s", e.URL, e.StatusCode, http.StatusText(e.StatusCode))
}

// IsRetryable reports whether the response status should trigger a retry.
func (e *statusError) IsRetryable() bool {
	return e.StatusCode >= 500 || e.StatusCode == http.StatusTooManyRequests
}

// downloader fetches raw per-ticker series through the shared session.
type downloader struct {
	conn        Connection
	urlTemplate string
	workers     int
	limiter     *rate.Limiter
	logger      *slog.Logger

	maxRetries   int
	retryBackoff time.Duration
}

// fetchAll retrieves one raw series per ticker using a bounded worker pool.
// Each worker writes only its own result slot, so the returned slice keeps
// ticker order regardless of completion order. The pool is joined before
// returning; an individual failure never cancels the fetches in flight.
func (d *downloader) fetchAll(ctx context.Context, tickers []string, start, end int64, kind DataKind) []Result {
	batch := uuid.New()
	began := time.Now()
	d.logger.Debug("fetch batch started",
		"batch", batch,
		"tickers", len(tickers),
		"kind", string(kind),
	)

	results := make([]Result, len(tickers))

	var g errgroup.Group
	g.SetLimit(d.workers)
	for i, ticker := range tickers {
		i, ticker := i, ticker
		g.Go(func() error {
			results[i] = d.fetchOne(ctx, ticker, start, end, kind)
			return nil
		})
	}
	g.Wait()

	failed := 0
	for _, res := range results {
		if res.Err != nil {
			failed++
		}
	}
	d.logger.Debug("fetch batch complete",
		"batch", batch,
		"fetched", len(results)-failed,
		"failed", failed,
		"duration", time.Since(began),
	)
	return results
}

// fetchOne downloads and parses a single ticker's series.
func (d *downloader) fetchOne(ctx context.Context, ticker string, start, end int64, kind DataKind) Result {
	reqURL := fmt.Sprintf(d.urlTemplate,
		url.PathEscape(ticker), start, end, string(kind), url.QueryEscape(d.conn.Crumb()))

	body, err := d.getWithRetry(ctx, reqURL)
	if err != nil {
		return Result{Ticker: ticker, Err: &FetchError{Ticker: ticker, Err: err}}
	}

	series, err := parseSeries(strings.NewReader(body))
	if err != nil {
		return Result{Ticker: ticker, Err: &FetchError{Ticker: ticker, Err: err}}
	}
	return Result{Ticker: ticker, Series: series}
}

// getWithRetry performs a GET with jittered exponential backoff on
// retryable statuses.
func (d *downloader) getWithRetry(ctx context.Context, reqURL string) (string, error) {
	var lastErr error
	backoff := d.retryBackoff

	for attempt := 0; attempt <= d.maxRetries; attempt++ {
		if attempt > 0 {
			// Jitter: backoff * (0.5 to 1.5)
			jitter := backoff/2 + time.Duration(rand.Int63n(int64(backoff)))
			d.logger.Debug("retrying download", "attempt", attempt, "backoff", jitter)

			select {
			case <-ctx.Done():
				return "", ctx.Err()
			case <-time.After(jitter):
			}
			backoff *= 2
		}

		body, err := d.get(ctx, reqURL)
		if err == nil {
			return body, nil
		}
		lastErr = err

		se, ok := err.(*statusError)
		if !ok || !se.IsRetryable() {
			return "", err
		}
	}
	return "", fmt.Errorf("max retries exceeded: %w", lastErr)
}

func (d *downloader) get(ctx context.Context, reqURL string) (string, error) {
	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}

	resp, err := d.conn.Session().Do(req)
	if err != nil {
		return "", fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &statusError{StatusCode: resp.StatusCode, URL: reqURL}
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read response: %w", err)
	}
	return string(body), nil
}

// parseSeries parses the endpoint's delimited tabular text. Rows whose arity
// does not match the header are skipped, and any row containing a literal
// "null" cell is dropped whole, not blanked per cell.
func parseSeries(r io.Reader) (*frame.Frame, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	series := frame.New(header...)
rows:
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		if len(rec) != len(header) {
			continue
		}
		for _, cell := range rec {
			if cell == "null" {
				continue rows
			}
		}
		if err := series.AppendRow(rec...); err != nil {
			return nil, err
		}
	}
	return series, nil
}
