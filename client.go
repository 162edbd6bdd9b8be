package yahoohdd

import (
	"context"
	"log/slog"
	"time"

	"golang.org/x/time/rate"

	"github.com/sdiz/yahoo-hdd/calendar"
	"github.com/sdiz/yahoo-hdd/frame"
)

// YahooFinance downloads historical financial data through one shared
// authenticated session. Safe for concurrent use.
type YahooFinance struct {
	conn        Connection
	urlTemplate string
	workers     int
	limiter     *rate.Limiter
	logger      *slog.Logger

	maxRetries   int
	retryBackoff time.Duration

	sessionOpts []SessionOption
}

// Option configures a YahooFinance client.
type Option func(*YahooFinance)

// WithConnection supplies an existing Connection instead of negotiating a
// new session.
func WithConnection(conn Connection) Option {
	return func(yf *YahooFinance) { yf.conn = conn }
}

// WithDownloadURL overrides the download endpoint template.
func WithDownloadURL(template string) Option {
	return func(yf *YahooFinance) { yf.urlTemplate = template }
}

// WithWorkers sets the fetch pool width.
func WithWorkers(n int) Option {
	return func(yf *YahooFinance) { yf.workers = n }
}

// WithRateLimit caps outbound requests per second across all workers.
// Zero or negative disables the limiter.
func WithRateLimit(rps float64) Option {
	return func(yf *YahooFinance) {
		if rps > 0 {
			yf.limiter = rate.NewLimiter(rate.Limit(rps), 1)
		} else {
			yf.limiter = nil
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(yf *YahooFinance) { yf.logger = logger }
}

// WithRetries sets the per-request retry configuration.
func WithRetries(max int, backoff time.Duration) Option {
	return func(yf *YahooFinance) {
		yf.maxRetries = max
		yf.retryBackoff = backoff
	}
}

// WithSessionOptions forwards options to the session negotiated by New when
// no Connection was supplied.
func WithSessionOptions(opts ...SessionOption) Option {
	return func(yf *YahooFinance) { yf.sessionOpts = opts }
}

// New creates a client. Unless WithConnection is given, it negotiates the
// process-wide session up front; the returned client reuses it for every
// request and every worker.
func New(ctx context.Context, opts ...Option) (*YahooFinance, error) {
	yf := &YahooFinance{
		urlTemplate:  DefaultDownloadURL,
		workers:      defaultWorkers,
		logger:       slog.Default(),
		maxRetries:   3,
		retryBackoff: time.Second,
	}
	for _, opt := range opts {
		opt(yf)
	}

	if yf.conn == nil {
		sessionOpts := append([]SessionOption{WithSessionLogger(yf.logger)}, yf.sessionOpts...)
		session, err := NewSession(ctx, sessionOpts...)
		if err != nil {
			return nil, err
		}
		yf.conn = session
	}
	return yf, nil
}

// GetHistory downloads historical price data (open/high/low/close/adjusted
// close/volume) for the requested tickers, merged onto the date axis.
func (yf *YahooFinance) GetHistory(ctx context.Context, req Request) (*frame.Frame, error) {
	return yf.get(ctx, req, History)
}

// GetDividends downloads historical dividend payments.
func (yf *YahooFinance) GetDividends(ctx context.Context, req Request) (*frame.Frame, error) {
	return yf.get(ctx, req, Dividends)
}

// GetSplits downloads historical stock splits.
func (yf *YahooFinance) GetSplits(ctx context.Context, req Request) (*frame.Frame, error) {
	return yf.get(ctx, req, Splits)
}

// get runs the full pipeline: validate, build the date axis, normalize
// tickers, fetch concurrently, then merge. Fetch failures are collected per
// ticker; when some tickers fail the merged table of the others is returned
// together with the FetchErrors aggregate.
func (yf *YahooFinance) get(ctx context.Context, req Request, kind DataKind) (*frame.Frame, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	start, end, err := req.dateRange()
	if err != nil {
		return nil, err
	}

	days, err := calendar.TradingDays(start, end, req.Exchange)
	if err != nil {
		return nil, err
	}
	axis, err := calendar.Reduce(days, req.Interval)
	if err != nil {
		return nil, err
	}

	tickers := NormalizeTickers(req.Tickers...)

	columns := req.Columns
	if kind == History && len(columns) == 0 {
		columns = DefaultColumns
	}

	dl := &downloader{
		conn:         yf.conn,
		urlTemplate:  yf.urlTemplate,
		workers:      yf.workers,
		limiter:      yf.limiter,
		logger:       yf.logger,
		maxRetries:   yf.maxRetries,
		retryBackoff: yf.retryBackoff,
	}
	results := dl.fetchAll(ctx, tickers, start.Unix(), end.Unix(), kind)

	table, failures, err := align(axis, results, columns, kind)
	if err != nil {
		return nil, err
	}
	if len(failures) > 0 {
		return table, failures
	}
	return table, nil
}
