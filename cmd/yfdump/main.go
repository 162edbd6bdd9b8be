// Command yfdump downloads historical price, dividend or split data for a
// list of tickers and writes the merged date-keyed table as CSV.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"strings"
	"syscall"

	yahoohdd "github.com/sdiz/yahoo-hdd"
	"github.com/sdiz/yahoo-hdd/frame"
	"github.com/sdiz/yahoo-hdd/internal/config"
	"github.com/sdiz/yahoo-hdd/internal/version"
)

func main() {
	configPath := flag.String("config", "", "path to YAML config file (optional)")
	start := flag.String("start", "", "start date (yyyy-mm-dd)")
	end := flag.String("end", "", "end date (yyyy-mm-dd)")
	tickers := flag.String("tickers", "", "comma-separated ticker list")
	interval := flag.String("interval", "", "sampling interval: d, w or m")
	exchange := flag.String("exchange", "", "trading-calendar exchange, e.g. NYSE")
	columns := flag.String("columns", "", "comma-separated price columns, e.g. Open,Close")
	kind := flag.String("kind", "", "data kind: history, div or split")
	out := flag.String("out", "", "CSV output path (default stdout)")
	verbose := flag.Bool("v", false, "enable debug logging")
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
	slog.SetDefault(logger)

	logger.Info("starting yfdump", "version", version.String())

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.LoadAndValidate(*configPath)
		if err != nil {
			logger.Error("failed to load config", "error", err)
			os.Exit(1)
		}
		cfg = loaded
	}
	applyFlags(cfg, *start, *end, *tickers, *interval, *exchange, *columns, *kind, *out)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		logger.Info("received shutdown signal", "signal", sig)
		cancel()
	}()

	opts := []yahoohdd.Option{
		yahoohdd.WithLogger(logger),
		yahoohdd.WithWorkers(cfg.Fetch.Workers),
		yahoohdd.WithRetries(cfg.HTTP.MaxRetries, cfg.HTTP.RetryBackoff),
		yahoohdd.WithRateLimit(cfg.HTTP.RateLimit),
	}
	if cfg.HTTP.DownloadURL != "" {
		opts = append(opts, yahoohdd.WithDownloadURL(cfg.HTTP.DownloadURL))
	}
	sessionOpts := []yahoohdd.SessionOption{
		yahoohdd.WithSessionLogger(logger),
		yahoohdd.WithSessionClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
	}
	if cfg.HTTP.QuoteURL != "" {
		sessionOpts = append(sessionOpts, yahoohdd.WithQuoteURL(cfg.HTTP.QuoteURL))
	}
	opts = append(opts, yahoohdd.WithSessionOptions(sessionOpts...))

	yf, err := yahoohdd.New(ctx, opts...)
	if err != nil {
		logger.Error("failed to create session", "error", err)
		os.Exit(1)
	}

	req := yahoohdd.Request{
		Start:    cfg.Request.Start,
		End:      cfg.Request.End,
		Tickers:  cfg.Request.Tickers,
		Interval: yahoohdd.Interval(cfg.Request.Interval),
		Exchange: cfg.Request.Exchange,
		Columns:  cfg.Request.Columns,
	}

	logger.Info("downloading",
		"kind", cfg.Request.Kind,
		"tickers", strings.Join(cfg.Request.Tickers, ","),
		"start", req.Start,
		"end", req.End,
		"interval", string(req.Interval),
		"exchange", req.Exchange,
	)

	table, err := fetch(ctx, yf, req, cfg.Request.Kind)

	var partial yahoohdd.FetchErrors
	switch {
	case err == nil:
	case errors.As(err, &partial) && table != nil:
		for _, fe := range partial {
			logger.Warn("ticker failed", "ticker", fe.Ticker, "error", fe.Unwrap())
		}
	default:
		logger.Error("download failed", "error", err)
		os.Exit(1)
	}

	if err := export(table, cfg.Output.Path); err != nil {
		logger.Error("export failed", "error", err)
		os.Exit(1)
	}
	logger.Info("done", "rows", table.Len(), "columns", len(table.Columns()))
}

func fetch(ctx context.Context, yf *yahoohdd.YahooFinance, req yahoohdd.Request, kind string) (*frame.Frame, error) {
	switch kind {
	case "div":
		return yf.GetDividends(ctx, req)
	case "split":
		return yf.GetSplits(ctx, req)
	default:
		return yf.GetHistory(ctx, req)
	}
}

func export(table *frame.Frame, path string) error {
	if path == "" {
		return table.WriteCSV(os.Stdout)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	defer f.Close()

	return table.WriteCSV(f)
}

func applyFlags(cfg *config.Config, start, end, tickers, interval, exchange, columns, kind, out string) {
	if start != "" {
		cfg.Request.Start = start
	}
	if end != "" {
		cfg.Request.End = end
	}
	if tickers != "" {
		cfg.Request.Tickers = strings.Split(tickers, ",")
	}
	if interval != "" {
		cfg.Request.Interval = interval
	}
	if exchange != "" {
		cfg.Request.Exchange = exchange
	}
	if columns != "" {
		cfg.Request.Columns = strings.Split(columns, ",")
	}
	if kind != "" {
		cfg.Request.Kind = kind
	}
	if out != "" {
		cfg.Output.Path = out
	}
}
