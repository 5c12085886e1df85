// Package slog provides logging decorators for linksum services.
// Implementations stay free of logging concerns; wiring code wraps them
// here when observability is wanted.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linksum"
)

// Ensure LoggingFetcher implements linksum.Fetcher.
var _ linksum.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   linksum.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next linksum.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Get delegates to the wrapped fetcher and logs the operation.
func (f *LoggingFetcher) Get(ctx context.Context, url string, headers map[string]string) (body string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("fetch",
			"url", url,
			"bytes", len(body),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Get(ctx, url, headers)
}

// Head delegates to the wrapped fetcher and logs the resolution.
func (f *LoggingFetcher) Head(ctx context.Context, url string) (finalURL string, err error) {
	defer func(begin time.Time) {
		f.logger.Debug("resolve",
			"url", url,
			"final_url", finalURL,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Head(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
