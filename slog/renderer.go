package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/linksum"
)

// Ensure LoggingRenderer implements linksum.Renderer.
var _ linksum.Renderer = (*LoggingRenderer)(nil)

// LoggingRenderer wraps a Renderer with info logging. Renders are rare and
// expensive, so they log at a higher level than fetches.
type LoggingRenderer struct {
	next   linksum.Renderer
	logger *slog.Logger
}

// NewLoggingRenderer creates a new LoggingRenderer.
func NewLoggingRenderer(next linksum.Renderer, logger *slog.Logger) *LoggingRenderer {
	return &LoggingRenderer{next: next, logger: logger}
}

// Render delegates to the wrapped renderer and logs the operation.
func (r *LoggingRenderer) Render(ctx context.Context, url string) (html string, err error) {
	defer func(begin time.Time) {
		r.logger.Info("render",
			"url", url,
			"bytes", len(html),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return r.next.Render(ctx, url)
}

// Close delegates to the wrapped renderer.
func (r *LoggingRenderer) Close() error {
	return r.next.Close()
}
