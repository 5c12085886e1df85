// Package rod implements linksum.Renderer using Chrome browser automation.
// It is the most expensive extraction tier and should only run after static
// extraction has failed the quality gate.
package rod

import (
	"context"
	"time"

	"github.com/fwojciec/linksum"
	"github.com/go-rod/rod/lib/proto"
	"golang.org/x/sync/semaphore"
)

// Defaults for render timing and concurrency.
const (
	DefaultRenderTimeout = 20 * time.Second
	DefaultSettleDelay   = 2 * time.Second
	DefaultMaxPages      = 2
)

// Ensure Renderer implements linksum.Renderer at compile time.
var _ linksum.Renderer = (*Renderer)(nil)

// Renderer loads pages in a headless browser, executes their scripts, and
// returns the realized DOM. A weighted semaphore caps concurrent pages so
// load spikes can't spawn unbounded browser tabs.
// Renderer is safe for concurrent use.
type Renderer struct {
	manager     *BrowserManager
	timeout     time.Duration
	settleDelay time.Duration
	pages       *semaphore.Weighted
}

// RendererOption configures a Renderer.
type RendererOption func(*Renderer)

// WithRenderTimeout bounds one full render (navigate, load, settle).
func WithRenderTimeout(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.timeout = d
	}
}

// WithSettleDelay sets the fixed wait after page load before reading the
// DOM. Client-rendered pages often populate content asynchronously after
// the load event fires.
func WithSettleDelay(d time.Duration) RendererOption {
	return func(r *Renderer) {
		r.settleDelay = d
	}
}

// WithMaxConcurrentPages caps concurrently rendering pages.
func WithMaxConcurrentPages(n int64) RendererOption {
	return func(r *Renderer) {
		r.pages = semaphore.NewWeighted(n)
	}
}

// NewRenderer creates a Renderer backed by a fresh headless browser.
// Close must be called when the Renderer is no longer needed.
func NewRenderer(opts ...RendererOption) (*Renderer, error) {
	manager, err := NewBrowserManager()
	if err != nil {
		return nil, linksum.WrapError(err, linksum.ERENDER, "starting browser")
	}

	r := &Renderer{
		manager:     manager,
		timeout:     DefaultRenderTimeout,
		settleDelay: DefaultSettleDelay,
		pages:       semaphore.NewWeighted(DefaultMaxPages),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r, nil
}

// Render navigates to the URL, waits for load plus the settle delay, and
// returns the rendered HTML.
func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	if err := r.pages.Acquire(ctx, 1); err != nil {
		return "", err
	}
	defer r.pages.Release(1)

	ctx, cancel := context.WithTimeout(ctx, r.timeout)
	defer cancel()

	page, err := r.manager.Browser().Page(proto.TargetCreateTarget{})
	if err != nil {
		return "", linksum.WrapError(err, linksum.ERENDER, "opening page")
	}
	defer page.Close()

	page = page.Context(ctx)

	if err := page.Navigate(url); err != nil {
		return "", linksum.WrapError(err, linksum.ERENDER, "navigating to %s", url)
	}

	if err := page.WaitLoad(); err != nil {
		return "", linksum.WrapError(err, linksum.ERENDER, "waiting for load of %s", url)
	}

	select {
	case <-ctx.Done():
		return "", linksum.WrapError(ctx.Err(), linksum.ERENDER, "render timed out for %s", url)
	case <-time.After(r.settleDelay):
	}

	html, err := page.HTML()
	if err != nil {
		return "", linksum.WrapError(err, linksum.ERENDER, "reading rendered HTML of %s", url)
	}

	r.manager.IncrementPageCount()
	return html, nil
}

// Close releases browser resources.
func (r *Renderer) Close() error {
	return r.manager.Close()
}
