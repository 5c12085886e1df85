// Package http provides the HTTP-based implementation of linksum.Fetcher.
// It presents a realistic browser header set since many article hosts
// reject obvious programmatic clients.
package http

import (
	"context"
	"io"
	"net/http"
	"net/url"
	"sync/atomic"
	"time"

	"github.com/fwojciec/linksum"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 25 * time.Second

// Ensure Fetcher implements linksum.Fetcher at compile time.
var _ linksum.Fetcher = (*Fetcher)(nil)

// userAgents is rotated per request. All are current desktop browser
// strings; some hosts vary their anti-bot response by UA family.
var userAgents = []string{
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/126.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/125.0.0.0 Safari/537.36",
	"Mozilla/5.0 (Windows NT 10.0; Win64; x64; rv:127.0) Gecko/20100101 Firefox/127.0",
	"Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/605.1.15 (KHTML, like Gecko) Version/17.4 Safari/605.1.15",
}

// Fetcher retrieves raw HTML over HTTP with browser-like headers.
// Fetcher is safe for concurrent use.
type Fetcher struct {
	client  *http.Client
	timeout time.Duration
	limiter *HostLimiter
	referer string
	uaIndex atomic.Uint64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the per-request timeout.
// Defaults to DefaultFetchTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithHostLimiter enables per-host rate limiting on Get requests.
func WithHostLimiter(l *HostLimiter) Option {
	return func(f *Fetcher) {
		f.limiter = l
	}
}

// WithReferer sets a fixed Referer header sent with every request.
func WithReferer(referer string) Option {
	return func(f *Fetcher) {
		f.referer = referer
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout: DefaultFetchTimeout,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Get fetches the URL and returns the response body. Custom headers are
// merged over the browser-like defaults, so callers can inject cookies or
// override the user-agent for site-specific fetches.
func (f *Fetcher) Get(ctx context.Context, rawURL string, headers map[string]string) (string, error) {
	if f.limiter != nil {
		if err := f.limiter.Wait(ctx, hostOf(rawURL)); err != nil {
			return "", err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", linksum.Errorf(linksum.EINVALID, "invalid URL: %v", err)
	}

	f.setDefaultHeaders(req)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", linksum.WrapError(err, linksum.EUNAVAILABLE, "fetch failed for %s", rawURL)
	}
	defer resp.Body.Close()

	if err := statusError(resp.StatusCode, rawURL); err != nil {
		return "", err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", linksum.WrapError(err, linksum.EUNAVAILABLE, "reading response from %s", rawURL)
	}

	return string(body), nil
}

// Head resolves the URL's redirect chain and returns the final URL.
// Short-link hosts respond to HEAD; the body is never read.
func (f *Fetcher) Head(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodHead, rawURL, nil)
	if err != nil {
		return "", linksum.Errorf(linksum.EINVALID, "invalid URL: %v", err)
	}
	f.setDefaultHeaders(req)

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", linksum.WrapError(err, linksum.EUNAVAILABLE, "resolving %s", rawURL)
	}
	defer resp.Body.Close()

	return resp.Request.URL.String(), nil
}

// Close releases resources. For the HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}

// setDefaultHeaders applies the browser-like header set with a rotated
// user-agent.
func (f *Fetcher) setDefaultHeaders(req *http.Request) {
	ua := userAgents[f.uaIndex.Add(1)%uint64(len(userAgents))]
	req.Header.Set("User-Agent", ua)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,image/webp,*/*;q=0.8")
	req.Header.Set("Accept-Language", "zh-CN,zh;q=0.9,en;q=0.8")
	if f.referer != "" {
		req.Header.Set("Referer", f.referer)
	}
}

// statusError maps HTTP status codes to application errors. Login and
// verification walls are reported as blocked so callers can stop retrying.
func statusError(status int, url string) error {
	switch {
	case status == http.StatusOK:
		return nil
	case status == http.StatusUnauthorized,
		status == http.StatusForbidden,
		status == http.StatusTooManyRequests:
		return linksum.Errorf(linksum.EBLOCKED, "access blocked (HTTP %d) for %s", status, url)
	default:
		return linksum.Errorf(linksum.EUNAVAILABLE, "HTTP %d for %s", status, url)
	}
}

// hostOf extracts the host for rate limiting; a parse failure rates the
// whole raw string as one bucket.
func hostOf(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}
	return u.Host
}
