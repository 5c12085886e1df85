package site

import (
	"context"
	"net/url"
	"strings"

	"github.com/fwojciec/linksum"
)

// Ensure ShortLink implements linksum.Resolver at compile time.
var _ linksum.Resolver = (*ShortLink)(nil)

// shortLinkHosts are redirect services commonly seen in shared links.
var shortLinkHosts = []string{
	"b23.tv",
	"t.cn",
	"url.cn",
	"dwz.cn",
	"sourl.cn",
}

// DelegateFunc continues extraction for a resolved URL. The orchestrator
// supplies a function that re-enters the pipeline (site registry first,
// then the static tier).
type DelegateFunc func(ctx context.Context, url string) (*linksum.ExtractResult, error)

// ShortLink resolves redirect chains before delegating the final URL back
// to the pipeline.
type ShortLink struct {
	fetcher  linksum.Fetcher
	delegate DelegateFunc
}

// NewShortLink creates a ShortLink resolver.
func NewShortLink(fetcher linksum.Fetcher, delegate DelegateFunc) *ShortLink {
	return &ShortLink{fetcher: fetcher, delegate: delegate}
}

// Name returns the resolver's identifier.
func (s *ShortLink) Name() string {
	return "shortlink"
}

// Match reports whether the URL belongs to a known short-link host.
func (s *ShortLink) Match(rawURL string) bool {
	u, err := url.Parse(rawURL)
	if err != nil {
		return false
	}
	host := strings.TrimPrefix(u.Host, "www.")
	for _, h := range shortLinkHosts {
		if host == h {
			return true
		}
	}
	return false
}

// Resolve follows the redirect chain and hands the final URL to the
// delegate. A chain that never leaves the short-link host yields nothing.
func (s *ShortLink) Resolve(ctx context.Context, rawURL string) (*linksum.ExtractResult, error) {
	finalURL, err := s.fetcher.Head(ctx, rawURL)
	if err != nil {
		return nil, err
	}
	if finalURL == rawURL || s.Match(finalURL) {
		return nil, nil
	}
	return s.delegate(ctx, finalURL)
}
