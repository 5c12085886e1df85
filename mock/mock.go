// Package mock provides function-field mocks of the linksum interfaces.
package mock

import (
	"context"
	"time"

	"github.com/fwojciec/linksum"
)

var _ linksum.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of linksum.Fetcher.
type Fetcher struct {
	GetFn   func(ctx context.Context, url string, headers map[string]string) (string, error)
	HeadFn  func(ctx context.Context, url string) (string, error)
	CloseFn func() error
}

func (f *Fetcher) Get(ctx context.Context, url string, headers map[string]string) (string, error) {
	return f.GetFn(ctx, url, headers)
}

func (f *Fetcher) Head(ctx context.Context, url string) (string, error) {
	return f.HeadFn(ctx, url)
}

func (f *Fetcher) Close() error {
	if f.CloseFn == nil {
		return nil
	}
	return f.CloseFn()
}

var _ linksum.Renderer = (*Renderer)(nil)

// Renderer is a mock implementation of linksum.Renderer.
type Renderer struct {
	RenderFn func(ctx context.Context, url string) (string, error)
	CloseFn  func() error
}

func (r *Renderer) Render(ctx context.Context, url string) (string, error) {
	return r.RenderFn(ctx, url)
}

func (r *Renderer) Close() error {
	if r.CloseFn == nil {
		return nil
	}
	return r.CloseFn()
}

var _ linksum.Extractor = (*Extractor)(nil)

// Extractor is a mock implementation of linksum.Extractor.
type Extractor struct {
	ExtractFn func(html string) (*linksum.ExtractResult, error)
}

func (e *Extractor) Extract(html string) (*linksum.ExtractResult, error) {
	return e.ExtractFn(html)
}

var _ linksum.Converter = (*Converter)(nil)

// Converter is a mock implementation of linksum.Converter.
type Converter struct {
	ConvertFn func(html string) (string, error)
}

func (c *Converter) Convert(html string) (string, error) {
	return c.ConvertFn(html)
}

var _ linksum.Resolver = (*Resolver)(nil)

// Resolver is a mock implementation of linksum.Resolver.
type Resolver struct {
	NameFn    func() string
	MatchFn   func(url string) bool
	ResolveFn func(ctx context.Context, url string) (*linksum.ExtractResult, error)
}

func (r *Resolver) Name() string {
	if r.NameFn == nil {
		return "mock"
	}
	return r.NameFn()
}

func (r *Resolver) Match(url string) bool {
	return r.MatchFn(url)
}

func (r *Resolver) Resolve(ctx context.Context, url string) (*linksum.ExtractResult, error) {
	return r.ResolveFn(ctx, url)
}

var _ linksum.ResolverRegistry = (*ResolverRegistry)(nil)

// ResolverRegistry is a mock implementation of linksum.ResolverRegistry.
type ResolverRegistry struct {
	LookupFn  func(url string) linksum.Resolver
	ResolveFn func(ctx context.Context, url string) (*linksum.ExtractResult, error)
}

func (r *ResolverRegistry) Lookup(url string) linksum.Resolver {
	if r.LookupFn == nil {
		return nil
	}
	return r.LookupFn(url)
}

func (r *ResolverRegistry) Resolve(ctx context.Context, url string) (*linksum.ExtractResult, error) {
	return r.ResolveFn(ctx, url)
}

var _ linksum.ShareParser = (*ShareParser)(nil)

// ShareParser is a mock implementation of linksum.ShareParser.
type ShareParser struct {
	ParseFn func(payload string) (string, string, error)
}

func (p *ShareParser) Parse(payload string) (string, string, error) {
	return p.ParseFn(payload)
}

var _ linksum.ShareCache = (*ShareCache)(nil)

// ShareCache is a mock implementation of linksum.ShareCache.
type ShareCache struct {
	PutFn           func(chatID, content string)
	TakeIfPresentFn func(chatID string) (linksum.PendingShare, bool)
	EvictExpiredFn  func(now time.Time)
}

func (c *ShareCache) Put(chatID, content string) {
	c.PutFn(chatID, content)
}

func (c *ShareCache) TakeIfPresent(chatID string) (linksum.PendingShare, bool) {
	return c.TakeIfPresentFn(chatID)
}

func (c *ShareCache) EvictExpired(now time.Time) {
	if c.EvictExpiredFn != nil {
		c.EvictExpiredFn(now)
	}
}

var _ linksum.Summarizer = (*Summarizer)(nil)

// Summarizer is a mock implementation of linksum.Summarizer.
type Summarizer struct {
	SummarizeFn func(ctx context.Context, text string) (string, error)
}

func (s *Summarizer) Summarize(ctx context.Context, text string) (string, error) {
	return s.SummarizeFn(ctx, text)
}
