package linksum

import "context"

// Fetcher retrieves raw HTML over HTTP.
// Implementations send a realistic browser-like header set; the context
// controls timeout and cancellation.
type Fetcher interface {
	// Get fetches the URL and returns the response body. The headers map,
	// if non-nil, is merged over the default header set (cookies, referer).
	Get(ctx context.Context, url string, headers map[string]string) (string, error)

	// Head resolves the URL's redirect chain and returns the final URL.
	Head(ctx context.Context, url string) (string, error)

	// Close releases client resources.
	Close() error
}

// Renderer retrieves HTML after executing the page's JavaScript in a
// headless browser. Strictly more expensive than a Fetcher; callers should
// only reach for it when static extraction fails.
type Renderer interface {
	// Render navigates to the URL, waits for scripts to settle, and returns
	// the realized DOM as HTML.
	Render(ctx context.Context, url string) (string, error)

	// Close releases browser resources.
	Close() error
}

// Resolver is a site-specific extractor for a platform whose markup defeats
// generic heuristics. Resolve returns (nil, nil) on soft failure so the
// orchestrator can continue to the next tier.
type Resolver interface {
	// Name returns the resolver's identifier (e.g., "weixin").
	Name() string

	// Match reports whether this resolver handles the URL.
	Match(url string) bool

	// Resolve extracts the article using structural knowledge of the site.
	Resolve(ctx context.Context, url string) (*ExtractResult, error)
}

// ResolverRegistry dispatches URLs to site-specific resolvers.
type ResolverRegistry interface {
	// Lookup returns the resolver matching the URL, or nil when no
	// site-specific profile applies.
	Lookup(url string) Resolver

	// Resolve dispatches the URL to its resolver. Returns (nil, nil) when
	// no profile matches or the resolver found nothing.
	Resolve(ctx context.Context, url string) (*ExtractResult, error)
}

// ShareParser recovers the embedded URL from a structured share-card
// payload (an XML-like envelope with a url field).
type ShareParser interface {
	// Parse returns the share card's URL and optional title.
	// Returns an EUNRECOVERABLE error when no URL can be recovered.
	Parse(payload string) (url string, title string, err error)
}

// Summarizer condenses extracted article text. It sits at the downstream
// boundary of the pipeline; the pipeline itself never inspects its output.
type Summarizer interface {
	Summarize(ctx context.Context, text string) (string, error)
}
