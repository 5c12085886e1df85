package linksum

// Tier identifies which extraction strategy produced a result, in
// escalating cost/robustness order.
type Tier string

// Extraction tiers.
const (
	TierStatic  Tier = "static"
	TierSite    Tier = "site_specific"
	TierDynamic Tier = "dynamic"
)

// ExtractResult holds the content extracted from an HTML page before
// conversion and sanitization.
type ExtractResult struct {
	// Title is the article title. Empty if none was found.
	Title string

	// Author is the byline, when the page exposes one.
	Author string

	// PublishedAt is the publication date as the page states it.
	// Kept verbatim; sites disagree wildly on formats.
	PublishedAt string

	// ContentHTML is the main content as HTML with boilerplate removed.
	ContentHTML string

	// Score is the confidence score of the winning candidate block.
	// Zero for backends that don't score (readability, trafilatura).
	Score float64
}

// Article is the final, sanitized output of one extraction request.
type Article struct {
	URL         string
	Title       string
	Author      string
	PublishedAt string

	// Body is sanitized markdown-ish plain text, capped to the configured
	// maximum length.
	Body string

	// Tier records which strategy produced the body.
	Tier Tier

	// Score carries the confidence score of the accepted result. It is only
	// meaningful for escalation decisions within a single request and must
	// never be compared across URLs.
	Score float64

	// ContentHash is an xxhash of Body, useful for log correlation.
	ContentHash uint64
}

// Extractor extracts main content from HTML pages, removing boilerplate.
// Implementations return (nil, nil) when no plausible article content was
// found, signalling the caller to escalate to a more expensive tier.
type Extractor interface {
	Extract(html string) (*ExtractResult, error)
}

// Converter converts clean content HTML to markdown text.
type Converter interface {
	Convert(html string) (string, error)
}
