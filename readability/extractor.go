// Package readability implements linksum.Extractor using Mozilla's
// Readability algorithm. An alternate backend to the density-scoring
// heuristic in goquery/.
package readability

import (
	"strings"

	"github.com/fwojciec/linksum"
	readability "github.com/go-shiori/go-readability"
)

// Ensure Extractor implements linksum.Extractor at compile time.
var _ linksum.Extractor = (*Extractor)(nil)

// minContentLength mirrors the heuristic backend's cutoff: below this the
// algorithm almost certainly failed to locate the article body.
const minContentLength = 50

// Extractor wraps go-readability.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content. Returns
// (nil, nil) when readability produced too little text, letting the caller
// escalate instead of accepting a scrap.
func (e *Extractor) Extract(rawHTML string) (*linksum.ExtractResult, error) {
	if rawHTML == "" {
		return nil, linksum.Errorf(linksum.EINVALID, "empty HTML input")
	}

	article, err := readability.FromReader(strings.NewReader(rawHTML), nil)
	if err != nil {
		return nil, err
	}

	if len([]rune(strings.TrimSpace(article.TextContent))) < minContentLength {
		return nil, nil
	}

	return &linksum.ExtractResult{
		Title:       article.Title,
		Author:      article.Byline,
		ContentHTML: article.Content,
	}, nil
}
