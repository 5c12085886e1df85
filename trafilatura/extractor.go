// Package trafilatura implements linksum.Extractor using go-trafilatura.
// An alternate backend with the strongest metadata recovery (byline and
// publication date) of the three.
package trafilatura

import (
	"bytes"
	"strings"

	"github.com/fwojciec/linksum"
	"github.com/markusmobius/go-trafilatura"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linksum.Extractor at compile time.
var _ linksum.Extractor = (*Extractor)(nil)

// Extractor wraps go-trafilatura.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract processes raw HTML and returns the main content with metadata.
// Returns (nil, nil) when trafilatura found no content node.
func (e *Extractor) Extract(rawHTML string) (*linksum.ExtractResult, error) {
	if rawHTML == "" {
		return nil, linksum.Errorf(linksum.EINVALID, "empty HTML input")
	}

	opts := trafilatura.Options{
		EnableFallback: true,
	}

	result, err := trafilatura.Extract(strings.NewReader(rawHTML), opts)
	if err != nil {
		return nil, err
	}
	if result.ContentNode == nil {
		return nil, nil
	}

	contentHTML, err := renderNode(result.ContentNode)
	if err != nil {
		return nil, err
	}

	var published string
	if !result.Metadata.Date.IsZero() {
		published = result.Metadata.Date.Format("2006-01-02")
	}

	return &linksum.ExtractResult{
		Title:       result.Metadata.Title,
		Author:      result.Metadata.Author,
		PublishedAt: published,
		ContentHTML: contentHTML,
	}, nil
}

// renderNode converts an html.Node to a string.
func renderNode(n *html.Node) (string, error) {
	var buf bytes.Buffer
	if err := html.Render(&buf, n); err != nil {
		return "", err
	}
	return buf.String(), nil
}
