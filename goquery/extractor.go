// Package goquery implements heuristic article extraction over parsed HTML.
// It scores DOM subtrees by text density, paragraph count, and image count
// to recover the article body from noisy pages.
package goquery

import (
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linksum"
	"golang.org/x/net/html"
)

// Ensure Extractor implements linksum.Extractor at compile time.
var _ linksum.Extractor = (*Extractor)(nil)

// minContentLength is the minimum final text length for a result to count
// as an article. Below this the page either has no body or the heuristics
// missed it, and the caller should escalate.
const minContentLength = 50

// minCandidateText is the minimum own-text length for an element to enter
// the fallback candidate set.
const minCandidateText = 100

// nonContentSelector matches elements removed before any analysis.
const nonContentSelector = "script, style, nav, header, footer, aside, form, iframe"

// contentSelectors are known content-container shapes, tried as the primary
// candidate set.
var contentSelectors = []string{
	"article",
	"main",
	"[class*='article-content']",
	"[class*='post-content']",
	"[class*='entry-content']",
	"[class*='main-content']",
	"#content",
	"#article",
	".content",
	".article",
}

// titleSelectors are tried in order; the first non-empty match wins.
var titleSelectors = []string{
	"h1",
	"title",
	".title",
	".article-title",
	".post-title",
	".entry-title",
	"[class*='title']",
}

// adSelector matches ad/recommendation sub-elements stripped from the
// winning candidate before text extraction.
const adSelector = "[class*='ad'], [class*='banner'], [class*='recommend'], " +
	"[id*='ad'], [id*='banner'], [id*='recommend']"

// candidate is a transient scoring record for one DOM subtree. It lives
// only within a single Extract call.
type candidate struct {
	sel        *goquery.Selection
	text       string
	textLen    int
	htmlLen    int
	paragraphs int
	images     int
	linkRatio  float64
	score      float64
}

// Extractor recovers title, byline, date, and body from raw HTML by
// candidate generation and density scoring.
type Extractor struct{}

// NewExtractor creates a new Extractor.
func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract parses the HTML, strips non-content elements, and returns the
// best-scoring content block. Returns (nil, nil) when no candidate is found
// or the final text is too short to be an article.
func (e *Extractor) Extract(rawHTML string) (*linksum.ExtractResult, error) {
	if rawHTML == "" {
		return nil, linksum.Errorf(linksum.EINVALID, "empty HTML input")
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(rawHTML))
	if err != nil {
		return nil, linksum.Errorf(linksum.EINVALID, "failed to parse HTML: %v", err)
	}

	doc.Find(nonContentSelector).Remove()

	title := extractTitle(doc)
	author, published := extractMeta(doc)

	candidates := containerCandidates(doc)
	if len(candidates) == 0 {
		candidates = denseBlockCandidates(doc)
	}
	if len(candidates) == 0 {
		return nil, nil
	}

	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.score > best.score {
			best = c
		}
	}

	best.sel.Find(adSelector).Remove()

	text := strings.TrimSpace(best.sel.Text())
	if len([]rune(text)) < minContentLength {
		return nil, nil
	}

	contentHTML, err := goquery.OuterHtml(best.sel)
	if err != nil {
		return nil, linksum.Errorf(linksum.EINTERNAL, "failed to render content: %v", err)
	}

	return &linksum.ExtractResult{
		Title:       title,
		Author:      author,
		PublishedAt: published,
		ContentHTML: contentHTML,
		Score:       best.score,
	}, nil
}

// extractTitle returns the first non-empty match among the title selectors.
func extractTitle(doc *goquery.Document) string {
	for _, selector := range titleSelectors {
		if title := strings.TrimSpace(doc.Find(selector).First().Text()); title != "" {
			return title
		}
	}
	return ""
}

// extractMeta recovers byline and publication date from common metadata
// shapes. Both are best-effort and may be empty.
func extractMeta(doc *goquery.Document) (author, published string) {
	if content, ok := doc.Find("meta[name='author']").Attr("content"); ok {
		author = strings.TrimSpace(content)
	}
	if author == "" {
		author = strings.TrimSpace(doc.Find(".author, .byline, [class*='author-name']").First().Text())
	}

	if content, ok := doc.Find("meta[property='article:published_time']").Attr("content"); ok {
		published = strings.TrimSpace(content)
	}
	if published == "" {
		if dt, ok := doc.Find("time[datetime]").Attr("datetime"); ok {
			published = strings.TrimSpace(dt)
		}
	}
	if published == "" {
		published = strings.TrimSpace(doc.Find(".publish-time, .post-date, [class*='publish-date']").First().Text())
	}
	return author, published
}

// containerCandidates scores elements matching known content-container
// selectors.
func containerCandidates(doc *goquery.Document) []candidate {
	var candidates []candidate
	seen := make(map[*html.Node]bool)

	for _, selector := range contentSelectors {
		doc.Find(selector).Each(func(_ int, sel *goquery.Selection) {
			node := sel.Get(0)
			if seen[node] {
				return
			}
			seen[node] = true
			if c, ok := score(sel); ok {
				candidates = append(candidates, c)
			}
		})
	}
	return candidates
}

// denseBlockCandidates is the fallback generation strategy: any paragraph
// or block container whose text exceeds minCandidateText. When the densest
// element is a paragraph, its parent is preferred if that parent holds more
// than 3 paragraphs, since the body almost certainly spans siblings.
func denseBlockCandidates(doc *goquery.Document) []candidate {
	var densest *goquery.Selection
	densestLen := 0

	doc.Find("p, div").Each(func(_ int, sel *goquery.Selection) {
		textLen := len([]rune(strings.TrimSpace(sel.Text())))
		if textLen > minCandidateText && textLen > densestLen {
			densest = sel
			densestLen = textLen
		}
	})
	if densest == nil {
		return nil
	}

	chosen := densest
	if goquery.NodeName(densest) == "p" {
		parent := densest.Parent()
		if parent.Length() > 0 && parent.Find("p").Length() > 3 {
			chosen = parent
		}
	}

	if c, ok := score(chosen); ok {
		return []candidate{c}
	}
	return nil
}

// score computes the candidate score:
//
//	textLength*1.0 + textDensity*100 + paragraphCount*30 + imageCount*10
//
// with a 0.5 multiplier penalty when over half of the text belongs to
// anchors, which marks the block as navigation rather than content.
func score(sel *goquery.Selection) (candidate, bool) {
	text := strings.TrimSpace(sel.Text())
	textLen := len([]rune(text))
	if textLen == 0 {
		return candidate{}, false
	}

	htmlStr, err := goquery.OuterHtml(sel)
	if err != nil || len(htmlStr) == 0 {
		return candidate{}, false
	}
	htmlLen := len([]rune(htmlStr))

	density := float64(textLen) / float64(htmlLen)
	paragraphs := sel.Find("p").Length()
	images := sel.Find("img").Length()

	linkLen := len([]rune(strings.TrimSpace(sel.Find("a").Text())))
	linkRatio := float64(linkLen) / float64(textLen)

	s := float64(textLen)*1.0 + density*100 + float64(paragraphs)*30 + float64(images)*10
	if linkRatio > 0.5 {
		s *= 0.5
	}

	return candidate{
		sel:        sel,
		text:       text,
		textLen:    textLen,
		htmlLen:    htmlLen,
		paragraphs: paragraphs,
		images:     images,
		linkRatio:  linkRatio,
		score:      s,
	}, true
}
