// Package etree parses structured share-card payloads using XML parsing
// with a permissive regexp fallback for malformed envelopes.
package etree

import (
	"html"
	"regexp"
	"strings"

	"github.com/beevik/etree"
	"github.com/fwojciec/linksum"
)

// Ensure ShareCardParser implements linksum.ShareParser at compile time.
var _ linksum.ShareParser = (*ShareCardParser)(nil)

// Chat platforms wrap forwarded links in an XML-like envelope; the url
// field frequently arrives HTML-escaped or inside CDATA, and real payloads
// are often truncated or otherwise not well-formed XML.
var (
	reURLField   = regexp.MustCompile(`(?is)<url>\s*(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?\s*</url>`)
	reTitleField = regexp.MustCompile(`(?is)<title>\s*(?:<!\[CDATA\[)?(.*?)(?:\]\]>)?\s*</title>`)
)

// ShareCardParser recovers the embedded URL from a share-card payload.
type ShareCardParser struct{}

// NewShareCardParser creates a new ShareCardParser.
func NewShareCardParser() *ShareCardParser {
	return &ShareCardParser{}
}

// IsShareCard reports whether the payload looks like a structured share
// card rather than a bare URL.
func IsShareCard(payload string) bool {
	trimmed := strings.TrimSpace(payload)
	return strings.HasPrefix(trimmed, "<") && strings.Contains(trimmed, "<appmsg")
}

// Parse attempts strict XML parsing for the url field, falling back to a
// permissive pattern search when the envelope is malformed. Failure to
// recover a URL is terminal for the attempt.
func (p *ShareCardParser) Parse(payload string) (string, string, error) {
	if url, title, ok := parseStrict(payload); ok {
		return url, title, nil
	}
	if url, title, ok := parseLoose(payload); ok {
		return url, title, nil
	}
	return "", "", linksum.Errorf(linksum.EUNRECOVERABLE, "share card contains no recoverable URL")
}

// parseStrict reads the envelope as XML and selects the appmsg url element.
func parseStrict(payload string) (url, title string, ok bool) {
	doc := etree.NewDocument()
	if err := doc.ReadFromString(payload); err != nil {
		return "", "", false
	}

	elem := doc.FindElement("//appmsg/url")
	if elem == nil {
		elem = doc.FindElement("//url")
	}
	if elem == nil {
		return "", "", false
	}

	url = cleanField(elem.Text())
	if url == "" {
		return "", "", false
	}

	if t := doc.FindElement("//appmsg/title"); t != nil {
		title = cleanField(t.Text())
	}
	return url, title, true
}

// parseLoose scans for the url field without requiring well-formed XML.
func parseLoose(payload string) (url, title string, ok bool) {
	m := reURLField.FindStringSubmatch(payload)
	if m == nil {
		return "", "", false
	}
	url = cleanField(m[1])
	if url == "" {
		return "", "", false
	}
	if t := reTitleField.FindStringSubmatch(payload); t != nil {
		title = cleanField(t[1])
	}
	return url, title, true
}

// cleanField trims and unescapes a recovered field value.
func cleanField(s string) string {
	return strings.TrimSpace(html.UnescapeString(s))
}
