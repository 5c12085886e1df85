// Package pipeline sequences the extraction tiers, applies quality gates,
// bounds retries, and drives the chat-facing share/trigger flow.
package pipeline

import (
	"context"
	"html"
	"log/slog"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/linksum"
	"github.com/fwojciec/linksum/etree"
	"github.com/google/uuid"
)

// Quality gate thresholds for the static tier: a result is acceptable when
// its combined title+body text exceeds gateMinChars, or it contains at
// least gateMinParagraphs paragraph breaks. Anything below escalates.
const (
	gateMinChars      = 1000
	gateMinParagraphs = 3
)

// Orchestrator runs the tiered extraction pipeline for one URL or share
// payload: static parse, then site-specific resolution, then JavaScript
// rendering, returning the first acceptable result.
type Orchestrator struct {
	classifier *linksum.Classifier
	parser     linksum.ShareParser
	fetcher    linksum.Fetcher
	extractor  linksum.Extractor
	registry   linksum.ResolverRegistry
	renderer   linksum.Renderer
	converter  linksum.Converter
	maxWords   int
	logger     *slog.Logger
}

// OrchestratorParams holds the orchestrator's dependencies. Renderer may be
// nil, which disables the dynamic tier.
type OrchestratorParams struct {
	Classifier *linksum.Classifier
	Parser     linksum.ShareParser
	Fetcher    linksum.Fetcher
	Extractor  linksum.Extractor
	Registry   linksum.ResolverRegistry
	Renderer   linksum.Renderer
	Converter  linksum.Converter
	MaxWords   int
	Logger     *slog.Logger
}

// NewOrchestrator creates an Orchestrator.
func NewOrchestrator(p OrchestratorParams) *Orchestrator {
	logger := p.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Orchestrator{
		classifier: p.Classifier,
		parser:     p.Parser,
		fetcher:    p.Fetcher,
		extractor:  p.Extractor,
		registry:   p.Registry,
		renderer:   p.Renderer,
		converter:  p.Converter,
		maxWords:   p.MaxWords,
		logger:     logger,
	}
}

// Extract runs the full pipeline for a raw payload (bare URL or share
// card) and returns the first acceptable, sanitized, length-capped result.
func (o *Orchestrator) Extract(ctx context.Context, payload string) (*linksum.Article, error) {
	logger := o.logger.With("request_id", uuid.NewString())

	url, err := o.recoverURL(payload)
	if err != nil {
		return nil, err
	}

	verdict := o.classifier.Classify(url)
	if !verdict.Admissible {
		if verdict.Reason == linksum.ReasonMalformed {
			return nil, linksum.Errorf(linksum.EINVALID, "not a valid URL: %s", url)
		}
		return nil, linksum.Errorf(linksum.EDENIED, "URL rejected by policy (%s): %s", verdict.Reason, url)
	}

	var lastErr error

	// Tier 1: static parse with the quality gate.
	article, err := o.extractStatic(ctx, url)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		lastErr = err
		logger.Debug("static tier failed", "url", url, "err", err)
	}
	if article != nil {
		logger.Info("extracted", "url", url, "tier", article.Tier, "chars", len([]rune(article.Body)))
		return article, nil
	}

	// Tier 2: site-specific profiles are trusted without the generic gate;
	// they encode structural knowledge of their platform.
	article, err = o.extractSite(ctx, url)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		lastErr = err
		logger.Debug("site tier failed", "url", url, "err", err)
	}
	if article != nil {
		logger.Info("extracted", "url", url, "tier", article.Tier, "chars", len([]rune(article.Body)))
		return article, nil
	}

	// Tier 3: JavaScript rendering.
	article, err = o.extractDynamic(ctx, url)
	if err != nil {
		if isFatal(err) {
			return nil, err
		}
		lastErr = err
		logger.Debug("dynamic tier failed", "url", url, "err", err)
	}
	if article != nil {
		logger.Info("extracted", "url", url, "tier", article.Tier, "chars", len([]rune(article.Body)))
		return article, nil
	}

	if lastErr != nil {
		return nil, lastErr
	}
	return nil, linksum.Errorf(linksum.EEMPTY, "no usable content for %s", url)
}

// recoverURL returns the payload itself for bare URLs, or the embedded url
// field for share-card envelopes.
func (o *Orchestrator) recoverURL(payload string) (string, error) {
	if !etree.IsShareCard(payload) {
		return html.UnescapeString(strings.TrimSpace(payload)), nil
	}
	url, _, err := o.parser.Parse(payload)
	if err != nil {
		return "", err
	}
	return url, nil
}

// extractStatic fetches the raw page and extracts heuristically; the
// result only stands when it passes the quality gate.
func (o *Orchestrator) extractStatic(ctx context.Context, url string) (*linksum.Article, error) {
	rawHTML, err := o.fetcher.Get(ctx, url, nil)
	if err != nil {
		return nil, err
	}

	result, err := o.extractor.Extract(rawHTML)
	if err != nil || result == nil {
		return nil, err
	}

	md, err := o.converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, err
	}

	if !passesGate(result.Title, md) {
		return nil, nil
	}
	return o.finalize(url, result, md, linksum.TierStatic), nil
}

// extractSite dispatches to the site-specific registry.
func (o *Orchestrator) extractSite(ctx context.Context, url string) (*linksum.Article, error) {
	result, err := o.registry.Resolve(ctx, url)
	if err != nil || result == nil {
		return nil, err
	}

	md, err := o.converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(md) == "" {
		return nil, nil
	}
	return o.finalize(url, result, md, linksum.TierSite), nil
}

// extractDynamic renders the page in the headless engine and reuses the
// same extractor on the realized DOM.
func (o *Orchestrator) extractDynamic(ctx context.Context, url string) (*linksum.Article, error) {
	if o.renderer == nil {
		return nil, nil
	}

	renderedHTML, err := o.renderer.Render(ctx, url)
	if err != nil {
		return nil, err
	}

	result, err := o.extractor.Extract(renderedHTML)
	if err != nil || result == nil {
		return nil, err
	}

	md, err := o.converter.Convert(result.ContentHTML)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(md) == "" {
		return nil, nil
	}
	return o.finalize(url, result, md, linksum.TierDynamic), nil
}

// finalize sanitizes and caps the markdown body and wraps it in an
// Article.
func (o *Orchestrator) finalize(url string, result *linksum.ExtractResult, md string, tier linksum.Tier) *linksum.Article {
	body := capRunes(linksum.Sanitize(md), o.maxWords)
	return &linksum.Article{
		URL:         url,
		Title:       linksum.Sanitize(result.Title),
		Author:      result.Author,
		PublishedAt: result.PublishedAt,
		Body:        body,
		Tier:        tier,
		Score:       result.Score,
		ContentHash: xxhash.Sum64String(body),
	}
}

// passesGate reports whether a static-tier result is acceptable or the
// pipeline should escalate.
func passesGate(title, body string) bool {
	if len([]rune(title))+len([]rune(body)) > gateMinChars {
		return true
	}
	return strings.Count(body, "\n\n") >= gateMinParagraphs
}

// isFatal reports whether an error must stop the whole attempt rather
// than escalate to the next tier.
func isFatal(err error) bool {
	switch linksum.ErrorCode(err) {
	case linksum.EBLOCKED, linksum.EINVALID, linksum.EDENIED, linksum.EUNRECOVERABLE:
		return true
	}
	return false
}

// capRunes truncates s to at most n runes.
func capRunes(s string, n int) string {
	if n <= 0 {
		return s
	}
	runes := []rune(s)
	if len(runes) <= n {
		return s
	}
	return string(runes[:n])
}
