package site

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/linksum"
)

// Ensure Weixin implements linksum.Resolver at compile time.
var _ linksum.Resolver = (*Weixin)(nil)

// weixinMobileUA makes the request look like WeChat's in-app browser,
// which receives the article markup instead of a QR-code interstitial.
const weixinMobileUA = "Mozilla/5.0 (iPhone; CPU iPhone OS 17_4 like Mac OS X) " +
	"AppleWebKit/605.1.15 (KHTML, like Gecko) Mobile/15E148 MicroMessenger/8.0.49"

// Weixin extracts WeChat Official Account articles (mp.weixin.qq.com).
// The platform's anti-scraping heuristics key on absent session cookies, so
// a minimal plausible cookie set is synthesized for the fetch; the article
// markup itself uses stable, well-known element IDs.
type Weixin struct {
	fetcher linksum.Fetcher
}

// NewWeixin creates a Weixin resolver.
func NewWeixin(fetcher linksum.Fetcher) *Weixin {
	return &Weixin{fetcher: fetcher}
}

// Name returns the resolver's identifier.
func (w *Weixin) Name() string {
	return "weixin"
}

// Match reports whether the URL is a WeChat article.
func (w *Weixin) Match(rawURL string) bool {
	return strings.Contains(rawURL, "mp.weixin.qq.com")
}

// Resolve fetches the article with a primed session and extracts it via
// fixed selectors.
func (w *Weixin) Resolve(ctx context.Context, rawURL string) (*linksum.ExtractResult, error) {
	target := SimplifyWeixinURL(rawURL)

	html, err := w.fetcher.Get(ctx, target, map[string]string{
		"User-Agent": weixinMobileUA,
		"Cookie":     syntheticCookies(),
		"Referer":    "https://mp.weixin.qq.com/",
	})
	if err != nil {
		return nil, err
	}

	if isWeixinBlocked(html) {
		return nil, linksum.Errorf(linksum.EBLOCKED, "WeChat requires environment verification for %s", target)
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, linksum.Errorf(linksum.EINVALID, "failed to parse WeChat page: %v", err)
	}

	content := doc.Find("#js_content")
	if strings.TrimSpace(content.Text()) == "" {
		return nil, nil
	}

	contentHTML, err := goquery.OuterHtml(content)
	if err != nil {
		return nil, linksum.Errorf(linksum.EINTERNAL, "failed to render content: %v", err)
	}

	return &linksum.ExtractResult{
		Title:       strings.TrimSpace(doc.Find("#activity-name").Text()),
		Author:      strings.TrimSpace(doc.Find("#js_name").Text()),
		PublishedAt: strings.TrimSpace(doc.Find("#publish_time").Text()),
		ContentHTML: contentHTML,
	}, nil
}

// SimplifyWeixinURL reduces a WeChat article URL to its core identifying
// parameters (__biz, mid, idx, sn). Tracking parameters in long-form share
// URLs frequently expire and trip the platform's validity checks; the
// four-parameter form keeps working.
func SimplifyWeixinURL(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil {
		return rawURL
	}

	q := u.Query()
	biz, mid, idx, sn := q.Get("__biz"), q.Get("mid"), q.Get("idx"), q.Get("sn")
	if biz == "" || mid == "" || idx == "" || sn == "" {
		return rawURL
	}

	return fmt.Sprintf("https://mp.weixin.qq.com/s?__biz=%s&mid=%s&idx=%s&sn=%s", biz, mid, idx, sn)
}

// syntheticCookies returns a minimal plausible WeChat session cookie set.
// The values carry no entitlement; their presence alone is what the
// anti-scraping check looks for.
func syntheticCookies() string {
	return "rewardsn=; wxtokenkey=777; wwapp.vid=; wwapp.cst=; wwapp.deviceid="
}

// isWeixinBlocked detects the verification interstitial served instead of
// the article.
func isWeixinBlocked(html string) bool {
	return strings.Contains(html, "环境异常") ||
		strings.Contains(html, "完成验证后即可继续访问") ||
		strings.Contains(html, "当前环境异常")
}
