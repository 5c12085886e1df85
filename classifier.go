package linksum

import (
	"regexp"
	"strings"
)

// Reason explains a classification verdict.
type Reason string

// Verdict reasons.
const (
	ReasonOK            Reason = "ok"
	ReasonMalformed     Reason = "malformed"
	ReasonDeniedPattern Reason = "denied_pattern"
	ReasonNotAllowed    Reason = "not_whitelisted"
	ReasonDenied        Reason = "blacklisted"
)

// Verdict is the result of classifying a URL for extraction. Derived per
// call and never persisted.
type Verdict struct {
	Admissible bool
	Reason     Reason
}

// nonArticlePatterns match URLs that are known to never carry extractable
// article text: media players, raw files, maps, collaborative documents,
// platform mini-apps, social feed permalinks, and product pages. Matching is
// case-insensitive against the full URL.
var nonArticlePatterns = []*regexp.Regexp{
	// video/audio players
	regexp.MustCompile(`(?i)(youtube\.com/watch|youtu\.be/|bilibili\.com/video/|v\.qq\.com/x/|music\.163\.com|y\.qq\.com/n/|open\.spotify\.com)`),
	// documents and archives
	regexp.MustCompile(`(?i)\.(pdf|docx?|xlsx?|pptx?|zip|rar|7z|tar|gz|dmg|exe|apk)(\?|$)`),
	// images
	regexp.MustCompile(`(?i)\.(jpe?g|png|gif|webp|bmp|svg|ico)(\?|$)`),
	// map services
	regexp.MustCompile(`(?i)(map\.baidu\.com|amap\.com|google\.[a-z.]+/maps|maps\.apple\.com)`),
	// collaborative documents
	regexp.MustCompile(`(?i)(docs\.qq\.com|shimo\.im|docs\.google\.com|feishu\.cn/(docs|docx|sheets)|kdocs\.cn)`),
	// platform-internal mini-app paths
	regexp.MustCompile(`(?i)(/wxaapp/|miniprogram|/gamecenter/|support\.weixin\.qq\.com/update)`),
	// social feed permalinks
	regexp.MustCompile(`(?i)(weibo\.(com|cn)/(u|p|status)/|twitter\.com/\w+/status/|x\.com/\w+/status/|instagram\.com/p/|facebook\.com/.+/posts/)`),
	// e-commerce product pages
	regexp.MustCompile(`(?i)(item\.taobao\.com|detail\.tmall\.com|item\.jd\.com|/dp/B0|amazon\.[a-z.]+/(gp/product|dp)/|shop\d+\.taobao)`),
}

// Classifier decides whether a URL is eligible for extraction. It is a pure
// function of its configuration and the URL string; no network I/O occurs.
//
// The zero value admits every well-formed http(s) URL that doesn't match a
// non-article pattern.
type Classifier struct {
	// AllowPrefixes, when non-empty, restricts extraction to URLs that
	// prefix-match at least one entry.
	AllowPrefixes []string

	// DenyPrefixes rejects URLs that prefix-match any entry. Deny always
	// wins over allow, so it is checked last.
	DenyPrefixes []string
}

// Classify applies the admissibility rules in order; first match wins.
func (c *Classifier) Classify(rawURL string) Verdict {
	u := strings.TrimSpace(rawURL)

	if !strings.HasPrefix(u, "http://") && !strings.HasPrefix(u, "https://") {
		return Verdict{Admissible: false, Reason: ReasonMalformed}
	}

	for _, re := range nonArticlePatterns {
		if re.MatchString(u) {
			return Verdict{Admissible: false, Reason: ReasonDeniedPattern}
		}
	}

	if len(c.AllowPrefixes) > 0 {
		allowed := false
		for _, p := range c.AllowPrefixes {
			if strings.HasPrefix(u, p) {
				allowed = true
				break
			}
		}
		if !allowed {
			return Verdict{Admissible: false, Reason: ReasonNotAllowed}
		}
	}

	// Deny list is authoritative over the allow list.
	for _, p := range c.DenyPrefixes {
		if strings.HasPrefix(u, p) {
			return Verdict{Admissible: false, Reason: ReasonDenied}
		}
	}

	return Verdict{Admissible: true, Reason: ReasonOK}
}
