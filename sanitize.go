package linksum

import (
	"regexp"
	"strings"
)

// Sanitization is a fixed, order-sensitive sequence of subtractive
// transformations. Later rules assume earlier ones already ran (e.g. the
// trailing-boilerplate rules match unwrapped text because emphasis markers
// are stripped first). Nothing here reorders or summarizes content.
var (
	// 1. image markup and placeholders
	reLinkedImage      = regexp.MustCompile(`\[!\[[^\]]*\]\([^)]*\)\]\([^)]*\)`)
	reImage            = regexp.MustCompile(`!\[[^\]]*\]\([^)]*\)`)
	reImagePlaceholder = regexp.MustCompile(`(?i)\[(?:图片|image|img|picture)\]`)
	reImageCaption     = regexp.MustCompile(`\[[^\]]*图片[^\]]*\]`)

	// 2. reading-time/word-count metadata and date tokens
	reWordCountNote = regexp.MustCompile(`本文字数：\d+，阅读时长大约\d+分钟`)
	reReadingTime   = regexp.MustCompile(`阅读时长[:：][^\n]*?分钟`)
	reWordCount     = regexp.MustCompile(`字数[:：]\d+`)
	reDateToken     = regexp.MustCompile(`\d{4}[.年/-]\d{1,2}[.月/-]\d{1,2}[日号]?(\s+\d{1,2}:\d{1,2}(:\d{1,2})?)?`)

	// 3. dividers
	reStarDivider       = regexp.MustCompile(`\*\s*\*\s*\*`)
	reDashDivider       = regexp.MustCompile(`-{3,}`)
	reUnderscoreDivider = regexp.MustCompile(`_{3,}`)

	// 4. advertisement/sponsorship boilerplate
	reAdPhrases = []*regexp.Regexp{
		regexp.MustCompile(`\[广告\]`),
		regexp.MustCompile(`【广告】`),
		regexp.MustCompile(`广告\s*[.。]?`),
		regexp.MustCompile(`赞助内容`),
		regexp.MustCompile(`(?i)sponsored content`),
		regexp.MustCompile(`(?i)advertisement`),
		regexp.MustCompile(`(?i)promoted content`),
		regexp.MustCompile(`推广信息`),
	}

	// 5. bare URLs and textless links
	reHTTPURL   = regexp.MustCompile(`https?://\S+`)
	reWWWURL    = regexp.MustCompile(`www\.\S+`)
	reEmptyLink = regexp.MustCompile(`\[\]\([^)]*\)`)
	reBlankLink = regexp.MustCompile(`\[[^\]]+\]\(\s*\)`)

	// 6. emphasis/code markup (keep inner text)
	reBold   = regexp.MustCompile(`\*\*([^*]+)\*\*`)
	reItalic = regexp.MustCompile(`\*([^*]+)\*`)
	reCode   = regexp.MustCompile("`([^`]+)`")

	// 7. trailing editor/recommended-reading sections
	reEditorTrailer      = regexp.MustCompile(`(?m)^微信编辑.*$`)
	reRecommendedTrailer = regexp.MustCompile(`(?s)\n推荐阅读.*$`)

	// 8. whitespace normalization
	reLineLeading  = regexp.MustCompile(`(?m)^[ \t]+`)
	reLineTrailing = regexp.MustCompile(`(?m)[ \t]+$`)
	reBlankRuns    = regexp.MustCompile(`\n{3,}`)
	reSpaceRuns    = regexp.MustCompile(`[ \t]{2,}`)
)

// Sanitize applies the deterministic text-cleaning pass to extracted
// content, independent of which extraction tier produced it. It is
// idempotent and never increases text length.
func Sanitize(text string) string {
	s := text

	s = reLinkedImage.ReplaceAllString(s, "")
	s = reImage.ReplaceAllString(s, "")
	s = reImagePlaceholder.ReplaceAllString(s, "")
	s = reImageCaption.ReplaceAllString(s, "")

	s = reWordCountNote.ReplaceAllString(s, "")
	s = reReadingTime.ReplaceAllString(s, "")
	s = reWordCount.ReplaceAllString(s, "")
	s = reDateToken.ReplaceAllString(s, "")

	s = reStarDivider.ReplaceAllString(s, "")
	s = reDashDivider.ReplaceAllString(s, "")
	s = reUnderscoreDivider.ReplaceAllString(s, "")

	for _, re := range reAdPhrases {
		s = re.ReplaceAllString(s, "")
	}

	// Link shells first: a bare-URL match would otherwise eat the closing
	// paren of [](url) and leave the shell behind.
	s = reEmptyLink.ReplaceAllString(s, "")
	s = reBlankLink.ReplaceAllString(s, "")
	s = reHTTPURL.ReplaceAllString(s, "")
	s = reWWWURL.ReplaceAllString(s, "")

	s = reBold.ReplaceAllString(s, "$1")
	s = reItalic.ReplaceAllString(s, "$1")
	s = reCode.ReplaceAllString(s, "$1")

	s = reEditorTrailer.ReplaceAllString(s, "")
	s = reRecommendedTrailer.ReplaceAllString(s, "")

	// Trim line edges before collapsing blank runs so whitespace-only lines
	// count as blank and a single pass reaches the fixed point.
	s = reLineLeading.ReplaceAllString(s, "")
	s = reLineTrailing.ReplaceAllString(s, "")
	s = reBlankRuns.ReplaceAllString(s, "\n\n")
	s = reSpaceRuns.ReplaceAllString(s, " ")

	return strings.TrimSpace(s)
}
