package goquery_test

import (
	"strings"
	"testing"

	"github.com/fwojciec/linksum"
	lsgoquery "github.com/fwojciec/linksum/goquery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestExtractor_Extract(t *testing.T) {
	t.Parallel()

	e := lsgoquery.NewExtractor()

	t.Run("extracts title, metadata, and body from an article page", func(t *testing.T) {
		t.Parallel()

		para := "<p>" + strings.Repeat("这是正文段落的内容。", 10) + "</p>"
		page := `<html><head>
			<title>页面标题 - 站点名</title>
			<meta name="author" content="张三">
		</head><body>
			<nav><a href="/">首页</a><a href="/about">关于</a></nav>
			<h1>文章标题</h1>
			<time datetime="2024-05-01T08:00:00Z">2024-05-01</time>
			<article>` + para + para + para + `<script>trackPageView()</script></article>
		</body></html>`

		result, err := e.Extract(page)
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "文章标题", result.Title)
		assert.Equal(t, "张三", result.Author)
		assert.Equal(t, "2024-05-01T08:00:00Z", result.PublishedAt)
		assert.Contains(t, result.ContentHTML, "这是正文段落的内容。")
		assert.NotContains(t, result.ContentHTML, "trackPageView")
		assert.Greater(t, result.Score, 0.0)
	})

	t.Run("falls back to the document title when no h1 exists", func(t *testing.T) {
		t.Parallel()

		page := `<html><head><title>Fallback Title</title></head><body>
			<article><p>` + strings.Repeat("body text here. ", 20) + `</p></article>
		</body></html>`

		result, err := e.Extract(page)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Equal(t, "Fallback Title", result.Title)
	})

	t.Run("prefers content over link-heavy navigation blocks", func(t *testing.T) {
		t.Parallel()

		var links strings.Builder
		for i := 0; i < 8; i++ {
			links.WriteString(`<a href="/x">` + strings.Repeat("导航链接文字", 14) + `</a>`)
		}
		body := "<p>" + strings.Repeat("文章正文内容。", 23) + "</p>"

		page := `<html><body>
			<div class="content">` + links.String() + `</div>
			<div class="content">` + body + body + body + `</div>
		</body></html>`

		result, err := e.Extract(page)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.ContentHTML, "文章正文内容。")
		assert.NotContains(t, result.ContentHTML, "导航链接文字")
	})

	t.Run("spans sibling paragraphs when the densest block is one of them", func(t *testing.T) {
		t.Parallel()

		page := `<html><body>
			<p>FIRST ` + strings.Repeat("开头段落。", 30) + `</p>
			<p>` + strings.Repeat("中间段落。", 55) + `</p>
			<p>` + strings.Repeat("后续段落。", 30) + `</p>
			<p>LAST ` + strings.Repeat("结尾段落。", 30) + `</p>
		</body></html>`

		result, err := e.Extract(page)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.Contains(t, result.ContentHTML, "FIRST")
		assert.Contains(t, result.ContentHTML, "LAST")
	})

	t.Run("strips ad sub-elements from the winning block", func(t *testing.T) {
		t.Parallel()

		page := `<html><body><article>
			<p>` + strings.Repeat("正常的文章内容。", 20) + `</p>
			<div class="ad-banner">广告推广文本</div>
		</article></body></html>`

		result, err := e.Extract(page)
		require.NoError(t, err)
		require.NotNil(t, result)
		assert.NotContains(t, result.ContentHTML, "广告推广文本")
	})

	t.Run("too little text means no article", func(t *testing.T) {
		t.Parallel()

		result, err := e.Extract(`<html><body><article>tiny</article></body></html>`)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("no candidates means no article", func(t *testing.T) {
		t.Parallel()

		result, err := e.Extract(`<html><body><p>short</p></body></html>`)
		require.NoError(t, err)
		assert.Nil(t, result)
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := e.Extract("")
		require.Error(t, err)
		assert.Equal(t, linksum.EINVALID, linksum.ErrorCode(err))
	})
}
