package site_test

import (
	"context"
	"testing"

	"github.com/fwojciec/linksum"
	"github.com/fwojciec/linksum/mock"
	"github.com/fwojciec/linksum/site"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const weixinArticleHTML = `<html><body>
	<h1 id="activity-name">  测试文章标题  </h1>
	<a id="js_name">测试公众号</a>
	<em id="publish_time">2024年5月1日</em>
	<div id="js_content"><p>这是文章的正文内容。</p><p>第二段。</p></div>
</body></html>`

func TestWeixin_Match(t *testing.T) {
	t.Parallel()

	w := site.NewWeixin(&mock.Fetcher{})

	assert.True(t, w.Match("https://mp.weixin.qq.com/s?__biz=MzA5&mid=1&idx=1&sn=abc"))
	assert.True(t, w.Match("http://mp.weixin.qq.com/s/AbCdEf"))
	assert.False(t, w.Match("https://weixin.example.com/s/abc"))
	assert.False(t, w.Match("https://example.com/article"))
}

func TestWeixin_Resolve(t *testing.T) {
	t.Parallel()

	t.Run("extracts via the platform's fixed selectors", func(t *testing.T) {
		t.Parallel()

		var gotURL string
		var gotHeaders map[string]string
		fetcher := &mock.Fetcher{
			GetFn: func(ctx context.Context, url string, headers map[string]string) (string, error) {
				gotURL = url
				gotHeaders = headers
				return weixinArticleHTML, nil
			},
		}
		w := site.NewWeixin(fetcher)

		result, err := w.Resolve(context.Background(), "https://mp.weixin.qq.com/s?__biz=MzA5&mid=1&idx=2&sn=abc&chksm=xyz&scene=27")
		require.NoError(t, err)
		require.NotNil(t, result)

		assert.Equal(t, "测试文章标题", result.Title)
		assert.Equal(t, "测试公众号", result.Author)
		assert.Equal(t, "2024年5月1日", result.PublishedAt)
		assert.Contains(t, result.ContentHTML, "这是文章的正文内容。")

		// Tracking parameters are dropped before the fetch.
		assert.Equal(t, "https://mp.weixin.qq.com/s?__biz=MzA5&mid=1&idx=2&sn=abc", gotURL)
		assert.Contains(t, gotHeaders["User-Agent"], "MicroMessenger")
		assert.NotEmpty(t, gotHeaders["Cookie"])
	})

	t.Run("verification interstitial is blocked", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			GetFn: func(ctx context.Context, url string, headers map[string]string) (string, error) {
				return "<html><body>当前环境异常，完成验证后即可继续访问。</body></html>", nil
			},
		}
		w := site.NewWeixin(fetcher)

		_, err := w.Resolve(context.Background(), "https://mp.weixin.qq.com/s/abc")
		require.Error(t, err)
		assert.Equal(t, linksum.EBLOCKED, linksum.ErrorCode(err))
	})

	t.Run("empty content yields nothing", func(t *testing.T) {
		t.Parallel()

		fetcher := &mock.Fetcher{
			GetFn: func(ctx context.Context, url string, headers map[string]string) (string, error) {
				return `<html><body><div id="js_content">   </div></body></html>`, nil
			},
		}
		w := site.NewWeixin(fetcher)

		result, err := w.Resolve(context.Background(), "https://mp.weixin.qq.com/s/abc")
		require.NoError(t, err)
		assert.Nil(t, result)
	})
}

func TestSimplifyWeixinURL(t *testing.T) {
	t.Parallel()

	t.Run("keeps only the identifying parameters", func(t *testing.T) {
		t.Parallel()

		in := "https://mp.weixin.qq.com/s?__biz=MzA5NjQ3&mid=2650&idx=1&sn=deadbeef&chksm=888&scene=27&key=xyz"
		assert.Equal(t,
			"https://mp.weixin.qq.com/s?__biz=MzA5NjQ3&mid=2650&idx=1&sn=deadbeef",
			site.SimplifyWeixinURL(in))
	})

	t.Run("short-form URLs pass through unchanged", func(t *testing.T) {
		t.Parallel()

		in := "https://mp.weixin.qq.com/s/AbCdEfGh"
		assert.Equal(t, in, site.SimplifyWeixinURL(in))
	})
}
