package htmltomarkdown_test

import (
	"testing"

	"github.com/fwojciec/linksum"
	"github.com/fwojciec/linksum/htmltomarkdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConverter_Convert(t *testing.T) {
	t.Parallel()

	c := htmltomarkdown.NewConverter()

	t.Run("converts content markup to markdown", func(t *testing.T) {
		t.Parallel()

		md, err := c.Convert(`<div><h2>小节标题</h2><p>第一段<strong>重点</strong>内容。</p><p>第二段。</p></div>`)
		require.NoError(t, err)

		assert.Contains(t, md, "## 小节标题")
		assert.Contains(t, md, "**重点**")
		assert.Contains(t, md, "第二段。")
	})

	t.Run("keeps links and images in markdown form", func(t *testing.T) {
		t.Parallel()

		md, err := c.Convert(`<p><a href="https://example.com/ref">参考</a><img src="https://cdn.example.com/a.png" alt="图"></p>`)
		require.NoError(t, err)

		assert.Contains(t, md, "[参考](https://example.com/ref)")
		assert.Contains(t, md, "![图](https://cdn.example.com/a.png)")
	})

	t.Run("empty input is invalid", func(t *testing.T) {
		t.Parallel()

		_, err := c.Convert("   ")
		require.Error(t, err)
		assert.Equal(t, linksum.EINVALID, linksum.ErrorCode(err))
	})
}
