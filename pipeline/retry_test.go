package pipeline_test

import (
	"context"
	"testing"

	"github.com/fwojciec/linksum"
	"github.com/fwojciec/linksum/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRetry(t *testing.T) {
	t.Parallel()

	t.Run("persistent failure exhausts the budget", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := pipeline.Retry(context.Background(), pipeline.DefaultMaxRetries, func(ctx context.Context) (*linksum.Article, error) {
			calls++
			return nil, linksum.Errorf(linksum.EUNAVAILABLE, "host unreachable")
		})

		require.Error(t, err)
		assert.Equal(t, linksum.EUNAVAILABLE, linksum.ErrorCode(err))
		assert.Equal(t, 4, calls, "1 initial try + 3 retries")
	})

	t.Run("stops at the first success", func(t *testing.T) {
		t.Parallel()

		calls := 0
		article, err := pipeline.Retry(context.Background(), pipeline.DefaultMaxRetries, func(ctx context.Context) (*linksum.Article, error) {
			calls++
			if calls < 3 {
				return nil, linksum.Errorf(linksum.EEMPTY, "nothing yet")
			}
			return &linksum.Article{Title: "ok"}, nil
		})

		require.NoError(t, err)
		require.NotNil(t, article)
		assert.Equal(t, "ok", article.Title)
		assert.Equal(t, 3, calls)
	})

	t.Run("terminal codes short-circuit", func(t *testing.T) {
		t.Parallel()

		for _, code := range []string{
			linksum.EBLOCKED,
			linksum.EINVALID,
			linksum.EDENIED,
			linksum.EUNRECOVERABLE,
		} {
			calls := 0
			_, err := pipeline.Retry(context.Background(), pipeline.DefaultMaxRetries, func(ctx context.Context) (*linksum.Article, error) {
				calls++
				return nil, linksum.Errorf(code, "terminal")
			})

			require.Error(t, err, "code %s", code)
			assert.Equal(t, code, linksum.ErrorCode(err), "code %s", code)
			assert.Equal(t, 1, calls, "code %s", code)
		}
	})

	t.Run("zero retries means a single try", func(t *testing.T) {
		t.Parallel()

		calls := 0
		_, err := pipeline.Retry(context.Background(), 0, func(ctx context.Context) (*linksum.Article, error) {
			calls++
			return nil, linksum.Errorf(linksum.EUNAVAILABLE, "down")
		})

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("context cancellation stops the loop", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		calls := 0
		_, err := pipeline.Retry(ctx, pipeline.DefaultMaxRetries, func(c context.Context) (*linksum.Article, error) {
			calls++
			cancel()
			return nil, linksum.Errorf(linksum.EUNAVAILABLE, "down")
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, calls)
	})
}
