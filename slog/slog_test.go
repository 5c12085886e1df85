package slog_test

import (
	"bytes"
	"context"
	stdslog "log/slog"
	"testing"

	"github.com/fwojciec/linksum/mock"
	lsslog "github.com/fwojciec/linksum/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingFetcher(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, &stdslog.HandlerOptions{Level: stdslog.LevelDebug}))

	inner := &mock.Fetcher{
		GetFn: func(ctx context.Context, url string, headers map[string]string) (string, error) {
			return "<html>body</html>", nil
		},
		HeadFn: func(ctx context.Context, url string) (string, error) {
			return "https://example.com/final", nil
		},
	}
	f := lsslog.NewLoggingFetcher(inner, logger)

	body, err := f.Get(context.Background(), "https://example.com/a", nil)
	require.NoError(t, err)
	assert.Equal(t, "<html>body</html>", body)
	assert.Contains(t, buf.String(), "msg=fetch")
	assert.Contains(t, buf.String(), "url=https://example.com/a")

	buf.Reset()
	final, err := f.Head(context.Background(), "https://b23.tv/x")
	require.NoError(t, err)
	assert.Equal(t, "https://example.com/final", final)
	assert.Contains(t, buf.String(), "msg=resolve")

	assert.NoError(t, f.Close())
}

func TestLoggingRenderer(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := stdslog.New(stdslog.NewTextHandler(&buf, nil))

	inner := &mock.Renderer{
		RenderFn: func(ctx context.Context, url string) (string, error) {
			return "<html>rendered</html>", nil
		},
	}
	r := lsslog.NewLoggingRenderer(inner, logger)

	html, err := r.Render(context.Background(), "https://example.com/spa")
	require.NoError(t, err)
	assert.Equal(t, "<html>rendered</html>", html)
	assert.Contains(t, buf.String(), "msg=render")

	assert.NoError(t, r.Close())
}
