package pipeline

import (
	"context"

	"github.com/fwojciec/linksum"
)

// DefaultMaxRetries is the retry budget after the initial attempt: 3
// retries, 4 total tries.
const DefaultMaxRetries = 3

// retryState tracks one logical extraction request across its retries.
// It exists only for the duration of the request.
type retryState struct {
	attempt  int
	lastErr  error
	lastCode string
}

// ExtractFunc runs one orchestration attempt.
type ExtractFunc func(ctx context.Context) (*linksum.Article, error)

// Retry re-invokes fn up to maxRetries additional times on failure.
// Retries are sequential and immediate; a platform access denial
// (EBLOCKED) short-circuits since retrying cannot change the platform's
// decision, and policy rejections (EINVALID, EDENIED, EUNRECOVERABLE) are
// terminal by definition. Context cancellation stops the loop.
func Retry(ctx context.Context, maxRetries int, fn ExtractFunc) (*linksum.Article, error) {
	state := retryState{}

	for ; state.attempt <= maxRetries; state.attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		article, err := fn(ctx)
		if err == nil {
			return article, nil
		}

		state.lastErr = err
		state.lastCode = linksum.ErrorCode(err)

		switch state.lastCode {
		case linksum.EBLOCKED, linksum.EINVALID, linksum.EDENIED, linksum.EUNRECOVERABLE:
			return nil, err
		}
	}

	return nil, state.lastErr
}
