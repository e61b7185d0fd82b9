package retry

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/cenkalti/backoff/v5"
)

// HTTPError carries the status code of a failed provider call so the
// policy can tell rate limits and server errors from permanent 4xx.
type HTTPError struct {
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("http status %d: %s", e.StatusCode, e.Body)
}

// Transient reports whether err is worth another attempt: timeouts,
// transport errors, HTTP 429 and 5xx. Everything else (auth failures,
// malformed input, other 4xx) fails immediately.
func Transient(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.Canceled) {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.StatusCode == http.StatusTooManyRequests || httpErr.StatusCode >= 500
	}
	return false
}

const backoffInterval = 500 * time.Millisecond

// Do runs op under a per-attempt timeout, retrying transient failures up
// to attempts total tries with a constant backoff. Permanent failures and
// caller cancellation stop immediately.
func Do[T any](ctx context.Context, timeout time.Duration, attempts int, op func(context.Context) (T, error)) (T, error) {
	if attempts < 1 {
		attempts = 1
	}

	operation := func() (T, error) {
		attemptCtx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()

		v, err := op(attemptCtx)
		if err != nil && !Transient(err) {
			return v, backoff.Permanent(err)
		}
		return v, err
	}

	return backoff.Retry(ctx, operation,
		backoff.WithBackOff(backoff.NewConstantBackOff(backoffInterval)),
		backoff.WithMaxTries(uint(attempts)),
	)
}
