package ekdsend

import (
	"context"
	"math"
	"net/http"
	"time"
)

const (
	DefaultRetryBaseInterval = 500 * time.Millisecond
	DefaultRetryFactor       = 2.0
	DefaultRetryMaxInterval  = 30 * time.Second
)

// RetryPolicy decides how many extra attempts a call gets and how long to wait before each.
// It holds no per-call state.
type RetryPolicy struct {
	// MaxRetries is the number of attempts allowed after the first one.
	MaxRetries int

	BaseInterval time.Duration
	Factor       float64

	// MaxInterval caps every wait, including one taken from a Retry-After header.
	MaxInterval time.Duration
}

func DefaultRetryPolicy() RetryPolicy {
	return RetryPolicy{
		MaxRetries:   DefaultMaxRetries,
		BaseInterval: DefaultRetryBaseInterval,
		Factor:       DefaultRetryFactor,
		MaxInterval:  DefaultRetryMaxInterval,
	}
}

// IsRetryable reports whether an attempt that ended with status, or with no response at all
// when transportFailure is set, may be tried again.
func IsRetryable(status int, transportFailure bool) bool {
	if transportFailure {
		return true
	}
	switch status {
	case http.StatusBadRequest, http.StatusUnauthorized:
		return false
	case http.StatusTooManyRequests,
		http.StatusInternalServerError,
		http.StatusBadGateway,
		http.StatusServiceUnavailable,
		http.StatusGatewayTimeout:
		return true
	}
	return false
}

// Delay returns the wait before the n-th retry (n starts at 1): BaseInterval * Factor^(n-1),
// capped at MaxInterval.
func (p RetryPolicy) Delay(n int) time.Duration {
	if n < 1 {
		n = 1
	}
	base := p.BaseInterval
	if base <= 0 {
		return 0
	}
	factor := p.Factor
	if factor < 1 {
		factor = 1
	}
	d := time.Duration(float64(base) * math.Pow(factor, float64(n-1)))
	if p.MaxInterval > 0 && (d > p.MaxInterval || d < 0) {
		d = p.MaxInterval
	}
	return d
}

// wait picks the delay before the n-th retry after resp. A Retry-After header on 429/503
// lengthens the backoff but never past MaxInterval.
func (p RetryPolicy) wait(n int, resp *RawResponse) time.Duration {
	d := p.Delay(n)
	if resp == nil {
		return d
	}
	if resp.StatusCode != http.StatusTooManyRequests && resp.StatusCode != http.StatusServiceUnavailable {
		return d
	}
	if ra := parseRetryAfterHeader(resp.Headers, time.Now()); ra > d {
		d = ra
		if p.MaxInterval > 0 && d > p.MaxInterval {
			d = p.MaxInterval
		}
	}
	return d
}

func sleep(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
