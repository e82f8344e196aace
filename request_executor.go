package ekdsend

import (
	"context"
	"log/slog"
	"time"
)

// RequestExecutor drives the attempts of one logical call through the retry policy.
type RequestExecutor struct {
	adapter Adapter
	policy  RetryPolicy
	timeout time.Duration
	logger  *slog.Logger
	debug   bool
}

func NewRequestExecutor(adapter Adapter, cfg Config) *RequestExecutor {
	return &RequestExecutor{
		adapter: adapter,
		policy:  cfg.Retry,
		timeout: cfg.Timeout,
		logger:  cfg.Logger,
		debug:   cfg.Debug,
	}
}

// attempt is the record of a single try. It never outlives ExecuteWithRetry.
type attempt struct {
	n       int
	resp    *RawResponse
	err     error
	elapsed time.Duration
}

func (a *attempt) retryable() bool {
	if a.err != nil {
		return IsRetryable(0, true)
	}
	return IsRetryable(a.resp.StatusCode, false)
}

// ExecuteWithRetry sends req until it gets a non-retryable outcome or runs out of retries, and
// returns the classification of the last attempt.
func (re *RequestExecutor) ExecuteWithRetry(ctx context.Context, req *NormalizedRequest) (NormalizedResponse, error) {
	maxAttempts := re.policy.MaxRetries + 1

	var last attempt
	for n := 1; ; n++ {
		last = re.try(ctx, n, req)

		if n >= maxAttempts || !last.retryable() {
			break
		}
		if ctx.Err() != nil {
			break
		}

		wait := re.policy.wait(n, last.resp)
		re.debugf("retrying", "method", req.Method, "path", req.Path,
			"attempt", n, "max_attempts", maxAttempts, "elapsed", last.elapsed, "wait", wait, "outcome", last.outcome())
		if err := sleep(ctx, wait); err != nil {
			break
		}
	}

	if last.err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, newTransportError(ctxErr)
		}
		return nil, newTransportError(last.err)
	}
	if last.n > 1 {
		re.debugf("finished after retries", "method", req.Method, "path", req.Path,
			"attempts", last.n, "status", last.resp.StatusCode)
	}
	return normalize(last.resp)
}

func (re *RequestExecutor) try(ctx context.Context, n int, req *NormalizedRequest) attempt {
	re.logRequest(req)

	actx, cancel := context.WithTimeout(ctx, re.timeout)
	defer cancel()

	start := time.Now()
	resp, err := re.adapter.ExecuteRequest(actx, req)
	a := attempt{n: n, resp: resp, err: err, elapsed: time.Since(start)}
	if err == nil && resp == nil {
		a.err = errNoResponse
	}
	if a.err == nil {
		re.logResponse(resp)
	}
	return a
}

func (a *attempt) outcome() any {
	if a.err != nil {
		return a.err.Error()
	}
	return a.resp.StatusCode
}

func (re *RequestExecutor) logRequest(req *NormalizedRequest) {
	if !re.debug {
		return
	}
	re.logger.Debug(req.Method + " " + req.Path)
	if params := req.describeParams(); params != "" {
		re.logger.Debug("request", "params", params)
	}
}

func (re *RequestExecutor) logResponse(resp *RawResponse) {
	if !re.debug {
		return
	}
	re.logger.Debug("response", "status", resp.StatusCode, "body", string(resp.Body))
}

func (re *RequestExecutor) debugf(msg string, args ...any) {
	if re.debug {
		re.logger.Debug(msg, args...)
	}
}
