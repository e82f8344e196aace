// rate_limit.go
// -------------
// This file reads the rate limit headers the API attaches to its responses. Parsing is done per
// response; nothing is remembered between calls.
//
// Headers understood:
// - X-RateLimit-Limit / X-RateLimit-Remaining: request counts for the current window.
// - X-RateLimit-Reset: UNIX seconds at which the window resets.
// - Retry-After: seconds, or an HTTP date, to wait before the next request.
package ekdsend

import (
	"net/http"
	"strconv"
	"strings"
	"time"
)

// RateLimitInfo is the rate limit state reported by one response.
type RateLimitInfo struct {
	Limit     *int
	Remaining *int
	ResetAt   *time.Time

	// RetryAfter is zero when the header was absent.
	RetryAfter time.Duration
}

// parseRateLimitInfo returns nil when h carries none of the headers.
func parseRateLimitInfo(h http.Header, now time.Time) *RateLimitInfo {
	if h == nil {
		return nil
	}
	parseInt := func(key string) *int {
		if v := strings.TrimSpace(h.Get(key)); v != "" {
			if i, err := strconv.Atoi(v); err == nil {
				return &i
			}
		}
		return nil
	}

	info := &RateLimitInfo{
		Limit:      parseInt("X-RateLimit-Limit"),
		Remaining:  parseInt("X-RateLimit-Remaining"),
		RetryAfter: parseRetryAfterHeader(h, now),
	}
	if v := strings.TrimSpace(h.Get("X-RateLimit-Reset")); v != "" {
		if ts, err := strconv.ParseInt(v, 10, 64); err == nil {
			t := time.Unix(ts, 0)
			info.ResetAt = &t
		}
	}

	if info.Limit == nil && info.Remaining == nil && info.ResetAt == nil && info.RetryAfter == 0 {
		return nil
	}
	return info
}

func parseRetryAfterHeader(h http.Header, now time.Time) time.Duration {
	if h == nil {
		return 0
	}
	v := strings.TrimSpace(h.Get("Retry-After"))
	if v == "" {
		return 0
	}
	if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	if t, err := http.ParseTime(v); err == nil && t.After(now) {
		return t.Sub(now)
	}
	return 0
}
