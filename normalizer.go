package ekdsend

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"github.com/ekddigital/ekdsend-go/internal"
)

const requestIDHeader = "X-Request-Id"

// parseBody decodes body as a JSON object. Empty, non-JSON and non-object bodies all yield an
// empty map so that the HTTP status stays the only source of failure.
func parseBody(body []byte) NormalizedResponse {
	out := NormalizedResponse{}
	if len(bytes.TrimSpace(body)) == 0 {
		return out
	}
	var m map[string]any
	if err := json.Unmarshal(body, &m); err != nil || m == nil {
		return out
	}
	return NormalizedResponse(m)
}

// normalize turns a completed exchange into the caller-facing result.
func normalize(resp *RawResponse) (NormalizedResponse, error) {
	body := parseBody(resp.Body)
	if resp.success() {
		return body, nil
	}
	return nil, classify(resp.StatusCode, body, resp.Headers)
}

// classify maps a non-2xx status and its parsed body onto exactly one error kind.
func classify(status int, body NormalizedResponse, h http.Header) *Error {
	detail, _ := body["error"].(map[string]any)

	message := DefaultErrorMessage
	if s, ok := detail["message"].(string); ok {
		message = s
	}
	code := DefaultErrorCode
	if s, ok := detail["code"].(string); ok {
		code = s
	}

	e := &Error{
		StatusCode: status,
		Code:       code,
		Message:    message,
		RequestID:  h.Get(requestIDHeader),
	}

	switch status {
	case http.StatusBadRequest:
		e.Kind = KindValidation
		e.Code = CodeValidation
		e.Details = detail["details"]
		if e.Details == nil {
			e.Details = map[string]any{}
		}
	case http.StatusUnauthorized:
		e.Kind = KindAuthentication
		e.Code = CodeAuthentication
	case http.StatusNotFound:
		e.Kind = KindNotFound
	case http.StatusTooManyRequests:
		e.Kind = KindRateLimit
		e.Code = CodeRateLimit
		e.RetryAfter = internal.Seconds(detail["retry_after"], DefaultRetryAfter)
		e.RateLimit = parseRateLimitInfo(h, time.Now())
	default:
		e.Kind = KindAPI
	}
	return e
}
