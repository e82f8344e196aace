// errors.go
// ---------
// This file defines the error taxonomy returned by the client. Every failed call yields exactly
// one *Error whose Kind tells the caller what went wrong:
//
// - KindValidation: the API rejected the request as malformed (400).
// - KindAuthentication: the API key was refused (401).
// - KindNotFound: the addressed resource does not exist (404).
// - KindRateLimit: too many requests (429); RetryAfter carries the server's guidance.
// - KindAPI: any other non-2xx status.
// - KindTransport: no HTTP response was received at all.
//
// Use errors.Is with the Err* sentinels to branch on the kind, and AsError to read the fields.
package ekdsend

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

type ErrorKind int

const (
	KindAPI ErrorKind = iota
	KindValidation
	KindAuthentication
	KindNotFound
	KindRateLimit
	KindTransport
)

func (k ErrorKind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindNotFound:
		return "not_found"
	case KindRateLimit:
		return "rate_limit"
	case KindTransport:
		return "transport"
	default:
		return "api"
	}
}

// Sentinels matched by (*Error).Is.
var (
	ErrAPI            = errors.New("ekdsend: api error")
	ErrValidation     = errors.New("ekdsend: validation error")
	ErrAuthentication = errors.New("ekdsend: authentication error")
	ErrNotFound       = errors.New("ekdsend: not found")
	ErrRateLimit      = errors.New("ekdsend: rate limit exceeded")
	ErrTransport      = errors.New("ekdsend: transport error")
)

// Errors returned before any request is attempted.
var (
	ErrInvalidConfig = errors.New("ekdsend: invalid configuration")
	ErrMissingAPIKey = fmt.Errorf("%w: API key is required", ErrInvalidConfig)
	ErrInvalidAPIKey = fmt.Errorf("%w: invalid API key format, must start with %q or %q", ErrInvalidConfig, LiveKeyPrefix, TestKeyPrefix)
	ErrInvalidParams = errors.New("ekdsend: invalid parameters")

	errNoResponse = errors.New("adapter returned neither a response nor an error")
)

const (
	DefaultErrorMessage = "API request failed"
	DefaultErrorCode    = "UNKNOWN_ERROR"

	CodeValidation     = "VALIDATION_ERROR"
	CodeAuthentication = "AUTHENTICATION_ERROR"
	CodeRateLimit      = "RATE_LIMIT_EXCEEDED"
	CodeConnection     = "CONNECTION_ERROR"

	// DefaultRetryAfter is the client-side fallback used when a 429 body omits retry_after.
	// It is not a value promised by the API.
	DefaultRetryAfter = 60
)

// Error is the single error type produced by the request pipeline.
type Error struct {
	Kind ErrorKind

	// StatusCode is the HTTP status. It is 0 for KindTransport.
	StatusCode int

	// Code is the API's machine readable error code.
	Code    string
	Message string

	// RequestID is read from the X-Request-Id response header. Empty when the header is absent.
	RequestID string

	// Details holds error.details of a validation failure as parsed: usually a map or a list of
	// per-field errors. An empty map when the API sent none.
	Details any

	// RetryAfter is the number of seconds the API asks the caller to wait (KindRateLimit only).
	RetryAfter int

	// RateLimit is parsed from X-RateLimit-* headers when the response carried them.
	RateLimit *RateLimitInfo

	// Cause is the underlying transport failure (KindTransport only).
	Cause error
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	var b strings.Builder
	b.WriteString("ekdsend: ")
	if e.StatusCode != 0 {
		b.WriteString(fmt.Sprintf("%d %s", e.StatusCode, http.StatusText(e.StatusCode)))
	} else {
		b.WriteString(e.Kind.String())
	}
	if e.Code != "" {
		b.WriteString(" [")
		b.WriteString(e.Code)
		b.WriteString("]")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}
	if e.RequestID != "" {
		b.WriteString(" request_id=")
		b.WriteString(e.RequestID)
	}
	return b.String()
}

func (e *Error) Unwrap() error { return e.Cause }

// Is reports whether target is the sentinel for e's kind.
func (e *Error) Is(target error) bool {
	return target == e.Kind.sentinel()
}

func (k ErrorKind) sentinel() error {
	switch k {
	case KindValidation:
		return ErrValidation
	case KindAuthentication:
		return ErrAuthentication
	case KindNotFound:
		return ErrNotFound
	case KindRateLimit:
		return ErrRateLimit
	case KindTransport:
		return ErrTransport
	default:
		return ErrAPI
	}
}

// AsError extracts *Error from err.
func AsError(err error) (*Error, bool) {
	var e *Error
	if errors.As(err, &e) {
		return e, true
	}
	return nil, false
}

func newTransportError(cause error) *Error {
	return &Error{
		Kind:    KindTransport,
		Code:    CodeConnection,
		Message: cause.Error(),
		Cause:   cause,
	}
}

func invalidParams(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...))
}
