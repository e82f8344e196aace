// sdk.go
// ------
// The sdk.go file contains the Client, the entry point of the library.
//
// Key functionalities include:
// - Validating configuration and building a Client with NewClient()
// - Issuing API calls through Client.Request()
// - Exposing the Emails, SMS and Calls resources
//
// The Client relies on a RequestExecutor for retries and backoff and on an Adapter for the
// HTTP attempts. It keeps no mutable state, so one Client may be shared between goroutines.
package ekdsend

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/google/uuid"
)

type Client struct {
	cfg      Config
	executor *RequestExecutor

	Emails *EmailsService
	SMS    *SMSService
	Calls  *CallsService
}

// NewClient validates apiKey and the options and returns a ready Client. Configuration errors
// are reported before any adapter is built or used.
func NewClient(apiKey string, opts ...Option) (*Client, error) {
	cfg := defaultConfig(apiKey)
	for _, o := range opts {
		if o != nil {
			o(&cfg)
		}
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}

	adapter := cfg.Adapter
	if adapter == nil {
		adapter = NewHTTPAdapter(cfg.BaseURL, cfg.APIKey, cfg.HTTPClient)
		cfg.Adapter = adapter
	}

	c := &Client{
		cfg:      cfg,
		executor: NewRequestExecutor(adapter, cfg),
	}
	c.Emails = &EmailsService{client: c}
	c.SMS = &SMSService{client: c}
	c.Calls = &CallsService{client: c}
	return c, nil
}

// Config returns a copy of the client's configuration.
func (c *Client) Config() Config {
	return c.cfg
}

// Mode reports "live" or "test" according to the API key prefix.
func (c *Client) Mode() string {
	if strings.HasPrefix(c.cfg.APIKey, LiveKeyPrefix) {
		return "live"
	}
	return "test"
}

// Request performs one logical API call. For GET, params become the query string and may be
// url.Values, map[string]string, map[string]any or nil. For POST, params are JSON encoded as the
// body. DELETE sends no body and ignores params.
func (c *Client) Request(ctx context.Context, method, path string, params any) (NormalizedResponse, error) {
	req, err := c.buildRequest(method, path, params)
	if err != nil {
		return nil, err
	}
	return c.executor.ExecuteWithRetry(ctx, req)
}

func (c *Client) buildRequest(method, path string, params any) (*NormalizedRequest, error) {
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	req := &NormalizedRequest{
		Method:  strings.ToUpper(method),
		Path:    path,
		Headers: c.defaultHeaders(),
	}

	switch req.Method {
	case http.MethodGet:
		q, err := encodeQuery(params)
		if err != nil {
			return nil, err
		}
		req.Query = q
	case http.MethodPost:
		if params == nil {
			params = map[string]any{}
		}
		b, err := json.Marshal(params)
		if err != nil {
			return nil, fmt.Errorf("%w: encode body: %v", ErrInvalidParams, err)
		}
		req.Body = b
		req.Headers.Set("Idempotency-Key", uuid.NewString())
	case http.MethodDelete:
	default:
		return nil, invalidParams("unsupported method %q", method)
	}
	return req, nil
}

func (c *Client) defaultHeaders() http.Header {
	h := make(http.Header)
	h.Set("Content-Type", "application/json")
	h.Set("Accept", "application/json")
	h.Set("User-Agent", UserAgent)
	return h
}

func encodeQuery(params any) (url.Values, error) {
	switch p := params.(type) {
	case nil:
		return nil, nil
	case url.Values:
		return p, nil
	case map[string]string:
		q := url.Values{}
		for k, v := range p {
			q.Set(k, v)
		}
		return q, nil
	case map[string]any:
		q := url.Values{}
		for k, v := range p {
			if v == nil {
				continue
			}
			q.Set(k, fmt.Sprint(v))
		}
		return q, nil
	default:
		return nil, invalidParams("query params of type %T", params)
	}
}
