package ekdsend

import (
	"bytes"
	"context"
	"io"
	"net/http"

	"golang.org/x/oauth2"
)

// HTTPAdapter sends attempts over net/http. The API key travels as a bearer token injected by
// an oauth2.Transport wrapped around the client's own transport.
type HTTPAdapter struct {
	baseURL string
	client  *http.Client
}

// NewHTTPAdapter returns an adapter rooted at baseURL (no trailing slash). hc may be nil.
func NewHTTPAdapter(baseURL, apiKey string, hc *http.Client) *HTTPAdapter {
	var base http.RoundTripper
	var jar http.CookieJar
	if hc != nil {
		base = hc.Transport
		jar = hc.Jar
	}
	if base == nil {
		base = http.DefaultTransport
	}

	tokens := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: apiKey, TokenType: "Bearer"})
	client := &http.Client{
		Transport: &oauth2.Transport{Source: tokens, Base: base},
		Jar:       jar,
	}
	if hc != nil {
		client.CheckRedirect = hc.CheckRedirect
		client.Timeout = hc.Timeout
	}
	return &HTTPAdapter{baseURL: baseURL, client: client}
}

func (a *HTTPAdapter) ExecuteRequest(ctx context.Context, req *NormalizedRequest) (*RawResponse, error) {
	fullURL := a.baseURL + req.Path
	if len(req.Query) > 0 {
		fullURL += "?" + req.Query.Encode()
	}

	var body io.Reader
	if req.Body != nil {
		body = bytes.NewReader(req.Body)
	}
	httpReq, err := http.NewRequestWithContext(ctx, req.Method, fullURL, body)
	if err != nil {
		return nil, err
	}
	for k, vals := range req.Headers {
		for _, v := range vals {
			httpReq.Header.Add(k, v)
		}
	}

	resp, err := a.client.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}
	return &RawResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       data,
	}, nil
}
