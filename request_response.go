package ekdsend

import (
	"encoding/json"
	"net/http"
	"net/url"
)

// NormalizedRequest is one outbound call as handed to an Adapter. Path is relative to the
// configured base URL.
type NormalizedRequest struct {
	Method  string
	Path    string
	Query   url.Values
	Headers http.Header
	Body    []byte
}

// describeParams renders the query or body for debug output.
func (r *NormalizedRequest) describeParams() string {
	if len(r.Body) > 0 {
		return string(r.Body)
	}
	if len(r.Query) > 0 {
		return r.Query.Encode()
	}
	return ""
}

// RawResponse is what an Adapter returns for a completed HTTP exchange.
type RawResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
}

func (r *RawResponse) success() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// NormalizedResponse is the parsed JSON body of a successful response. It is empty, never nil,
// when the body was absent or not valid JSON.
type NormalizedResponse map[string]any

// Data returns the "data" member of the body, or nil.
func (n NormalizedResponse) Data() any {
	return n["data"]
}

// Decode converts the whole body into v.
func (n NormalizedResponse) Decode(v any) error {
	return remarshal(map[string]any(n), v)
}

// DecodeData converts the "data" member into v. It is a no-op when "data" is absent.
func (n NormalizedResponse) DecodeData(v any) error {
	d, ok := n["data"]
	if !ok || d == nil {
		return nil
	}
	return remarshal(d, v)
}

func remarshal(src, dst any) error {
	b, err := json.Marshal(src)
	if err != nil {
		return err
	}
	return json.Unmarshal(b, dst)
}
