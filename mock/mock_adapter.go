// Package mock provides an in-memory ekdsend.Adapter for tests. Replies are served in order;
// once the script is exhausted the last reply repeats.
package mock

import (
	"context"
	"net/http"
	"sync"

	ekdsend "github.com/ekddigital/ekdsend-go"
)

// Reply is one scripted outcome. When Err is set no response is returned.
type Reply struct {
	Status  int
	Body    string
	Headers map[string]string
	Err     error
}

type MockAdapter struct {
	mu       sync.Mutex
	replies  []Reply
	requests []ekdsend.NormalizedRequest
}

func NewAdapter(replies ...Reply) *MockAdapter {
	return &MockAdapter{replies: replies}
}

// JSON is shorthand for a reply with a JSON body.
func JSON(status int, body string) Reply {
	return Reply{Status: status, Body: body}
}

func (m *MockAdapter) ExecuteRequest(ctx context.Context, req *ekdsend.NormalizedRequest) (*ekdsend.RawResponse, error) {
	m.mu.Lock()
	m.requests = append(m.requests, cloneRequest(req))
	n := len(m.requests)
	var r Reply
	switch {
	case len(m.replies) == 0:
		r = Reply{Status: http.StatusOK}
	case n <= len(m.replies):
		r = m.replies[n-1]
	default:
		r = m.replies[len(m.replies)-1]
	}
	m.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if r.Err != nil {
		return nil, r.Err
	}

	h := make(http.Header)
	for k, v := range r.Headers {
		h.Set(k, v)
	}
	return &ekdsend.RawResponse{
		StatusCode: r.Status,
		Headers:    h,
		Body:       []byte(r.Body),
	}, nil
}

// Calls returns the number of attempts received.
func (m *MockAdapter) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.requests)
}

// Requests returns a copy of every attempt received, oldest first.
func (m *MockAdapter) Requests() []ekdsend.NormalizedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]ekdsend.NormalizedRequest, len(m.requests))
	copy(out, m.requests)
	return out
}

// Last returns the most recent attempt. It panics if there was none.
func (m *MockAdapter) Last() ekdsend.NormalizedRequest {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.requests[len(m.requests)-1]
}

func cloneRequest(req *ekdsend.NormalizedRequest) ekdsend.NormalizedRequest {
	out := *req
	out.Headers = req.Headers.Clone()
	if req.Query != nil {
		out.Query = make(map[string][]string, len(req.Query))
		for k, v := range req.Query {
			out.Query[k] = append([]string(nil), v...)
		}
	}
	if req.Body != nil {
		out.Body = append([]byte(nil), req.Body...)
	}
	return out
}
