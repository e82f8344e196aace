package ekdsend_test

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	ekdsend "github.com/ekddigital/ekdsend-go"
	"github.com/ekddigital/ekdsend-go/mock"
)

const testKey = "ek_test_abc123"

func fastRetry(n int) ekdsend.Option {
	return ekdsend.WithRetryPolicy(ekdsend.RetryPolicy{
		MaxRetries:   n,
		BaseInterval: time.Millisecond,
		Factor:       2,
		MaxInterval:  10 * time.Millisecond,
	})
}

func TestNewClient_RejectsBadKeys(t *testing.T) {
	cases := []struct {
		key  string
		want error
	}{
		{"", ekdsend.ErrMissingAPIKey},
		{"sk_live_123", ekdsend.ErrInvalidAPIKey},
		{"ek_prod_123", ekdsend.ErrInvalidAPIKey},
	}
	for _, tc := range cases {
		adapter := mock.NewAdapter()
		c, err := ekdsend.NewClient(tc.key, ekdsend.WithAdapter(adapter))
		if !errors.Is(err, tc.want) {
			t.Fatalf("%q: want %v, got %v", tc.key, tc.want, err)
		}
		if !errors.Is(err, ekdsend.ErrInvalidConfig) {
			t.Fatalf("%q: expected ErrInvalidConfig", tc.key)
		}
		if c != nil {
			t.Fatalf("%q: expected nil client", tc.key)
		}
		if got := adapter.Calls(); got != 0 {
			t.Fatalf("%q: expected no attempts, got %d", tc.key, got)
		}
	}
}

func TestNewClient_Config(t *testing.T) {
	c, err := ekdsend.NewClient("ek_live_abc", ekdsend.WithBaseURL("https://api.example.com/v1/"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	cfg := c.Config()
	if cfg.BaseURL != "https://api.example.com/v1" {
		t.Fatalf("unexpected base url: %q", cfg.BaseURL)
	}
	if cfg.Timeout != ekdsend.DefaultTimeout || cfg.Retry.MaxRetries != ekdsend.DefaultMaxRetries {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if c.Mode() != "live" {
		t.Fatalf("expected live mode, got %q", c.Mode())
	}

	c, err = ekdsend.NewClient(testKey, ekdsend.WithBaseURL("https://api.example.com/v1//"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if got := c.Config().BaseURL; got != "https://api.example.com/v1/" {
		t.Fatalf("expected a single slash stripped, got %q", got)
	}
	if c.Mode() != "test" {
		t.Fatalf("expected test mode, got %q", c.Mode())
	}
}

func TestRequest_Headers(t *testing.T) {
	var got http.Header
	var gotBody []byte
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.Header.Clone()
		gotBody, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"data":{"id":"em_1"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := ekdsend.NewClient(testKey, ekdsend.WithBaseURL(srv.URL))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	resp, err := c.Request(context.Background(), http.MethodPost, "/emails", map[string]any{"subject": "hi"})
	if err != nil {
		t.Fatalf("Request: %v", err)
	}
	if data, _ := resp.Data().(map[string]any); data["id"] != "em_1" {
		t.Fatalf("unexpected data: %v", resp)
	}

	if got.Get("Authorization") != "Bearer "+testKey {
		t.Fatalf("unexpected authorization: %q", got.Get("Authorization"))
	}
	if got.Get("Content-Type") != "application/json" || got.Get("Accept") != "application/json" {
		t.Fatalf("unexpected content headers: %v", got)
	}
	if got.Get("User-Agent") != ekdsend.UserAgent {
		t.Fatalf("unexpected user agent: %q", got.Get("User-Agent"))
	}
	if got.Get("Idempotency-Key") == "" {
		t.Fatalf("expected an idempotency key on POST")
	}
	if string(gotBody) != `{"subject":"hi"}` {
		t.Fatalf("unexpected body: %s", gotBody)
	}
}

func TestRequest_GetQueryAndDeleteBody(t *testing.T) {
	var mu sync.Mutex
	var seen []string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		seen = append(seen, fmt.Sprintf("%s %s?%s body=%q", r.Method, r.URL.Path, r.URL.RawQuery, b))
		mu.Unlock()
		_, _ = w.Write([]byte(`{}`))
	}))
	t.Cleanup(srv.Close)

	c, err := ekdsend.NewClient(testKey, ekdsend.WithBaseURL(srv.URL+"/v1"))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx := context.Background()
	if _, err := c.Request(ctx, http.MethodGet, "/sms", map[string]string{"limit": "5"}); err != nil {
		t.Fatalf("GET: %v", err)
	}
	if _, err := c.Request(ctx, http.MethodDelete, "/sms/sms_1", map[string]string{"ignored": "x"}); err != nil {
		t.Fatalf("DELETE: %v", err)
	}

	want := []string{`GET /v1/sms?limit=5 body=""`, `DELETE /v1/sms/sms_1? body=""`}
	if strings.Join(seen, "\n") != strings.Join(want, "\n") {
		t.Fatalf("unexpected requests:\n%s", strings.Join(seen, "\n"))
	}
}

func TestRequest_UnsupportedMethod(t *testing.T) {
	adapter := mock.NewAdapter()
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Request(context.Background(), http.MethodPut, "/emails/1", nil)
	if !errors.Is(err, ekdsend.ErrInvalidParams) {
		t.Fatalf("expected ErrInvalidParams, got %v", err)
	}
	if adapter.Calls() != 0 {
		t.Fatalf("expected no attempts")
	}
}

func TestRequest_RetriesThenSucceeds(t *testing.T) {
	for _, status := range []int{429, 500, 502, 503, 504} {
		t.Run(http.StatusText(status), func(t *testing.T) {
			var n int32
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if atomic.AddInt32(&n, 1) < 3 {
					w.WriteHeader(status)
					_, _ = w.Write([]byte(`{"error":{"message":"try again"}}`))
					return
				}
				_, _ = w.Write([]byte(`{"data":{"ok":true}}`))
			}))
			t.Cleanup(srv.Close)

			c, err := ekdsend.NewClient(testKey, ekdsend.WithBaseURL(srv.URL), fastRetry(3))
			if err != nil {
				t.Fatalf("NewClient: %v", err)
			}
			resp, err := c.Request(context.Background(), http.MethodGet, "/emails", nil)
			if err != nil {
				t.Fatalf("Request: %v", err)
			}
			if data, _ := resp.Data().(map[string]any); data["ok"] != true {
				t.Fatalf("unexpected body: %v", resp)
			}
			if got := atomic.LoadInt32(&n); got != 3 {
				t.Fatalf("expected 3 attempts, got %d", got)
			}
		})
	}
}

func TestRequest_NoRetryOnClientErrors(t *testing.T) {
	for _, status := range []int{400, 401, 404} {
		adapter := mock.NewAdapter(mock.JSON(status, `{"error":{"message":"no"}}`))
		c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), fastRetry(5))
		if err != nil {
			t.Fatalf("NewClient: %v", err)
		}
		_, err = c.Request(context.Background(), http.MethodPost, "/sms", nil)
		e, ok := ekdsend.AsError(err)
		if !ok || e.StatusCode != status {
			t.Fatalf("%d: unexpected error %v", status, err)
		}
		if got := adapter.Calls(); got != 1 {
			t.Fatalf("%d: expected exactly one attempt, got %d", status, got)
		}
	}
}

func TestRequest_ExhaustionReturnsLastClassification(t *testing.T) {
	adapter := mock.NewAdapter(
		mock.JSON(500, `{"error":{"message":"boom"}}`),
		mock.JSON(503, ``),
		mock.JSON(429, `{"error":{"message":"slow down","retry_after":30}}`),
	)
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), fastRetry(2))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Request(context.Background(), http.MethodGet, "/calls", nil)
	if !errors.Is(err, ekdsend.ErrRateLimit) {
		t.Fatalf("expected rate limit error, got %v", err)
	}
	e, _ := ekdsend.AsError(err)
	if e.RetryAfter != 30 {
		t.Fatalf("expected retry_after 30, got %d", e.RetryAfter)
	}
	if got := adapter.Calls(); got != 3 {
		t.Fatalf("expected 3 attempts, got %d", got)
	}
}

func TestRequest_IdempotencyKeyStableAcrossRetries(t *testing.T) {
	adapter := mock.NewAdapter(mock.JSON(502, ``), mock.JSON(200, `{"data":{}}`))
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), fastRetry(1))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Request(context.Background(), http.MethodPost, "/sms", map[string]any{"to": "x"}); err != nil {
		t.Fatalf("Request: %v", err)
	}
	reqs := adapter.Requests()
	if len(reqs) != 2 {
		t.Fatalf("expected 2 attempts, got %d", len(reqs))
	}
	k1, k2 := reqs[0].Headers.Get("Idempotency-Key"), reqs[1].Headers.Get("Idempotency-Key")
	if k1 == "" || k1 != k2 {
		t.Fatalf("expected one key reused across attempts, got %q and %q", k1, k2)
	}
}

func TestRequest_TransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	url := srv.URL
	srv.Close()

	c, err := ekdsend.NewClient(testKey, ekdsend.WithBaseURL(url), fastRetry(2))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Request(context.Background(), http.MethodGet, "/emails", nil)
	if !errors.Is(err, ekdsend.ErrTransport) {
		t.Fatalf("expected transport error, got %v", err)
	}
	e, _ := ekdsend.AsError(err)
	if e.StatusCode != 0 || e.Cause == nil {
		t.Fatalf("unexpected transport error fields: %+v", e)
	}
}

func TestRequest_TransportErrorRetried(t *testing.T) {
	adapter := mock.NewAdapter(
		mock.Reply{Err: errors.New("connection reset by peer")},
		mock.JSON(200, `{"data":{"id":"call_1"}}`),
	)
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), fastRetry(3))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Request(context.Background(), http.MethodGet, "/calls/call_1", nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if adapter.Calls() != 2 {
		t.Fatalf("expected 2 attempts, got %d", adapter.Calls())
	}
}

func TestRequest_TimeoutIsPerAttempt(t *testing.T) {
	var n int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&n, 1) == 1 {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
			return
		}
		_, _ = w.Write([]byte(`{"data":{}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := ekdsend.NewClient(testKey,
		ekdsend.WithBaseURL(srv.URL),
		ekdsend.WithTimeout(100*time.Millisecond),
		fastRetry(1),
	)
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Request(context.Background(), http.MethodGet, "/emails", nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if got := atomic.LoadInt32(&n); got != 2 {
		t.Fatalf("expected 2 attempts, got %d", got)
	}
}

func TestRequest_CancelledContextStopsRetrying(t *testing.T) {
	adapter := mock.NewAdapter(mock.Reply{Err: errors.New("dial tcp: connection refused")})
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), ekdsend.WithRetryPolicy(ekdsend.RetryPolicy{
		MaxRetries:   5,
		BaseInterval: time.Hour,
		Factor:       1,
	}))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()

	_, err = c.Request(ctx, http.MethodGet, "/emails", nil)
	if !errors.Is(err, ekdsend.ErrTransport) || !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected transport error wrapping the deadline, got %v", err)
	}
	if adapter.Calls() != 1 {
		t.Fatalf("expected 1 attempt, got %d", adapter.Calls())
	}
}

func TestRequest_DebugLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	adapter := mock.NewAdapter(mock.JSON(404, `{"error":{"message":"not found","code":"SMS_NOT_FOUND"}}`))

	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(adapter), ekdsend.WithDebug(true), ekdsend.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	_, err = c.Request(context.Background(), http.MethodGet, "/sms/sms_1", nil)
	if !errors.Is(err, ekdsend.ErrNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
	out := buf.String()
	for _, want := range []string{"GET /sms/sms_1", "status=404", "SMS_NOT_FOUND"} {
		if !strings.Contains(out, want) {
			t.Fatalf("log output missing %q:\n%s", want, out)
		}
	}
}

func TestRequest_NoLoggingWithoutDebug(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	c, err := ekdsend.NewClient(testKey, ekdsend.WithAdapter(mock.NewAdapter()), ekdsend.WithLogger(logger))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}
	if _, err := c.Request(context.Background(), http.MethodGet, "/emails", nil); err != nil {
		t.Fatalf("Request: %v", err)
	}
	if buf.Len() != 0 {
		t.Fatalf("expected no output, got %q", buf.String())
	}
}

func TestRequest_ConcurrentCalls(t *testing.T) {
	var seen sync.Map
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if _, loaded := seen.LoadOrStore(r.URL.Path, true); !loaded {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		_, _ = w.Write([]byte(`{"data":{"id":"` + r.URL.Path + `"}}`))
	}))
	t.Cleanup(srv.Close)

	c, err := ekdsend.NewClient(testKey, ekdsend.WithBaseURL(srv.URL), fastRetry(1))
	if err != nil {
		t.Fatalf("NewClient: %v", err)
	}

	var wg sync.WaitGroup
	errs := make(chan error, 20)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := c.Request(context.Background(), http.MethodGet, fmt.Sprintf("/emails/em_%d", i), nil)
			errs <- err
		}(i)
	}
	wg.Wait()
	close(errs)
	for err := range errs {
		if err != nil {
			t.Fatalf("Request: %v", err)
		}
	}
}
