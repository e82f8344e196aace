// config.go
// ----------
// This file defines the Config structure that a Client is built from, its named defaults,
// and the functional options used to override them.
//
// A Config is assembled once in NewClient, validated, and never mutated afterwards.
package ekdsend

import (
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"
)

const (
	DefaultBaseURL    = "https://es.ekddigital.com/v1"
	DefaultTimeout    = 30 * time.Second
	DefaultMaxRetries = 3

	LiveKeyPrefix = "ek_live_"
	TestKeyPrefix = "ek_test_"
)

// Config holds everything a Client needs. Use Option values to change the defaults.
type Config struct {
	APIKey  string
	BaseURL string

	// Timeout bounds each attempt on its own; it is not shared across retries.
	Timeout time.Duration

	Retry RetryPolicy
	Debug bool

	// Logger receives debug output. When nil, Debug selects a stderr text logger,
	// otherwise output is discarded.
	Logger *slog.Logger

	// Adapter performs the HTTP attempts. When nil an HTTP adapter is built from HTTPClient.
	Adapter    Adapter
	HTTPClient *http.Client
}

// Option overrides a Config default.
type Option func(*Config)

func defaultConfig(apiKey string) Config {
	return Config{
		APIKey:  apiKey,
		BaseURL: DefaultBaseURL,
		Timeout: DefaultTimeout,
		Retry:   DefaultRetryPolicy(),
	}
}

func WithBaseURL(u string) Option {
	return func(c *Config) { c.BaseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Config) { c.Timeout = d }
}

func WithMaxRetries(n int) Option {
	return func(c *Config) { c.Retry.MaxRetries = n }
}

// WithRetryPolicy replaces the whole retry policy.
func WithRetryPolicy(p RetryPolicy) Option {
	return func(c *Config) { c.Retry = p }
}

func WithDebug(enabled bool) Option {
	return func(c *Config) { c.Debug = enabled }
}

func WithLogger(l *slog.Logger) Option {
	return func(c *Config) { c.Logger = l }
}

// WithAdapter makes the client send its attempts through a.
func WithAdapter(a Adapter) Option {
	return func(c *Config) { c.Adapter = a }
}

// WithHTTPClient sets the *http.Client used by the default adapter. Its Transport is wrapped
// to inject the bearer credential; its Timeout is left untouched.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Config) { c.HTTPClient = hc }
}

// validate checks the API key and applies the fixups that do not depend on the network.
func (c *Config) validate() error {
	if c.APIKey == "" {
		return ErrMissingAPIKey
	}
	if !strings.HasPrefix(c.APIKey, LiveKeyPrefix) && !strings.HasPrefix(c.APIKey, TestKeyPrefix) {
		return ErrInvalidAPIKey
	}

	if c.BaseURL == "" {
		c.BaseURL = DefaultBaseURL
	}
	c.BaseURL = strings.TrimSuffix(c.BaseURL, "/")
	if c.Timeout <= 0 {
		c.Timeout = DefaultTimeout
	}
	if c.Retry.MaxRetries < 0 {
		c.Retry.MaxRetries = 0
	}
	if c.Logger == nil {
		c.Logger = defaultLogger(c.Debug)
	}
	return nil
}

func defaultLogger(debug bool) *slog.Logger {
	if !debug {
		return slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}
