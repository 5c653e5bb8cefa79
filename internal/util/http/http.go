// Package http provides HTTP utilities for fetching remote resources and
// issuing single smoke-test requests.
package http

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/jmylchreest/sitekit/internal/security"
	"github.com/jmylchreest/sitekit/internal/version"
)

const (
	// DefaultTimeout is the default HTTP request timeout.
	DefaultTimeout = 10 * time.Second

	// DefaultMaxBodyBytes caps how much of a response body is read.
	DefaultMaxBodyBytes = 32 * 1024 * 1024
)

// FetchOptions configures HTTP fetch behaviour.
type FetchOptions struct {
	// Timeout specifies the HTTP request timeout.
	// If zero, DefaultTimeout is used.
	Timeout time.Duration

	// Headers specifies additional HTTP headers to send with the request.
	Headers map[string]string

	// MaxBodyBytes limits the response body size. If zero, DefaultMaxBodyBytes is used.
	MaxBodyBytes int64
}

// Request describes a single outbound request.
type Request struct {
	Method  string
	URL     string
	Body    []byte
	Options FetchOptions
}

// Response is a fully-read HTTP response.
type Response struct {
	StatusCode int
	Status     string
	Header     http.Header
	Body       []byte
}

// OK reports whether the status code is 2xx.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// Reason returns the reason phrase the server sent (e.g. "Not Found"),
// falling back to the standard text for the code.
func (r *Response) Reason() string {
	if reason := strings.TrimPrefix(r.Status, strconv.Itoa(r.StatusCode)+" "); reason != r.Status && reason != "" {
		return reason
	}
	return http.StatusText(r.StatusCode)
}

// Do performs the request and reads the whole body. Non-2xx responses are
// returned without error so callers can report them.
func Do(ctx context.Context, r Request) (*Response, error) {
	timeout := r.Options.Timeout
	if timeout == 0 {
		timeout = DefaultTimeout
	}
	maxBytes := r.Options.MaxBodyBytes
	if maxBytes == 0 {
		maxBytes = DefaultMaxBodyBytes
	}

	method := r.Method
	if method == "" {
		method = http.MethodGet
	}

	var body io.Reader
	if r.Body != nil {
		body = bytes.NewReader(r.Body)
	}

	req, err := http.NewRequestWithContext(ctx, method, r.URL, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("User-Agent", version.UserAgent())
	for key, value := range r.Options.Headers {
		req.Header.Set(key, value)
	}

	client := &http.Client{
		Timeout: timeout,
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(security.NewLimitedReader(resp.Body, maxBytes))
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return &Response{
		StatusCode: resp.StatusCode,
		Status:     resp.Status,
		Header:     resp.Header,
		Body:       data,
	}, nil
}

// Fetch retrieves content from a URL and fails on any status other than 200.
func Fetch(ctx context.Context, url string, opts FetchOptions) ([]byte, error) {
	resp, err := Do(ctx, Request{Method: http.MethodGet, URL: url, Options: opts})
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("HTTP %s", resp.Status)
	}
	return resp.Body, nil
}
