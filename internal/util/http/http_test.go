package http

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestDoSendsHeadersAndBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if got := r.Header.Get("X-Test"); got != "yes" {
			t.Errorf("X-Test header = %q", got)
		}
		if got := r.Header.Get("User-Agent"); !strings.HasPrefix(got, "sitekit/") {
			t.Errorf("User-Agent = %q", got)
		}
		body, _ := io.ReadAll(r.Body)
		w.WriteHeader(http.StatusCreated)
		w.Write(body)
	}))
	defer server.Close()

	resp, err := Do(context.Background(), Request{
		Method:  http.MethodPost,
		URL:     server.URL,
		Body:    []byte("ping"),
		Options: FetchOptions{Headers: map[string]string{"X-Test": "yes"}},
	})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.StatusCode != http.StatusCreated || !resp.OK() {
		t.Errorf("StatusCode = %d", resp.StatusCode)
	}
	if string(resp.Body) != "ping" {
		t.Errorf("Body = %q, want %q", resp.Body, "ping")
	}
}

func TestDoReturnsNon2xxWithoutError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "nope", http.StatusUnauthorized)
	}))
	defer server.Close()

	resp, err := Do(context.Background(), Request{URL: server.URL})
	if err != nil {
		t.Fatalf("Do() error = %v", err)
	}
	if resp.OK() {
		t.Error("OK() = true for 401")
	}
	if resp.Reason() != "Unauthorized" {
		t.Errorf("Reason() = %q", resp.Reason())
	}
}

func TestResponseReason(t *testing.T) {
	tests := []struct {
		name string
		resp Response
		want string
	}{
		{"server phrase", Response{StatusCode: 401, Status: "401 Invalid API key"}, "Invalid API key"},
		{"standard phrase", Response{StatusCode: 404, Status: "404 Not Found"}, "Not Found"},
		{"code only", Response{StatusCode: 503, Status: "503"}, "Service Unavailable"},
		{"empty status", Response{StatusCode: 500}, "Internal Server Error"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.resp.Reason(); got != tt.want {
				t.Errorf("Reason() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDoBodyLimit(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(strings.Repeat("x", 100)))
	}))
	defer server.Close()

	_, err := Do(context.Background(), Request{URL: server.URL, Options: FetchOptions{MaxBodyBytes: 10}})
	if err == nil {
		t.Fatal("expected error for oversized body")
	}
}

func TestFetchRejectsNonOK(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	_, err := Fetch(context.Background(), server.URL, FetchOptions{})
	if err == nil {
		t.Fatal("expected error for 404")
	}
	if err.Error() != "HTTP 404 Not Found" {
		t.Errorf("error = %q, want %q", err.Error(), "HTTP 404 Not Found")
	}
}
