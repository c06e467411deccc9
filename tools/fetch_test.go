package tools

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestFetcherGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if ua := r.Header.Get("User-Agent"); !strings.Contains(ua, "Mozilla") {
			t.Errorf("expected browser user agent, got %q", ua)
		}
		w.Write([]byte("hello"))
	}))
	defer srv.Close()

	f := newFetcher(5)
	body, err := f.get(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if string(body) != "hello" {
		t.Errorf("got body %q, want %q", body, "hello")
	}
}

func TestFetcherGetNon2xx(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer srv.Close()

	f := newFetcher(5)
	_, err := f.get(context.Background(), srv.URL)
	if err == nil {
		t.Fatal("expected error for 429 response")
	}
	// The status code must survive into the message for retry classification.
	if !strings.Contains(err.Error(), "429") {
		t.Errorf("expected status code in error, got: %v", err)
	}
}

func TestFetcherGetWithStatus(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		w.Write([]byte("missing"))
	}))
	defer srv.Close()

	f := newFetcher(5)
	body, status, err := f.getWithStatus(context.Background(), srv.URL)
	if err != nil {
		t.Fatalf("getWithStatus failed: %v", err)
	}
	if status != http.StatusNotFound {
		t.Errorf("got status %d, want 404", status)
	}
	if string(body) != "missing" {
		t.Errorf("got body %q, want %q", body, "missing")
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("short", 10); got != "short" {
		t.Errorf("truncate should not touch short strings, got %q", got)
	}
	if got := truncate("abcdefghij", 4); got != "abcd..." {
		t.Errorf("got %q, want %q", got, "abcd...")
	}
}
