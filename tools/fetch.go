// Shared HTTP fetch helper for research tools.
//
// Third-party research sites expect a browser user agent and will serve
// unbounded bodies; every tool funnels its requests through here so the
// UA, timeout, and body cap are applied uniformly.

package tools

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"
)

const (
	// browserUA is sent on every request; several sources (bioRxiv, Orphanet,
	// DuckDuckGo) reject default Go client UAs.
	browserUA = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"

	// maxFetchBytes caps response bodies before HTML parsing.
	maxFetchBytes = 2 << 20 // 2MB
)

// fetcher wraps an http.Client with the defaults research tools need.
type fetcher struct {
	client      *http.Client
	timeoutSecs uint64
}

func newFetcher(timeoutSecs uint64) *fetcher {
	return &fetcher{
		client: &http.Client{
			Timeout: time.Duration(timeoutSecs) * time.Second,
		},
		timeoutSecs: timeoutSecs,
	}
}

// get fetches a URL and returns the response body.
// Returns an error for non-2xx statuses; the status code is included in the
// message so the executor's retry classification can see 429/503.
func (f *fetcher) get(ctx context.Context, url string) ([]byte, error) {
	body, status, err := f.getWithStatus(ctx, url)
	if err != nil {
		return nil, err
	}
	if status < 200 || status >= 300 {
		return nil, fmt.Errorf("unexpected status %d fetching %s", status, url)
	}
	return body, nil
}

// getWithStatus fetches a URL and returns body and status without treating
// non-2xx as an error. Used by tools with 404 fallback behavior.
func (f *fetcher) getWithStatus(ctx context.Context, url string) ([]byte, int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", browserUA)
	req.Header.Set("Accept-Language", "en-US,en;q=0.9")

	resp, err := f.client.Do(req)
	if err != nil {
		if ctx.Err() == context.DeadlineExceeded {
			return nil, 0, fmt.Errorf("request timed out after %d seconds", f.timeoutSecs)
		}
		return nil, 0, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxFetchBytes))
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

// truncate caps s at max bytes, appending an ellipsis when cut.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max] + "..."
}
