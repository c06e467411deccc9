package tools

import (
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

// flakyTool fails a configured number of times before succeeding.
type flakyTool struct {
	BaseTool
	failures int
	failErr  error
	calls    int
}

func (f *flakyTool) Metadata() ToolMetadata {
	return ToolMetadata{Name: "flaky", Description: "fails then succeeds"}
}

func (f *flakyTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	f.calls++
	if f.calls <= f.failures {
		return FailureResult(f.failErr), nil
	}
	return SuccessResult("recovered"), nil
}

func TestExecutorRetriesTransientFailures(t *testing.T) {
	tool := &flakyTool{failures: 2, failErr: errors.New("connection reset")}
	exec := NewExecutor(ToolConfig{MaxRetries: 3})

	result, err := exec.Execute(context.Background(), tool, nil)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected eventual success, got error: %v", result.Error)
	}
	if tool.calls != 3 {
		t.Errorf("expected 3 calls, got %d", tool.calls)
	}
}

func TestExecutorStopsOnNonRetryableFailure(t *testing.T) {
	tool := &flakyTool{failures: 5, failErr: errors.New("disease name cannot be empty")}
	exec := NewExecutor(ToolConfig{MaxRetries: 3})

	result, err := exec.Execute(context.Background(), tool, nil)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failure result")
	}
	if tool.calls != 1 {
		t.Errorf("validation-style failure should not retry, got %d calls", tool.calls)
	}
}

func TestExecutorExhaustsRetries(t *testing.T) {
	tool := &flakyTool{failures: 10, failErr: errors.New("503 service unavailable")}
	exec := NewExecutor(ToolConfig{MaxRetries: 2})

	result, err := exec.Execute(context.Background(), tool, nil)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Success() {
		t.Fatal("expected failure after exhausting retries")
	}
	if !strings.Contains(result.Error.Error(), "after 2 attempts") {
		t.Errorf("expected attempt count in error, got: %v", result.Error)
	}
	if tool.calls != 2 {
		t.Errorf("expected 2 calls, got %d", tool.calls)
	}
}

func TestExecutorHonorsContextCancellation(t *testing.T) {
	tool := &flakyTool{failures: 10, failErr: errors.New("timeout")}
	exec := NewExecutor(ToolConfig{MaxRetries: 5})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// First attempt runs, then the backoff wait observes cancellation.
	_, err := exec.Execute(ctx, tool, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCalculateBackoff(t *testing.T) {
	exec := NewDefaultExecutor()

	cases := []struct {
		attempt uint32
		want    time.Duration
	}{
		{1, 200 * time.Millisecond},
		{2, 400 * time.Millisecond},
		{3, 800 * time.Millisecond},
		{10, 5 * time.Second},
	}
	for _, c := range cases {
		if got := exec.calculateBackoff(c.attempt); got != c.want {
			t.Errorf("backoff(%d) = %v, want %v", c.attempt, got, c.want)
		}
	}
}

func TestShouldRetryClassification(t *testing.T) {
	exec := NewDefaultExecutor()

	retryable := []string{
		"request timed out after 30 seconds",
		"connection refused",
		"unexpected status 429 fetching https://example.com",
		"unexpected status 503 fetching https://example.com",
		"network is unreachable",
	}
	for _, msg := range retryable {
		if !exec.shouldRetry(FailureResultf("%s", msg)) {
			t.Errorf("expected %q to be retryable", msg)
		}
	}

	nonRetryable := []string{
		"validation failed: query cannot be empty",
		"tool 'bash' not allowed",
		"could not find foo: not found",
	}
	for _, msg := range nonRetryable {
		if exec.shouldRetry(FailureResultf("%s", msg)) {
			t.Errorf("expected %q to be non-retryable", msg)
		}
	}
}

func TestExecuteOnceValidates(t *testing.T) {
	tool := NewPubMedTool(1)

	result, err := ExecuteOnce(context.Background(), tool, json.RawMessage(`{"query":""}`))
	if err != nil {
		t.Fatalf("ExecuteOnce returned error: %v", err)
	}
	if result.Success() {
		t.Fatal("expected validation failure for empty query")
	}
	if !strings.Contains(result.Error.Error(), "validation failed") {
		t.Errorf("expected validation error, got: %v", result.Error)
	}
}
