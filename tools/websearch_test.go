package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

const searchResultsPage = `<html><body>
<div class="result">
  <a class="result__a" href="//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fsirolimus&amp;rut=abc">Sirolimus repurposing review</a>
  <a class="result__snippet">mTOR inhibition in rare lung disease.</a>
</div>
<div class="result">
  <a class="result__a" href="https://example.org/trial">Phase 2 trial results</a>
  <a class="result__snippet">Stabilized FEV1 over 12 months.</a>
</div>
</body></html>`

func TestSearchWebParsesResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if q := r.URL.Query().Get("q"); q != "sirolimus LAM" {
			t.Errorf("unexpected query: %q", q)
		}
		w.Write([]byte(searchResultsPage))
	}))
	defer srv.Close()

	results, err := searchWeb(context.Background(), newFetcher(5), srv.URL, "sirolimus LAM")
	if err != nil {
		t.Fatalf("searchWeb failed: %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}

	if results[0].Title != "Sirolimus repurposing review" {
		t.Errorf("got title %q", results[0].Title)
	}
	if results[0].URL != "https://example.com/sirolimus" {
		t.Errorf("redirect not unwrapped: %q", results[0].URL)
	}
	if results[1].URL != "https://example.org/trial" {
		t.Errorf("direct link mangled: %q", results[1].URL)
	}
	if results[1].Snippet != "Stabilized FEV1 over 12 months." {
		t.Errorf("got snippet %q", results[1].Snippet)
	}
}

func TestResolveRedirect(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"//duckduckgo.com/l/?uddg=https%3A%2F%2Fexample.com%2Fpage", "https://example.com/page"},
		{"https://example.com/direct", "https://example.com/direct"},
		{"//example.com/schemeless", "https://example.com/schemeless"},
	}
	for _, c := range cases {
		if got := resolveRedirect(c.in); got != c.want {
			t.Errorf("resolveRedirect(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestWebSearchToolExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(searchResultsPage))
	}))
	defer srv.Close()

	tool := NewWebSearchTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"sirolimus"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Error)
	}
	if !strings.Contains(result.Output, "Sirolimus repurposing review") {
		t.Errorf("expected result title in output:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "https://example.com/sirolimus") {
		t.Errorf("expected unwrapped URL in output:\n%s", result.Output)
	}
}

func TestWebSearchToolNoResults(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>No results.</body></html>`))
	}))
	defer srv.Close()

	tool := NewWebSearchTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"query":"zzzz"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Success() {
		t.Error("expected failure result when no results parsed")
	}
}

func TestCompanyPipelineToolExecute(t *testing.T) {
	var pipelineURL string
	pipeline := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main><p>Phase 3: drug X for pulmonary fibrosis. Phase 1: drug Y.</p></main></body></html>`))
	}))
	defer pipeline.Close()
	pipelineURL = pipeline.URL

	search := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><div class="result"><a class="result__a" href="` + pipelineURL + `">Acme Pharma Pipeline</a><a class="result__snippet">Our programs.</a></div></body></html>`))
	}))
	defer search.Close()

	tool := NewCompanyPipelineTool(5)
	tool.baseURL = search.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"company":"Acme Pharma"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Error)
	}
	if !strings.Contains(result.Output, "Phase 3: drug X") {
		t.Errorf("expected pipeline text in output:\n%s", result.Output)
	}
	if !strings.Contains(result.Output, "Acme Pharma") {
		t.Errorf("expected company name in output:\n%s", result.Output)
	}
}
