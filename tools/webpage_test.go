package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestExtractReadableText(t *testing.T) {
	html := `<html><head><script>var x = 1;</script><style>p{}</style></head>
<body>
<nav>Home | About</nav>
<article><h1>Sirolimus in LAM</h1><p>The MILES trial showed   stabilized lung function.</p></article>
<footer>Copyright</footer>
</body></html>`

	text, err := extractReadableText([]byte(html))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if !strings.Contains(text, "Sirolimus in LAM") {
		t.Errorf("expected article heading in text: %q", text)
	}
	if !strings.Contains(text, "showed stabilized lung function") {
		t.Errorf("expected collapsed whitespace in text: %q", text)
	}
	for _, boilerplate := range []string{"var x", "Home | About", "Copyright"} {
		if strings.Contains(text, boilerplate) {
			t.Errorf("expected %q to be stripped, got: %q", boilerplate, text)
		}
	}
}

func TestExtractReadableTextFallsBackToBody(t *testing.T) {
	html := `<html><body><p>No article tag here.</p></body></html>`
	text, err := extractReadableText([]byte(html))
	if err != nil {
		t.Fatalf("extract failed: %v", err)
	}
	if text != "No article tag here." {
		t.Errorf("got %q", text)
	}
}

func TestCollapseWhitespace(t *testing.T) {
	in := "  line one  \n\n\n  line   two  \n"
	want := "line one\nline two"
	if got := collapseWhitespace(in); got != want {
		t.Errorf("got %q, want %q", got, want)
	}
}

func TestWebpageToolExecute(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><main><p>Press release: orphan designation granted.</p></main></body></html>`))
	}))
	defer srv.Close()

	tool := NewWebpageTool(5)
	args, _ := json.Marshal(webpageArgs{URL: srv.URL})

	result, err := tool.Execute(context.Background(), args)
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Error)
	}
	if !strings.Contains(result.Output, "orphan designation granted") {
		t.Errorf("expected page text in output: %q", result.Output)
	}
	if !strings.Contains(result.Output, srv.URL) {
		t.Errorf("expected source URL in output: %q", result.Output)
	}
}

func TestWebpageToolEmptyURL(t *testing.T) {
	tool := NewWebpageTool(5)

	if err := tool.Validate(json.RawMessage(`{"url":""}`)); err == nil {
		t.Error("expected validation error for empty url")
	}

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"url":""}`))
	if err != nil {
		t.Fatalf("execute returned error: %v", err)
	}
	if result.Success() {
		t.Error("expected failure result for empty url")
	}
}
