package tools

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestGARDToolSlugPage(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/diseases/alkaptonuria" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		w.Write([]byte(`<html><body><main><p>Alkaptonuria is a rare inherited disorder of tyrosine metabolism.</p></main></body></html>`))
	}))
	defer srv.Close()

	tool := NewGARDTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"disease":"Alkaptonuria"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Error)
	}
	if !strings.Contains(result.Output, "tyrosine metabolism") {
		t.Errorf("expected page content in output:\n%s", result.Output)
	}
}

func TestGARDToolFallsBackToSearchAPI(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case strings.HasPrefix(r.URL.Path, "/diseases/"):
			w.WriteHeader(http.StatusNotFound)
		case r.URL.Path == "/api/gard/search":
			if q := r.URL.Query().Get("q"); q != "stiff person syndrome" {
				t.Errorf("unexpected search query: %q", q)
			}
			w.Write([]byte(`[{"name":"Stiff person syndrome","gard_id":"7756","synonyms":["SPS","Moersch-Woltman syndrome"]}]`))
		default:
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
	}))
	defer srv.Close()

	tool := NewGARDTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"disease":"stiff person syndrome"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success from API fallback, got: %v", result.Error)
	}
	for _, want := range []string{"Stiff person syndrome", "7756", "Moersch-Woltman syndrome"} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("expected %q in output:\n%s", want, result.Output)
		}
	}
}

func TestGARDToolNotFoundAnywhere(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/diseases/") {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer srv.Close()

	tool := NewGARDTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"disease":"made up disease"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if result.Success() {
		t.Error("expected failure when neither slug page nor API match")
	}
}

func TestOrphanetToolExtractsFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body>
<ul>
<li>Prevalence: 1-9 / 1 000 000</li>
<li>Inheritance: Autosomal recessive</li>
<li>Age of onset: Childhood</li>
</ul>
</body></html>`))
	}))
	defer srv.Close()

	tool := NewOrphanetTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"disease":"Alkaptonuria"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("expected success, got: %v", result.Error)
	}
	for _, want := range []string{"1-9 / 1 000 000", "Autosomal recessive", "Childhood"} {
		if !strings.Contains(result.Output, want) {
			t.Errorf("expected %q in output:\n%s", want, result.Output)
		}
	}
}

func TestOrphanetToolMissingFields(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`<html><body><p>Search produced no structured data.</p></body></html>`))
	}))
	defer srv.Close()

	tool := NewOrphanetTool(5)
	tool.baseURL = srv.URL

	result, err := tool.Execute(context.Background(), json.RawMessage(`{"disease":"Alkaptonuria"}`))
	if err != nil {
		t.Fatalf("execute failed: %v", err)
	}
	if !result.Success() {
		t.Fatalf("missing fields should degrade, not fail: %v", result.Error)
	}
	if !strings.Contains(result.Output, "Prevalence: Unknown") {
		t.Errorf("expected Unknown placeholder in output:\n%s", result.Output)
	}
}

func TestRareDiseaseValidate(t *testing.T) {
	for _, tool := range []Tool{NewOrphanetTool(5), NewGARDTool(5)} {
		if err := tool.Validate(json.RawMessage(`{"disease":""}`)); err == nil {
			t.Errorf("%s: expected validation error for empty disease", tool.Metadata().Name)
		}
	}
}
