package tools

import (
	"context"
	"encoding/json"
	"strings"
	"testing"
)

// stubTool is a minimal tool for registry tests.
type stubTool struct {
	BaseTool
	name string
}

func (s *stubTool) Metadata() ToolMetadata {
	return ToolMetadata{
		Name:        s.name,
		Description: "a stub",
		Parameters: []ToolParameter{
			{Name: "query", ParamType: "string", Description: "the query", Required: true},
		},
	}
}

func (s *stubTool) Execute(ctx context.Context, args json.RawMessage) (ToolResult, error) {
	return SuccessResult("stub output"), nil
}

func TestRegistryRegisterAndGet(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{name: "alpha"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	tool, ok := r.Get("alpha")
	if !ok {
		t.Fatal("expected to find registered tool")
	}
	if tool.Metadata().Name != "alpha" {
		t.Errorf("got wrong tool: %s", tool.Metadata().Name)
	}

	if _, ok := r.Get("missing"); ok {
		t.Error("expected lookup miss for unregistered tool")
	}
	if !r.Has("alpha") || r.Has("missing") {
		t.Error("Has disagrees with Get")
	}
}

func TestRegistryDuplicateRegistration(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{name: "dup"}); err != nil {
		t.Fatalf("first register failed: %v", err)
	}
	if err := r.Register(&stubTool{name: "dup"}); err == nil {
		t.Error("expected error registering duplicate tool name")
	}
}

func TestRegistryNamesSorted(t *testing.T) {
	r := NewRegistry()
	for _, name := range []string{"zeta", "alpha", "mid"} {
		if err := r.Register(&stubTool{name: name}); err != nil {
			t.Fatalf("register %s failed: %v", name, err)
		}
	}

	names := r.Names()
	want := []string{"alpha", "mid", "zeta"}
	if len(names) != len(want) {
		t.Fatalf("got %d names, want %d", len(names), len(want))
	}
	for i := range want {
		if names[i] != want[i] {
			t.Errorf("names[%d] = %s, want %s", i, names[i], want[i])
		}
	}
}

func TestRegistryDescription(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubTool{name: "pubmed_search"}); err != nil {
		t.Fatalf("register failed: %v", err)
	}

	desc := r.Description()
	if !strings.Contains(desc, "Tool: pubmed_search") {
		t.Errorf("description missing tool name:\n%s", desc)
	}
	if !strings.Contains(desc, "query (string)") {
		t.Errorf("description missing parameter:\n%s", desc)
	}
	if !strings.Contains(desc, "[required]") {
		t.Errorf("description missing required marker:\n%s", desc)
	}
}

func TestWithResearchTools(t *testing.T) {
	r, err := WithResearchTools()
	if err != nil {
		t.Fatalf("WithResearchTools failed: %v", err)
	}

	expected := []string{
		"biorxiv_preprints",
		"clinicaltrials_search",
		"company_pipeline",
		"drugbank_mechanism",
		"extract_webpage",
		"gard_search",
		"orphanet_search",
		"pubmed_search",
		"scholar_search",
		"web_search",
	}

	names := r.Names()
	if len(names) != len(expected) {
		t.Fatalf("got %d tools, want %d: %v", len(names), len(expected), names)
	}
	for i, name := range expected {
		if names[i] != name {
			t.Errorf("names[%d] = %s, want %s", i, names[i], name)
		}
	}
}
