package agent

import (
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/rxscope/rxscope/tools"
)

type noopTool struct {
	tools.BaseTool
	name string
}

func (n *noopTool) Metadata() tools.ToolMetadata {
	return tools.ToolMetadata{Name: n.name}
}

func (n *noopTool) Execute(ctx context.Context, args json.RawMessage) (tools.ToolResult, error) {
	return tools.SuccessResult(""), nil
}

func TestBuilderBuild(t *testing.T) {
	cfg := NewBuilder("market_analyst").
		Role("Pharmaceutical Market Analyst").
		Goal("Assess commercial viability").
		Backstory("Veteran of orphan drug launches.").
		Tool(&noopTool{name: "web_search"}).
		Tool(&noopTool{name: "company_pipeline"}).
		MaxIterations(10).
		Build()

	if cfg.Name != "market_analyst" {
		t.Errorf("got name %q", cfg.Name)
	}
	if cfg.Role != "Pharmaceutical Market Analyst" {
		t.Errorf("got role %q", cfg.Role)
	}
	if len(cfg.Tools) != 2 {
		t.Errorf("got %d tools, want 2", len(cfg.Tools))
	}
	if cfg.Iterations() != 10 {
		t.Errorf("got %d iterations", cfg.Iterations())
	}
	if !cfg.HasTools() {
		t.Error("expected HasTools")
	}
}

func TestBuilderDefaults(t *testing.T) {
	cfg := NewBuilder("bare").Build()

	if cfg.Role == "" {
		t.Error("expected default role")
	}
	if cfg.Iterations() != DefaultMaxIterations {
		t.Errorf("got %d iterations, want default %d", cfg.Iterations(), DefaultMaxIterations)
	}
	if cfg.HasTools() {
		t.Error("expected no tools")
	}
}

func TestConfigSystemPrompt(t *testing.T) {
	cfg := Config{
		Name:      "clinical",
		Role:      "Clinical Evidence Specialist",
		Goal:      "Evaluate trial evidence",
		Backstory: "You read trial registries for breakfast.",
	}

	prompt := cfg.SystemPrompt()
	for _, want := range []string{
		"You are a Clinical Evidence Specialist.",
		"Your goal: Evaluate trial evidence",
		"You read trial registries for breakfast.",
	} {
		if !strings.Contains(prompt, want) {
			t.Errorf("prompt missing %q:\n%s", want, prompt)
		}
	}

	empty := Config{Name: "x"}
	if !strings.Contains(empty.SystemPrompt(), "research agent named x") {
		t.Errorf("empty config should fall back to generic prompt: %q", empty.SystemPrompt())
	}
}
