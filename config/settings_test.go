package config

import (
	"testing"
)

func TestNewDefaults(t *testing.T) {
	settings, err := New("openai")
	if err != nil {
		t.Fatalf("New failed: %v", err)
	}
	if settings.LLM.Provider != "openai" {
		t.Errorf("got provider %q", settings.LLM.Provider)
	}
	if settings.LLM.Model == "" {
		t.Error("expected a default model")
	}
	if settings.LLM.MaxTokens != 4096 {
		t.Errorf("got max tokens %d, want 4096", settings.LLM.MaxTokens)
	}
	if settings.Research.ToolTimeoutSecs != 30 {
		t.Errorf("got tool timeout %d, want 30", settings.Research.ToolTimeoutSecs)
	}
	if settings.Research.HistoryLimit != 5 {
		t.Errorf("got history limit %d, want 5", settings.Research.HistoryLimit)
	}
}

func TestNewAliases(t *testing.T) {
	cases := map[string]string{
		"claude": "anthropic",
		"google": "gemini",
		"gpt":    "openai",
		"GEMINI": "gemini",
	}
	for alias, canonical := range cases {
		settings, err := New(alias)
		if err != nil {
			t.Errorf("New(%q) failed: %v", alias, err)
			continue
		}
		if settings.LLM.Provider != canonical {
			t.Errorf("New(%q).Provider = %q, want %q", alias, settings.LLM.Provider, canonical)
		}
	}
}

func TestNewUnknownProvider(t *testing.T) {
	if _, err := New("cohere"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestNewInvalidEnvValue(t *testing.T) {
	t.Setenv("LLM_MAX_TOKENS", "not-a-number")
	if _, err := New("openai"); err == nil {
		t.Error("expected error for invalid LLM_MAX_TOKENS")
	}
}

func TestGeminiReadsGoogleAPIKey(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "test-key")
	key, err := APIKeyFor("gemini")
	if err != nil {
		t.Fatalf("APIKeyFor failed: %v", err)
	}
	if key != "test-key" {
		t.Errorf("got key %q", key)
	}
}

func TestAPIKeyForMissing(t *testing.T) {
	t.Setenv("DEEPSEEK_API_KEY", "")
	if _, err := APIKeyFor("deepseek"); err == nil {
		t.Error("expected error for missing API key")
	}
}

func TestDetectProviderPrefersGemini(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "g")
	t.Setenv("OPENAI_API_KEY", "o")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	provider, err := DetectProvider()
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if provider != "gemini" {
		t.Errorf("got %q, want gemini", provider)
	}
}

func TestDetectProviderFallsBack(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("DEEPSEEK_API_KEY", "")

	provider, err := DetectProvider()
	if err != nil {
		t.Fatalf("detect failed: %v", err)
	}
	if provider != "anthropic" {
		t.Errorf("got %q, want anthropic", provider)
	}
}

func TestDetectProviderNoneSet(t *testing.T) {
	t.Setenv("GOOGLE_API_KEY", "")
	t.Setenv("OPENAI_API_KEY", "")
	t.Setenv("ANTHROPIC_API_KEY", "")
	t.Setenv("DEEPSEEK_API_KEY", "")

	if _, err := DetectProvider(); err == nil {
		t.Error("expected error when no API key is set")
	}
}

func TestModelForEnvOverride(t *testing.T) {
	t.Setenv("OPENAI_MODEL", "gpt-4o-mini")
	model, err := ModelFor("openai")
	if err != nil {
		t.Fatalf("ModelFor failed: %v", err)
	}
	if model != "gpt-4o-mini" {
		t.Errorf("got %q", model)
	}
}

func TestSupportedProviders(t *testing.T) {
	got := SupportedProviders()
	want := []string{"anthropic", "deepseek", "gemini", "openai"}
	if len(got) != len(want) {
		t.Fatalf("got %v", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("got[%d] = %q, want %q", i, got[i], want[i])
		}
	}
}

func TestModeFor(t *testing.T) {
	quick, err := ModeFor("quick")
	if err != nil {
		t.Fatalf("ModeFor failed: %v", err)
	}
	if !quick.SkipDeepAnalysis {
		t.Error("quick mode should skip deep analysis")
	}

	standard, err := ModeFor("STANDARD")
	if err != nil {
		t.Fatalf("ModeFor failed: %v", err)
	}
	if standard.SkipDeepAnalysis {
		t.Error("standard mode should not skip deep analysis")
	}

	if _, err := ModeFor("exhaustive"); err == nil {
		t.Error("expected error for unknown mode")
	}
}

func TestModeScaleIterations(t *testing.T) {
	quick, _ := ModeFor("quick")
	deep, _ := ModeFor("deep")

	if got := quick.ScaleIterations(10); got != 6 {
		t.Errorf("quick scale of 10 = %d, want 6", got)
	}
	if got := deep.ScaleIterations(10); got != 15 {
		t.Errorf("deep scale of 10 = %d, want 15", got)
	}
	if got := quick.ScaleIterations(1); got != 1 {
		t.Errorf("scale should never drop below 1, got %d", got)
	}
	if got := DefaultMode().ScaleIterations(12); got != 12 {
		t.Errorf("standard scale of 12 = %d, want 12", got)
	}
}
