package llm

import (
	"os"
	"testing"
)

func TestParseProviderType(t *testing.T) {
	cases := map[string]ProviderType{
		"openai":    ProviderOpenAI,
		"gpt":       ProviderOpenAI,
		"Gemini":    ProviderGemini,
		"google":    ProviderGemini,
		"claude":    ProviderAnthropic,
		"anthropic": ProviderAnthropic,
		"deepseek":  ProviderDeepSeek,
	}

	for input, want := range cases {
		got, err := ParseProviderType(input)
		if err != nil {
			t.Errorf("ParseProviderType(%q): unexpected error: %v", input, err)
			continue
		}
		if got != want {
			t.Errorf("ParseProviderType(%q) = %v, want %v", input, got, want)
		}
	}
}

func TestParseProviderTypeUnknown(t *testing.T) {
	if _, err := ParseProviderType("mistral"); err == nil {
		t.Error("expected error for unknown provider")
	}
}

func TestDefaultModels(t *testing.T) {
	for _, p := range []ProviderType{ProviderOpenAI, ProviderGemini, ProviderAnthropic, ProviderDeepSeek} {
		if p.DefaultModel() == "" {
			t.Errorf("provider %v has no default model", p)
		}
		if p.EnvVar() == "" {
			t.Errorf("provider %v has no API key env var", p)
		}
	}
}

func TestGeminiUsesGoogleAPIKeyEnv(t *testing.T) {
	if ProviderGemini.EnvVar() != "GOOGLE_API_KEY" {
		t.Errorf("expected GOOGLE_API_KEY, got %q", ProviderGemini.EnvVar())
	}
}

func TestFromEnvMissingKey(t *testing.T) {
	original := os.Getenv("DEEPSEEK_API_KEY")
	os.Unsetenv("DEEPSEEK_API_KEY")
	defer os.Setenv("DEEPSEEK_API_KEY", original)

	_, err := ProviderDeepSeek.FromEnv()
	if err == nil {
		t.Fatal("expected error when API key env var is unset")
	}
}

func TestBuilderDefaults(t *testing.T) {
	provider, err := ProviderOpenAI.APIKey("sk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Name() != "openai" {
		t.Errorf("expected provider name 'openai', got %q", provider.Name())
	}
	if provider.Model() != ModelOpenAIGPT4o {
		t.Errorf("expected default model %q, got %q", ModelOpenAIGPT4o, provider.Model())
	}
}

func TestBuilderCustomModel(t *testing.T) {
	provider, err := ProviderDeepSeek.Model(ModelDeepSeekReasoner).APIKey("sk-test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if provider.Model() != ModelDeepSeekReasoner {
		t.Errorf("expected model %q, got %q", ModelDeepSeekReasoner, provider.Model())
	}
}
