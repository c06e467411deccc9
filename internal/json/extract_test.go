package json

import "testing"

func TestExtractPureJSON(t *testing.T) {
	got, err := ExtractJSON(`{"thought": "searching", "is_final": false}`)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"thought": "searching", "is_final": false}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractFromCodeFence(t *testing.T) {
	response := "```json\n{\"thought\": \"done\"}\n```"
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"thought": "done"}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractEmbeddedInProse(t *testing.T) {
	response := `Here is my decision: {"thought": "ok", "is_final": true} as requested.`
	got, err := ExtractJSON(response)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != `{"thought": "ok", "is_final": true}` {
		t.Errorf("unexpected result: %q", got)
	}
}

func TestExtractNoJSON(t *testing.T) {
	_, err := ExtractJSON("I could not find anything relevant.")
	if err == nil {
		t.Error("expected error for response without JSON")
	}
}

func TestExtractJSONFromResponseTyped(t *testing.T) {
	type decision struct {
		Thought string `json:"thought"`
		IsFinal bool   `json:"is_final"`
	}

	d, err := ExtractJSONFromResponse[decision]("```\n{\"thought\": \"wrap up\", \"is_final\": true}\n```")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if d.Thought != "wrap up" || !d.IsFinal {
		t.Errorf("unexpected decision: %+v", d)
	}
}
