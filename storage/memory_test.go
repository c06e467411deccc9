package storage

import (
	"context"
	"testing"
)

func TestParseMemoryType(t *testing.T) {
	cases := []struct {
		in      string
		want    MemoryType
		wantErr bool
	}{
		{"episodic", MemoryEpisodic, false},
		{"EPISODIC", MemoryEpisodic, false},
		{"stage", MemoryStage, false},
		{"semantic", "", true},
		{"", "", true},
	}
	for _, c := range cases {
		got, err := ParseMemoryType(c.in)
		if c.wantErr {
			if err == nil {
				t.Errorf("ParseMemoryType(%q): expected error", c.in)
			}
			continue
		}
		if err != nil {
			t.Errorf("ParseMemoryType(%q): %v", c.in, err)
			continue
		}
		if got != c.want {
			t.Errorf("ParseMemoryType(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestNewMemoryEntry(t *testing.T) {
	entry := NewMemoryEntry("session-1", MemoryEpisodic, "found 3 trials")
	if entry.ID == "" {
		t.Error("expected generated ID")
	}
	if entry.SessionID != "session-1" {
		t.Errorf("got session %q", entry.SessionID)
	}
	if entry.Type != MemoryEpisodic {
		t.Errorf("got type %v", entry.Type)
	}
	if entry.CreatedAt == 0 {
		t.Error("expected timestamp to be set")
	}

	withAgent := entry.WithAgent("literature_researcher")
	if withAgent.AgentID != "literature_researcher" {
		t.Errorf("got agent %q", withAgent.AgentID)
	}
	if entry.AgentID != "" {
		t.Error("WithAgent should not mutate the original entry")
	}
}

func TestInMemoryStoreQueryOrder(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	for _, content := range []string{"first", "second", "third"} {
		if err := store.StoreMemory(ctx, NewMemoryEntry("s1", MemoryEpisodic, content)); err != nil {
			t.Fatalf("store failed: %v", err)
		}
	}

	memories, err := store.QueryMemories(ctx, "s1", nil, 2)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(memories) != 2 {
		t.Fatalf("got %d memories, want 2", len(memories))
	}
	if memories[0].Content != "third" || memories[1].Content != "second" {
		t.Errorf("expected newest first, got %q, %q", memories[0].Content, memories[1].Content)
	}
}

func TestInMemoryStoreTypeFilter(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_ = store.StoreMemory(ctx, NewMemoryEntry("s1", MemoryEpisodic, "episode"))
	_ = store.StoreMemory(ctx, NewMemoryEntry("s1", MemoryStage, "stage findings"))

	stage := MemoryStage
	memories, err := store.QueryMemories(ctx, "s1", &stage, 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(memories) != 1 || memories[0].Content != "stage findings" {
		t.Errorf("type filter mismatch: %+v", memories)
	}
}

func TestInMemoryStoreSessionIsolation(t *testing.T) {
	ctx := context.Background()
	store := NewInMemoryStore()

	_ = store.StoreMemory(ctx, NewMemoryEntry("s1", MemoryEpisodic, "s1 memory"))
	_ = store.StoreMemory(ctx, NewMemoryEntry("s2", MemoryEpisodic, "s2 memory"))

	memories, err := store.QueryMemories(ctx, "s1", nil, 10)
	if err != nil {
		t.Fatalf("query failed: %v", err)
	}
	if len(memories) != 1 || memories[0].Content != "s1 memory" {
		t.Errorf("expected only s1 memories, got %+v", memories)
	}

	if err := store.DeleteSessionMemories(ctx, "s1"); err != nil {
		t.Fatalf("delete failed: %v", err)
	}
	memories, _ = store.QueryMemories(ctx, "s1", nil, 10)
	if len(memories) != 0 {
		t.Errorf("expected no memories after delete, got %d", len(memories))
	}
	memories, _ = store.QueryMemories(ctx, "s2", nil, 10)
	if len(memories) != 1 {
		t.Error("deleting s1 should not touch s2")
	}
}
