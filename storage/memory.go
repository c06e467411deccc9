// Package storage provides persistence for research runs and session memories.
//
// Memories let agents in later pipeline stages see what earlier work in the
// same session produced: episodic memories record task outcomes, stage
// memories record full stage findings.
package storage

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// MemoryType classifies a memory entry.
type MemoryType string

const (
	// MemoryEpisodic records past task executions and their results.
	MemoryEpisodic MemoryType = "episodic"
	// MemoryStage records the findings of a completed research stage.
	MemoryStage MemoryType = "stage"
)

// String returns the string representation of the memory type.
func (m MemoryType) String() string {
	return string(m)
}

// ParseMemoryType parses a string into a MemoryType.
func ParseMemoryType(s string) (MemoryType, error) {
	switch strings.ToLower(s) {
	case "episodic":
		return MemoryEpisodic, nil
	case "stage":
		return MemoryStage, nil
	default:
		return "", fmt.Errorf("unknown memory type: %s", s)
	}
}

// MemoryEntry is a single memory with metadata.
type MemoryEntry struct {
	ID        string     `json:"id"`
	SessionID string     `json:"session_id"`
	AgentID   string     `json:"agent_id,omitempty"`
	Type      MemoryType `json:"memory_type"`
	Content   string     `json:"content"`
	CreatedAt int64      `json:"created_at"`
}

// NewMemoryEntry creates a new memory entry with defaults.
func NewMemoryEntry(sessionID string, memoryType MemoryType, content string) MemoryEntry {
	return MemoryEntry{
		ID:        uuid.New().String(),
		SessionID: sessionID,
		Type:      memoryType,
		Content:   content,
		CreatedAt: time.Now().Unix(),
	}
}

// WithAgent sets the agent that created this memory.
func (m MemoryEntry) WithAgent(agentID string) MemoryEntry {
	m.AgentID = agentID
	return m
}

// MemoryStore is the interface for session memory persistence.
type MemoryStore interface {
	// StoreMemory stores a memory entry.
	StoreMemory(ctx context.Context, entry MemoryEntry) error

	// QueryMemories returns memories for a session, newest first, optionally
	// filtered by type.
	QueryMemories(ctx context.Context, sessionID string, memoryType *MemoryType, limit int) ([]MemoryEntry, error)

	// DeleteSessionMemories deletes all memories for a session.
	DeleteSessionMemories(ctx context.Context, sessionID string) error
}
