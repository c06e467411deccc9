// In-memory memory store.
//
// Information Hiding:
// - Map storage structure hidden from users
// - Thread-safe access via RWMutex hidden behind interface
// - Suitable for testing and ephemeral sessions

package storage

import (
	"context"
	"sync"
)

// InMemoryStore implements MemoryStore using an in-memory map.
// Data is lost when the process terminates.
type InMemoryStore struct {
	mu       sync.RWMutex
	sessions map[string][]MemoryEntry
}

var _ MemoryStore = (*InMemoryStore)(nil)

// NewInMemoryStore creates a new in-memory memory store.
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		sessions: make(map[string][]MemoryEntry),
	}
}

// StoreMemory stores a memory entry.
func (s *InMemoryStore) StoreMemory(ctx context.Context, entry MemoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.sessions[entry.SessionID] = append(s.sessions[entry.SessionID], entry)
	return nil
}

// QueryMemories returns memories for a session, newest first.
func (s *InMemoryStore) QueryMemories(ctx context.Context, sessionID string, memoryType *MemoryType, limit int) ([]MemoryEntry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries := s.sessions[sessionID]
	matched := []MemoryEntry{}
	// Entries append in insertion order; walk backwards for newest first.
	for i := len(entries) - 1; i >= 0 && len(matched) < limit; i-- {
		if memoryType != nil && entries[i].Type != *memoryType {
			continue
		}
		matched = append(matched, entries[i])
	}
	return matched, nil
}

// DeleteSessionMemories deletes all memories for a session.
func (s *InMemoryStore) DeleteSessionMemories(ctx context.Context, sessionID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.sessions, sessionID)
	return nil
}
