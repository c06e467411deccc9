// SQLite persistence for runs and memories.
//
// Information Hiding:
// - SQLite connection management hidden behind interfaces
// - Schema and migration details encapsulated
// - Thread-safe via sql.DB's built-in connection pooling

package storage

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3"
)

// SqliteStore implements RunStore and MemoryStore backed by a SQLite file.
type SqliteStore struct {
	db *sql.DB
}

var (
	_ RunStore    = (*SqliteStore)(nil)
	_ MemoryStore = (*SqliteStore)(nil)
)

// Open opens or creates a SQLite database at the given path.
// Creates parent directories if they don't exist.
func Open(path string) (*SqliteStore, error) {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open SQLite database: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// OpenInMemory creates an in-memory database (useful for testing).
func OpenInMemory() (*SqliteStore, error) {
	db, err := sql.Open("sqlite3", ":memory:")
	if err != nil {
		return nil, fmt.Errorf("failed to create in-memory SQLite: %w", err)
	}

	store := &SqliteStore{db: db}
	if err := store.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *SqliteStore) Close() error {
	return s.db.Close()
}

func (s *SqliteStore) createSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS runs (
			id TEXT PRIMARY KEY,
			query TEXT NOT NULL,
			provider TEXT NOT NULL,
			model TEXT NOT NULL,
			mode TEXT NOT NULL,
			report TEXT NOT NULL,
			duration_ms INTEGER NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_runs_created
		ON runs(created_at DESC);

		CREATE TABLE IF NOT EXISTS memories (
			id TEXT PRIMARY KEY,
			session_id TEXT NOT NULL,
			agent_id TEXT,
			memory_type TEXT NOT NULL,
			content TEXT NOT NULL,
			created_at INTEGER NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_memories_session_type
		ON memories(session_id, memory_type, created_at DESC);
	`

	if _, err := s.db.Exec(schema); err != nil {
		return fmt.Errorf("failed to create schema: %w", err)
	}
	return nil
}

// RunStore implementation

// SaveRun persists a completed run.
func (s *SqliteStore) SaveRun(ctx context.Context, run Run) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, query, provider, model, mode, report, duration_ms, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		run.ID, run.Query, run.Provider, run.Model, run.Mode,
		run.Report, run.DurationMs, run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	return nil
}

// RecentRuns returns the most recent runs, newest first.
func (s *SqliteStore) RecentRuns(ctx context.Context, limit int) ([]Run, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, query, provider, model, mode, report, duration_ms, created_at
		FROM runs
		ORDER BY created_at DESC, id
		LIMIT ?`,
		limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query runs: %w", err)
	}
	defer rows.Close()

	runs := []Run{}
	for rows.Next() {
		var r Run
		if err := rows.Scan(&r.ID, &r.Query, &r.Provider, &r.Model, &r.Mode,
			&r.Report, &r.DurationMs, &r.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan run: %w", err)
		}
		runs = append(runs, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating runs: %w", err)
	}

	return runs, nil
}

// GetRun returns a run by ID. Returns nil, nil if not found.
func (s *SqliteStore) GetRun(ctx context.Context, id string) (*Run, error) {
	var r Run
	err := s.db.QueryRowContext(ctx, `
		SELECT id, query, provider, model, mode, report, duration_ms, created_at
		FROM runs WHERE id = ?`,
		id).Scan(&r.ID, &r.Query, &r.Provider, &r.Model, &r.Mode,
		&r.Report, &r.DurationMs, &r.CreatedAt)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run: %w", err)
	}

	return &r, nil
}

// DeleteRun deletes a run by ID.
func (s *SqliteStore) DeleteRun(ctx context.Context, id string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM runs WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("failed to delete run: %w", err)
	}
	return nil
}

// MemoryStore implementation

// StoreMemory stores a memory entry.
func (s *SqliteStore) StoreMemory(ctx context.Context, entry MemoryEntry) error {
	var agentID interface{}
	if entry.AgentID != "" {
		agentID = entry.AgentID
	}

	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO memories
		(id, session_id, agent_id, memory_type, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?)`,
		entry.ID, entry.SessionID, agentID, entry.Type.String(),
		entry.Content, entry.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to store memory: %w", err)
	}
	return nil
}

// QueryMemories returns memories for a session, newest first.
func (s *SqliteStore) QueryMemories(ctx context.Context, sessionID string, memoryType *MemoryType, limit int) ([]MemoryEntry, error) {
	var rows *sql.Rows
	var err error

	if memoryType != nil {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, session_id, agent_id, memory_type, content, created_at
			FROM memories
			WHERE session_id = ? AND memory_type = ?
			ORDER BY created_at DESC
			LIMIT ?`,
			sessionID, memoryType.String(), limit)
	} else {
		rows, err = s.db.QueryContext(ctx, `
			SELECT id, session_id, agent_id, memory_type, content, created_at
			FROM memories
			WHERE session_id = ?
			ORDER BY created_at DESC
			LIMIT ?`,
			sessionID, limit)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query memories: %w", err)
	}
	defer rows.Close()

	memories := []MemoryEntry{}
	for rows.Next() {
		var entry MemoryEntry
		var memTypeStr string
		var agentID sql.NullString

		if err := rows.Scan(&entry.ID, &entry.SessionID, &agentID,
			&memTypeStr, &entry.Content, &entry.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan memory: %w", err)
		}

		if agentID.Valid {
			entry.AgentID = agentID.String
		}

		memType, err := ParseMemoryType(memTypeStr)
		if err != nil {
			return nil, fmt.Errorf("invalid memory type %q in database: %w", memTypeStr, err)
		}
		entry.Type = memType

		memories = append(memories, entry)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating memories: %w", err)
	}

	return memories, nil
}

// DeleteSessionMemories deletes all memories for a session.
func (s *SqliteStore) DeleteSessionMemories(ctx context.Context, sessionID string) error {
	_, err := s.db.ExecContext(ctx, "DELETE FROM memories WHERE session_id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session memories: %w", err)
	}
	return nil
}
