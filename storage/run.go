// Research run history types.

package storage

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Run is a completed research run: the query, how it was executed, and the
// report it produced.
type Run struct {
	ID         string `json:"id"`
	Query      string `json:"query"`
	Provider   string `json:"provider"`
	Model      string `json:"model"`
	Mode       string `json:"mode"`
	Report     string `json:"report"`
	DurationMs uint64 `json:"duration_ms"`
	CreatedAt  int64  `json:"created_at"`
}

// NewRun creates a run record with a fresh ID and timestamp.
func NewRun(query, provider, model, mode, report string, duration time.Duration) Run {
	return Run{
		ID:         uuid.New().String(),
		Query:      query,
		Provider:   provider,
		Model:      model,
		Mode:       mode,
		Report:     report,
		DurationMs: uint64(duration.Milliseconds()),
		CreatedAt:  time.Now().Unix(),
	}
}

// RunStore is the interface for run history persistence.
type RunStore interface {
	// SaveRun persists a completed run.
	SaveRun(ctx context.Context, run Run) error

	// RecentRuns returns the most recent runs, newest first.
	RecentRuns(ctx context.Context, limit int) ([]Run, error)

	// GetRun returns a run by ID, or nil if not found.
	GetRun(ctx context.Context, id string) (*Run, error)

	// DeleteRun deletes a run by ID.
	DeleteRun(ctx context.Context, id string) error
}
