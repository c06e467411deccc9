// Research report rendering and export.

package research

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"
)

// StageResult records what one stage produced.
type StageResult struct {
	Stage    Stage
	Findings string
	// Degraded marks stages whose agent failed; Findings then holds the
	// error note the run continued with.
	Degraded bool
	Duration time.Duration
}

// Report is the final output of a research run.
type Report struct {
	Query       string
	Provider    string
	Model       string
	Mode        string
	GeneratedAt time.Time
	Duration    time.Duration
	Stages      []StageResult
	// Final is the synthesis stage's report text.
	Final string
}

// Render produces the full plain-text report with a header block.
func (r *Report) Render() string {
	var b strings.Builder

	b.WriteString("PHARMA INTELLIGENCE - RESEARCH REPORT\n")
	fmt.Fprintf(&b, "Generated: %s\n", r.GeneratedAt.Format("2006-01-02 15:04:05"))
	fmt.Fprintf(&b, "Duration: %s\n", r.Duration.Round(time.Second))
	fmt.Fprintf(&b, "Provider: %s (%s)\n", r.Provider, r.Model)
	fmt.Fprintf(&b, "Mode: %s\n", r.Mode)
	b.WriteString("\nQUERY:\n")
	b.WriteString(r.Query)
	b.WriteString("\n\n")
	b.WriteString(r.Final)
	b.WriteString("\n")

	if degraded := r.degradedStages(); len(degraded) > 0 {
		b.WriteString("\nNOTE: The following stages did not complete and their findings are partial or missing:\n")
		for _, s := range degraded {
			fmt.Fprintf(&b, "- %s: %s\n", s.Stage.Label(), s.Findings)
		}
	}

	return b.String()
}

// Save writes the rendered report to path, creating parent directories.
func (r *Report) Save(path string) error {
	dir := filepath.Dir(path)
	if dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create report directory: %w", err)
		}
	}

	if err := os.WriteFile(path, []byte(r.Render()), 0644); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	return nil
}

// DefaultFilename returns a timestamped report filename.
func (r *Report) DefaultFilename() string {
	return fmt.Sprintf("pharma_research_%s.txt", r.GeneratedAt.Format("20060102_150405"))
}

func (r *Report) degradedStages() []StageResult {
	var out []StageResult
	for _, s := range r.Stages {
		if s.Degraded {
			out = append(out, s)
		}
	}
	return out
}
