// Sequential pipeline execution.
//
// The runner walks the planned stages in order, feeding each stage the
// findings of the stages it depends on. Critical stages (discovery and
// synthesis) abort the run on failure; the middle stages degrade to an
// error note so one flaky scrape does not cost the whole run.

package research

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rxscope/rxscope/agent"
)

// StageAgent executes one research stage task. *agent.Agent satisfies this.
type StageAgent interface {
	Name() string
	ExecuteWithContext(ctx context.Context, task, priorFindings string) agent.Response
}

// Options configures a research run.
type Options struct {
	// SkipDeep drops the deep mechanism stage.
	SkipDeep bool
	// Provider and Model are recorded in the report header.
	Provider string
	Model    string
	// Mode is the research depth name recorded in the report.
	Mode string
	// Observer receives progress events. Nil means no observation.
	Observer Observer
}

// Runner executes research plans against a set of named agents.
type Runner struct {
	agents map[string]StageAgent
}

// NewRunner creates a runner from the given agents, keyed by Name().
func NewRunner(agents ...StageAgent) *Runner {
	m := make(map[string]StageAgent, len(agents))
	for _, a := range agents {
		m[a.Name()] = a
	}
	return &Runner{agents: m}
}

// Run executes the full pipeline for a query and returns the report.
func (r *Runner) Run(ctx context.Context, query string, opts Options) (*Report, error) {
	observer := opts.Observer
	if observer == nil {
		observer = NopObserver{}
	}

	plan := Plan(query, opts.SkipDeep)
	if err := r.validate(plan); err != nil {
		observer.RunFinished(nil, err)
		return nil, err
	}

	start := time.Now()
	report := &Report{
		Query:       query,
		Provider:    opts.Provider,
		Model:       opts.Model,
		Mode:        opts.Mode,
		GeneratedAt: start,
	}

	findings := make(map[int]string, len(plan))

	for _, stage := range plan {
		if err := ctx.Err(); err != nil {
			err = fmt.Errorf("research cancelled during %s: %w", stage.Label(), err)
			observer.RunFinished(nil, err)
			return nil, err
		}

		observer.StageStarted(stage)

		stageStart := time.Now()
		resp := r.agents[stage.AgentName].ExecuteWithContext(ctx, stage.Task, r.contextFor(stage, findings))
		observer.StageFinished(stage, resp)

		result := StageResult{
			Stage:    stage,
			Duration: time.Since(stageStart),
		}

		if resp.Usable() {
			result.Findings = resp.ResultText()
		} else {
			if stage.Critical {
				err := fmt.Errorf("%s failed: %s", stage.Label(), resp.Error)
				observer.RunFinished(nil, err)
				return nil, err
			}
			result.Degraded = true
			result.Findings = fmt.Sprintf("Stage did not complete: %s", resp.Error)
		}

		findings[stage.Number] = result.Findings
		report.Stages = append(report.Stages, result)
	}

	report.Final = findings[StageSynthesis]
	report.Duration = time.Since(start)

	observer.RunFinished(report, nil)
	return report, nil
}

// contextFor assembles the prior findings a stage depends on.
func (r *Runner) contextFor(stage Stage, findings map[int]string) string {
	if len(stage.ContextFrom) == 0 {
		return ""
	}

	var sections []string
	for _, num := range stage.ContextFrom {
		text, ok := findings[num]
		if !ok || text == "" {
			continue
		}
		sections = append(sections, fmt.Sprintf("[Stage %d findings]\n%s", num, text))
	}
	return strings.Join(sections, "\n\n")
}

// validate checks that every planned stage has an agent.
func (r *Runner) validate(plan []Stage) error {
	for _, stage := range plan {
		if _, ok := r.agents[stage.AgentName]; !ok {
			return fmt.Errorf("no agent registered for %s (needs %q)", stage.Label(), stage.AgentName)
		}
	}
	return nil
}
