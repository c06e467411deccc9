// Run progress observation.

package research

import (
	"fmt"
	"time"

	"github.com/rxscope/rxscope/agent"
)

// Observer receives pipeline progress events.
type Observer interface {
	// StageStarted fires before a stage's agent begins work.
	StageStarted(stage Stage)

	// StageFinished fires after a stage completes, with the agent response.
	StageFinished(stage Stage, resp agent.Response)

	// RunFinished fires once after the whole pipeline ends.
	RunFinished(report *Report, err error)
}

// NopObserver ignores all events.
type NopObserver struct{}

func (NopObserver) StageStarted(Stage)                   {}
func (NopObserver) StageFinished(Stage, agent.Response)  {}
func (NopObserver) RunFinished(*Report, error)           {}

var _ Observer = NopObserver{}

// ConsoleObserver prints stage progress to stdout.
type ConsoleObserver struct{}

func (ConsoleObserver) StageStarted(stage Stage) {
	fmt.Printf("\n=== %s ===\n", stage.Label())
}

func (ConsoleObserver) StageFinished(stage Stage, resp agent.Response) {
	status := "done"
	switch resp.Type {
	case agent.ResponseFailure:
		status = "failed"
	case agent.ResponseTimeout:
		status = "partial (iteration cap reached)"
	}

	duration := time.Duration(resp.Metadata.ExecutionTimeMs) * time.Millisecond
	fmt.Printf("--- %s: %s in %s", stage.Label(), status, duration.Round(time.Second))
	if resp.Metadata.TokenUsage != nil && resp.Metadata.TokenUsage.TotalTokens > 0 {
		fmt.Printf(" (%d tokens, %d tool calls)",
			resp.Metadata.TokenUsage.TotalTokens, len(resp.Metadata.ToolCalls))
	}
	fmt.Println()
}

func (ConsoleObserver) RunFinished(report *Report, err error) {
	if err != nil {
		fmt.Printf("\nResearch failed: %v\n", err)
		return
	}
	fmt.Printf("\nResearch complete in %s.\n", report.Duration.Round(time.Second))
}

var _ Observer = ConsoleObserver{}
