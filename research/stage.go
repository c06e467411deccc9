// Package research implements the multi-stage drug repurposing pipeline.
//
// A run moves through up to four sequential stages: initial discovery, deep
// mechanism analysis, market validation, and final synthesis. Each stage is
// executed by a specialist agent and receives the findings of the stages it
// depends on. Quick runs skip the deep mechanism stage and rewire the
// remaining dependencies around it.
package research

import "fmt"

// Stage numbers. The deep mechanism stage is the one quick runs drop.
const (
	StageDiscovery = 1
	StageMechanism = 2
	StageMarket    = 3
	StageSynthesis = 4
)

// Agent preset names used by the pipeline.
const (
	AgentDirector     = "research_director"
	AgentDeepResearch = "deep_research_analyst"
	AgentMarket       = "market_intelligence"
)

// Stage describes one step of a research plan.
type Stage struct {
	// Number is the stage's position in the canonical four-stage pipeline.
	Number int

	// Name is the human-readable stage name.
	Name string

	// AgentName selects which specialist executes this stage.
	AgentName string

	// Task is the full task prompt for the executing agent.
	Task string

	// ContextFrom lists the stage numbers whose findings feed this stage.
	ContextFrom []int

	// Critical stages abort the run on failure. Non-critical stages degrade:
	// their error is recorded as the finding and the run continues.
	Critical bool
}

// Plan builds the stage sequence for a query. With skipDeep the mechanism
// stage is dropped: market validation then builds on discovery alone, and
// synthesis integrates discovery and market findings only.
func Plan(query string, skipDeep bool) []Stage {
	discovery := Stage{
		Number:    StageDiscovery,
		Name:      "Initial Discovery",
		AgentName: AgentDirector,
		Task:      discoveryTask(query),
		Critical:  true,
	}

	mechanism := Stage{
		Number:      StageMechanism,
		Name:        "Deep Mechanism Analysis",
		AgentName:   AgentDeepResearch,
		Task:        mechanismTask(),
		ContextFrom: []int{StageDiscovery},
	}

	market := Stage{
		Number:    StageMarket,
		Name:      "Market Validation",
		AgentName: AgentMarket,
		Task:      marketTask(),
	}

	synthesis := Stage{
		Number:    StageSynthesis,
		Name:      "Synthesis & Recommendations",
		AgentName: AgentDirector,
		Task:      synthesisTask(),
		Critical:  true,
	}

	if skipDeep {
		market.ContextFrom = []int{StageDiscovery}
		synthesis.ContextFrom = []int{StageDiscovery, StageMarket}
		return []Stage{discovery, market, synthesis}
	}

	market.ContextFrom = []int{StageDiscovery, StageMechanism}
	synthesis.ContextFrom = []int{StageDiscovery, StageMechanism, StageMarket}
	return []Stage{discovery, mechanism, market, synthesis}
}

// Label returns a short identifier like "Stage 2: Deep Mechanism Analysis".
func (s Stage) Label() string {
	return fmt.Sprintf("Stage %d: %s", s.Number, s.Name)
}
