// Agent configuration types.
//
// Research agents are described the way a research team would describe a
// specialist: a role, a goal, and a backstory that frames how they work.
// The three are folded into the system prompt at execution time.

package agent

import (
	"fmt"
	"strings"

	"github.com/rxscope/rxscope/tools"
)

// DefaultMaxIterations caps the ReAct loop when a config does not set its own.
const DefaultMaxIterations = 10

// Config holds agent configuration.
type Config struct {
	// Name is a unique identifier for the agent.
	Name string

	// Role is the specialist persona (e.g. "Drug Repurposing Research Director").
	Role string

	// Goal states what the agent is trying to accomplish.
	Goal string

	// Backstory frames the agent's expertise and working style.
	Backstory string

	// Tools available to this agent.
	Tools []tools.Tool

	// MaxIterations caps the ReAct loop for this agent. Zero means
	// DefaultMaxIterations.
	MaxIterations int

	// ReturnToolOutput returns the last tool output instead of final_answer.
	ReturnToolOutput bool
}

// SystemPrompt composes the role, goal, and backstory into the persona
// portion of the system prompt.
func (c *Config) SystemPrompt() string {
	var parts []string
	if c.Role != "" {
		parts = append(parts, fmt.Sprintf("You are a %s.", c.Role))
	}
	if c.Goal != "" {
		parts = append(parts, fmt.Sprintf("Your goal: %s", c.Goal))
	}
	if c.Backstory != "" {
		parts = append(parts, c.Backstory)
	}
	if len(parts) == 0 {
		return fmt.Sprintf("You are a research agent named %s. Use available tools to complete tasks.", c.Name)
	}
	return strings.Join(parts, "\n\n")
}

// Iterations returns the iteration cap, applying the default when unset.
func (c *Config) Iterations() int {
	if c.MaxIterations <= 0 {
		return DefaultMaxIterations
	}
	return c.MaxIterations
}

// HasTools returns true if the agent has tools configured.
func (c *Config) HasTools() bool {
	return len(c.Tools) > 0
}
