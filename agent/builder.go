// Agent builder for fluent configuration.

package agent

import (
	"fmt"

	"github.com/rxscope/rxscope/tools"
)

// Builder provides fluent configuration for creating agents.
type Builder struct {
	name             string
	role             string
	goal             string
	backstory        string
	tools            []tools.Tool
	maxIterations    int
	returnToolOutput bool
}

// NewBuilder creates a new agent builder with the given name.
func NewBuilder(name string) *Builder {
	return &Builder{
		name:  name,
		tools: []tools.Tool{},
	}
}

// Role sets the agent's specialist persona.
func (b *Builder) Role(role string) *Builder {
	b.role = role
	return b
}

// Goal sets what the agent is trying to accomplish.
func (b *Builder) Goal(goal string) *Builder {
	b.goal = goal
	return b
}

// Backstory sets the agent's expertise framing.
func (b *Builder) Backstory(backstory string) *Builder {
	b.backstory = backstory
	return b
}

// Tool adds a tool to the agent.
func (b *Builder) Tool(tool tools.Tool) *Builder {
	b.tools = append(b.tools, tool)
	return b
}

// Tools adds multiple tools at once.
func (b *Builder) Tools(toolList []tools.Tool) *Builder {
	b.tools = append(b.tools, toolList...)
	return b
}

// MaxIterations sets the ReAct loop cap for this agent.
func (b *Builder) MaxIterations(n int) *Builder {
	b.maxIterations = n
	return b
}

// ReturnToolOutput configures the agent to return tool output directly.
func (b *Builder) ReturnToolOutput(enabled bool) *Builder {
	b.returnToolOutput = enabled
	return b
}

// Build creates the agent configuration.
func (b *Builder) Build() Config {
	role := b.role
	if role == "" {
		role = fmt.Sprintf("research agent named %s", b.name)
	}

	return Config{
		Name:             b.name,
		Role:             role,
		Goal:             b.goal,
		Backstory:        b.backstory,
		Tools:            b.tools,
		MaxIterations:    b.maxIterations,
		ReturnToolOutput: b.returnToolOutput,
	}
}

// Name returns the builder's agent name.
func (b *Builder) Name() string {
	return b.name
}

// ToolCount returns the number of tools registered.
func (b *Builder) ToolCount() int {
	return len(b.tools)
}
