// ReAct (Reason + Act) loop implementation.
//
// All research agent execution goes through this module: the agent reasons
// about the next step, optionally calls a research tool, feeds the
// observation back, and repeats until it produces a final answer or hits
// its iteration cap.
//
// Information Hiding:
// - ReAct loop internals hidden
// - LLM communication hidden
// - Tool execution coordination hidden
// - Memory management hidden

package agent

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	jsonutil "github.com/rxscope/rxscope/internal/json"
	"github.com/rxscope/rxscope/llm"
	"github.com/rxscope/rxscope/model"
	"github.com/rxscope/rxscope/storage"
	"github.com/rxscope/rxscope/tools"
)

// Agent executes research tasks using the ReAct pattern.
type Agent struct {
	config       Config
	llmClient    *llm.Client
	toolRegistry *tools.Registry
	toolExecutor *tools.Executor
	memory       storage.MemoryStore
	sessionID    string
	verbose      bool
}

// New creates a new agent with the given configuration and provider.
func New(config Config, provider llm.Provider) *Agent {
	registry := tools.NewRegistry()
	for _, tool := range config.Tools {
		_ = registry.Register(tool) // duplicates are the caller's mistake, not fatal
	}

	return &Agent{
		config:       config,
		llmClient:    llm.NewClient(provider),
		toolRegistry: registry,
		toolExecutor: tools.NewDefaultExecutor(),
	}
}

// WithToolConfig overrides the tool execution configuration.
func (a *Agent) WithToolConfig(config tools.ToolConfig) *Agent {
	a.toolExecutor = tools.NewExecutor(config)
	return a
}

// WithMemory enables episodic memory persistence for the session.
func (a *Agent) WithMemory(store storage.MemoryStore, sessionID string) *Agent {
	a.memory = store
	a.sessionID = sessionID
	return a
}

// Verbose enables verbose output (streams LLM reasoning to stdout).
func (a *Agent) Verbose(enabled bool) *Agent {
	a.verbose = enabled
	return a
}

// Name returns the agent's name.
func (a *Agent) Name() string {
	return a.config.Name
}

// Role returns the agent's specialist persona.
func (a *Agent) Role() string {
	return a.config.Role
}

// Execute runs a task with the agent's configured iteration cap.
func (a *Agent) Execute(ctx context.Context, task string) Response {
	return a.ExecuteWithContext(ctx, task, "")
}

// ExecuteWithContext runs a task with findings from earlier research stages
// prepended as context.
func (a *Agent) ExecuteWithContext(ctx context.Context, task, priorFindings string) Response {
	startTime := time.Now()
	maxIterations := a.config.Iterations()

	var steps []model.Step
	var toolCalls []model.ToolCall
	var totalUsage llm.TokenUsage
	var llmCalls int
	var lastToolOutput string
	var lastThought string

	conversation := []llm.ChatMessage{
		llm.SystemMessage(a.buildSystemPrompt(ctx, priorFindings, maxIterations)),
		llm.UserMessage(fmt.Sprintf("Task: %s", task)),
	}

	for iteration := 0; iteration < maxIterations; iteration++ {
		if ctx.Err() != nil {
			return NewFailureResponse(
				fmt.Sprintf("execution cancelled: %v", ctx.Err()),
				steps,
				uint64(time.Since(startTime).Milliseconds()),
			)
		}

		remaining := maxIterations - iteration

		decision, usage, err := a.think(ctx, conversation)
		if err != nil {
			return NewFailureResponse(
				fmt.Sprintf("failed to reason: %v", err),
				steps,
				uint64(time.Since(startTime).Milliseconds()),
			)
		}

		llmCalls++
		totalUsage.Add(usage)
		if decision.Thought != "" {
			lastThought = decision.Thought
		}

		if decision.IsFinal {
			result := a.finalResult(decision, lastToolOutput)
			a.storeEpisode(ctx, task, result)

			steps = append(steps, model.Step{
				Iteration:   iteration,
				Thought:     decision.Thought,
				Observation: &result,
			})

			return NewSuccessResponse(
				result,
				steps,
				toolCalls,
				uint64(time.Since(startTime).Milliseconds()),
				a.config.Name,
				&totalUsage,
				llmCalls,
			)
		}

		if decision.Action != nil {
			observation, toolCall, err := a.executeTool(ctx, decision.Action)
			if toolCall != nil {
				toolCalls = append(toolCalls, *toolCall)
			}
			if err == nil {
				lastToolOutput = observation
			}

			conversation = append(conversation, llm.AssistantMessage(encodeDecision(decision)))

			observationMsg := observation
			if err != nil {
				observationMsg = fmt.Sprintf("Tool failed: %v", err)
			}

			urgency := ""
			if remaining <= 2 {
				urgency = fmt.Sprintf("\n\nWARNING: Only %d iterations remaining!", remaining-1)
			}

			conversation = append(conversation, llm.UserMessage(fmt.Sprintf(
				"Observation: %s%s\n\nIs the task complete? If yes, set is_final=true.",
				observationMsg, urgency,
			)))

			actionName := decision.Action.Tool
			steps = append(steps, model.Step{
				Iteration:   iteration,
				Thought:     decision.Thought,
				Action:      &actionName,
				Observation: &observationMsg,
			})
			continue
		}

		// No action and not final: implicit completion if there is prior progress.
		if hasPriorProgress(steps) {
			result := a.implicitResult(decision, lastToolOutput, steps)
			a.storeEpisode(ctx, task, result)

			return NewSuccessResponse(
				result,
				steps,
				toolCalls,
				uint64(time.Since(startTime).Milliseconds()),
				a.config.Name,
				&totalUsage,
				llmCalls,
			)
		}

		observation := "No action specified"
		steps = append(steps, model.Step{
			Iteration:   iteration,
			Thought:     decision.Thought,
			Observation: &observation,
		})
	}

	a.storeEpisode(ctx, task, fmt.Sprintf("Iteration cap of %d reached", maxIterations))

	partial := lastToolOutput
	if partial == "" {
		partial = lastThought
	}
	return NewTimeoutResponse(
		partial,
		steps,
		toolCalls,
		uint64(time.Since(startTime).Milliseconds()),
		&totalUsage,
		llmCalls,
	)
}

// buildSystemPrompt assembles persona, tool descriptions, prior stage
// findings, session memories, and the JSON response contract.
func (a *Agent) buildSystemPrompt(ctx context.Context, priorFindings string, maxIterations int) string {
	findingsSection := ""
	if priorFindings != "" {
		findingsSection = fmt.Sprintf("\n\nFINDINGS FROM EARLIER RESEARCH STAGES:\n%s\n", priorFindings)
	}

	memorySection := ""
	if memories := a.loadRelevantMemories(ctx, 3); memories != "" {
		memorySection = "\n\n" + memories + "\n"
	}

	return fmt.Sprintf(
		`%s

Available Tools:
%s%s%s

You have a maximum of %d iterations.
Respond in this JSON format:
{
  "thought": "your reasoning",
  "action": {"tool": "name", "input": {...}},
  "is_final": false,
  "final_answer": null
}

When complete: is_final=true, action=null, provide final_answer.`,
		a.config.SystemPrompt(),
		a.toolRegistry.Description(),
		findingsSection,
		memorySection,
		maxIterations,
	)
}

// think asks the LLM for the next decision. Streams when verbose so the
// user can watch the reasoning.
func (a *Agent) think(ctx context.Context, conversation []llm.ChatMessage) (Decision, *llm.TokenUsage, error) {
	var response string
	var usage *llm.TokenUsage
	var err error

	if a.verbose {
		response, usage, err = a.thinkWithStreaming(ctx, conversation)
	} else {
		response, usage, err = a.llmClient.ChatWithUsage(ctx, conversation)
	}
	if err != nil {
		return Decision{}, nil, fmt.Errorf("LLM chat failed: %w", err)
	}

	extracted, err := jsonutil.ExtractJSON(response)
	if err != nil {
		// No JSON in the response - treat the whole thing as a thought.
		return Decision{Thought: response}, usage, nil
	}

	var decision Decision
	if err := json.Unmarshal([]byte(extracted), &decision); err != nil {
		return Decision{Thought: response}, usage, nil
	}

	return decision, usage, nil
}

type streamResult struct {
	usage *llm.TokenUsage
	err   error
}

// thinkWithStreaming collects the response while printing tokens live.
func (a *Agent) thinkWithStreaming(ctx context.Context, conversation []llm.ChatMessage) (string, *llm.TokenUsage, error) {
	chunks := make(chan string, 100)

	resultCh := make(chan streamResult, 1)
	go func() {
		defer close(chunks)
		usage, err := a.llmClient.StreamChat(ctx, conversation, chunks)
		resultCh <- streamResult{usage: usage, err: err}
	}()

	var response strings.Builder
	printedHeader := false

	for chunk := range chunks {
		if !printedHeader {
			fmt.Printf("\n[%s] ", a.config.Name)
			printedHeader = true
		}
		fmt.Print(chunk)
		os.Stdout.Sync()
		response.WriteString(chunk)
	}

	if printedHeader {
		fmt.Print("\n\n")
	}

	result := <-resultCh
	if result.err != nil {
		return "", nil, result.err
	}

	return response.String(), result.usage, nil
}

// executeTool runs a tool through the retrying executor and returns the
// observation.
func (a *Agent) executeTool(ctx context.Context, action *Action) (string, *model.ToolCall, error) {
	tool, exists := a.toolRegistry.Get(action.Tool)
	if !exists {
		return "", nil, fmt.Errorf("tool '%s' not found", action.Tool)
	}

	startTime := time.Now()
	result, err := a.toolExecutor.Execute(ctx, tool, action.Input)
	if err != nil {
		return "", nil, fmt.Errorf("tool %q failed: %w", action.Tool, err)
	}

	toolCall := &model.ToolCall{
		Name:       action.Tool,
		InputSize:  len(action.Input),
		OutputSize: len(result.Output),
		DurationMs: uint64(time.Since(startTime).Milliseconds()),
		Success:    result.Success(),
	}

	if result.Success() {
		return result.Output, toolCall, nil
	}

	return "", toolCall, result.Error
}

// encodeDecision serializes a decision for the conversation transcript.
func encodeDecision(decision Decision) string {
	msg := map[string]interface{}{
		"thought":  decision.Thought,
		"is_final": false,
	}
	if decision.Action != nil {
		msg["action"] = map[string]interface{}{
			"tool":  decision.Action.Tool,
			"input": decision.Action.Input,
		}
	}
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Sprintf(`{"thought": %q}`, decision.Thought)
	}
	return string(data)
}

// Memory helpers

func (a *Agent) storeEpisode(ctx context.Context, task, result string) {
	if a.memory == nil || a.sessionID == "" {
		return
	}

	preview := result
	if len(preview) > 150 {
		preview = preview[:150] + "..."
	}

	entry := storage.NewMemoryEntry(a.sessionID, storage.MemoryEpisodic,
		fmt.Sprintf("Task: %s | Result: %s", task, preview)).
		WithAgent(a.config.Name)

	_ = a.memory.StoreMemory(ctx, entry) // best effort
}

func (a *Agent) loadRelevantMemories(ctx context.Context, limit int) string {
	if a.memory == nil || a.sessionID == "" {
		return ""
	}

	memType := storage.MemoryEpisodic
	memories, err := a.memory.QueryMemories(ctx, a.sessionID, &memType, limit)
	if err != nil || len(memories) == 0 {
		return ""
	}

	var lines []string
	for _, m := range memories {
		lines = append(lines, fmt.Sprintf("- %s", m.Content))
	}

	return fmt.Sprintf("Relevant findings from this session:\n%s", strings.Join(lines, "\n"))
}

// Result helpers

func (a *Agent) finalResult(decision Decision, lastToolOutput string) string {
	if a.config.ReturnToolOutput && lastToolOutput != "" {
		return lastToolOutput
	}
	if decision.FinalAnswer != nil {
		return *decision.FinalAnswer
	}
	return "Task completed"
}

func (a *Agent) implicitResult(decision Decision, lastToolOutput string, steps []model.Step) string {
	if a.config.ReturnToolOutput && lastToolOutput != "" {
		return lastToolOutput
	}
	if decision.Thought != "" {
		return decision.Thought
	}
	if len(steps) > 0 && steps[len(steps)-1].Observation != nil {
		return *steps[len(steps)-1].Observation
	}
	return "Task completed"
}

func hasPriorProgress(steps []model.Step) bool {
	for _, s := range steps {
		if s.Observation != nil {
			return true
		}
	}
	return false
}
