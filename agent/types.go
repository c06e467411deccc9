// Package agent provides the ReAct research agent implementation.
//
// Contains the decision, action, and response types shared by all agents.
package agent

import (
	"encoding/json"

	"github.com/rxscope/rxscope/llm"
	"github.com/rxscope/rxscope/model"
)

// Decision is what the agent's LLM returns each iteration: a thought,
// optionally a tool action, and optionally a final answer.
type Decision struct {
	Thought     string  `json:"thought"`
	Action      *Action `json:"action,omitempty"`
	IsFinal     bool    `json:"is_final"`
	FinalAnswer *string `json:"final_answer,omitempty"`
}

// UnmarshalJSON accepts either a string or an arbitrary JSON value for
// FinalAnswer. Models sometimes emit the answer as a structured object.
func (d *Decision) UnmarshalJSON(data []byte) error {
	type decisionAlias Decision
	aux := &struct {
		FinalAnswer json.RawMessage `json:"final_answer,omitempty"`
		*decisionAlias
	}{
		decisionAlias: (*decisionAlias)(d),
	}

	if err := json.Unmarshal(data, aux); err != nil {
		return err
	}

	if len(aux.FinalAnswer) > 0 {
		var s string
		if err := json.Unmarshal(aux.FinalAnswer, &s); err == nil {
			d.FinalAnswer = &s
			return nil
		}

		var v interface{}
		if err := json.Unmarshal(aux.FinalAnswer, &v); err == nil {
			pretty, err := json.MarshalIndent(v, "", "  ")
			if err == nil {
				s := string(pretty)
				d.FinalAnswer = &s
			}
		}
	}

	return nil
}

// Action names a tool and carries its JSON input.
type Action struct {
	Tool  string          `json:"tool"`
	Input json.RawMessage `json:"input"`
}

// Step is an alias for a single reasoning step.
type Step = model.Step

// ToolCall is an alias for tool call metadata.
type ToolCall = model.ToolCall

// Metadata carries execution statistics for a completed agent run.
type Metadata struct {
	ExecutionTimeMs uint64
	AgentName       *string
	ToolCalls       []ToolCall
	TokenUsage      *llm.TokenUsage
	LLMCalls        int
}

// ResponseType indicates how an agent execution ended.
type ResponseType int

const (
	ResponseSuccess ResponseType = iota
	ResponseFailure
	ResponseTimeout
)

// Response is the outcome of an agent execution.
type Response struct {
	Type          ResponseType
	Result        string // for Success
	Error         string // for Failure
	PartialResult string // for Timeout
	Steps         []Step
	Metadata      Metadata
}

// NewSuccessResponse creates a successful response.
func NewSuccessResponse(result string, steps []Step, toolCalls []ToolCall, executionTimeMs uint64, agentName string, tokenUsage *llm.TokenUsage, llmCalls int) Response {
	return Response{
		Type:   ResponseSuccess,
		Result: result,
		Steps:  steps,
		Metadata: Metadata{
			ExecutionTimeMs: executionTimeMs,
			AgentName:       &agentName,
			ToolCalls:       toolCalls,
			TokenUsage:      tokenUsage,
			LLMCalls:        llmCalls,
		},
	}
}

// NewFailureResponse creates a failure response.
func NewFailureResponse(err string, steps []Step, executionTimeMs uint64) Response {
	return Response{
		Type:  ResponseFailure,
		Error: err,
		Steps: steps,
		Metadata: Metadata{
			ExecutionTimeMs: executionTimeMs,
		},
	}
}

// NewTimeoutResponse creates a response for a run that hit its iteration cap.
// The accumulated findings are preserved as the partial result so a later
// stage can still use them.
func NewTimeoutResponse(partial string, steps []Step, toolCalls []ToolCall, executionTimeMs uint64, tokenUsage *llm.TokenUsage, llmCalls int) Response {
	if partial == "" {
		partial = "Iteration limit reached before a final answer was produced"
	}
	return Response{
		Type:          ResponseTimeout,
		PartialResult: partial,
		Steps:         steps,
		Metadata: Metadata{
			ExecutionTimeMs: executionTimeMs,
			ToolCalls:       toolCalls,
			TokenUsage:      tokenUsage,
			LLMCalls:        llmCalls,
		},
	}
}

// ResultText returns whichever text the response carries.
func (r Response) ResultText() string {
	switch r.Type {
	case ResponseSuccess:
		return r.Result
	case ResponseFailure:
		return r.Error
	case ResponseTimeout:
		return r.PartialResult
	default:
		return ""
	}
}

// IsSuccess reports whether the execution completed normally.
func (r Response) IsSuccess() bool {
	return r.Type == ResponseSuccess
}

// Usable reports whether the response text can feed a downstream research
// stage. Timeouts still carry partial findings; only failures are unusable.
func (r Response) Usable() bool {
	return r.Type != ResponseFailure
}
