package agent

import (
	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/store"
)

// TerminationReason describes why an agent run ended.
type TerminationReason string

const (
	// TerminationComplete: the model answered without requesting tools.
	TerminationComplete TerminationReason = "complete"

	// TerminationMaxSteps: the step limit was reached.
	TerminationMaxSteps TerminationReason = "max_steps"

	// TerminationCancelled: the context was cancelled.
	TerminationCancelled TerminationReason = "cancelled"

	// TerminationError: the run failed with an error.
	TerminationError TerminationReason = "error"
)

// Result is the outcome of an agent run.
type Result struct {
	// Response is the final model response, nil if the run never produced one.
	Response *ai.Response

	// History is the full conversation, including tool calls and results.
	History *store.History

	// Steps is the number of iterations the loop performed.
	Steps int

	// Termination is why the run ended.
	Termination TerminationReason

	// TotalUsage is the accumulated token usage across all steps.
	TotalUsage ai.Usage

	// Err is the run error, nil on success.
	Err error
}

// Content returns the final response text, or "" when there is none.
func (r *Result) Content() string {
	if r.Response == nil {
		return ""
	}
	return r.Response.Content
}
