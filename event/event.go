// Package event provides the event vocabulary for observing agent runs.
// The demos subscribe to these events to narrate each step of a run:
// which tool the model picked, what arguments it supplied, and what came
// back from the handler.
package event

import (
	"time"

	ai "github.com/globomantics/agentlab"
)

// Type identifies the kind of event.
type Type string

// Run lifecycle events
const (
	// RunStart fires when an agent run begins.
	RunStart Type = "run_start"

	// RunEnd fires when a run completes. The Message field carries the
	// termination reason.
	RunEnd Type = "run_end"

	// RunError fires when an unrecoverable error occurs.
	RunError Type = "run_error"
)

// Step lifecycle events
const (
	// StepStart fires when an agent iteration begins.
	StepStart Type = "step_start"

	// StepEnd fires when an agent iteration completes, carrying the model
	// response for that step.
	StepEnd Type = "step_end"
)

// Tool call lifecycle events
const (
	// ToolCallStart fires when the model requests a tool call.
	ToolCallStart Type = "tool_call_start"

	// ToolCallResult fires with the tool execution result.
	ToolCallResult Type = "tool_call_result"
)

// MessageEnd fires when the model produces an assistant message with content.
const MessageEnd Type = "message_end"

// Event represents an observable occurrence during an agent run.
type Event struct {
	// Type identifies the kind of event.
	Type Type

	// Step is the current iteration number (1-indexed).
	Step int

	// Response contains the model response for StepEnd, MessageEnd, and RunEnd events.
	Response *ai.Response

	// ToolCall contains the tool call for tool-related events.
	ToolCall *ai.ToolCall

	// ToolResult contains the result for ToolCallResult events.
	ToolResult *ai.ToolResult

	// Error contains the error for RunError events.
	Error error

	// Message contains additional context (e.g., the termination reason).
	Message string

	// Timestamp is when the event occurred.
	Timestamp time.Time
}

// Emit sends an event with timestamp to the channel (non-blocking).
func Emit(ch chan<- Event, e Event) {
	e.Timestamp = time.Now()
	select {
	case ch <- e:
	default:
		// Channel full - don't block
	}
}

// NewChannel creates a buffered event channel with standard capacity.
func NewChannel() chan Event {
	return make(chan Event, 100)
}
