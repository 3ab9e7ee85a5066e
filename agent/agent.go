package agent

import (
	"context"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/event"
	"github.com/globomantics/agentlab/store"
	"github.com/globomantics/agentlab/tool"
)

// Agent runs a tool-calling conversation loop: ask the model, execute the
// tools it requests, feed the results back, repeat until the model answers
// in plain text. Tool execution is strictly sequential.
type Agent struct {
	provider ai.ChatProvider
	registry *tool.Registry
}

// New creates an Agent with the given provider and tool registry.
func New(provider ai.ChatProvider, registry *tool.Registry) *Agent {
	return &Agent{
		provider: provider,
		registry: registry,
	}
}

// Run executes the agent loop and returns the final result.
// This is a blocking call that runs until the agent completes.
func (a *Agent) Run(ctx context.Context, messages []ai.Message, opts ...Option) (*Result, error) {
	eventCh := a.RunStream(ctx, messages, opts...)

	result := &Result{History: store.NewHistory(messages...)}

	var totalUsage ai.Usage
	var lastResponse *ai.Response
	var pendingAssistant *ai.Message
	var pendingResults []ai.ToolResult

	commit := func() {
		if pendingAssistant != nil {
			result.History.Append(*pendingAssistant)
			pendingAssistant = nil
		}
		if len(pendingResults) > 0 {
			result.History.Append(ai.NewToolResultMessage(pendingResults...))
			pendingResults = nil
		}
	}

	for ev := range eventCh {
		if ev.Step > 0 {
			result.Steps = ev.Step
		}

		switch ev.Type {
		case event.StepStart:
			commit()

		case event.StepEnd:
			lastResponse = ev.Response
			if ev.Response != nil {
				totalUsage.Add(ev.Response.Usage)
				if len(ev.Response.ToolCalls) > 0 {
					pendingAssistant = &ai.Message{
						Role:      ai.RoleAssistant,
						Content:   ev.Response.Content,
						ToolCalls: ev.Response.ToolCalls,
					}
				}
			}

		case event.ToolCallResult:
			if ev.ToolResult != nil {
				pendingResults = append(pendingResults, *ev.ToolResult)
			}

		case event.RunEnd:
			result.Response = ev.Response
			result.Termination = TerminationReason(ev.Message)
			if result.Response == nil {
				result.Response = lastResponse
			}

		case event.RunError:
			result.Err = ev.Error
			result.Termination = TerminationError
		}
	}

	commit()
	if result.Response != nil && result.Response.Content != "" {
		result.History.Append(ai.Message{Role: ai.RoleAssistant, Content: result.Response.Content})
	}
	result.TotalUsage = totalUsage
	return result, result.Err
}

// RunStream executes the agent loop and returns a channel of events.
// The channel is closed when the run completes. Callers should drain it.
func (a *Agent) RunStream(ctx context.Context, messages []ai.Message, opts ...Option) <-chan event.Event {
	eventCh := event.NewChannel()
	go a.runLoop(ctx, messages, eventCh, opts...)
	return eventCh
}

func (a *Agent) runLoop(ctx context.Context, messages []ai.Message, eventCh chan<- event.Event, opts ...Option) {
	defer close(eventCh)

	options := ApplyOptions(opts...)

	event.Emit(eventCh, event.Event{Type: event.RunStart})

	chatOpts := append([]ai.Option{ai.WithTools(a.registry.Tools())}, options.ChatOptions...)
	history := store.NewHistory(messages...)

	step := 0
	for {
		step++

		if ctx.Err() != nil {
			event.Emit(eventCh, event.Event{Type: event.RunEnd, Step: step, Message: string(TerminationCancelled)})
			return
		}
		if options.MaxSteps > 0 && step > options.MaxSteps {
			event.Emit(eventCh, event.Event{Type: event.RunEnd, Step: step - 1, Message: string(TerminationMaxSteps)})
			return
		}

		event.Emit(eventCh, event.Event{Type: event.StepStart, Step: step})

		response, err := a.provider.Chat(ctx, history.Messages(), chatOpts...)
		if err != nil {
			event.Emit(eventCh, event.Event{Type: event.RunError, Step: step, Error: err})
			return
		}

		event.Emit(eventCh, event.Event{Type: event.StepEnd, Step: step, Response: response})

		// No tool calls: the model answered, the run is complete.
		if len(response.ToolCalls) == 0 {
			event.Emit(eventCh, event.Event{Type: event.MessageEnd, Step: step, Response: response})
			event.Emit(eventCh, event.Event{
				Type:     event.RunEnd,
				Step:     step,
				Response: response,
				Message:  string(TerminationComplete),
			})
			return
		}

		history.Append(ai.Message{
			Role:      ai.RoleAssistant,
			Content:   response.Content,
			ToolCalls: response.ToolCalls,
		})

		results := a.executeToolCalls(ctx, response.ToolCalls, step, eventCh)
		history.Append(ai.NewToolResultMessage(results...))
	}
}

// executeToolCalls runs each requested tool in order. Handler errors become
// error-flagged results so the model can see them and react; only an
// unregistered tool name produces an error result with matching text.
func (a *Agent) executeToolCalls(ctx context.Context, calls []ai.ToolCall, step int, eventCh chan<- event.Event) []ai.ToolResult {
	results := make([]ai.ToolResult, 0, len(calls))

	for _, call := range calls {
		call := call
		event.Emit(eventCh, event.Event{Type: event.ToolCallStart, Step: step, ToolCall: &call})

		result, err := a.registry.Execute(ctx, call)
		if err != nil {
			result = ai.ToolResult{
				ToolCallID: call.ID,
				Content:    err.Error(),
				IsError:    true,
			}
		}

		event.Emit(eventCh, event.Event{Type: event.ToolCallResult, Step: step, ToolCall: &call, ToolResult: &result})
		results = append(results, result)
	}

	return results
}
