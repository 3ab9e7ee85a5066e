package agent

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/event"
	"github.com/globomantics/agentlab/schema"
	"github.com/globomantics/agentlab/tool"
)

// scriptedProvider returns canned responses in order.
type scriptedProvider struct {
	responses []*ai.Response
	err       error
	calls     int
}

func (s *scriptedProvider) Chat(_ context.Context, _ []ai.Message, _ ...ai.Option) (*ai.Response, error) {
	if s.err != nil {
		return nil, s.err
	}
	if s.calls >= len(s.responses) {
		return &ai.Response{Content: "done", FinishReason: "stop"}, nil
	}
	resp := s.responses[s.calls]
	s.calls++
	return resp, nil
}

func echoRegistry(t *testing.T) *tool.Registry {
	t.Helper()
	params := schema.Object().
		Field("order_id", schema.String().Required()).
		MustBuild()
	return tool.NewRegistry().Add(
		tool.Func("get_order", "Get order details by ID", params,
			func(_ context.Context, args struct {
				OrderID string `json:"order_id"`
			}) (string, error) {
				if args.OrderID == "999" {
					return "", ai.NewPermanentError("Order 999 not found", ai.CodeNotFound, nil)
				}
				return `{"order_id": "` + args.OrderID + `", "status": "delivered"}`, nil
			}),
	)
}

func toolCallResponse(name, arguments string) *ai.Response {
	return &ai.Response{
		FinishReason: "tool_calls",
		ToolCalls:    []ai.ToolCall{{ID: ai.GenerateCallID(), Name: name, Arguments: arguments}},
	}
}

func TestRunCompletesWithPlainResponse(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.Response{
		{Content: "Hello! How can I help?", FinishReason: "stop", Usage: ai.Usage{InputTokens: 10, OutputTokens: 5}},
	}}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("hi")})
	require.NoError(t, err)

	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, "Hello! How can I help?", result.Content())
	assert.Equal(t, 1, result.Steps)
	assert.Equal(t, 10, result.TotalUsage.InputTokens)
	assert.Equal(t, 5, result.TotalUsage.OutputTokens)
}

func TestRunExecutesToolCalls(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.Response{
		toolCallResponse("get_order", `{"order_id": "ORD-001"}`),
		{Content: "Your order ORD-001 has been delivered.", FinishReason: "stop"},
	}}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("where is ORD-001?")})
	require.NoError(t, err)

	assert.Equal(t, TerminationComplete, result.Termination)
	assert.Equal(t, 2, result.Steps)
	assert.Contains(t, result.Content(), "delivered")

	// History: user, assistant w/ tool call, tool result, final assistant.
	msgs := result.History.Messages()
	require.Len(t, msgs, 4)
	assert.Equal(t, ai.RoleAssistant, msgs[1].Role)
	require.Len(t, msgs[1].ToolCalls, 1)
	assert.Equal(t, ai.RoleTool, msgs[2].Role)
	require.Len(t, msgs[2].ToolResults, 1)
	assert.False(t, msgs[2].ToolResults[0].IsError)
	assert.Equal(t, "Your order ORD-001 has been delivered.", msgs[3].Content)
}

func TestRunFeedsToolErrorsBackToModel(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.Response{
		toolCallResponse("get_order", `{"order_id": "999"}`),
		{Content: "I couldn't find that order.", FinishReason: "stop"},
	}}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("where is order 999?")})
	require.NoError(t, err)

	msgs := result.History.Messages()
	require.Len(t, msgs, 4)
	require.Len(t, msgs[2].ToolResults, 1)
	assert.True(t, msgs[2].ToolResults[0].IsError)
	assert.Contains(t, msgs[2].ToolResults[0].Content, "not found")
	assert.Equal(t, TerminationComplete, result.Termination)
}

func TestRunHandlesUnknownTool(t *testing.T) {
	provider := &scriptedProvider{responses: []*ai.Response{
		toolCallResponse("no_such_tool", `{}`),
		{Content: "Sorry about that.", FinishReason: "stop"},
	}}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("hi")})
	require.NoError(t, err)

	msgs := result.History.Messages()
	require.Len(t, msgs[2].ToolResults, 1)
	assert.True(t, msgs[2].ToolResults[0].IsError)
	assert.Contains(t, msgs[2].ToolResults[0].Content, "no_such_tool")
}

func TestRunStopsAtMaxSteps(t *testing.T) {
	// A provider that always wants another tool call never terminates on
	// its own; the step limit has to stop it.
	provider := &scriptedProvider{responses: []*ai.Response{
		toolCallResponse("get_order", `{"order_id": "ORD-001"}`),
		toolCallResponse("get_order", `{"order_id": "ORD-001"}`),
		toolCallResponse("get_order", `{"order_id": "ORD-001"}`),
	}}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("loop")}, WithMaxSteps(2))
	require.NoError(t, err)

	assert.Equal(t, TerminationMaxSteps, result.Termination)
	assert.Equal(t, 2, provider.calls)
}

func TestRunReportsProviderError(t *testing.T) {
	provider := &scriptedProvider{err: errors.New("provider exploded")}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(context.Background(), []ai.Message{ai.User("hi")})
	require.Error(t, err)

	assert.Equal(t, TerminationError, result.Termination)
	assert.Contains(t, err.Error(), "provider exploded")
}

func TestRunCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	provider := &scriptedProvider{}
	a := New(provider, echoRegistry(t))

	result, err := a.Run(ctx, []ai.Message{ai.User("hi")})
	require.NoError(t, err)
	assert.Equal(t, TerminationCancelled, result.Termination)
	assert.Equal(t, 0, provider.calls)
}

func TestRunStreamEventSequence(t *testing.T) {
	defer goleak.VerifyNone(t)

	provider := &scriptedProvider{responses: []*ai.Response{
		toolCallResponse("get_order", `{"order_id": "ORD-001"}`),
		{Content: "delivered", FinishReason: "stop"},
	}}
	a := New(provider, echoRegistry(t))

	var types []event.Type
	for ev := range a.RunStream(context.Background(), []ai.Message{ai.User("hi")}) {
		types = append(types, ev.Type)
	}

	assert.Equal(t, []event.Type{
		event.RunStart,
		event.StepStart,
		event.StepEnd,
		event.ToolCallStart,
		event.ToolCallResult,
		event.StepStart,
		event.StepEnd,
		event.MessageEnd,
		event.RunEnd,
	}, types)
}

func TestRunStreamDrainsOnCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	a := New(&scriptedProvider{}, echoRegistry(t))
	var last event.Event
	for ev := range a.RunStream(ctx, []ai.Message{ai.User("hi")}) {
		last = ev
	}
	assert.Equal(t, event.RunEnd, last.Type)
	assert.Equal(t, string(TerminationCancelled), last.Message)
}
