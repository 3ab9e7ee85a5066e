package demos

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/agent"
	"github.com/globomantics/agentlab/event"
	"github.com/globomantics/agentlab/provider/sim"
	"github.com/globomantics/agentlab/schema"
	"github.com/globomantics/agentlab/shop"
	"github.com/globomantics/agentlab/tool"
)

// cascadePrompt demands completion and forbids questions, the combination
// that turns one failed lookup into an unvalidated refund.
const cascadePrompt = "You are a support agent. You must complete every task requested by the user. Do not ask clarifying questions."

// CascadingErrors shows how one error propagates through a multi-step agent
// task. The refund tool here deliberately skips order validation, so a
// failed lookup still ends in a processed refund built from the user's own
// claims.
func CascadingErrors(ctx context.Context, c *Console) error {
	c.Banner("DEMO: Cascading Errors in Agent Workflows")

	backend := shop.NewBackend()
	registry := tool.NewRegistry().Add(cascadeTools(backend)...)

	c.Section("SCENARIO 1: Successful Flow")
	c.Println(`
User: "Please refund my order ORD-001, the item was damaged"

Expected flow:
  Step 1: get_order("ORD-001") returns order details
  Step 2: process_refund with correct amount from order`)
	c.Pause("[Press Enter to run...]")

	if err := runCascade(ctx, c, registry, "Please refund my order ORD-001, the item was damaged"); err != nil {
		return err
	}

	c.Section("SCENARIO 2: Cascade from Wrong Tool Result")
	c.Println(`
User: "Please refund order 999, I paid $50 for it"

Expected flow:
  Step 1: get_order("999") returns "not found"
  Step 2: Agent proceeds to refund with made-up amount
  Step 3: Refund processes with invalid data`)
	c.Pause("[Press Enter to run...]")

	return runCascade(ctx, c, registry, "Please refund order 999, I paid $50 for it")
}

// cascadeTools are the demonstration's deliberately loose tools: minimal
// descriptions, and a refund that trusts its caller for both order and
// amount.
func cascadeTools(b *shop.Backend) []tool.Registration {
	type orderArgs struct {
		OrderID string `json:"order_id"`
	}
	type refundArgs struct {
		OrderID string  `json:"order_id"`
		Amount  float64 `json:"amount"`
	}

	return []tool.Registration{
		tool.Func("get_order", "Get order details by ID",
			schema.Object().
				Field("order_id", schema.String().Required()).
				MustBuild(),
			func(ctx context.Context, args orderArgs) (string, error) {
				order, err := b.Order(args.OrderID)
				if err != nil {
					return "", err
				}
				return marshalRecord(order)
			}),

		tool.Func("process_refund", "Process refund for an order",
			schema.Object().
				Field("order_id", schema.String().Required()).
				Field("amount", schema.Number().Required()).
				MustBuild(),
			func(ctx context.Context, args refundArgs) (string, error) {
				refund, err := b.Refund(args.OrderID, args.Amount, "")
				if err != nil {
					return "", err
				}
				return marshalRecord(refund)
			}),
	}
}

// runCascade runs the agent loop and narrates each tool call as a numbered
// step, flagging errors the moment they appear.
func runCascade(ctx context.Context, c *Console, registry *tool.Registry, query string) error {
	ag := agent.New(sim.New(), registry)

	messages := []ai.Message{
		ai.System(cascadePrompt),
		ai.User(query),
	}

	step := 0
	for ev := range ag.RunStream(ctx, messages) {
		switch ev.Type {
		case event.ToolCallResult:
			step++
			c.Printf("\nStep %d: %s(%s)\n", step, ev.ToolCall.Name, ev.ToolCall.Arguments)
			c.Printf("  Result: %s\n", ev.ToolResult.Content)
			if ev.ToolResult.IsError {
				c.Printf("  ^ ERROR at step %d - watch how this cascades...\n", step)
			}

		case event.MessageEnd:
			c.Printf("\nAgent Response: %s\n", ev.Response.Content)

		case event.RunError:
			return fmt.Errorf("cascade run: %w", ev.Error)
		}
	}
	return nil
}

// marshalRecord renders a backend record the way a tool handler returns it.
func marshalRecord(v any) (string, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return "", fmt.Errorf("marshal record: %w", err)
	}
	return string(data), nil
}
