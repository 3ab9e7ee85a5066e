package demos

import (
	"context"
	"fmt"
	"strings"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/provider/sim"
	"github.com/globomantics/agentlab/schema"
)

// FailureScenarios walks through the three classic agent failure modes:
// planning (wrong tool), grounding (fabricated information), and invocation
// (malformed parameters). Each scenario is caused by a specific prompt or
// schema defect the later demonstrations fix.
func FailureScenarios(ctx context.Context, c *Console) error {
	c.Banner("DEMO: Common Agent Failure Modes")
	c.Println("\nThis demo shows three types of failures that occur in AI agents:")
	c.Println("planning failure, grounding failure, and invocation failure.")

	c.Pause("[Press Enter to see Planning Failure...]")
	if err := planningFailure(ctx, c); err != nil {
		return err
	}

	c.Pause("[Press Enter to see Grounding Failure...]")
	if err := groundingFailure(ctx, c); err != nil {
		return err
	}

	c.Pause("[Press Enter to see Invocation Failure...]")
	if err := invocationFailure(ctx, c); err != nil {
		return err
	}

	c.Printf("\n%s\n", strings.Repeat("=", ruleWidth))
	return nil
}

// planningFailure: near-identical tool descriptions give the model nothing
// to choose on, so it takes the first tool and picks wrong.
func planningFailure(ctx context.Context, c *Console) error {
	c.Banner("SCENARIO 1: Planning Failure")

	idParams := schema.Object().
		Field("id", schema.String().Required()).
		MustBuild()

	tools := []ai.Tool{
		{Name: "get_order_info", Description: "Get information about an item", Parameters: idParams},
		{Name: "check_stock", Description: "Check information about an item", Parameters: idParams},
	}

	query := "Is the blue widget available to purchase?"
	c.Printf("\nUser: %q\n", query)
	c.Println("Expected: check_stock (inventory query)")

	model := sim.New()
	resp, err := model.Chat(ctx, []ai.Message{
		ai.System("You are a helpful assistant."),
		ai.User(query),
	}, ai.WithTools(tools))
	if err != nil {
		return fmt.Errorf("planning scenario: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		c.Println("Agent didn't call any tool")
		return nil
	}

	call := resp.ToolCalls[0]
	c.Printf("Actual: %s\n", call.Name)
	if call.Name != "check_stock" {
		c.Println("PLANNING FAILURE: Agent chose wrong tool!")
	} else {
		c.Println("Agent chose correctly")
	}
	return nil
}

// groundingFailure: the prompt forbids questions and forces tool use, so a
// missing order ID gets invented instead of requested.
func groundingFailure(ctx context.Context, c *Console) error {
	c.Banner("SCENARIO 2: Grounding Failure")

	tools := []ai.Tool{{
		Name:        "get_order_status",
		Description: "Get the status of an order",
		Parameters: schema.Object().
			Field("order_id", schema.String().Desc("The order ID").Required()).
			MustBuild(),
	}}

	query := "Where is my order? It should have arrived by now."
	c.Printf("\nUser: %q\n", query)
	c.Println("Expected: Agent should ask for order_id (not provided)")

	model := sim.New()
	resp, err := model.Chat(ctx, []ai.Message{
		ai.System("You must use tools to help users. Do not ask questions."),
		ai.User(query),
	}, ai.WithTools(tools), ai.WithToolChoice(ai.ToolChoiceRequired))
	if err != nil {
		return fmt.Errorf("grounding scenario: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		c.Println("Agent asked for clarification (good behavior)")
		return nil
	}

	call := resp.ToolCalls[0]
	c.Printf("Actual: %s(%s)\n", call.Name, call.Arguments)
	if id := argString(call, "order_id"); id != "" {
		c.Printf("GROUNDING FAILURE: Agent hallucinated order_id = '%s'\n", id)
	}
	return nil
}

// invocationFailure: no format hint in the parameter description, so the
// bare number from the query goes through without the ORD- prefix.
func invocationFailure(ctx context.Context, c *Console) error {
	c.Banner("SCENARIO 3: Invocation Failure")

	tools := []ai.Tool{{
		Name:        "process_refund",
		Description: "Process a refund for an order",
		Parameters: schema.Object().
			Field("order_id", schema.String().Required()).
			Field("reason", schema.String().Required()).
			MustBuild(),
	}}

	query := "Refund order 12345, it was damaged"
	c.Printf("\nUser: %q\n", query)
	c.Println("Expected format: order_id='ORD-12345' (with prefix)")

	model := sim.New()
	resp, err := model.Chat(ctx, []ai.Message{
		ai.System("You are a helpful assistant."),
		ai.User(query),
	}, ai.WithTools(tools))
	if err != nil {
		return fmt.Errorf("invocation scenario: %w", err)
	}

	if len(resp.ToolCalls) == 0 {
		c.Println("Agent didn't call tool")
		return nil
	}

	call := resp.ToolCalls[0]
	c.Printf("Actual: %s(%s)\n", call.Name, call.Arguments)

	orderID := argString(call, "order_id")
	if !strings.HasPrefix(orderID, "ORD-") {
		c.Printf("INVOCATION FAILURE: Wrong format '%s' (missing ORD- prefix)\n", orderID)
	} else {
		c.Println("Agent used correct format")
	}
	return nil
}
