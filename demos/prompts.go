package demos

import (
	"context"
	"fmt"
	"strings"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/provider/sim"
	"github.com/globomantics/agentlab/schema"
)

// promptConfig pairs a system prompt with a tool set.
type promptConfig struct {
	system string
	tools  []ai.Tool
}

// badConfig: vague prompt, near-identical descriptions, no parameter
// guidance, and a rule against asking questions.
func badConfig() promptConfig {
	return promptConfig{
		system: "You are an assistant. Always use a tool to help. Never ask clarifying questions.",
		tools: []ai.Tool{
			{
				Name:        "get_order",
				Description: "Get info",
				Parameters: schema.Object().
					Field("order_id", schema.String().Required()).
					MustBuild(),
			},
			{
				Name:        "check_stock",
				Description: "Check info",
				Parameters: schema.Object().
					Field("product_id", schema.String().Required()).
					MustBuild(),
			},
		},
	}
}

// goodConfig: distinct USE WHEN guidance, format examples, and an explicit
// rule to ask for missing information.
func goodConfig() promptConfig {
	return promptConfig{
		system: `You are a customer support agent for Globomantics.

AVAILABLE TOOLS:
- get_order: Get order status. Use ONLY for order tracking questions.
- check_stock: Check product availability. Use ONLY for stock questions.

RULES:
1. If order_id is not provided, ASK for it - never guess.
2. Convert product names to IDs: "Laptop Stand" -> "laptop-stand"`,
		tools: []ai.Tool{
			{
				Name:        "get_order",
				Description: "Get order status. USE WHEN: 'where is my order', 'order status'. DO NOT USE for product questions.",
				Parameters: schema.Object().
					Field("order_id", schema.String().
						Desc("Order ID (format: ORD-XXX). Ask if not provided.").
						Required()).
					MustBuild(),
			},
			{
				Name:        "check_stock",
				Description: "Check product availability. USE WHEN: 'is X in stock', 'do you have X', 'check X'. DO NOT USE for orders.",
				Parameters: schema.Object().
					Field("product_id", schema.String().
						Desc("Product ID in lowercase-hyphen format. Example: 'Blue Widget' -> 'blue-widget'").
						Required()).
					MustBuild(),
			},
		},
	}
}

// ImprovedPrompts runs the same queries against a sloppy configuration and
// a careful one, side by side.
func ImprovedPrompts(ctx context.Context, c *Console) error {
	c.Banner("DEMO: Improving Agent Prompts")

	c.Println("\nBAD CONFIG: Vague descriptions like 'Get info'")
	c.Println("GOOD CONFIG: Clear guidance with 'USE WHEN' / 'DO NOT USE'")

	c.Pause("[Press Enter to continue...]")

	c.Section("TEST 1: Parameter Format (product name -> ID)")
	if err := comparePrompts(ctx, c,
		"Do you have the Laptop Stand in stock?",
		"GOOD: 'laptop-stand', BAD: 'Laptop Stand' or similar",
	); err != nil {
		return err
	}

	c.Pause("[Press Enter to continue...]")

	c.Section("TEST 2: Missing Information Handling")
	if err := comparePrompts(ctx, c,
		"Where is my order?",
		"GOOD asks for order_id, BAD hallucinates one",
	); err != nil {
		return err
	}

	c.Banner("KEY TAKEAWAYS")
	c.Println(`
Good prompts include:
  - Distinct tool descriptions ('USE WHEN' / 'DO NOT USE')
  - Parameter format examples (name -> ID conversion)
  - Rules for missing info (ask, don't guess)`)
	return nil
}

// comparePrompts runs one query under both configurations and prints the
// two outcomes.
func comparePrompts(ctx context.Context, c *Console, query, expected string) error {
	c.Printf("\nQuery: %q\n", query)
	c.Printf("Expected: %s\n\n", expected)

	for _, side := range []struct {
		label  string
		config promptConfig
	}{
		{"[BAD] ", badConfig()},
		{"[GOOD]", goodConfig()},
	} {
		line, err := promptOutcome(ctx, side.config, query)
		if err != nil {
			return fmt.Errorf("compare %q: %w", query, err)
		}
		c.Printf("  %s %s\n", side.label, line)
	}
	return nil
}

// promptOutcome renders the model's first move under a configuration: a
// tool call with arguments, or a truncated text reply.
func promptOutcome(ctx context.Context, cfg promptConfig, query string) (string, error) {
	model := sim.New()
	resp, err := model.Chat(ctx, []ai.Message{
		ai.System(cfg.system),
		ai.User(query),
	}, ai.WithTools(cfg.tools))
	if err != nil {
		return "", err
	}

	if len(resp.ToolCalls) > 0 {
		call := resp.ToolCalls[0]
		return fmt.Sprintf("%s(%s)", call.Name, call.Arguments), nil
	}
	return "Text: " + truncate(resp.Content, 60), nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimRight(s[:n], " ") + "..."
}
