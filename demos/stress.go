package demos

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	"github.com/globomantics/agentlab/harness"
	"github.com/globomantics/agentlab/provider/sim"
	"github.com/globomantics/agentlab/shop"
	"github.com/globomantics/agentlab/tool"
)

const stressPrompt = `You are a customer support agent for Globomantics.

Tools:
- get_order_status: Check order status (requires order_id)
- check_inventory: Check product availability (requires product_id)
- process_refund: Process refund (requires order_id and reason)

Rules:
1. If order_id is not provided, ASK for it - never guess
2. Convert product names to IDs: "Blue Widget" -> "blue-widget"`

// DefaultSuite is the stress suite the demonstration runs: tool selection,
// missing-information handling, and edge cases. The implicit-refund case is
// a known weakness and is expected to fail, which is the point of running
// the suite at all.
func DefaultSuite() harness.Suite {
	return harness.Suite{
		Name:         "globomantics-support",
		SystemPrompt: stressPrompt,
		Categories: []harness.Category{
			{
				Name: "CATEGORY 1: Tool Selection",
				Cases: []harness.Case{
					{
						Name:     "Inventory check",
						Query:    "Is the blue widget in stock?",
						WantTool: "check_inventory",
						WantArgs: map[string]any{"product_id": "blue-widget"},
					},
					{
						Name:     "Order tracking",
						Query:    "Where is my order ORD-12345?",
						WantTool: "get_order_status",
						WantArgs: map[string]any{"order_id": "ORD-12345"},
					},
					{
						Name:     "Refund request",
						Query:    "I want to refund ORD-67890, it was damaged",
						WantTool: "process_refund",
						WantArgs: map[string]any{"order_id": "ORD-67890"},
					},
				},
			},
			{
				Name: "CATEGORY 2: Missing Information Handling",
				Cases: []harness.Case{
					{
						Name:              "No order ID",
						Query:             "I want to return my order",
						WantClarification: true,
					},
					{
						Name:              "No product",
						Query:             "Check if it's in stock",
						WantClarification: true,
					},
				},
			},
			{
				Name: "CATEGORY 3: Edge Cases",
				Cases: []harness.Case{
					{
						Name:     "Terse query",
						Query:    "blue widget stock?",
						WantTool: "check_inventory",
						WantArgs: map[string]any{"product_id": "blue-widget"},
					},
					{
						Name:     "Natural phrasing",
						Query:    "Do you have red gadgets available?",
						WantTool: "check_inventory",
						WantArgs: map[string]any{"product_id": "red-gadget"},
					},
					{
						Name:     "Implicit refund",
						Query:    "Refund the blue widget I bought last week",
						WantTool: "process_refund",
					},
				},
			},
		},
	}
}

// StressTesting runs the default stress suite against the simulated model
// and prints the per-case results and summary.
func StressTesting(ctx context.Context, c *Console) error {
	return RunSuite(ctx, c, DefaultSuite(), nil)
}

// RunSuite runs a stress suite and narrates it category by category.
func RunSuite(ctx context.Context, c *Console, suite harness.Suite, logger *zap.Logger) error {
	c.Banner("DEMO: Stress Testing Agent Behavior")
	c.Println("\nThis demo runs automated tests to verify agent reliability.")

	backend := shop.NewBackend()
	registry := tool.NewRegistry().Add(shop.Tools(backend)...)

	runner := &harness.Runner{
		Provider:     sim.New(),
		Tools:        registry.Tools(),
		SystemPrompt: suite.SystemPrompt,
		Logger:       logger,
	}

	report := &harness.Report{Suite: suite.Name}
	for _, category := range suite.Categories {
		c.Pause(fmt.Sprintf("[Press Enter to run %s...]", category.Name))
		c.Section(category.Name)

		// Categories run one at a time so the narration can keep pace.
		partial, err := runner.Run(ctx, harness.Suite{
			Name:         suite.Name,
			SystemPrompt: suite.SystemPrompt,
			Categories:   []harness.Category{category},
		})
		if err != nil {
			return fmt.Errorf("stress suite %q: %w", suite.Name, err)
		}

		results := partial.Categories[0]
		for _, result := range results.Results {
			printCaseResult(c, result)
		}
		report.Categories = append(report.Categories, results)
	}

	c.Banner("TEST SUMMARY")
	c.Printf("\n  Total: %d\n", report.Total())
	c.Printf("  Passed: %d\n", report.Passed())
	c.Printf("  Failed: %d\n", report.Failed())
	c.Printf("  Pass Rate: %.0f%%\n", report.PassRate()*100)
	return nil
}

func printCaseResult(c *Console, result harness.CaseResult) {
	status := "PASS"
	if !result.Passed {
		status = "FAIL"
	}
	c.Printf("\n  %s: %s\n", result.Case.Name, status)
	c.Printf("    Query: %q\n", result.Case.Query)
	c.Printf("    Expected: %s\n", expectation(result.Case))

	switch {
	case result.Err != nil:
		c.Printf("    Actual: error: %v\n", result.Err)
	case result.ActualTool != "":
		c.Printf("    Actual: %s(%s)\n", result.ActualTool, compactJSON(result.ActualArgs))
	default:
		c.Printf("    Actual: [No tool] %s\n", truncate(result.ActualText, 60))
	}
}

// expectation renders what a case wants in one line.
func expectation(cs harness.Case) string {
	if cs.WantClarification {
		return "Should ask for clarification (no tool)"
	}
	if len(cs.WantArgs) == 0 {
		return cs.WantTool
	}
	return fmt.Sprintf("%s(%s)", cs.WantTool, compactJSON(cs.WantArgs))
}

func compactJSON(m map[string]any) string {
	data, err := json.Marshal(m)
	if err != nil {
		return fmt.Sprint(m)
	}
	return string(data)
}
