package demos

import (
	"context"
	"encoding/json"
	"fmt"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/provider/sim"
	"github.com/globomantics/agentlab/retry"
	"github.com/globomantics/agentlab/shop"
	"github.com/globomantics/agentlab/tool"
)

const fallbackPrompt = `You are a customer support agent for Globomantics.
Use get_order_status for order questions and check_inventory for stock questions.
Be helpful and concise.`

// maxRetriesCode marks a transient fault that survived every retry attempt.
const maxRetriesCode = "max_retries"

// fallbackScenario scripts one backend fault for one query.
type fallbackScenario struct {
	title string
	query string
	op    shop.Op
	key   string
	code  string // empty means no fault
	times int    // fault count, negative for every call
}

// FallbackLogic shows retry with exponential backoff for transient faults
// and a user-facing fallback message for everything that still fails.
func FallbackLogic(ctx context.Context, c *Console) error {
	c.Banner("DEMO: Fallback and Recovery Logic")

	scenarios := []fallbackScenario{
		{title: "Success", query: "Where is order ORD-12345?"},
		{title: "Retryable - timeout", query: "Check order ORD-67890",
			op: shop.OpOrder, key: "ORD-67890", code: ai.CodeTimeout, times: -1},
		{title: "Retryable - rate limit", query: "Is blue-widget in stock?",
			op: shop.OpStock, key: "blue-widget", code: ai.CodeRateLimit, times: -1},
		{title: "Non-retryable - not found", query: "Where is order ORD-99999?"},
	}

	for _, scenario := range scenarios {
		c.Section("SCENARIO: " + scenario.title)
		c.Println()
		if err := runFallbackScenario(ctx, c, retry.DefaultConfig(), scenario); err != nil {
			return err
		}
		c.Pause("[Press Enter to continue...]")
	}
	return nil
}

// runFallbackScenario asks the model for a tool call, executes it under the
// retry policy, and answers either from the result or from the fallback
// table.
func runFallbackScenario(ctx context.Context, c *Console, cfg retry.Config, scenario fallbackScenario) error {
	backend := shop.NewBackend()
	registry := tool.NewRegistry().Add(shop.Tools(backend)...)

	c.Printf("USER: %s\n", scenario.query)
	if scenario.code != "" {
		backend.Faults().Fail(scenario.op, scenario.key, scenario.code, scenario.times)
		c.Printf("[Simulating: %s]\n", scenario.code)
	}

	model := sim.New()
	messages := []ai.Message{
		ai.System(fallbackPrompt),
		ai.User(scenario.query),
	}

	resp, err := model.Chat(ctx, messages, ai.WithTools(registry.Tools()))
	if err != nil {
		return fmt.Errorf("scenario %q: %w", scenario.title, err)
	}

	if len(resp.ToolCalls) == 0 {
		c.Printf("\nAgent: %s\n", resp.Content)
		return nil
	}

	call := resp.ToolCalls[0]
	c.Printf("\nCalling: %s(%s)\n", call.Name, callID(call))

	handler, ok := registry.Get(call.Name)
	if !ok {
		return fmt.Errorf("scenario %q: model called unknown tool %s", scenario.title, call.Name)
	}

	// The handler is called directly so categorized backend errors keep
	// their type through the retry loop.
	content, err := retry.DoWithEvents(ctx, cfg, func() (string, error) {
		return handler(ctx, call)
	}, retryNarrator(c))
	if err != nil {
		code, message := fallbackCause(err, cfg)
		c.Printf("\nError: %s - %s\n", code, message)
		c.Printf("\nAgent: %s\n", fallbackResponse(code))
		return nil
	}

	c.Printf("\nSuccess: %s\n", indentJSON(content))

	messages = append(messages,
		ai.Message{Role: ai.RoleAssistant, ToolCalls: resp.ToolCalls},
		ai.NewToolResultMessage(ai.ToolResult{ToolCallID: call.ID, Content: content}),
	)
	final, err := model.Chat(ctx, messages, ai.WithTools(registry.Tools()))
	if err != nil {
		return fmt.Errorf("scenario %q: %w", scenario.title, err)
	}
	c.Printf("\nAgent: %s\n", final.Content)
	return nil
}

// retryNarrator prints the retry lifecycle the way a support transcript
// would show it.
func retryNarrator(c *Console) retry.Observer {
	var lastCode string
	return func(e retry.Event) {
		switch e.Type {
		case retry.EventFailed:
			lastCode = ai.FaultCodeOf(e.Err)
		case retry.EventRetrying:
			c.Printf("  Retryable error: %s\n", lastCode)
			c.Printf("  Waiting %s before retry (attempt %d/%d)...\n", e.Delay, e.Attempt, e.MaxAttempts)
		}
	}
}

// fallbackCause maps the terminal error to a fallback code and message.
// A transient error here means every retry attempt was spent.
func fallbackCause(err error, cfg retry.Config) (code, message string) {
	if retry.IsTransient(err) {
		return maxRetriesCode, fmt.Sprintf("Failed after %d attempts", cfg.MaxAttempts)
	}
	if c := ai.FaultCodeOf(err); c != "" {
		return c, err.Error()
	}
	return "unknown", err.Error()
}

// fallbackResponse is the user-friendly answer for each failure class.
func fallbackResponse(code string) string {
	fallbacks := map[string]string{
		ai.CodeNotFound:           "I couldn't find that. Please double-check the ID and try again.",
		ai.CodeTimeout:            "Our system is running slow. Would you like me to try again?",
		ai.CodeRateLimit:          "We're experiencing high traffic. Please wait a moment.",
		ai.CodeServiceUnavailable: "Our system is temporarily unavailable. Try again in a few minutes.",
		maxRetriesCode:            "I'm having trouble accessing our systems. Let me connect you with support@globomantics.com",
	}
	if msg, ok := fallbacks[code]; ok {
		return msg
	}
	return "I encountered an issue. Please contact support@globomantics.com"
}

// callID pulls the identifying argument out of a tool call for display.
func callID(call ai.ToolCall) string {
	if id := argString(call, "order_id"); id != "" {
		return id
	}
	if id := argString(call, "product_id"); id != "" {
		return id
	}
	return call.Arguments
}

// indentJSON re-renders a JSON document with indentation, passing through
// anything that is not JSON.
func indentJSON(s string) string {
	var v any
	if err := json.Unmarshal([]byte(s), &v); err != nil {
		return s
	}
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return s
	}
	return string(out)
}
