package demos

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/globomantics/agentlab"
	"github.com/globomantics/agentlab/retry"
	"github.com/globomantics/agentlab/shop"
)

func fastRetry() retry.Config {
	return retry.Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     time.Millisecond,
		Multiplier:   1.0,
	}
}

func TestAllDemosRegistered(t *testing.T) {
	names := []string{
		"failure-scenarios",
		"cascading-errors",
		"improved-prompts",
		"fallback-logic",
		"stress-testing",
	}

	demos := All()
	require.Len(t, demos, len(names))
	for i, name := range names {
		assert.Equal(t, name, demos[i].Name)
		assert.NotNil(t, demos[i].Run)

		d, ok := Get(name)
		require.True(t, ok)
		assert.Equal(t, name, d.Name)
	}

	_, ok := Get("unknown")
	assert.False(t, ok)
}

func TestFailureScenarios(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	require.NoError(t, FailureScenarios(context.Background(), c))
	out := buf.String()

	// Scenario 1: identical descriptions make the model take the first tool.
	assert.Contains(t, out, "SCENARIO 1: Planning Failure")
	assert.Contains(t, out, "Actual: get_order_info")
	assert.Contains(t, out, "PLANNING FAILURE: Agent chose wrong tool!")

	// Scenario 2: forbidden questions force a fabricated order ID.
	assert.Contains(t, out, "SCENARIO 2: Grounding Failure")
	assert.Contains(t, out, "GROUNDING FAILURE: Agent hallucinated order_id = '12345'")

	// Scenario 3: no format hint, so the bare number goes through.
	assert.Contains(t, out, "SCENARIO 3: Invocation Failure")
	assert.Contains(t, out, "INVOCATION FAILURE: Wrong format '12345' (missing ORD- prefix)")
}

func TestCascadingErrors(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	require.NoError(t, CascadingErrors(context.Background(), c))
	out := buf.String()

	// Scenario 1: lookup first, then refund with the real amount.
	assert.Contains(t, out, `get_order({"order_id":"ORD-001"})`)
	assert.Contains(t, out, `"total":99.99`)
	assert.Contains(t, out, `"amount":99.99`)
	assert.Contains(t, out, "I've processed your refund of $99.99 for order ORD-001")

	// Scenario 2: failed lookup cascades into a refund from user claims.
	assert.Contains(t, out, `get_order({"order_id":"999"})`)
	assert.Contains(t, out, "Order 999 not found")
	assert.Contains(t, out, "^ ERROR at step 1 - watch how this cascades...")
	assert.Contains(t, out, `process_refund({"amount":50,"order_id":"999"})`)
	assert.Contains(t, out, "I've processed your refund of $50.00 for order 999")
}

func TestImprovedPrompts(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	require.NoError(t, ImprovedPrompts(context.Background(), c))
	out := buf.String()

	// Test 1: only the good config converts the product name to an ID.
	assert.Contains(t, out, `[BAD]  check_stock({"product_id":"Laptop Stand"})`)
	assert.Contains(t, out, `[GOOD] check_stock({"product_id":"laptop-stand"})`)

	// Test 2: the bad config invents an order ID, the good one asks.
	assert.Contains(t, out, `[BAD]  get_order({"order_id":"12345"})`)
	assert.Contains(t, out, "[GOOD] Text: Could you share your order ID (format: ORD-XXX)")

	assert.Contains(t, out, "KEY TAKEAWAYS")
}

func TestFallbackScenarioSuccess(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	err := runFallbackScenario(context.Background(), c, fastRetry(), fallbackScenario{
		title: "Success",
		query: "Where is order ORD-12345?",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Calling: get_order_status(ORD-12345)")
	assert.Contains(t, out, `"status": "delivered"`)
	assert.Contains(t, out, "Your order ORD-12345 has been delivered.")
}

func TestFallbackScenarioRetryExhaustion(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	err := runFallbackScenario(context.Background(), c, fastRetry(), fallbackScenario{
		title: "Retryable - timeout",
		query: "Check order ORD-67890",
		op:    shop.OpOrder,
		key:   "ORD-67890",
		code:  ai.CodeTimeout,
		times: -1,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "[Simulating: timeout]")
	assert.Contains(t, out, "Retryable error: timeout")
	assert.Contains(t, out, "retry (attempt 1/3)")
	assert.Contains(t, out, "retry (attempt 2/3)")
	assert.Contains(t, out, "Error: max_retries - Failed after 3 attempts")
	assert.Contains(t, out, "support@globomantics.com")
}

func TestFallbackScenarioTransientRecovery(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	// Two scripted failures, then success within the three attempts.
	err := runFallbackScenario(context.Background(), c, fastRetry(), fallbackScenario{
		title: "Recovers",
		query: "Where is order ORD-12345?",
		op:    shop.OpOrder,
		key:   "ORD-12345",
		code:  ai.CodeServiceUnavailable,
		times: 2,
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Retryable error: service_unavailable")
	assert.Contains(t, out, "Your order ORD-12345 has been delivered.")
	assert.NotContains(t, out, "max_retries")
}

func TestFallbackScenarioNotFound(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	err := runFallbackScenario(context.Background(), c, fastRetry(), fallbackScenario{
		title: "Non-retryable - not found",
		query: "Where is order ORD-99999?",
	})
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, "Error: not_found - Order ORD-99999 not found")
	assert.Contains(t, out, "I couldn't find that. Please double-check the ID and try again.")
	assert.NotContains(t, out, "Retryable error")
}

func TestFallbackResponses(t *testing.T) {
	assert.Contains(t, fallbackResponse(ai.CodeTimeout), "running slow")
	assert.Contains(t, fallbackResponse(ai.CodeRateLimit), "high traffic")
	assert.Contains(t, fallbackResponse(ai.CodeServiceUnavailable), "temporarily unavailable")
	assert.Contains(t, fallbackResponse(maxRetriesCode), "support@globomantics.com")
	assert.Contains(t, fallbackResponse("weird"), "support@globomantics.com")
}

func TestStressTesting(t *testing.T) {
	var buf bytes.Buffer
	c := NewTestConsole(&buf)

	require.NoError(t, StressTesting(context.Background(), c))
	out := buf.String()

	assert.Contains(t, out, "Inventory check: PASS")
	assert.Contains(t, out, "Order tracking: PASS")
	assert.Contains(t, out, "Refund request: PASS")
	assert.Contains(t, out, "No order ID: PASS")
	assert.Contains(t, out, "No product: PASS")
	assert.Contains(t, out, "Terse query: PASS")
	assert.Contains(t, out, "Natural phrasing: PASS")

	// The implicit-refund case is the suite's known weakness: with no
	// order ID in the query, the agent asks instead of calling the tool.
	assert.Contains(t, out, "Implicit refund: FAIL")
	assert.Contains(t, out, "[No tool] Could you share your order ID")

	assert.Contains(t, out, "Total: 8")
	assert.Contains(t, out, "Passed: 7")
	assert.Contains(t, out, "Failed: 1")
	assert.Contains(t, out, "Pass Rate: 88%")
}

func TestDefaultSuiteIsValid(t *testing.T) {
	assert.NoError(t, DefaultSuite().Validate())
}
