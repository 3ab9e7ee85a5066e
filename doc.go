// Package agentlab provides the core types for the Globomantics agent
// reliability lab: messages, tools, chat options, and a categorized error
// taxonomy shared by every demonstration.
//
// The lab illustrates how AI agents fail (planning, grounding, invocation,
// cascading errors) and how to make them reliable (better prompts, fallback
// logic, stress testing). Everything runs offline: the model is a
// deterministic simulation and tool calls are served by an in-memory shop
// backend, so each failure can be reproduced and tested.
//
// # Core Interfaces
//
//   - [ChatProvider]: send a conversation, receive a response (text or tool calls)
//   - [CategorizedError]: classify failures as transient, permanent, or user input
//
// The [github.com/globomantics/agentlab/provider/sim] package supplies the
// simulated model, and [github.com/globomantics/agentlab/agent] runs the
// tool-calling loop against it.
//
// # Basic Usage
//
// Send a conversation to the simulated model:
//
//	model := sim.New()
//
//	messages := []agentlab.Message{
//	    agentlab.System("You are a Globomantics support agent."),
//	    agentlab.User("Where is my order ORD-12345?"),
//	}
//
//	resp, err := model.Chat(ctx, messages)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(resp.Content)
//
// # Tool Calling
//
// Offer tools and inspect the calls the model requests:
//
//	tools := []agentlab.Tool{
//	    {
//	        Name:        "get_order_status",
//	        Description: "Look up the current status of a customer order",
//	        Parameters: schema.Object().
//	            Field("order_id", schema.String().Desc("Order ID (format: ORD-XXX)").Required()).
//	            MustBuild(),
//	    },
//	}
//
//	resp, err := model.Chat(ctx, messages, agentlab.WithTools(tools))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for _, call := range resp.ToolCalls {
//	    fmt.Printf("Tool: %s, Args: %s\n", call.Name, call.Arguments)
//	}
//
// # Error Categories
//
// The shop backend raises categorized errors; retry and fallback decisions
// key off the category and fault code:
//
//	_, err := backend.Order("ORD-99999")
//	if agentlab.IsTransient(err) {
//	    // worth retrying
//	}
//	switch agentlab.FaultCodeOf(err) {
//	case agentlab.CodeNotFound:
//	    // apologize, ask the customer to check the ID
//	case agentlab.CodeRateLimit:
//	    // back off before the next attempt
//	}
//
// # Higher-Level Packages
//
//   - [github.com/globomantics/agentlab/agent]: the tool-calling loop
//   - [github.com/globomantics/agentlab/tool]: tool registry and typed handlers
//   - [github.com/globomantics/agentlab/schema]: fluent JSON-Schema builders
//   - [github.com/globomantics/agentlab/retry]: bounded retry with observable events
//   - [github.com/globomantics/agentlab/shop]: the simulated e-commerce backend
//   - [github.com/globomantics/agentlab/harness]: stress-test scenario runner
//   - [github.com/globomantics/agentlab/demos]: the five course demonstrations
package agentlab
