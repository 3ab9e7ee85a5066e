// Package agent runs tool-calling conversation loops against a
// ChatProvider and a tool registry.
//
// The loop is deliberately simple: call the model, execute any requested
// tools one at a time, append the results, and repeat until the model
// answers in plain text or the step limit is hit. Handler errors are fed
// back to the model as error-flagged results rather than aborting the run;
// the cascading-errors demonstration is built on watching what a model does
// with one of those.
//
// # Basic Usage
//
//	registry := tool.NewRegistry().Add(shop.Tools(backend)...)
//	a := agent.New(sim.New(), registry)
//
//	result, err := a.Run(ctx, []agentlab.Message{
//	    agentlab.System("You are a Globomantics support agent."),
//	    agentlab.User("Please refund my order ORD-001, the item was damaged"),
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(result.Content())
//
// # Observing a Run
//
// RunStream exposes the loop as events for step-by-step narration:
//
//	for ev := range a.RunStream(ctx, messages) {
//	    switch ev.Type {
//	    case event.ToolCallStart:
//	        fmt.Printf("Step %d: %s(%s)\n", ev.Step, ev.ToolCall.Name, ev.ToolCall.Arguments)
//	    case event.ToolCallResult:
//	        fmt.Printf("  Result: %s\n", ev.ToolResult.Content)
//	    }
//	}
package agent
