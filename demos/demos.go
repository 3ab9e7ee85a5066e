// Package demos contains the five Globomantics agent-reliability
// demonstrations. The first two show how agents fail (wrong tool choice,
// fabricated arguments, malformed parameters, cascading errors); the last
// three show the mitigations (sharper prompts, fallback and retry logic,
// automated stress testing). Every demonstration runs against the
// deterministic simulated model, so the failures reproduce on every run.
package demos

import (
	"context"
	"encoding/json"

	ai "github.com/globomantics/agentlab"
)

// Demo is a runnable demonstration.
type Demo struct {
	// Name is the demonstration's command-line identifier.
	Name string

	// Title is the human-readable banner title.
	Title string

	// Run executes the demonstration, writing its narration to the console.
	Run func(ctx context.Context, c *Console) error
}

// All returns the demonstrations in course order.
func All() []Demo {
	return []Demo{
		{
			Name:  "failure-scenarios",
			Title: "Common Agent Failure Modes",
			Run:   FailureScenarios,
		},
		{
			Name:  "cascading-errors",
			Title: "Cascading Errors in Agent Workflows",
			Run:   CascadingErrors,
		},
		{
			Name:  "improved-prompts",
			Title: "Improving Agent Prompts",
			Run:   ImprovedPrompts,
		},
		{
			Name:  "fallback-logic",
			Title: "Fallback and Recovery Logic",
			Run:   FallbackLogic,
		},
		{
			Name:  "stress-testing",
			Title: "Stress Testing Agent Behavior",
			Run:   StressTesting,
		},
	}
}

// Get returns the demonstration with the given name.
func Get(name string) (Demo, bool) {
	for _, d := range All() {
		if d.Name == name {
			return d, true
		}
	}
	return Demo{}, false
}

// argString decodes one string argument from a tool call.
func argString(call ai.ToolCall, key string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return ""
	}
	s, _ := args[key].(string)
	return s
}
