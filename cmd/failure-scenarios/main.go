// Command failure-scenarios demonstrates the three classic agent failure
// modes: planning, grounding, and invocation.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/globomantics/agentlab/demos"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	console := demos.NewConsole()
	demos.LoadEnv(console)

	if err := demos.FailureScenarios(ctx, console); err != nil {
		fmt.Fprintf(os.Stderr, "failure-scenarios: %v\n", err)
		os.Exit(1)
	}
}
