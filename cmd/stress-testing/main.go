// Command stress-testing runs the automated reliability suite against the
// simulated support agent.
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

	if err := demos.StressTesting(ctx, console); err != nil {
		fmt.Fprintf(os.Stderr, "stress-testing: %v\n", err)
		os.Exit(1)
	}
}
