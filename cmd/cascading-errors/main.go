// Command cascading-errors demonstrates how one tool error propagates
// through a multi-step agent task.
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

	if err := demos.CascadingErrors(ctx, console); err != nil {
		fmt.Fprintf(os.Stderr, "cascading-errors: %v\n", err)
		os.Exit(1)
	}
}
