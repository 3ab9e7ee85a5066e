// Command fallback-logic demonstrates retry with exponential backoff and
// user-facing fallback responses for tool failures.
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

	if err := demos.FallbackLogic(ctx, console); err != nil {
		fmt.Fprintf(os.Stderr, "fallback-logic: %v\n", err)
		os.Exit(1)
	}
}
