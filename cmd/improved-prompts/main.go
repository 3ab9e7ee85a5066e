// Command improved-prompts compares a vague agent configuration against a
// careful one on the same queries.
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

	if err := demos.ImprovedPrompts(ctx, console); err != nil {
		fmt.Fprintf(os.Stderr, "improved-prompts: %v\n", err)
		os.Exit(1)
	}
}
