// Command lab is the aggregate runner for the agent reliability
// demonstrations. It can list the demos, run one by name, run the whole
// course in order, or run the stress suite from a custom YAML file.
//
// Usage:
//
//	lab list
//	lab run failure-scenarios
//	lab run stress-testing --suite my-suite.yaml
//	lab all
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/globomantics/agentlab/demos"
	"github.com/globomantics/agentlab/harness"
)

var (
	verbose   bool
	suitePath string
)

func main() {
	godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	root := &cobra.Command{
		Use:           "lab",
		Short:         "Globomantics agent reliability demonstrations",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	runCmd := &cobra.Command{
		Use:       "run <demo>",
		Short:     "Run one demonstration by name",
		Args:      cobra.ExactArgs(1),
		ValidArgs: demoNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(cmd.Context(), args[0])
		},
	}
	runCmd.Flags().StringVar(&suitePath, "suite", "", "YAML stress suite file (stress-testing only)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "List the available demonstrations",
		Run: func(cmd *cobra.Command, args []string) {
			for _, d := range demos.All() {
				fmt.Printf("  %-18s %s\n", d.Name, d.Title)
			}
		},
	}

	allCmd := &cobra.Command{
		Use:   "all",
		Short: "Run every demonstration in course order",
		RunE: func(cmd *cobra.Command, args []string) error {
			console := demos.NewConsole()
			for _, d := range demos.All() {
				if err := d.Run(cmd.Context(), console); err != nil {
					return fmt.Errorf("demo %s: %w", d.Name, err)
				}
			}
			return nil
		},
	}

	root.AddCommand(runCmd, listCmd, allCmd)

	if err := root.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "lab: %v\n", err)
		os.Exit(1)
	}
}

func runDemo(ctx context.Context, name string) error {
	console := demos.NewConsole()

	// A custom suite replaces the default one for the stress demo.
	if suitePath != "" {
		if name != "stress-testing" {
			return fmt.Errorf("--suite only applies to stress-testing")
		}
		suite, err := harness.LoadSuite(suitePath)
		if err != nil {
			return err
		}
		return demos.RunSuite(ctx, console, suite, logger())
	}

	if name == "stress-testing" {
		return demos.RunSuite(ctx, console, demos.DefaultSuite(), logger())
	}

	d, ok := demos.Get(name)
	if !ok {
		return fmt.Errorf("unknown demo %q (try 'lab list')", name)
	}
	return d.Run(ctx, console)
}

func logger() *zap.Logger {
	if !verbose {
		return nil
	}
	l, err := zap.NewDevelopment()
	if err != nil {
		return nil
	}
	return l
}

func demoNames() []string {
	var names []string
	for _, d := range demos.All() {
		names = append(names, d.Name)
	}
	return names
}
