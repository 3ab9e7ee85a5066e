package harness

import (
	"context"
	"encoding/json"
	"fmt"

	"go.uber.org/zap"

	ai "github.com/globomantics/agentlab"
)

// Runner executes stress suites against a provider.
type Runner struct {
	// Provider is the model under test.
	Provider ai.ChatProvider

	// Tools are offered to the model on every case.
	Tools []ai.Tool

	// SystemPrompt is used when the suite does not carry its own.
	SystemPrompt string

	// Logger receives per-case results. Nil means no logging.
	Logger *zap.Logger
}

// Run executes every case in the suite and returns the report.
// A provider error fails the case, not the run; the context aborts the run.
func (r *Runner) Run(ctx context.Context, suite Suite) (*Report, error) {
	if err := suite.Validate(); err != nil {
		return nil, err
	}

	logger := r.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	system := suite.SystemPrompt
	if system == "" {
		system = r.SystemPrompt
	}

	report := &Report{Suite: suite.Name}
	for _, cat := range suite.Categories {
		catResult := CategoryResult{Name: cat.Name}
		for _, c := range cat.Cases {
			if err := ctx.Err(); err != nil {
				return nil, fmt.Errorf("harness: suite %q aborted: %w", suite.Name, err)
			}

			result := r.runCase(ctx, system, c)
			catResult.Results = append(catResult.Results, result)

			logger.Info("case finished",
				zap.String("category", cat.Name),
				zap.String("case", c.Name),
				zap.Bool("passed", result.Passed),
				zap.String("tool", result.ActualTool),
			)
		}
		report.Categories = append(report.Categories, catResult)
	}
	return report, nil
}

func (r *Runner) runCase(ctx context.Context, system string, c Case) CaseResult {
	result := CaseResult{Case: c}

	messages := []ai.Message{ai.User(c.Query)}
	if system != "" {
		messages = []ai.Message{ai.System(system), ai.User(c.Query)}
	}

	resp, err := r.Provider.Chat(ctx, messages, ai.WithTools(r.Tools))
	if err != nil {
		result.Err = err
		return result
	}

	if len(resp.ToolCalls) == 0 {
		result.ActualText = resp.Content
		result.Passed = c.WantClarification
		return result
	}

	call := resp.ToolCalls[0]
	result.ActualTool = call.Name
	if err := json.Unmarshal([]byte(call.Arguments), &result.ActualArgs); err != nil {
		result.Err = fmt.Errorf("harness: case %q returned malformed arguments: %w", c.Name, err)
		return result
	}

	if c.WantClarification {
		return result // expected a question, got a tool call
	}
	result.Passed = call.Name == c.WantTool && argsMatch(c.WantArgs, result.ActualArgs)
	return result
}

// argsMatch checks that every expected key is present with the expected
// value. Values are compared by their printed form, so YAML numbers match
// JSON numbers.
func argsMatch(want map[string]any, got map[string]any) bool {
	for key, wantVal := range want {
		gotVal, ok := got[key]
		if !ok {
			return false
		}
		if fmt.Sprint(wantVal) != fmt.Sprint(gotVal) {
			return false
		}
	}
	return true
}
