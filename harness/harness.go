// Package harness runs automated stress suites against a chat provider to
// measure agent reliability: does the model pick the right tool, with the
// right arguments, and does it ask instead of guessing when information is
// missing? Suites can be declared inline or loaded from YAML.
package harness

import (
	"errors"
	"fmt"
)

// Case is a single stress-test case: one query and the expected first move.
type Case struct {
	// Name identifies the case in reports.
	Name string `yaml:"name"`

	// Query is the user message sent to the model.
	Query string `yaml:"query"`

	// WantTool is the tool the model is expected to call first.
	// Empty when WantClarification is set.
	WantTool string `yaml:"want_tool,omitempty"`

	// WantArgs are argument values the tool call must contain. Only the
	// listed keys are checked; extra arguments are ignored.
	WantArgs map[string]any `yaml:"want_args,omitempty"`

	// WantClarification expects the model to ask a question instead of
	// calling any tool.
	WantClarification bool `yaml:"want_clarification,omitempty"`
}

// Category groups related cases.
type Category struct {
	Name  string `yaml:"name"`
	Cases []Case `yaml:"cases"`
}

// Suite is a named collection of categories, optionally with its own
// system prompt.
type Suite struct {
	Name         string     `yaml:"name"`
	SystemPrompt string     `yaml:"system_prompt,omitempty"`
	Categories   []Category `yaml:"categories"`
}

// Validate checks the suite for structural problems.
func (s Suite) Validate() error {
	if s.Name == "" {
		return errors.New("harness: suite name is required")
	}
	if len(s.Categories) == 0 {
		return errors.New("harness: suite has no categories")
	}
	for _, cat := range s.Categories {
		if cat.Name == "" {
			return errors.New("harness: category name is required")
		}
		if len(cat.Cases) == 0 {
			return fmt.Errorf("harness: category %q has no cases", cat.Name)
		}
		for _, c := range cat.Cases {
			if c.Name == "" {
				return fmt.Errorf("harness: category %q has a case without a name", cat.Name)
			}
			if c.Query == "" {
				return fmt.Errorf("harness: case %q has no query", c.Name)
			}
			if c.WantTool == "" && !c.WantClarification {
				return fmt.Errorf("harness: case %q expects neither a tool nor a clarification", c.Name)
			}
			if c.WantTool != "" && c.WantClarification {
				return fmt.Errorf("harness: case %q expects both a tool and a clarification", c.Name)
			}
		}
	}
	return nil
}
