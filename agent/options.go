package agent

import (
	ai "github.com/globomantics/agentlab"
)

// Options contains configuration for agent execution.
type Options struct {
	// MaxSteps limits the number of agent iterations.
	// Set to 0 for unlimited (not recommended). Default is 10.
	MaxSteps int

	// ChatOptions are passed through to the ChatProvider on every call.
	ChatOptions []ai.Option
}

// Option is a functional option for configuring agent execution.
type Option func(*Options)

// WithMaxSteps sets the maximum number of agent iterations.
// Default is 10. Set to 0 for unlimited (not recommended).
func WithMaxSteps(n int) Option {
	return func(o *Options) {
		o.MaxSteps = n
	}
}

// WithChatOptions passes options through to the ChatProvider.
// These options are applied to every chat call made by the agent.
func WithChatOptions(opts ...ai.Option) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, opts...)
	}
}

// WithToolChoice is a convenience option controlling tool use on every call.
func WithToolChoice(choice ai.ToolChoice) Option {
	return func(o *Options) {
		o.ChatOptions = append(o.ChatOptions, ai.WithToolChoice(choice))
	}
}

// ApplyOptions applies functional options to an Options struct with defaults.
func ApplyOptions(opts ...Option) *Options {
	o := &Options{
		MaxSteps: 10,
	}
	for _, opt := range opts {
		opt(o)
	}
	return o
}
