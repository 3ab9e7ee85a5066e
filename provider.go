package agentlab

import "context"

// ChatProvider defines the interface for chat model backends.
type ChatProvider interface {
	// Chat sends a conversation and returns a complete response.
	Chat(ctx context.Context, messages []Message, opts ...Option) (*Response, error)
}
