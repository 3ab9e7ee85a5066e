// Package store keeps per-run conversation history for agent runs. History
// lives only for the duration of a run; nothing is persisted.
package store

import (
	"sync"

	ai "github.com/globomantics/agentlab"
)

// History is an append-only message log. It is safe for concurrent use.
type History struct {
	mu       sync.RWMutex
	messages []ai.Message
}

// NewHistory creates a History seeded with the given messages.
// The input slice is copied, so later appends never mutate the caller's slice.
func NewHistory(messages ...ai.Message) *History {
	h := &History{}
	if len(messages) > 0 {
		h.messages = make([]ai.Message, len(messages))
		copy(h.messages, messages)
	}
	return h
}

// Append adds messages to the history.
func (h *History) Append(msgs ...ai.Message) {
	if len(msgs) == 0 {
		return
	}
	h.mu.Lock()
	defer h.mu.Unlock()
	h.messages = append(h.messages, msgs...)
}

// Messages returns a copy of all messages.
func (h *History) Messages() []ai.Message {
	h.mu.RLock()
	defer h.mu.RUnlock()
	result := make([]ai.Message, len(h.messages))
	copy(result, h.messages)
	return result
}

// Len returns the number of messages.
func (h *History) Len() int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.messages)
}

// Last returns the most recent message, or false when the history is empty.
func (h *History) Last() (ai.Message, bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.messages) == 0 {
		return ai.Message{}, false
	}
	return h.messages[len(h.messages)-1], true
}

// Clone creates an independent copy of the history.
func (h *History) Clone() *History {
	return NewHistory(h.Messages()...)
}
