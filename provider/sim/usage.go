package sim

import (
	"github.com/tiktoken-go/tokenizer"

	ai "github.com/globomantics/agentlab"
)

// tokenCounter counts tokens for usage accounting.
type tokenCounter struct {
	codec tokenizer.Codec
}

func newTokenCounter() tokenCounter {
	// GPT-4 encoding is close enough for a simulated model; on failure the
	// 4-chars-per-token estimate keeps usage numbers plausible.
	codec, err := tokenizer.ForModel(tokenizer.GPT4)
	if err != nil {
		return tokenCounter{}
	}
	return tokenCounter{codec: codec}
}

func (tc tokenCounter) count(text string) int {
	if tc.codec == nil {
		return len(text) / 4
	}
	n, err := tc.codec.Count(text)
	if err != nil {
		return len(text) / 4
	}
	return n
}

// usage computes token usage over the rendered input and output.
func (c *Client) usage(messages []ai.Message, resp *ai.Response) ai.Usage {
	var input int
	for _, msg := range messages {
		input += c.codec.count(msg.Content)
		for _, result := range msg.ToolResults {
			input += c.codec.count(result.Content)
		}
		for _, call := range msg.ToolCalls {
			input += c.codec.count(call.Arguments)
		}
	}

	output := c.codec.count(resp.Content)
	for _, call := range resp.ToolCalls {
		output += c.codec.count(call.Name) + c.codec.count(call.Arguments)
	}

	return ai.Usage{InputTokens: input, OutputTokens: output}
}
