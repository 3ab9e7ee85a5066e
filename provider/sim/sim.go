// Package sim implements agentlab.ChatProvider as a deterministic simulated
// support model. Its behavior is a pure function of the conversation, the
// tool schemas, and the chat options: no randomness, no network, no clock.
//
// The simulation is honest about its failure modes. Each failure the course
// demonstrates is caused by the same lever the course teaches students to
// fix: vague tool descriptions cause mis-selection, "never ask questions"
// rules cause fabricated arguments, missing format hints cause malformed
// arguments, and "complete every task" rules cause cascades. Sharpen the
// descriptions or relax the rules and the same model behaves well.
package sim

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	ai "github.com/globomantics/agentlab"
)

// Client is the simulated support model.
type Client struct {
	model string
	codec tokenCounter
}

// Option configures the simulated model.
type Option func(*Client)

// WithModel sets the model name reported in responses. Purely cosmetic.
func WithModel(name string) Option {
	return func(c *Client) {
		c.model = name
	}
}

// New creates a simulated support model.
func New(opts ...Option) *Client {
	c := &Client{
		model: "sim-support-1",
		codec: newTokenCounter(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

var _ ai.ChatProvider = (*Client)(nil)

// Chat produces the model's next turn for the given conversation.
func (c *Client) Chat(ctx context.Context, messages []ai.Message, opts ...ai.Option) (*ai.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if len(messages) == 0 {
		return nil, ai.ErrEmptyInput
	}

	options := ai.ApplyOptions(opts...)
	conv := parseConversation(messages)
	if options.SystemPrompt != "" {
		conv.system = options.SystemPrompt
	}

	var resp *ai.Response
	if len(conv.lastResults) > 0 {
		resp = c.continueAfterTools(conv, options)
	} else {
		resp = c.firstTurn(conv, options)
	}

	resp.Model = c.model
	if options.Model != "" {
		resp.Model = options.Model
	}
	resp.Usage = c.usage(messages, resp)
	return resp, nil
}

// exchange pairs a tool call with its result.
type exchange struct {
	call   ai.ToolCall
	result ai.ToolResult
}

// conversation is the parsed view of the message history.
type conversation struct {
	system      string
	query       string // last user message
	exchanges   []exchange
	lastResults []exchange // exchanges completed by the final tool message
}

func parseConversation(messages []ai.Message) conversation {
	var conv conversation
	calls := make(map[string]ai.ToolCall)

	for i, msg := range messages {
		switch msg.Role {
		case ai.RoleSystem:
			if conv.system == "" {
				conv.system = msg.Content
			}
		case ai.RoleUser:
			conv.query = msg.Content
		case ai.RoleAssistant:
			for _, call := range msg.ToolCalls {
				calls[call.ID] = call
			}
		case ai.RoleTool:
			var batch []exchange
			for _, result := range msg.ToolResults {
				ex := exchange{call: calls[result.ToolCallID], result: result}
				conv.exchanges = append(conv.exchanges, ex)
				batch = append(batch, ex)
			}
			if i == len(messages)-1 {
				conv.lastResults = batch
			}
		}
	}
	return conv
}

// firstTurn decides the model's opening move: a tool call, a clarifying
// question, or a plain reply.
func (c *Client) firstTurn(conv conversation, options *ai.Options) *ai.Response {
	if len(options.Tools) == 0 || options.ToolChoice == ai.ToolChoiceNone {
		return reply(c.smallTalk(conv))
	}

	rules := parseRules(conv.system)
	idx := selectTool(conv.query, options.Tools)
	chosen := options.Tools[idx]

	// A refund whose amount must come from the order record means looking
	// the order up first, when a lookup tool is on offer.
	if refundNeedsLookup(chosen) {
		if li, ok := findLookupTool(options.Tools, idx); ok {
			chosen = options.Tools[li]
		}
	}

	args, missing := extractArgs(conv.query, chosen, conv.system)
	if missing != "" {
		canAsk := options.ToolChoice != ai.ToolChoiceRequired && !rules.forbidsQuestions
		if canAsk && (rules.asksForMissing || paramAsksIfMissing(chosen, missing)) {
			return reply(clarifyingQuestion(chosen, missing))
		}
		args[missing] = fabricate(missing)
	}

	return callTool(chosen, args)
}

// continueAfterTools decides the model's move once tool results are in.
func (c *Client) continueAfterTools(conv conversation, options *ai.Options) *ai.Response {
	rules := parseRules(conv.system)
	last := conv.lastResults[len(conv.lastResults)-1]

	if last.result.IsError {
		if rules.demandsCompletion {
			// Press on: a completion-at-all-costs rule turns one bad
			// lookup into a refund built from the user's own claims.
			if resp, ok := c.refundFromUserClaims(conv, options); ok {
				return resp
			}
			return reply(fmt.Sprintf("Done. I ran into an issue along the way (%s) but completed what I could.", last.result.Content))
		}
		return reply(fmt.Sprintf("I wasn't able to complete that request: %s. Please double-check the details and try again, or contact support@globomantics.com.", last.result.Content))
	}

	// Successful lookup on the way to a refund: chain the refund call with
	// the amount grounded in the order record.
	if wantsRefund(conv.query) && isLookupCall(last.call) && !refundAlreadyDone(conv) {
		if ri, ok := findRefundTool(options.Tools); ok {
			t := options.Tools[ri]
			return callTool(t, refundArgsFromRecord(conv.query, t, last))
		}
	}

	return reply(composeFromResult(last))
}

// refundFromUserClaims builds the cascade step: the lookup failed, but the
// prompt demands completion, so the refund is issued from whatever the user
// said. Returns false when no refund was requested or no refund tool exists.
func (c *Client) refundFromUserClaims(conv conversation, options *ai.Options) (*ai.Response, bool) {
	last := conv.lastResults[len(conv.lastResults)-1]
	if !wantsRefund(conv.query) || !isLookupCall(last.call) {
		return nil, false
	}
	ri, ok := findRefundTool(options.Tools)
	if !ok {
		return nil, false
	}

	args := map[string]any{}
	if id := callArg(last.call, "order_id", "id"); id != "" {
		args["order_id"] = id
	} else if id, found := extractOrderID(conv.query, ""); found {
		args["order_id"] = id
	}
	if amount, found := extractAmount(conv.query); found {
		args["amount"] = amount
	}
	if reason := extractReason(conv.query); reason != "" {
		args["reason"] = reason
	}
	return callTool(options.Tools[ri], args), true
}

func (c *Client) smallTalk(conv conversation) string {
	if strings.TrimSpace(conv.query) == "" {
		return "Hello! How can I help you today?"
	}
	return "I can help with orders, inventory, and refunds. What do you need?"
}

func reply(content string) *ai.Response {
	return &ai.Response{
		Content:      content,
		FinishReason: "stop",
	}
}

func callTool(t ai.Tool, args map[string]any) *ai.Response {
	data, err := json.Marshal(args)
	if err != nil {
		data = []byte("{}")
	}
	return &ai.Response{
		FinishReason: "tool_calls",
		ToolCalls: []ai.ToolCall{{
			ID:        ai.GenerateCallID(),
			Name:      t.Name,
			Arguments: string(data),
		}},
	}
}

// callArg reads a string argument from an earlier tool call.
func callArg(call ai.ToolCall, names ...string) string {
	var args map[string]any
	if err := json.Unmarshal([]byte(call.Arguments), &args); err != nil {
		return ""
	}
	for _, name := range names {
		if v, ok := args[name].(string); ok && v != "" {
			return v
		}
	}
	return ""
}
