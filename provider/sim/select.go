package sim

import (
	"strings"

	ai "github.com/globomantics/agentlab"
)

// promptRules are the behavioral levers the model reads out of the system
// prompt. Each one maps to a failure mode or its mitigation.
type promptRules struct {
	// asksForMissing: the prompt tells the model to ask for missing
	// information instead of guessing ("ASK for it - never guess").
	asksForMissing bool

	// forbidsQuestions: the prompt forbids clarifying questions
	// ("Do not ask questions"). Forces fabrication when data is missing.
	forbidsQuestions bool

	// demandsCompletion: the prompt demands every task be completed
	// ("You must complete every task"). Turns errors into cascades.
	demandsCompletion bool
}

func parseRules(system string) promptRules {
	s := strings.ToLower(system)
	return promptRules{
		asksForMissing: strings.Contains(s, "ask for it") ||
			strings.Contains(s, "never guess") ||
			strings.Contains(s, "ask, don't guess"),
		forbidsQuestions: strings.Contains(s, "do not ask") ||
			strings.Contains(s, "don't ask") ||
			strings.Contains(s, "never ask"),
		demandsCompletion: strings.Contains(s, "complete every task") ||
			strings.Contains(s, "must complete"),
	}
}

// stopwords are query tokens that carry no selection signal.
var stopwords = map[string]bool{
	"a": true, "an": true, "and": true, "are": true, "as": true, "at": true,
	"be": true, "by": true, "can": true, "could": true, "do": true,
	"does": true, "for": true, "from": true, "i": true, "if": true,
	"in": true, "is": true, "it": true, "its": true, "me": true, "my": true,
	"now": true, "of": true, "on": true, "or": true, "our": true,
	"please": true, "should": true, "so": true, "that": true, "the": true,
	"this": true, "to": true, "was": true, "we": true, "what": true,
	"when": true, "where": true, "which": true, "who": true, "why": true,
	"will": true, "with": true, "would": true, "you": true, "your": true,
}

// tokenize splits text into lowercase signal tokens. Hyphenated product IDs
// stay whole so "blue-widget" matches as one token.
func tokenize(text string) []string {
	var tokens []string
	var b strings.Builder

	flush := func() {
		if b.Len() == 0 {
			return
		}
		tok := strings.Trim(b.String(), "-")
		b.Reset()
		if tok == "" || tok == "x" || stopwords[tok] {
			return
		}
		tokens = append(tokens, tok)
	}

	for _, r := range strings.ToLower(text) {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-':
			b.WriteRune(r)
		default:
			flush()
		}
	}
	flush()
	return tokens
}

func tokenSet(text string) map[string]bool {
	set := make(map[string]bool)
	for _, tok := range tokenize(text) {
		set[tok] = true
	}
	return set
}

// toolSignal is a tool description broken into scoring segments.
type toolSignal struct {
	name    map[string]bool
	desc    map[string]bool
	useWhen map[string]bool
	doNot   map[string]bool
}

func parseSignal(t ai.Tool) toolSignal {
	sig := toolSignal{
		name: tokenSet(strings.ReplaceAll(t.Name, "_", " ")),
		desc: tokenSet(t.Description),
	}

	lower := strings.ToLower(t.Description)
	if i := strings.Index(lower, "use when"); i >= 0 {
		clause := t.Description[i+len("use when"):]
		if j := strings.Index(strings.ToLower(clause), "do not use"); j >= 0 {
			clause = clause[:j]
		}
		sig.useWhen = tokenSet(clause)
	}
	if i := strings.Index(lower, "do not use"); i >= 0 {
		sig.doNot = tokenSet(t.Description[i+len("do not use"):])
	}
	return sig
}

// selectTool scores each tool against the query and returns the index of
// the best match. Ties resolve to the earliest tool, which is exactly how
// near-identical descriptions produce a reproducible planning failure.
func selectTool(query string, tools []ai.Tool) int {
	queryTokens := tokenSet(query)

	best, bestScore := 0, -1 << 30
	for i, t := range tools {
		sig := parseSignal(t)

		score := 0
		for tok := range queryTokens {
			if sig.useWhen[tok] {
				score += 3
			}
			if sig.name[tok] {
				score += 2
			}
			if sig.desc[tok] {
				score++
			}
			if sig.doNot[tok] {
				score -= 2
			}
		}
		if score > bestScore {
			best, bestScore = i, score
		}
	}
	return best
}

// wantsRefund reports whether the user is asking for their money back.
func wantsRefund(query string) bool {
	s := strings.ToLower(query)
	return strings.Contains(s, "refund") ||
		strings.Contains(s, "money back") ||
		strings.Contains(s, "return my")
}

// isRefundTool and isLookupCall classify tools by naming convention, the
// only signal a real model would have.
func isRefundTool(t ai.Tool) bool {
	return strings.Contains(strings.ToLower(t.Name), "refund")
}

func isLookupCall(call ai.ToolCall) bool {
	name := strings.ToLower(call.Name)
	return strings.Contains(name, "order") && !strings.Contains(name, "refund")
}

// refundNeedsLookup reports whether the tool is a refund whose required
// amount should come from an order record rather than from memory.
func refundNeedsLookup(t ai.Tool) bool {
	if !isRefundTool(t) {
		return false
	}
	spec := parseParams(t)
	return spec.isRequired("amount")
}

// findLookupTool returns the index of an order-lookup tool, skipping the
// given index.
func findLookupTool(tools []ai.Tool, skip int) (int, bool) {
	for i, t := range tools {
		if i == skip {
			continue
		}
		name := strings.ToLower(t.Name)
		if strings.Contains(name, "order") && !isRefundTool(t) {
			return i, true
		}
	}
	return 0, false
}

func findRefundTool(tools []ai.Tool) (int, bool) {
	for i, t := range tools {
		if isRefundTool(t) {
			return i, true
		}
	}
	return 0, false
}

// refundAlreadyDone reports whether a refund call already succeeded in this
// conversation.
func refundAlreadyDone(conv conversation) bool {
	for _, ex := range conv.exchanges {
		if strings.Contains(strings.ToLower(ex.call.Name), "refund") && !ex.result.IsError {
			return true
		}
	}
	return false
}
