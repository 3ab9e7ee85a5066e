package retry

import (
	"strings"

	ai "github.com/globomantics/agentlab"
)

// transientPatterns are error message fragments that indicate a transient
// failure when the error carries no category of its own.
var transientPatterns = []string{
	"timeout",
	"timed out",
	"rate limit",
	"too many requests",
	"temporarily unavailable",
	"service unavailable",
	"connection reset",
	"connection refused",
}

// IsTransient reports whether an error is worth retrying.
//
// Categorized errors are authoritative: a permanent or user-input category
// is never retried, regardless of what the message says. For plain errors
// a conservative message heuristic is applied.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}

	if ai.IsTransient(err) {
		return true
	}
	if ai.IsPermanent(err) || ai.IsUserInput(err) {
		return false
	}

	msg := strings.ToLower(err.Error())
	for _, pattern := range transientPatterns {
		if strings.Contains(msg, pattern) {
			return true
		}
	}

	return false
}
