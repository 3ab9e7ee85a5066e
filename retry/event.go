package retry

import "time"

// EventType identifies a point in the retry lifecycle.
type EventType string

const (
	// EventAttempt fires before each attempt.
	EventAttempt EventType = "attempt"

	// EventFailed fires when an attempt returns an error.
	EventFailed EventType = "failed"

	// EventRetrying fires before the backoff wait, carrying the delay.
	EventRetrying EventType = "retrying"

	// EventRecovered fires when an attempt succeeds after earlier failures.
	EventRecovered EventType = "recovered"

	// EventExhausted fires when all attempts failed.
	EventExhausted EventType = "exhausted"
)

// Event describes one step of a retried operation. The fallback-logic
// demonstration turns these into the "Waiting 2s before retry..." narration.
type Event struct {
	Type        EventType
	Attempt     int // 1-indexed
	MaxAttempts int
	Delay       time.Duration // set for EventRetrying
	Err         error         // set for EventFailed and EventExhausted
}

// Observer receives retry events. A nil Observer is ignored.
type Observer func(Event)

func (o Observer) emit(e Event) {
	if o != nil {
		o(e)
	}
}
