// Package retry provides bounded retry with exponential delay for transient
// errors. It exists to power the fallback-logic demonstration: a handful of
// attempts, a predictable delay schedule, and observable events so the demo
// can narrate what is happening. It is teaching material, not infrastructure.
package retry

import (
	"math"
	"time"
)

// Config holds retry configuration parameters.
//
// There is deliberately no jitter: the demonstrations depend on a
// reproducible delay schedule (1s, 2s, 4s with the defaults).
type Config struct {
	// MaxAttempts is the maximum number of attempts (default: 3).
	// The initial request counts as attempt 1.
	MaxAttempts int

	// InitialDelay is the delay before the first retry (default: 1s).
	InitialDelay time.Duration

	// MaxDelay caps the delay between retries (default: 8s).
	MaxDelay time.Duration

	// Multiplier is the exponential delay multiplier (default: 2.0).
	Multiplier float64
}

// DefaultConfig returns the default retry configuration:
// 3 attempts, 1 second initial delay, 8 second cap, 2x multiplier.
func DefaultConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: 1 * time.Second,
		MaxDelay:     8 * time.Second,
		Multiplier:   2.0,
	}
}

// Disabled returns a configuration that disables retries (single attempt).
func Disabled() Config {
	return Config{MaxAttempts: 1}
}

// Delay calculates the delay before the retry following the given attempt
// (0-indexed). Formula: min(maxDelay, initialDelay * multiplier^attempt).
func (c Config) Delay(attempt int) time.Duration {
	if attempt < 0 {
		attempt = 0
	}

	delay := float64(c.InitialDelay) * math.Pow(c.Multiplier, float64(attempt))
	if c.MaxDelay > 0 && delay > float64(c.MaxDelay) {
		delay = float64(c.MaxDelay)
	}

	return time.Duration(delay)
}
