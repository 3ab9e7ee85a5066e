package retry

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	ai "github.com/globomantics/agentlab"
)

func fastConfig() Config {
	return Config{
		MaxAttempts:  3,
		InitialDelay: time.Millisecond,
		MaxDelay:     10 * time.Millisecond,
		Multiplier:   2.0,
	}
}

func TestDoSuccess(t *testing.T) {
	callCount := 0

	result, err := Do(context.Background(), DefaultConfig(), func() (string, error) {
		callCount++
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 1, callCount)
}

func TestDoRetryOnTransientError(t *testing.T) {
	callCount := 0
	transientErr := ai.NewTransientError("request timed out", ai.CodeTimeout, nil)

	result, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		if callCount < 3 {
			return "", transientErr
		}
		return "success", nil
	})

	assert.NoError(t, err)
	assert.Equal(t, "success", result)
	assert.Equal(t, 3, callCount)
}

func TestDoNoRetryOnPermanentError(t *testing.T) {
	callCount := 0
	permanentErr := ai.NewPermanentError("order ORD-99999 not found", ai.CodeNotFound, nil)

	_, err := Do(context.Background(), DefaultConfig(), func() (string, error) {
		callCount++
		return "", permanentErr
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
	assert.True(t, ai.IsPermanent(err))
}

func TestDoExhaustsRetries(t *testing.T) {
	callCount := 0
	transientErr := ai.NewTransientError("too many requests", ai.CodeRateLimit, nil)

	_, err := Do(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		return "", transientErr
	})

	assert.Error(t, err)
	assert.Equal(t, transientErr, err)
	assert.Equal(t, 3, callCount)
}

func TestDoRespectsContextCancellation(t *testing.T) {
	cfg := Config{
		MaxAttempts:  10,
		InitialDelay: time.Second,
		MaxDelay:     time.Second,
		Multiplier:   1.0,
	}

	ctx, cancel := context.WithCancel(context.Background())
	callCount := 0

	go func() {
		time.Sleep(50 * time.Millisecond)
		cancel()
	}()

	_, err := Do(ctx, cfg, func() (string, error) {
		callCount++
		return "", ai.NewTransientError("request timed out", ai.CodeTimeout, nil)
	})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, callCount)
}

func TestDoWithDisabledRetry(t *testing.T) {
	callCount := 0

	_, err := Do(context.Background(), Disabled(), func() (string, error) {
		callCount++
		return "", ai.NewTransientError("request timed out", ai.CodeTimeout, nil)
	})

	assert.Error(t, err)
	assert.Equal(t, 1, callCount)
}

func TestDoWithEventsNarratesRecovery(t *testing.T) {
	callCount := 0
	var events []Event

	result, err := DoWithEvents(context.Background(), fastConfig(), func() (string, error) {
		callCount++
		if callCount < 2 {
			return "", ai.NewTransientError("service temporarily unavailable", ai.CodeServiceUnavailable, nil)
		}
		return "ok", nil
	}, func(e Event) {
		events = append(events, e)
	})

	require.NoError(t, err)
	assert.Equal(t, "ok", result)

	types := make([]EventType, len(events))
	for i, e := range events {
		types[i] = e.Type
	}
	assert.Equal(t, []EventType{EventAttempt, EventFailed, EventRetrying, EventAttempt, EventRecovered}, types)

	// The retrying event carries the first delay of the schedule.
	assert.Equal(t, time.Millisecond, events[2].Delay)
	assert.Equal(t, 1, events[2].Attempt)
	assert.Equal(t, 3, events[2].MaxAttempts)
}

func TestDoWithEventsNarratesExhaustion(t *testing.T) {
	var events []Event

	_, err := DoWithEvents(context.Background(), fastConfig(), func() (string, error) {
		return "", ai.NewTransientError("request timed out", ai.CodeTimeout, nil)
	}, func(e Event) {
		events = append(events, e)
	})

	require.Error(t, err)
	require.NotEmpty(t, events)

	last := events[len(events)-1]
	assert.Equal(t, EventExhausted, last.Type)
	assert.Equal(t, 3, last.Attempt)
	assert.Error(t, last.Err)
}

func TestDelaySchedule(t *testing.T) {
	cfg := DefaultConfig()

	assert.Equal(t, 1*time.Second, cfg.Delay(0))
	assert.Equal(t, 2*time.Second, cfg.Delay(1))
	assert.Equal(t, 4*time.Second, cfg.Delay(2))
	assert.Equal(t, 8*time.Second, cfg.Delay(3))
	// Capped at MaxDelay from here on.
	assert.Equal(t, 8*time.Second, cfg.Delay(4))
	// Negative attempts clamp to the initial delay.
	assert.Equal(t, 1*time.Second, cfg.Delay(-1))
}
