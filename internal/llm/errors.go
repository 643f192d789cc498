package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// ErrRateLimit means the provider answered 429.
type ErrRateLimit struct {
	RetryAfter time.Duration
	Err        error
}

func (e *ErrRateLimit) Error() string {
	if e.RetryAfter > 0 {
		return fmt.Sprintf("rate limited, retry after %s: %v", e.RetryAfter, e.Err)
	}
	return fmt.Sprintf("rate limited: %v", e.Err)
}

func (e *ErrRateLimit) Unwrap() error { return e.Err }

// ErrInvalidResponse means the reply did not parse or did not match the
// requested schema, e.g. a verdict without a confidence.
type ErrInvalidResponse struct {
	Content json.RawMessage
	Err     error
}

func (e *ErrInvalidResponse) Error() string {
	return fmt.Sprintf("invalid LLM response: %v", e.Err)
}

func (e *ErrInvalidResponse) Unwrap() error { return e.Err }

// ErrProviderUnavailable covers 5xx answers, transport failures and an
// exhausted mock queue.
type ErrProviderUnavailable struct {
	Err error
}

func (e *ErrProviderUnavailable) Error() string {
	if e.Err == nil {
		return "LLM provider unavailable"
	}
	return fmt.Sprintf("LLM provider unavailable: %v", e.Err)
}

func (e *ErrProviderUnavailable) Unwrap() error { return e.Err }

// ErrMaxTokensExceeded means structured output hit the token limit and was
// cut off mid-object.
type ErrMaxTokensExceeded struct {
	Content json.RawMessage
}

func (e *ErrMaxTokensExceeded) Error() string {
	return "LLM response truncated: max tokens exceeded"
}

// ErrRetriesExhausted wraps the last failure once RetryProvider stops
// asking. OutOfTime is set when the caller's deadline left no room for the
// next attempt.
type ErrRetriesExhausted struct {
	Attempts  int
	OutOfTime bool
	Err       error
}

func (e *ErrRetriesExhausted) Error() string {
	if e.OutOfTime {
		return fmt.Sprintf("no time left for another attempt after %d: %v", e.Attempts, e.Err)
	}
	return fmt.Sprintf("gave up after %d attempts: %v", e.Attempts, e.Err)
}

func (e *ErrRetriesExhausted) Unwrap() error { return e.Err }

// failureKind says how RetryProvider treats an error.
type failureKind int

const (
	failFinal     failureKind = iota // cancellation, truncation, unknown caller errors
	failTransient                    // rate limits, 5xx, transport
	failInvalid                      // off-schema reply, re-asked a bounded number of times
)

func classify(err error) failureKind {
	var (
		rl    *ErrRateLimit
		down  *ErrProviderUnavailable
		inv   *ErrInvalidResponse
		trunc *ErrMaxTokensExceeded
	)
	switch {
	case errors.As(err, &trunc):
		return failFinal
	case errors.As(err, &inv):
		return failInvalid
	case errors.As(err, &rl), errors.As(err, &down):
		return failTransient
	default:
		return failFinal
	}
}
