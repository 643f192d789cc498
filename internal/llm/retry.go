package llm

import (
	"context"
	"errors"
	"math"
	"math/rand/v2"
	"time"
)

// RetryProvider re-asks after transient failures with exponential backoff
// and ±20% jitter. It never waits past the caller's deadline.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
}

func WithRetry(p Provider, cfg RetryConfig) Provider {
	cfg.MaxAttempts = max(cfg.MaxAttempts, 1)
	cfg.InvalidRetries = max(cfg.InvalidRetries, 0)
	if cfg.Multiplier < 1 {
		cfg.Multiplier = 1
	}
	return &RetryProvider{inner: p, config: cfg}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	invalid := 0
	for attempt := 1; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}
		if ctx.Err() != nil {
			return nil, err
		}

		switch classify(err) {
		case failFinal:
			return nil, err
		case failInvalid:
			if invalid >= r.config.InvalidRetries {
				return nil, err
			}
			invalid++
		}
		if attempt >= r.config.MaxAttempts {
			return nil, &ErrRetriesExhausted{Attempts: attempt, Err: err}
		}

		wait := r.backoff(attempt, err)
		if deadline, ok := ctx.Deadline(); ok && time.Until(deadline) <= wait {
			return nil, &ErrRetriesExhausted{Attempts: attempt, OutOfTime: true, Err: err}
		}
		select {
		case <-ctx.Done():
			return nil, &ErrRetriesExhausted{Attempts: attempt, OutOfTime: true, Err: err}
		case <-time.After(wait):
		}
	}
}

func (r *RetryProvider) ModelID() string {
	return r.inner.ModelID()
}

// backoff is the wait before attempt+1. A provider Retry-After wins.
func (r *RetryProvider) backoff(attempt int, err error) time.Duration {
	var rl *ErrRateLimit
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter
	}

	wait := float64(r.config.InitialWait) * math.Pow(r.config.Multiplier, float64(attempt-1))
	wait = math.Min(wait, float64(r.config.MaxWait))
	wait += wait * 0.2 * (2*rand.Float64() - 1)
	return time.Duration(math.Max(wait, 0))
}
