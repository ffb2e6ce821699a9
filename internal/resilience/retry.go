package resilience

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Policy controls retries with exponential backoff.
type Policy struct {
	// Attempts is the total number of tries, including the first. Values
	// below 1 are treated as 1.
	Attempts int
	// Backoff is the delay before the first retry; it doubles after each
	// retry up to MaxBackoff.
	Backoff    time.Duration
	MaxBackoff time.Duration
	// Name labels retry log lines.
	Name string
}

// DefaultPolicy returns a Policy suited to fetching small reference files.
func DefaultPolicy(name string) Policy {
	return Policy{
		Attempts:   3,
		Backoff:    250 * time.Millisecond,
		MaxBackoff: 5 * time.Second,
		Name:       name,
	}
}

// Do calls fn until it succeeds, returns a non-transient error, the attempts
// are used up, or ctx is done. The last error is returned.
func Do[T any](ctx context.Context, p Policy, fn func(ctx context.Context) (T, error)) (T, error) {
	attempts := p.Attempts
	if attempts < 1 {
		attempts = 1
	}
	delay := p.Backoff

	var zero T
	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err

		if ctx.Err() != nil || !IsTransient(err) || attempt == attempts {
			break
		}

		zap.L().Warn("resilience: retrying",
			zap.String("operation", p.Name),
			zap.Int("attempt", attempt),
			zap.Duration("delay", delay),
			zap.Error(err),
		)

		timer := time.NewTimer(delay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return zero, lastErr
		case <-timer.C:
		}

		delay *= 2
		if p.MaxBackoff > 0 && delay > p.MaxBackoff {
			delay = p.MaxBackoff
		}
	}
	return zero, lastErr
}
