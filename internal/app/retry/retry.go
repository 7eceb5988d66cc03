// Package retry runs a window transcription until it succeeds or the
// attempt budget is spent.
package retry

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"speech2text/internal/app/model"
)

// Failure classes reported in logs and to observers.
const (
	ClassTimeout   = "timeout"
	ClassTransport = "transport"
)

// Policy bounds the attempts made for one window.
type Policy struct {
	// MaxAttempts is the total number of attempts, at least 1.
	MaxAttempts int
	// Backoff returns the wait after the given failed attempt (1-based).
	Backoff func(attempt int) time.Duration
}

// LinearBackoff waits base*attempt after each failed attempt.
func LinearBackoff(base time.Duration) func(int) time.Duration {
	return func(attempt int) time.Duration {
		return base * time.Duration(attempt)
	}
}

// Attempt describes one failed attempt that will be retried.
type Attempt struct {
	Window model.Window
	Number int
	Class  string
	Wait   time.Duration
	Err    error
}

// Func performs one transcription attempt for a window.
type Func func(ctx context.Context, window model.Window) (model.TranscriptionResult, error)

// Option configures an Executor.
type Option func(*Executor)

// WithSleeper overrides how backoff waits are performed (useful for tests).
func WithSleeper(sleeper func(time.Duration)) Option {
	return func(e *Executor) {
		e.sleeper = sleeper
	}
}

// WithObserver registers a callback invoked before every retry wait.
func WithObserver(observer func(Attempt)) Option {
	return func(e *Executor) {
		e.observer = observer
	}
}

// Executor retries failed attempts according to a Policy.
type Executor struct {
	policy   Policy
	logger   *zap.Logger
	sleeper  func(time.Duration)
	observer func(Attempt)
}

func NewExecutor(policy Policy, logger *zap.Logger, opts ...Option) *Executor {
	if policy.MaxAttempts < 1 {
		policy.MaxAttempts = 1
	}
	if policy.Backoff == nil {
		policy.Backoff = func(int) time.Duration { return 0 }
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	e := &Executor{policy: policy, logger: logger}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Execute calls fn until it succeeds or MaxAttempts is reached. A result
// returned without error is final, whatever its variant. When every attempt
// fails, the error of the last attempt is returned unchanged.
func (e *Executor) Execute(ctx context.Context, window model.Window, fn Func) (model.TranscriptionResult, error) {
	var lastErr error
	attempts := 0

	for attempt := 1; attempt <= e.policy.MaxAttempts; attempt++ {
		attempts = attempt
		result, err := fn(ctx, window)
		if err == nil {
			if attempt > 1 {
				e.logger.Info("transcription succeeded after retry",
					zap.Int("window", window.Index),
					zap.Int("attempt", attempt))
			}
			return result, nil
		}
		lastErr = err

		if ctx.Err() != nil || attempt == e.policy.MaxAttempts {
			break
		}

		class := Classify(err)
		wait := e.policy.Backoff(attempt)
		if class == ClassTimeout {
			e.logger.Warn("transcription request timed out, retrying",
				zap.Int("window", window.Index),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", e.policy.MaxAttempts),
				zap.Duration("wait", wait),
				zap.Error(err))
		} else {
			e.logger.Warn("transcription request failed, retrying",
				zap.Int("window", window.Index),
				zap.Int("attempt", attempt),
				zap.Int("max_attempts", e.policy.MaxAttempts),
				zap.Duration("wait", wait),
				zap.Error(err))
		}
		if e.observer != nil {
			e.observer(Attempt{Window: window, Number: attempt, Class: class, Wait: wait, Err: err})
		}

		if err := e.sleep(ctx, wait); err != nil {
			break
		}
	}

	e.logger.Error("transcription failed",
		zap.Int("window", window.Index),
		zap.Int("attempts", attempts),
		zap.Int("max_attempts", e.policy.MaxAttempts),
		zap.Error(lastErr))
	return nil, lastErr
}

func (e *Executor) sleep(ctx context.Context, delay time.Duration) error {
	if delay <= 0 {
		return ctx.Err()
	}
	if e.sleeper != nil {
		e.sleeper(delay)
		return ctx.Err()
	}
	timer := time.NewTimer(delay)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}

// Classify reports whether err is a request timeout or another failure.
func Classify(err error) string {
	if errors.Is(err, context.DeadlineExceeded) {
		return ClassTimeout
	}
	var timeout interface{ Timeout() bool }
	if errors.As(err, &timeout) && timeout.Timeout() {
		return ClassTimeout
	}
	return ClassTransport
}
