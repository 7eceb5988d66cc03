package retry

import (
	"context"
	"errors"
	"fmt"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"speech2text/internal/app/model"
)

type timeoutError struct{}

func (timeoutError) Error() string { return "request timed out" }
func (timeoutError) Timeout() bool { return true }

type sleepRecorder struct {
	waits []time.Duration
}

func (s *sleepRecorder) sleep(d time.Duration) {
	s.waits = append(s.waits, d)
}

func TestLinearBackoff(t *testing.T) {
	backoff := LinearBackoff(5 * time.Second)

	assert.Equal(t, 5*time.Second, backoff(1))
	assert.Equal(t, 10*time.Second, backoff(2))
	assert.Equal(t, 15*time.Second, backoff(3))
}

func TestExecuteSucceedsAfterTransientFailures(t *testing.T) {
	sleeper := &sleepRecorder{}
	var observed []Attempt
	executor := NewExecutor(
		Policy{MaxAttempts: 3, Backoff: LinearBackoff(time.Second)},
		zap.NewNop(),
		WithSleeper(sleeper.sleep),
		WithObserver(func(a Attempt) { observed = append(observed, a) }),
	)

	calls := 0
	want := model.Diarized{Text: "ok"}
	result, err := executor.Execute(context.Background(), model.Window{Index: 4}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		calls++
		if calls < 3 {
			return nil, fmt.Errorf("503 service unavailable")
		}
		return want, nil
	})

	require.NoError(t, err)
	assert.Equal(t, want, result)
	assert.Equal(t, 3, calls)
	assert.Equal(t, []time.Duration{time.Second, 2 * time.Second}, sleeper.waits)

	require.Len(t, observed, 2)
	assert.Equal(t, 1, observed[0].Number)
	assert.Equal(t, 4, observed[0].Window.Index)
	assert.Equal(t, ClassTransport, observed[1].Class)
}

func TestExecuteReturnsLastErrorUnchanged(t *testing.T) {
	sleeper := &sleepRecorder{}
	executor := NewExecutor(Policy{MaxAttempts: 3, Backoff: LinearBackoff(time.Second)}, nil, WithSleeper(sleeper.sleep))

	var errs []error
	result, err := executor.Execute(context.Background(), model.Window{}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		e := fmt.Errorf("failure %d", len(errs)+1)
		errs = append(errs, e)
		return nil, e
	})

	assert.Nil(t, result)
	require.Len(t, errs, 3)
	assert.Same(t, errs[2], err)
	assert.Len(t, sleeper.waits, 2, "no wait after the final attempt")
}

func TestExecuteDoesNotRetrySuccess(t *testing.T) {
	sleeper := &sleepRecorder{}
	executor := NewExecutor(Policy{MaxAttempts: 3, Backoff: LinearBackoff(time.Second)}, nil, WithSleeper(sleeper.sleep))

	calls := 0
	result, err := executor.Execute(context.Background(), model.Window{}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		calls++
		return model.PlainText{Text: "fallback"}, nil
	})

	require.NoError(t, err)
	assert.Equal(t, model.PlainText{Text: "fallback"}, result)
	assert.Equal(t, 1, calls)
	assert.Empty(t, sleeper.waits)
}

func TestExecuteSingleAttempt(t *testing.T) {
	executor := NewExecutor(Policy{MaxAttempts: 1}, nil)

	calls := 0
	_, err := executor.Execute(context.Background(), model.Window{}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		calls++
		return nil, errors.New("boom")
	})

	assert.EqualError(t, err, "boom")
	assert.Equal(t, 1, calls)
}

func TestExecuteStopsWhenContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	core, logs := observer.New(zapcore.ErrorLevel)
	executor := NewExecutor(Policy{MaxAttempts: 5, Backoff: LinearBackoff(time.Hour)}, zap.New(core),
		WithSleeper(func(time.Duration) { cancel() }))

	calls := 0
	_, err := executor.Execute(ctx, model.Window{}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		calls++
		return nil, errors.New("connection reset")
	})

	assert.EqualError(t, err, "connection reset")
	assert.Equal(t, 1, calls)

	failed := logs.FilterMessage("transcription failed").All()
	require.Len(t, failed, 1)
	fields := failed[0].ContextMap()
	assert.Equal(t, int64(1), fields["attempts"], "reports attempts made, not the limit")
	assert.Equal(t, int64(5), fields["max_attempts"])
}

func TestExecuteLogsFailureClass(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	executor := NewExecutor(Policy{MaxAttempts: 2, Backoff: LinearBackoff(3 * time.Second)}, zap.New(core),
		WithSleeper(func(time.Duration) {}))

	_, err := executor.Execute(context.Background(), model.Window{Index: 2}, func(context.Context, model.Window) (model.TranscriptionResult, error) {
		return nil, timeoutError{}
	})
	require.Error(t, err)

	retries := logs.FilterMessage("transcription request timed out, retrying").All()
	require.Len(t, retries, 1)
	fields := retries[0].ContextMap()
	assert.Equal(t, int64(2), fields["window"])
	assert.Equal(t, int64(1), fields["attempt"])
	assert.Equal(t, 3*time.Second, fields["wait"])

	assert.Equal(t, 1, logs.FilterMessage("transcription failed").Len())
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"deadline exceeded", context.DeadlineExceeded, ClassTimeout},
		{"wrapped deadline", fmt.Errorf("window 1: %w", context.DeadlineExceeded), ClassTimeout},
		{"timeout interface", timeoutError{}, ClassTimeout},
		{"url timeout", &url.Error{Op: "Post", URL: "http://x", Err: timeoutError{}}, ClassTimeout},
		{"service error", errors.New("500 internal server error"), ClassTransport},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Classify(tt.err))
		})
	}
}
