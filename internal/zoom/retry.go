package zoom

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/zoomvault/zoomvault/internal/logging"
)

// maxAttempts is the total number of attempts per outbound call.
const maxAttempts = 3

// schedule holds the fixed waits between attempts: attempt 2 after 1s,
// attempt 3 after 3s. A provider-supplied Retry-After overrides the step.
var schedule = [maxAttempts - 1]time.Duration{time.Second, 3 * time.Second}

// nextDelay decides what to do after a failed attempt. It is a pure function
// of the attempt number (1-based) and the error classification, independent
// of any sleep mechanism, so the policy is testable without real delays.
func nextDelay(attempt int, err error) (time.Duration, bool) {
	if attempt >= maxAttempts || !retryable(err) {
		return 0, false
	}
	var rl *RateLimitError
	if errors.As(err, &rl) && rl.RetryAfter > 0 {
		return rl.RetryAfter, true
	}
	return schedule[attempt-1], true
}

// Executor wraps single outbound network calls with the retry policy.
// The sleep function is injectable so tests can use a virtual clock.
type Executor struct {
	sleep  func(ctx context.Context, d time.Duration) error
	logger *slog.Logger
}

// NewExecutor returns an Executor using real sleeps.
func NewExecutor(logger *slog.Logger) *Executor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Executor{sleep: sleepContext, logger: logger}
}

// Do runs fn, retrying per the policy. After exhausting attempts the last
// error is returned as-is; the caller decides user-facing handling.
func (e *Executor) Do(ctx context.Context, op string, fn func(context.Context) error) error {
	var lastErr error
	for attempt := 1; ; attempt++ {
		lastErr = fn(ctx)
		if lastErr == nil {
			return nil
		}
		delay, retry := nextDelay(attempt, lastErr)
		if !retry {
			return lastErr
		}
		e.logger.Debug("retrying after failure",
			logging.Operation(op),
			slog.Int(logging.KeyAttempt, attempt),
			slog.Duration("delay", delay),
			logging.Err(lastErr))
		if err := e.sleep(ctx, delay); err != nil {
			return lastErr
		}
	}
}

func sleepContext(ctx context.Context, d time.Duration) error {
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
