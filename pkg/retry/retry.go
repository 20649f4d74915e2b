// Package retry runs an operation with bounded exponential backoff.
package retry

import (
	"context"
	"time"

	"code.cloudfoundry.org/clock"
	"github.com/cenkalti/backoff/v4"
)

// Policy describes how an operation is retried
type Policy struct {
	MaxAttempts int           // Total attempts including the first one
	BaseDelay   time.Duration // Wait before the second attempt
	Jitter      float64       // Randomization factor in [0, 1)
	MaxDelay    time.Duration // Upper bound for a single wait, defaults to 32 x BaseDelay
}

// Operation is one attempt. attempt starts at 1.
type Operation func(ctx context.Context, attempt int) error

// Notify is called after a failed attempt that will be retried
type Notify func(attempt int, err error, wait time.Duration)

// Permanent marks an error that must not be retried
func Permanent(err error) error {
	return backoff.Permanent(err)
}

// Do runs op until it succeeds, returns a permanent error, runs out of
// attempts, or ctx is done. It returns the number of attempts made and the
// last error.
func Do(ctx context.Context, clk clock.Clock, p Policy, op Operation, notify Notify) (int, error) {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = p.BaseDelay
	eb.RandomizationFactor = p.Jitter
	eb.Multiplier = 2
	eb.MaxInterval = p.maxDelay()
	eb.MaxElapsedTime = 0
	eb.Clock = clk

	b := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(p.MaxAttempts-1)), ctx)

	attempts := 0
	operation := func() error {
		attempts++
		return op(ctx, attempts)
	}
	onRetry := func(err error, wait time.Duration) {
		if notify != nil {
			notify(attempts, err, wait)
		}
	}

	err := backoff.RetryNotifyWithTimer(operation, b, onRetry, &clockTimer{clock: clk})
	return attempts, err
}

func (p Policy) maxDelay() time.Duration {
	if p.MaxDelay > 0 {
		return p.MaxDelay
	}
	return 32 * p.BaseDelay
}

// clockTimer lets backoff wait on an injectable clock
type clockTimer struct {
	clock clock.Clock
	timer clock.Timer
}

func (t *clockTimer) Start(d time.Duration) {
	if t.timer == nil {
		t.timer = t.clock.NewTimer(d)
		return
	}
	t.timer.Reset(d)
}

func (t *clockTimer) Stop() {
	if t.timer != nil {
		t.timer.Stop()
	}
}

func (t *clockTimer) C() <-chan time.Time {
	return t.timer.C()
}
