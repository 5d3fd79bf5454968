package fetcher

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// RetryPolicy controls how a Retrier repeats failed fetches
type RetryPolicy struct {
	// Attempts caps the total number of tries; 0 retries forever.
	Attempts int
	// Delay is the wait after the first failure, doubled after each further one.
	Delay time.Duration
	// MaxDelay bounds the backoff; 0 leaves it unbounded.
	MaxDelay time.Duration
	// AcceptEmpty returns empty bodies as successful, empty content
	// instead of retrying them.
	AcceptEmpty bool
}

// AttemptFunc observes every fetch attempt
type AttemptFunc func(pageURL string, attempt int, elapsed time.Duration, err error)

// Retrier wraps a Fetcher and retries its failures with exponential backoff
type Retrier struct {
	next      Fetcher
	policy    RetryPolicy
	onAttempt AttemptFunc
	sleep     func(ctx context.Context, d time.Duration) error
}

// NewRetrier creates a retrying fetcher around next
func NewRetrier(next Fetcher, policy RetryPolicy) *Retrier {
	return &Retrier{
		next:   next,
		policy: policy,
		sleep:  sleepContext,
	}
}

// OnAttempt registers a callback invoked after each attempt
func (r *Retrier) OnAttempt(fn AttemptFunc) *Retrier {
	r.onAttempt = fn
	return r
}

// Fetch returns the content of pageURL, retrying until success, the attempt
// cap, or cancellation of ctx
func (r *Retrier) Fetch(ctx context.Context, pageURL string) (string, error) {
	delay := r.policy.Delay

	for attempt := 1; ; attempt++ {
		start := time.Now()
		content, err := r.next.Fetch(ctx, pageURL)
		if err == nil && content == "" {
			err = ErrEmptyBody
		}
		if errors.Is(err, ErrEmptyBody) && r.policy.AcceptEmpty {
			content, err = "", nil
		}

		if r.onAttempt != nil {
			r.onAttempt(pageURL, attempt, time.Since(start), err)
		}
		if err == nil {
			return content, nil
		}

		if ctxErr := ctx.Err(); ctxErr != nil {
			return "", ctxErr
		}
		if r.policy.Attempts > 0 && attempt >= r.policy.Attempts {
			return "", fmt.Errorf("%s: %w after %d attempts: %w", pageURL, ErrRetriesExhausted, attempt, err)
		}

		logrus.WithFields(logrus.Fields{
			"url":     pageURL,
			"attempt": attempt,
			"backoff": delay,
		}).Warnf("Request failed, retrying: %v", err)

		if err := r.sleep(ctx, delay); err != nil {
			return "", err
		}
		delay = nextDelay(delay, r.policy.MaxDelay)
	}
}

// nextDelay doubles d, bounded by limit when limit > 0
func nextDelay(d, limit time.Duration) time.Duration {
	if d <= 0 {
		return 0
	}
	d *= 2
	if limit > 0 && d > limit {
		return limit
	}
	return d
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-timer.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
