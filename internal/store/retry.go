package store

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Policy bounds how often and how patiently an operation is retried.
type Policy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

var DefaultPolicy = Policy{
	MaxAttempts: 3,
	BaseDelay:   time.Second,
}

// MaxDelay caps a single backoff wait.
const MaxDelay = time.Hour

// Delay returns the wait before the attempt following attempt n (1-based).
func (p Policy) Delay(attempt int) time.Duration {
	if attempt < 1 {
		attempt = 1
	}
	if p.BaseDelay <= 0 {
		return 0
	}
	shift := attempt - 1
	if shift >= 62 || p.BaseDelay > MaxDelay>>uint(shift) {
		return MaxDelay
	}
	return p.BaseDelay << uint(shift)
}

func (p Policy) normalize() Policy {
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	if p.BaseDelay < 0 {
		p.BaseDelay = 0
	}
	return p
}

// Observer is told about every failed attempt, retried or not.
type Observer func(op string, attempt int, err *Error, willRetry bool)

// Retrier executes operations under a Policy. It holds no per-call state and
// may be shared between requests.
type Retrier struct {
	policy  Policy
	sleep   func(ctx context.Context, d time.Duration) error
	observe Observer
}

func NewRetrier(policy Policy, observer Observer) *Retrier {
	return &Retrier{
		policy:  policy.normalize(),
		sleep:   sleepContext,
		observe: observer,
	}
}

func (r *Retrier) Policy() Policy {
	return r.policy
}

// WithPolicy returns a copy of the retrier using another policy.
func (r *Retrier) WithPolicy(policy Policy) *Retrier {
	cp := *r
	cp.policy = policy.normalize()
	return &cp
}

// operation tracks one logical store call for the lifetime of a request.
type operation struct {
	name     string
	attempts int
	lastErr  *Error
}

// Retry invokes fn until it succeeds, fails with a non-retryable error, or the
// policy runs out of attempts. Invocations never overlap. Any failure is
// returned as *Error carrying the last classification.
func Retry[T any](ctx context.Context, r *Retrier, op string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if r == nil {
		r = NewRetrier(DefaultPolicy, nil)
	}
	call := &operation{name: op}

	for {
		if err := ctx.Err(); err != nil {
			return zero, call.fail(err)
		}

		call.attempts++
		result, err := fn(ctx)
		if err == nil {
			return result, nil
		}

		classified := Classify(err)
		call.lastErr = &Error{Kind: classified.Kind, Op: op, Attempts: call.attempts, Err: unwrapStoreError(err)}

		willRetry := classified.Retryable() && call.attempts < r.policy.MaxAttempts && ctx.Err() == nil
		if r.observe != nil {
			r.observe(op, call.attempts, call.lastErr, willRetry)
		}
		if !willRetry {
			if classified.Retryable() {
				zap.L().Error("store operation failed after retries",
					zap.String("op", op),
					zap.Int("attempt", call.attempts),
					zap.Stringer("kind", classified.Kind),
					zap.Error(err))
			}
			return zero, call.lastErr
		}

		delay := r.policy.Delay(call.attempts)
		zap.L().Warn("store operation failed, retrying",
			zap.String("op", op),
			zap.Int("attempt", call.attempts),
			zap.Stringer("kind", classified.Kind),
			zap.Duration("delay", delay),
			zap.Error(err))

		if err := r.sleep(ctx, delay); err != nil {
			return zero, call.lastErr
		}
	}
}

// fail reports a cancellation; the last store error wins when there is one.
func (o *operation) fail(ctxErr error) *Error {
	if o.lastErr != nil {
		return o.lastErr
	}
	return &Error{Kind: Classify(ctxErr).Kind, Op: o.name, Attempts: o.attempts, Err: ctxErr}
}

func unwrapStoreError(err error) error {
	if se, ok := err.(*Error); ok && se.Err != nil {
		return se.Err
	}
	return err
}

func sleepContext(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	timer := time.NewTimer(d)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
