package llm

import (
	"context"
	"errors"
	"math/rand/v2"
	"time"

	"go.uber.org/zap"
)

// RetryProvider retries failed requests with exponential backoff.
type RetryProvider struct {
	inner  Provider
	config RetryConfig
	log    *zap.Logger

	// jitter returns a factor in [0.8, 1.2); replaced in tests.
	jitter func() float64
}

// WithRetry wraps p with retries. A nil logger is replaced by a no-op one.
func WithRetry(p Provider, cfg RetryConfig, log *zap.Logger) Provider {
	if log == nil {
		log = zap.NewNop()
	}
	return &RetryProvider{
		inner:  p,
		config: cfg,
		log:    log,
		jitter: func() float64 { return 0.8 + 0.4*rand.Float64() },
	}
}

func (r *RetryProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	attempts := max(r.config.MaxAttempts, 1)
	invalidSeen := false

	for attempt := 0; ; attempt++ {
		resp, err := r.inner.Generate(ctx, req)
		if err == nil {
			return resp, nil
		}

		var invalid *ErrInvalidResponse
		isInvalid := errors.As(err, &invalid)
		if attempt == attempts-1 || !retryable(err) || (isInvalid && invalidSeen) {
			return nil, err
		}
		invalidSeen = invalidSeen || isInvalid

		wait := r.wait(attempt, err)
		r.log.Debug("retrying llm request",
			zap.Int("attempt", attempt+1),
			zap.Duration("wait", wait),
			zap.Error(err))

		t := time.NewTimer(wait)
		select {
		case <-ctx.Done():
			t.Stop()
			return nil, ctx.Err()
		case <-t.C:
		}
	}
}

func (r *RetryProvider) ModelID() string { return r.inner.ModelID() }

func (r *RetryProvider) Name() string { return r.inner.Name() }

// retryable reports whether another attempt could succeed. Malformed
// output is retryable, but Generate allows it only one retry.
func retryable(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	var truncated *ErrMaxTokensExceeded
	if errors.As(err, &truncated) {
		return false
	}
	var unavailable *ErrProviderUnavailable
	if errors.As(err, &unavailable) {
		return !unavailable.Permanent
	}
	return true
}

// wait is the pause before the attempt after the given one. A vendor's
// Retry-After hint wins over the backoff schedule.
func (r *RetryProvider) wait(attempt int, err error) time.Duration {
	var limited *ErrRateLimit
	if errors.As(err, &limited) && limited.RetryAfter > 0 {
		return limited.RetryAfter
	}

	d := float64(r.config.InitialWait)
	for range attempt {
		d *= r.config.Multiplier
	}
	if maxWait := float64(r.config.MaxWait); maxWait > 0 && d > maxWait {
		d = maxWait
	}
	return time.Duration(d * r.jitter())
}
