package workflow

import (
	"context"
	"fmt"
	"time"

	"go-signalist/pkg/logger"
)

// RetryPolicy controls how a named step is retried. The zero value surfaces
// the first failure to the caller.
type RetryPolicy struct {
	MaxAttempts int
	Interval    time.Duration
}

// NoRetry runs a step exactly once.
var NoRetry = RetryPolicy{MaxAttempts: 1}

// Runner executes named workflow steps under per-step retry policies. Step
// outputs travel through return values, keeping every step's effect
// step-scoped so a retried step never sees a half-written neighbor.
type Runner struct {
	logger        *logger.Logger
	defaultPolicy RetryPolicy
	policies      map[string]RetryPolicy
}

// NewRunner creates a Runner with a default policy and optional per-step
// overrides keyed by step name.
func NewRunner(log *logger.Logger, defaultPolicy RetryPolicy, overrides map[string]RetryPolicy) *Runner {
	if defaultPolicy.MaxAttempts < 1 {
		defaultPolicy.MaxAttempts = 1
	}
	return &Runner{
		logger:        log,
		defaultPolicy: defaultPolicy,
		policies:      overrides,
	}
}

func (r *Runner) policy(name string) RetryPolicy {
	if p, ok := r.policies[name]; ok {
		if p.MaxAttempts < 1 {
			p.MaxAttempts = 1
		}
		return p
	}
	return r.defaultPolicy
}

// Do executes a named step under the runner's policy for that name. The step
// function must be safe to re-run, attempts beyond the first only happen
// after the previous one failed.
func Do[T any](ctx context.Context, r *Runner, name string, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	policy := r.policy(name)

	var lastErr error
	for attempt := 1; attempt <= policy.MaxAttempts; attempt++ {
		out, err := fn(ctx)
		if err == nil {
			return out, nil
		}
		lastErr = err

		r.logger.Warn("Workflow step failed",
			logger.StringField("step", name),
			logger.IntField("attempt", attempt),
			logger.IntField("max_attempts", policy.MaxAttempts),
			logger.ErrorField(err))

		if attempt == policy.MaxAttempts {
			break
		}
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case <-time.After(policy.Interval):
		}
		// A zero Interval leaves both select cases ready at once, so check
		// again before re-running the step.
		if err := ctx.Err(); err != nil {
			return zero, err
		}
	}

	return zero, fmt.Errorf("step %s failed: %w", name, lastErr)
}
