package workflow

import (
	"context"
	"errors"
	"testing"

	"go-signalist/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRunner(t *testing.T, defaultPolicy RetryPolicy, overrides map[string]RetryPolicy) *Runner {
	t.Helper()
	log, err := logger.New("error", "json")
	require.NoError(t, err)
	return NewRunner(log, defaultPolicy, overrides)
}

func TestDo_ReturnsStepOutput(t *testing.T) {
	r := newTestRunner(t, NoRetry, nil)

	out, err := Do(context.Background(), r, "step", func(ctx context.Context) (string, error) {
		return "done", nil
	})

	require.NoError(t, err)
	assert.Equal(t, "done", out)
}

func TestDo_NoRetryByDefault(t *testing.T) {
	r := newTestRunner(t, NoRetry, nil)

	attempts := 0
	_, err := Do(context.Background(), r, "step", func(ctx context.Context) (int, error) {
		attempts++
		return 0, errors.New("boom")
	})

	require.Error(t, err)
	assert.Equal(t, 1, attempts)
	assert.Contains(t, err.Error(), "step step failed")
}

func TestDo_RetriesUpToMaxAttempts(t *testing.T) {
	r := newTestRunner(t, NoRetry, map[string]RetryPolicy{
		"flaky": {MaxAttempts: 3},
	})

	attempts := 0
	out, err := Do(context.Background(), r, "flaky", func(ctx context.Context) (string, error) {
		attempts++
		if attempts < 3 {
			return "", errors.New("transient")
		}
		return "ok", nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, "ok", out)
}

func TestDo_SurfacesLastErrorAfterExhaustion(t *testing.T) {
	r := newTestRunner(t, RetryPolicy{MaxAttempts: 2}, nil)

	sentinel := errors.New("still broken")
	attempts := 0
	_, err := Do(context.Background(), r, "step", func(ctx context.Context) (int, error) {
		attempts++
		return 0, sentinel
	})

	require.Error(t, err)
	assert.Equal(t, 2, attempts)
	assert.ErrorIs(t, err, sentinel)
}

func TestDo_StopsOnCanceledContext(t *testing.T) {
	// A zero retry interval must not let a canceled context slip through to
	// another attempt, so exercise the cancellation path repeatedly.
	r := newTestRunner(t, RetryPolicy{MaxAttempts: 5}, nil)

	for i := 0; i < 20; i++ {
		ctx, cancel := context.WithCancel(context.Background())
		attempts := 0
		_, err := Do(ctx, r, "step", func(ctx context.Context) (int, error) {
			attempts++
			cancel()
			return 0, errors.New("boom")
		})

		require.Error(t, err)
		assert.ErrorIs(t, err, context.Canceled)
		assert.Equal(t, 1, attempts)
	}
}
