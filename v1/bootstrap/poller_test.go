package bootstrap

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// countingObserver records probe outcomes for assertions.
type countingObserver struct {
	nopObserver
	success int
	failure int
}

func (o *countingObserver) IncrementProbeAttempts(_, outcome string) {
	switch outcome {
	case "success":
		o.success++
	case "failure":
		o.failure++
	}
}

func TestWaitReadyStopsAtFirstSuccess(t *testing.T) {
	obs := &countingObserver{}
	p := NewPoller(10, time.Millisecond, nil, obs)

	attempts := 0
	err := p.WaitReady(context.Background(), "test", func(ctx context.Context) error {
		attempts++
		if attempts < 3 {
			return errors.New("connection refused")
		}
		return nil
	})

	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Equal(t, 1, obs.success)
	assert.Equal(t, 2, obs.failure)
}

func TestWaitReadyExhaustsBudget(t *testing.T) {
	obs := &countingObserver{}
	p := NewPoller(4, time.Millisecond, nil, obs)

	probeErr := errors.New("connection refused")
	attempts := 0
	err := p.WaitReady(context.Background(), "test", func(ctx context.Context) error {
		attempts++
		return probeErr
	})

	require.Error(t, err)
	assert.Equal(t, 4, attempts)
	assert.Equal(t, 4, obs.failure)
	assert.ErrorIs(t, err, probeErr)
	assert.Contains(t, err.Error(), "after 4 attempts")
}

func TestWaitReadyImmediateSuccessNeedsNoInterval(t *testing.T) {
	// A long interval must not delay a run whose first probe succeeds.
	p := NewPoller(3, time.Hour, nil, nil)

	done := make(chan error, 1)
	go func() {
		done <- p.WaitReady(context.Background(), "test", func(ctx context.Context) error {
			return nil
		})
	}()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("WaitReady did not return promptly on first success")
	}
}

func TestWaitReadyHonorsCancellation(t *testing.T) {
	p := NewPoller(100, time.Hour, nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := p.WaitReady(ctx, "test", func(ctx context.Context) error {
		return errors.New("connection refused")
	})

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
}
