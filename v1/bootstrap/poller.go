package bootstrap

import (
	"context"
	"fmt"
	"time"
)

// Probe issues a single readiness check. A nil return means ready.
type Probe func(ctx context.Context) error

// Poller repeatedly probes a health endpoint until success or until the
// attempt budget is exhausted. Spacing between probes is fixed, no backoff.
type Poller struct {
	// MaxAttempts bounds the number of probes issued.
	MaxAttempts int

	// Interval is the fixed pause between consecutive probes.
	Interval time.Duration

	log     Logger
	metrics Observer
}

// NewPoller constructs a Poller. Nil logger/metrics are replaced with no-ops.
func NewPoller(maxAttempts int, interval time.Duration, log Logger, metrics Observer) *Poller {
	if log == nil {
		log = nopLogger{}
	}
	if metrics == nil {
		metrics = nopObserver{}
	}
	return &Poller{
		MaxAttempts: maxAttempts,
		Interval:    interval,
		log:         log,
		metrics:     metrics,
	}
}

// WaitReady probes until the first success and returns at exactly that
// attempt; no further probes are issued. When all attempts fail, the last
// probe error is wrapped into the returned error.
//
// Context cancellation aborts the wait between probes.
func (p *Poller) WaitReady(ctx context.Context, name string, probe Probe) error {
	var lastErr error

	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		if err := probe(ctx); err == nil {
			p.metrics.IncrementProbeAttempts(name, "success")
			p.log.Info("engine is ready", nil, map[string]interface{}{
				"engine":  name,
				"attempt": attempt,
			})
			return nil
		} else {
			lastErr = err
			p.metrics.IncrementProbeAttempts(name, "failure")
			p.log.Debug("still waiting for engine", err, map[string]interface{}{
				"engine":  name,
				"attempt": attempt,
				"budget":  p.MaxAttempts,
			})
		}

		// No sleep after the final attempt.
		if attempt == p.MaxAttempts {
			break
		}

		timer := time.NewTimer(p.Interval)
		select {
		case <-ctx.Done():
			timer.Stop()
			return fmt.Errorf("bootstrap: readiness wait for %s canceled: %w", name, ctx.Err())
		case <-timer.C:
		}
	}

	return fmt.Errorf("bootstrap: %s did not become ready after %d attempts: %w", name, p.MaxAttempts, lastErr)
}
