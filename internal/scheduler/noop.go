package scheduler

import (
	"context"
	"time"
)

// Noop is a Scheduler for contexts with no live platform, such as the
// management CLI editing the state file while the daemon is stopped.
// Schedule always fails with ErrUnavailable, which callers treat as the
// documented degraded state; the daemon re-establishes handles at startup.
type Noop struct{}

// Schedule reports the scheduler as unavailable.
func (Noop) Schedule(context.Context, time.Time, Notification) (string, error) {
	return "", ErrUnavailable
}

// Cancel is a no-op: there is nothing scheduled to revoke.
func (Noop) Cancel(context.Context, string) error {
	return nil
}
