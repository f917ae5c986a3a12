package app

import (
	"context"
	"time"

	"divlab/internal"
	"divlab/ports"
)

// SettlementWaiter polls experiment status on a fixed cadence until the
// collaborator reports inactivity or the wait budget elapses. The
// collaborator exposes no push mechanism, so this is a bounded spin-poll.
type SettlementWaiter struct {
	collaborator ports.CollaboratorPort
	pollInterval time.Duration
	maxWait      time.Duration
	logger       *internal.Logger
}

// NewSettlementWaiter creates a waiter with the given cadence and ceiling.
func NewSettlementWaiter(collaborator ports.CollaboratorPort, pollInterval, maxWait time.Duration, logger *internal.Logger) *SettlementWaiter {
	if logger == nil {
		logger = internal.DefaultLogger
	}
	return &SettlementWaiter{
		collaborator: collaborator,
		pollInterval: pollInterval,
		maxWait:      maxWait,
		logger:       logger,
	}
}

// Wait blocks until the collaborator reports active=false, returning true,
// or until the budget elapses, returning false. A false return is not fatal:
// the collaborator may still have produced a usable result. Status read
// failures are logged and count against the budget like any other poll.
func (w *SettlementWaiter) Wait(ctx context.Context) bool {
	deadline := time.Now().Add(w.maxWait)

	for time.Now().Before(deadline) {
		status, err := w.collaborator.Status(ctx)
		if err != nil {
			w.logger.Warn("status poll failed: %v", err)
		} else if !status.Active {
			return true
		} else if status.TicksElapsed != nil {
			w.logger.Debug("still settling: %d ticks elapsed", *status.TicksElapsed)
		}

		select {
		case <-ctx.Done():
			return false
		case <-time.After(w.pollInterval):
		}
	}
	return false
}
