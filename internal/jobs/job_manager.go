package jobs

import (
	"fmt"
	"log/slog"
	"time"
)

// JobManager coordinates all scheduled jobs in the application.
type JobManager struct {
	orderSweepJob *OrderSweepJob
}

// NewJobManager creates the manager. The sweep job is only scheduled when
// enabled is true; with it off, orders move only through the advance endpoint.
func NewJobManager(
	sweepHandler sweepHandler,
	sweepInterval time.Duration,
	enabled bool,
	logger *slog.Logger,
) *JobManager {
	jm := &JobManager{}
	if enabled {
		jm.orderSweepJob = NewOrderSweepJob(sweepHandler, sweepInterval, logger)
	}
	return jm
}

// StartAll starts all scheduled jobs.
func (jm *JobManager) StartAll() error {
	if jm.orderSweepJob == nil {
		return nil
	}

	if err := jm.orderSweepJob.Start(); err != nil {
		return fmt.Errorf("failed to start order sweep job: %w", err)
	}

	return nil
}

// StopAll stops all scheduled jobs and waits for running ticks.
func (jm *JobManager) StopAll() {
	if jm.orderSweepJob != nil {
		jm.orderSweepJob.Stop()
	}
}
