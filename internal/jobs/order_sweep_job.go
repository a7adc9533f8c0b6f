package jobs

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"tracking/internal/core/application/usecases/commands"

	"github.com/robfig/cron/v3"
)

// DefaultSweepInterval is how often the sweep runs when no interval is configured.
const DefaultSweepInterval = 4 * time.Second

type sweepHandler interface {
	Handle(ctx context.Context, cmd commands.SweepOrdersCommand) (commands.SweepReport, error)
}

// OrderSweepJob advances every open order one step on a fixed interval.
// A tick that is still running when the next one fires makes the next one skip.
type OrderSweepJob struct {
	handler  sweepHandler
	interval time.Duration
	cron     *cron.Cron
	logger   *slog.Logger

	ctx    context.Context
	cancel context.CancelFunc
}

// NewOrderSweepJob creates the sweep job. A non-positive interval falls back
// to DefaultSweepInterval.
func NewOrderSweepJob(handler sweepHandler, interval time.Duration, logger *slog.Logger) *OrderSweepJob {
	if interval <= 0 {
		interval = DefaultSweepInterval
	}
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "order_sweep_job")

	ctx, cancel := context.WithCancel(context.Background())
	return &OrderSweepJob{
		handler:  handler,
		interval: interval,
		cron: cron.New(
			cron.WithSeconds(),
			cron.WithChain(cron.SkipIfStillRunning(cron.DiscardLogger)),
		),
		logger: logger,
		ctx:    ctx,
		cancel: cancel,
	}
}

// Start schedules the sweep.
func (j *OrderSweepJob) Start() error {
	_, err := j.cron.AddFunc(fmt.Sprintf("@every %s", j.interval), func() {
		_, _ = j.RunOnce(j.ctx)
	})
	if err != nil {
		return err
	}

	j.cron.Start()
	j.logger.InfoContext(j.ctx, "Order sweep job started", "interval", j.interval.String())
	return nil
}

// RunOnce performs a single sweep tick and logs its outcome.
func (j *OrderSweepJob) RunOnce(ctx context.Context) (commands.SweepReport, error) {
	report, err := j.handler.Handle(ctx, commands.NewSweepOrdersCommand())
	switch {
	case errors.Is(err, context.Canceled):
		j.logger.InfoContext(ctx, "Order sweep interrupted", "processed", report.Processed)
	case err != nil:
		j.logger.ErrorContext(ctx, "Order sweep failed", "error", err)
	case report.Processed > 0:
		j.logger.DebugContext(ctx, "Order sweep finished",
			"processed", report.Processed,
			"advanced", report.Advanced,
			"failed", report.Failed,
		)
	}
	return report, err
}

// Stop cancels a running tick between orders and waits for it to return.
func (j *OrderSweepJob) Stop() {
	stopped := j.cron.Stop()
	j.cancel()
	<-stopped.Done()
	j.logger.InfoContext(context.Background(), "Order sweep job stopped")
}
