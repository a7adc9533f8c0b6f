// Package jobs provides scheduled background tasks for the tracking service.
//
// Jobs are built on github.com/robfig/cron/v3.
//
// # Available Jobs
//
// OrderSweepJob is the sweep-mode driver. Every interval (4s by default) it
// runs SweepOrdersCommandHandler, which moves each open order one step:
// pending orders get confirmed, confirmed ones start preparing, preparing
// ones are handed to a free courier and picked-up ones travel toward the
// customer until they are delivered.
//
// # Usage
//
//	jobManager := jobs.NewJobManager(sweepHandler, 4*time.Second, true, logger)
//	if err := jobManager.StartAll(); err != nil {
//		log.Fatal("Failed to start jobs:", err)
//	}
//	defer jobManager.StopAll()
//
// # Scheduling
//
// Ticks never overlap: if a sweep is still running when the next one fires,
// the next one is skipped. StopAll cancels the running sweep between two
// orders and waits for it, so no step is left half written.
package jobs
