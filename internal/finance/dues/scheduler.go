// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/mileusna/crontab"
)

// jobTimeout bounds a single scheduled run.
const jobTimeout = 2 * time.Minute

// Scheduler triggers the [Processor] on a cron expression.
type Scheduler struct {
	table     *crontab.Crontab
	processor *Processor
	schedule  string
	logger    *slog.Logger
}

// NewScheduler constructs a [Scheduler] for schedule (five-field cron syntax).
func NewScheduler(processor *Processor, schedule string, logger *slog.Logger) *Scheduler {
	return &Scheduler{
		table:     crontab.New(),
		processor: processor,
		schedule:  schedule,
		logger:    logger,
	}
}

/*
Run registers the dues job and blocks until context is cancelled.

Returns:
  - error: An invalid cron expression
*/
func (scheduler *Scheduler) Run(context context.Context) error {
	defer scheduler.table.Shutdown()

	err := scheduler.table.AddJob(scheduler.schedule, func() {
		scheduler.runOnce(context)
	})
	if err != nil {
		return fmt.Errorf("dues_scheduler_invalid_schedule: %q: %w", scheduler.schedule, err)
	}

	scheduler.logger.InfoContext(context, "dues_scheduler_started", slog.String("schedule", scheduler.schedule))

	<-context.Done()
	scheduler.logger.InfoContext(context, "dues_scheduler_stopped")
	return nil
}

func (scheduler *Scheduler) runOnce(parent context.Context) {
	if parent.Err() != nil {
		return
	}

	jobContext, cancel := context.WithTimeout(detached(parent), jobTimeout)
	defer cancel()

	if _, err := scheduler.processor.Run(jobContext, ""); err != nil {
		scheduler.logger.ErrorContext(jobContext, "dues_run_failed", slog.Any("error", err))
	}
}
