// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/redis"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
)

// lockTTL bounds how long a crashed run can block the next one.
const lockTTL = 5 * time.Minute

// # Dependencies

// Locker takes the cluster-wide processor lock.
type Locker interface {
	TryLock(ctx context.Context, name string, ttl time.Duration) (redis.Unlock, error)
}

// Observer records run outcomes. Implemented by [metrics.Metrics].
type Observer interface {
	ObserveDuesRun(result string, created, overdue int64, elapsed time.Duration)
}

// # Processor

// Processor generates and ages dues.
type Processor struct {
	repository Repository
	locker     Locker
	observer   Observer
	logger     *slog.Logger
	graceDays  int
	now        func() time.Time
}

// NewProcessor constructs a dues [Processor]. Rows fall due graceDays after
// the first of their period.
func NewProcessor(repository Repository, locker Locker, observer Observer, logger *slog.Logger, graceDays int) *Processor {
	return &Processor{
		repository: repository,
		locker:     locker,
		observer:   observer,
		logger:     logger,
		graceDays:  graceDays,
		now:        time.Now,
	}
}

/*
Run bills a period and ages overdue rows once.

Description: An empty period means the current one (UTC). Lock contention
is reported as a skipped run, not an error.

Parameters:
  - context: context.Context
  - period: string (YYYY-MM, optional)

Returns:
  - *RunResult: Counts, or Skipped
  - error: Validation on a malformed period, storage failures
*/
func (processor *Processor) Run(context context.Context, period string) (*RunResult, error) {
	now := processor.now().UTC()
	if period == "" {
		period = now.Format(periodLayout)
	}
	if err := (&validate.Validator{}).Period(FieldPeriod, period).Err(); err != nil {
		return nil, err
	}

	start, err := time.Parse(periodLayout, period)
	if err != nil {
		return nil, validate.RequiredError(FieldPeriod, "Must be a period in YYYY-MM format")
	}
	result := &RunResult{Period: period, DueDate: start.AddDate(0, 0, processor.graceDays)}

	unlock, err := processor.locker.TryLock(context, constants.RedisKeyDuesLock, lockTTL)
	if err != nil {
		if !errors.Is(err, redis.ErrLockNotAcquired) {
			processor.observer.ObserveDuesRun(metrics.RunFailed, 0, 0, 0)
			return nil, fmt.Errorf("dues_processor_lock_failed: %w", err)
		}
		processor.observer.ObserveDuesRun(metrics.RunSkipped, 0, 0, 0)
		processor.logger.InfoContext(context, "dues_run_skipped",
			slog.String("period", period),
			slog.String("reason", err.Error()),
		)
		result.Skipped = true
		return result, nil
	}
	defer func() {
		if err := unlock(detached(context)); err != nil {
			processor.logger.WarnContext(context, "dues_unlock_failed", slog.Any("error", err))
		}
	}()

	started := time.Now()

	if result.Created, err = processor.repository.GeneratePending(context, period, result.DueDate, now); err != nil {
		processor.observer.ObserveDuesRun(metrics.RunFailed, 0, 0, 0)
		return nil, fmt.Errorf("dues_processor_generate_failed: %w", err)
	}

	today := now.Truncate(24 * time.Hour)
	if result.Overdue, err = processor.repository.MarkOverdue(context, today); err != nil {
		processor.observer.ObserveDuesRun(metrics.RunFailed, 0, 0, 0)
		return nil, fmt.Errorf("dues_processor_overdue_failed: %w", err)
	}

	elapsed := time.Since(started)
	processor.observer.ObserveDuesRun(metrics.RunCompleted, result.Created, result.Overdue, elapsed)
	processor.logger.InfoContext(context, "dues_run_completed",
		slog.String("period", period),
		slog.Int64("created", result.Created),
		slog.Int64("overdue", result.Overdue),
		slog.Duration("elapsed", elapsed),
	)

	return result, nil
}

// detached keeps the values of parent without its cancellation, so a run
// that timed out still releases the lock.
func detached(parent context.Context) context.Context {
	return context.WithoutCancel(parent)
}
