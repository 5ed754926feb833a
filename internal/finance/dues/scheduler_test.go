// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
TestScheduler_RejectsBadSchedule verifies a malformed cron expression fails fast.
*/
func TestScheduler_RejectsBadSchedule(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	processor := newTestProcessor(&mockRepository{}, &fakeLocker{}, &recordingObserver{})

	err := NewScheduler(processor, "every night", logger).Run(context.Background())

	assert.Error(t, err)
}

/*
TestScheduler_StopsOnCancel verifies Run returns once its context is cancelled.
*/
func TestScheduler_StopsOnCancel(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	processor := newTestProcessor(&mockRepository{}, &fakeLocker{busy: true}, &recordingObserver{})
	ctx, cancel := context.WithCancel(context.Background())

	done := make(chan error, 1)
	go func() { done <- NewScheduler(processor, "5 0 * * *", logger).Run(ctx) }()
	cancel()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("scheduler did not stop")
	}
}

/*
TestScheduler_RunOnceSkipsCancelled verifies no run starts after shutdown.
*/
func TestScheduler_RunOnceSkipsCancelled(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	observer := &recordingObserver{}
	scheduler := NewScheduler(newTestProcessor(&mockRepository{}, &fakeLocker{busy: true}, observer), "5 0 * * *", logger)
	t.Cleanup(scheduler.table.Shutdown)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	scheduler.runOnce(ctx)
	assert.Empty(t, observer.results)

	scheduler.runOnce(t.Context())
	assert.Equal(t, []string{"skipped"}, observer.results)
}
