// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package dues

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/constants"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/redis"
)

// # Fakes

type mockRepository struct {
	mock.Mock
}

func (m *mockRepository) List(ctx context.Context, filter Filter, limit, offset int) ([]*Dues, int, error) {
	args := m.Called(ctx, filter, limit, offset)
	records, _ := args.Get(0).([]*Dues)
	return records, args.Int(1), args.Error(2)
}

func (m *mockRepository) GeneratePending(ctx context.Context, period string, dueDate, now time.Time) (int64, error) {
	args := m.Called(ctx, period, dueDate, now)
	return args.Get(0).(int64), args.Error(1)
}

func (m *mockRepository) MarkOverdue(ctx context.Context, today time.Time) (int64, error) {
	args := m.Called(ctx, today)
	return args.Get(0).(int64), args.Error(1)
}

type recordingObserver struct {
	mu      sync.Mutex
	results []string
	created int64
}

func (o *recordingObserver) ObserveDuesRun(result string, created, _ int64, _ time.Duration) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.results = append(o.results, result)
	o.created += created
}

// fakeLocker grants the lock unless busy, and counts releases.
type fakeLocker struct {
	busy     bool
	unlocked int
}

func (l *fakeLocker) TryLock(_ context.Context, name string, _ time.Duration) (redis.Unlock, error) {
	if l.busy {
		return nil, redis.ErrLockNotAcquired
	}
	return func(context.Context) error {
		l.unlocked++
		return nil
	}, nil
}

var fixedNow = time.Date(2026, 10, 14, 9, 30, 0, 0, time.UTC)

func newTestProcessor(repository Repository, locker Locker, observer Observer) *Processor {
	processor := NewProcessor(repository, locker, observer, slog.New(slog.NewTextHandler(io.Discard, nil)), 10)
	processor.now = func() time.Time { return fixedNow }
	return processor
}

/*
TestRun_CurrentPeriod verifies the default period, the due date and the ageing cut-off.
*/
func TestRun_CurrentPeriod(t *testing.T) {
	repository := &mockRepository{}
	dueDate := time.Date(2026, 10, 11, 0, 0, 0, 0, time.UTC)
	repository.On("GeneratePending", mock.Anything, "2026-10", dueDate, fixedNow).Return(int64(42), nil)
	repository.On("MarkOverdue", mock.Anything, time.Date(2026, 10, 14, 0, 0, 0, 0, time.UTC)).Return(int64(3), nil)
	locker := &fakeLocker{}
	observer := &recordingObserver{}

	result, err := newTestProcessor(repository, locker, observer).Run(context.Background(), "")

	require.NoError(t, err)
	assert.Equal(t, &RunResult{Period: "2026-10", DueDate: dueDate, Created: 42, Overdue: 3}, result)
	assert.Equal(t, []string{metrics.RunCompleted}, observer.results)
	assert.Equal(t, int64(42), observer.created)
	assert.Equal(t, 1, locker.unlocked)
}

/*
TestRun_ExplicitPeriod verifies a back-filled period uses its own due date.
*/
func TestRun_ExplicitPeriod(t *testing.T) {
	repository := &mockRepository{}
	repository.On("GeneratePending", mock.Anything, "2026-02", time.Date(2026, 2, 11, 0, 0, 0, 0, time.UTC), fixedNow).Return(int64(0), nil)
	repository.On("MarkOverdue", mock.Anything, mock.Anything).Return(int64(0), nil)

	result, err := newTestProcessor(repository, &fakeLocker{}, &recordingObserver{}).Run(context.Background(), "2026-02")

	require.NoError(t, err)
	assert.Equal(t, "2026-02", result.Period)
	repository.AssertExpectations(t)
}

/*
TestRun_MalformedPeriod verifies no lock is taken for a bad period.
*/
func TestRun_MalformedPeriod(t *testing.T) {
	locker := &fakeLocker{busy: true}
	observer := &recordingObserver{}

	_, err := newTestProcessor(&mockRepository{}, locker, observer).Run(context.Background(), "2026-13")

	assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	assert.Empty(t, observer.results)
}

/*
TestRun_LockBusyIsSkip verifies contention skips the run without touching storage.
*/
func TestRun_LockBusyIsSkip(t *testing.T) {
	repository := &mockRepository{}
	observer := &recordingObserver{}

	result, err := newTestProcessor(repository, &fakeLocker{busy: true}, observer).Run(context.Background(), "")

	require.NoError(t, err)
	assert.True(t, result.Skipped)
	assert.Equal(t, []string{metrics.RunSkipped}, observer.results)
	repository.AssertNotCalled(t, "GeneratePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

/*
TestRun_StorageFailureReleasesLock verifies failures are counted and the lock released.
*/
func TestRun_StorageFailureReleasesLock(t *testing.T) {
	repository := &mockRepository{}
	repository.On("GeneratePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(0), errors.New("db down"))
	locker := &fakeLocker{}
	observer := &recordingObserver{}

	_, err := newTestProcessor(repository, locker, observer).Run(context.Background(), "")

	require.Error(t, err)
	assert.Equal(t, []string{metrics.RunFailed}, observer.results)
	assert.Equal(t, 1, locker.unlocked)
	repository.AssertNotCalled(t, "MarkOverdue", mock.Anything, mock.Anything)
}

/*
TestRun_RedisLockExcludesSecondReplica runs the processor against a held
Redis lock, as a second replica would see it.
*/
func TestRun_RedisLockExcludesSecondReplica(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), "redis://"+server.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	locker := redis.NewLocker(client)

	release, err := locker.TryLock(context.Background(), constants.RedisKeyDuesLock, time.Minute)
	require.NoError(t, err)

	repository := &mockRepository{}
	result, err := newTestProcessor(repository, locker, &recordingObserver{}).Run(context.Background(), "")
	require.NoError(t, err)
	assert.True(t, result.Skipped)

	require.NoError(t, release(context.Background()))

	repository.On("GeneratePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything).Return(int64(1), nil)
	repository.On("MarkOverdue", mock.Anything, mock.Anything).Return(int64(0), nil)
	result, err = newTestProcessor(repository, locker, &recordingObserver{}).Run(context.Background(), "")
	require.NoError(t, err)
	assert.False(t, result.Skipped)
	assert.Equal(t, int64(1), result.Created)
}

/*
TestRun_RedisDownFails verifies an unreachable lock server fails the run and
is counted as a failure, not a skip.
*/
func TestRun_RedisDownFails(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := redis.NewClient(context.Background(), "redis://"+server.Addr(), slog.New(slog.NewTextHandler(io.Discard, nil)))
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	server.Close()

	repository := &mockRepository{}
	observer := &recordingObserver{}
	result, err := newTestProcessor(repository, redis.NewLocker(client), observer).Run(context.Background(), "")

	require.Error(t, err)
	assert.Nil(t, result)
	assert.Equal(t, []string{metrics.RunFailed}, observer.results)
	repository.AssertNotCalled(t, "GeneratePending", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}
