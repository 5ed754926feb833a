// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

/*
TestNewClient_ConnectsAndPings verifies the URL is parsed and checked eagerly.
*/
func TestNewClient_ConnectsAndPings(t *testing.T) {
	server := miniredis.RunT(t)

	client, err := NewClient(context.Background(), "redis://"+server.Addr()+"/0", discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	assert.NoError(t, Ping(context.Background(), client))
}

/*
TestNewClient_Failures verifies bad URLs and unreachable servers are reported.
*/
func TestNewClient_Failures(t *testing.T) {
	_, err := NewClient(context.Background(), "not a url", discardLogger())
	assert.Error(t, err)

	server := miniredis.RunT(t)
	addr := server.Addr()
	server.Close()

	_, err = NewClient(context.Background(), "redis://"+addr, discardLogger())
	assert.Error(t, err)
}

/*
TestClientOptions_Tuning verifies the URL database survives and the pool
settings are applied.
*/
func TestClientOptions_Tuning(t *testing.T) {
	options, err := clientOptions("redis://localhost:6379/3?pool_size=50")
	require.NoError(t, err)

	assert.Equal(t, "localhost:6379", options.Addr)
	assert.Equal(t, 3, options.DB)
	assert.Equal(t, poolSize, options.PoolSize)
	assert.Equal(t, readTimeout, options.ReadTimeout)
}

/*
TestLocker_SingleHolder verifies the lock excludes a second holder until it
is released.
*/
func TestLocker_SingleHolder(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := NewLocker(client)
	ctx := context.Background()

	unlock, err := locker.TryLock(ctx, "lock:test", time.Minute)
	require.NoError(t, err)
	assert.True(t, server.Exists("lock:test"))

	_, err = locker.TryLock(ctx, "lock:test", time.Minute)
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrLockNotAcquired))

	require.NoError(t, unlock(ctx))
	assert.False(t, server.Exists("lock:test"))

	unlock, err = locker.TryLock(ctx, "lock:test", time.Minute)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

/*
TestLocker_ExpiresAbandonedLock verifies a holder that never unlocks loses
the lock after its TTL.
*/
func TestLocker_ExpiresAbandonedLock(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	locker := NewLocker(client)
	ctx := context.Background()

	_, err = locker.TryLock(ctx, "lock:abandoned", 5*time.Second)
	require.NoError(t, err)

	server.FastForward(6 * time.Second)

	unlock, err := locker.TryLock(ctx, "lock:abandoned", 5*time.Second)
	require.NoError(t, err)
	require.NoError(t, unlock(ctx))
}

/*
TestLocker_ConnectionErrorIsNotContention verifies an unreachable server is
reported as a failure rather than as a busy lock.
*/
func TestLocker_ConnectionErrorIsNotContention(t *testing.T) {
	server := miniredis.RunT(t)
	client, err := NewClient(context.Background(), "redis://"+server.Addr(), discardLogger())
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	server.Close()

	_, err = NewLocker(client).TryLock(context.Background(), "lock:down", time.Minute)
	require.Error(t, err)
	assert.False(t, errors.Is(err, ErrLockNotAcquired))
}
