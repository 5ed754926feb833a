// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package redis

import (
	stdctx "context"
	"errors"
	"fmt"
	"time"

	"github.com/go-redsync/redsync/v4"
	"github.com/go-redsync/redsync/v4/redis/goredis/v9"
	"github.com/redis/go-redis/v9"
)

// ErrLockNotAcquired is returned by [Locker.TryLock] when another holder owns
// the lock. Connection failures are returned as they are.
var ErrLockNotAcquired = errors.New("redis: lock not acquired")

// Unlock releases a lock obtained through [Locker.TryLock].
type Unlock func(context stdctx.Context) error

// Locker hands out Redlock mutexes backed by a single go-redis client.
type Locker struct {
	redsync *redsync.Redsync
}

// NewLocker wraps client in a redsync pool.
func NewLocker(client *redis.Client) *Locker {
	return &Locker{redsync: redsync.New(goredis.NewPool(client))}
}

/*
TryLock makes a single attempt to take the named lock for ttl.

Parameters:
  - context: context.Context
  - name: string (Redis key)
  - ttl: time.Duration (auto-expiry if the holder dies)

Returns:
  - Unlock: Releases the lock; safe to call once
  - error: ErrLockNotAcquired when the lock is busy, the redsync error otherwise
*/
func (locker *Locker) TryLock(context stdctx.Context, name string, ttl time.Duration) (Unlock, error) {
	mutex := locker.redsync.NewMutex(name, redsync.WithExpiry(ttl), redsync.WithTries(1))

	if err := mutex.TryLockContext(context); err != nil {
		var taken *redsync.ErrTaken
		if errors.As(err, &taken) {
			return nil, fmt.Errorf("%w: %s held on nodes %v", ErrLockNotAcquired, name, taken.Nodes)
		}
		return nil, fmt.Errorf("redis_lock_failed: %s: %w", name, err)
	}

	return func(context stdctx.Context) error {
		if _, err := mutex.UnlockContext(context); err != nil {
			return fmt.Errorf("redis_unlock_failed: %w", err)
		}
		return nil
	}, nil
}
