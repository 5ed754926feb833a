// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/churchwallet/internal/platform/constants"
)

// minRevocationTTL keeps a revocation alive even for a token that is about to
// expire, covering clock skew between replicas.
const minRevocationTTL = time.Second

// RedisRevocationStore implements [RevocationStore] using Redis keys under
// [constants.RedisPrefixRevokedToken].
type RedisRevocationStore struct {
	client *redis.Client
}

// NewRevocationStore creates a new Redis-backed [RevocationStore].
func NewRevocationStore(client *redis.Client) *RedisRevocationStore {
	return &RedisRevocationStore{client: client}
}

/*
Revoke records tokenID with SET NX so that exactly one caller wins the
revocation of a given token.

Parameters:
  - context: context.Context
  - tokenID: string (jti)
  - ttl: time.Duration (remaining token lifetime)

Returns:
  - bool: true when this call performed the revocation
  - error: Redis failures
*/
func (store *RedisRevocationStore) Revoke(context context.Context, tokenID string, ttl time.Duration) (bool, error) {
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	key := constants.RedisPrefixRevokedToken + tokenID
	first, err := store.client.SetNX(context, key, time.Now().UTC().Format(time.RFC3339), ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis_revocation_set_failed: %w", err)
	}

	return first, nil
}

// RevokeUserBefore stores cutoff as unix seconds, the resolution of a JWT iat.
func (store *RedisRevocationStore) RevokeUserBefore(context context.Context, userID string, cutoff time.Time, ttl time.Duration) error {
	if ttl < minRevocationTTL {
		ttl = minRevocationTTL
	}

	key := constants.RedisPrefixUserCutoff + userID
	if err := store.client.Set(context, key, cutoff.Unix(), ttl).Err(); err != nil {
		return fmt.Errorf("redis_user_cutoff_set_failed: %w", err)
	}
	return nil
}

// UserCutoff reads the marker written by [RedisRevocationStore.RevokeUserBefore].
func (store *RedisRevocationStore) UserCutoff(context context.Context, userID string) (time.Time, error) {
	raw, err := store.client.Get(context, constants.RedisPrefixUserCutoff+userID).Result()
	if errors.Is(err, redis.Nil) {
		return time.Time{}, nil
	}
	if err != nil {
		return time.Time{}, fmt.Errorf("redis_user_cutoff_get_failed: %w", err)
	}

	seconds, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("redis_user_cutoff_malformed: %w", err)
	}
	return time.Unix(seconds, 0).UTC(), nil
}
