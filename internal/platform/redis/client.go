// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package redis provides a managed client for volatile data storage.

It is used for data that must expire on its own (the refresh token revocation
list) and for the distributed lock that keeps the dues processor to a single
replica. Neither workload is hot, so the pool is kept small.
*/
package redis

import (
	stdctx "context"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// Connection tuning. Revocation checks sit on the refresh path, so reads and
// writes fail fast instead of stalling a login.
const (
	poolSize     = 8
	minIdleConns = 1
	maxIdleConns = 4
	dialTimeout  = 3 * time.Second
	readTimeout  = time.Second
	writeTimeout = time.Second
	pingTimeout  = 2 * time.Second
)

// clientOptions parses redisURL and applies the tuning above. Values set in
// the URL query (e.g. pool_size) are overridden.
func clientOptions(redisURL string) (*redis.Options, error) {
	options, err := redis.ParseURL(redisURL)
	if err != nil {
		return nil, fmt.Errorf("redis: invalid URL: %w", err)
	}

	options.PoolSize = poolSize
	options.MinIdleConns = minIdleConns
	options.MaxIdleConns = maxIdleConns
	options.DialTimeout = dialTimeout
	options.ReadTimeout = readTimeout
	options.WriteTimeout = writeTimeout

	return options, nil
}

// NewClient connects to redisURL and pings it before returning.
//
// # Parameters
//   - context: Context for the initial ping.
//   - redisURL: Redis connection URL (redis:// or rediss://).
//   - logger: Structured logger for connection events.
func NewClient(context stdctx.Context, redisURL string, logger *slog.Logger) (*redis.Client, error) {
	options, err := clientOptions(redisURL)
	if err != nil {
		return nil, err
	}

	client := redis.NewClient(options)
	if err := Ping(context, client); err != nil {
		_ = client.Close()
		return nil, err
	}

	logger.Info("redis_client_connected",
		slog.String("addr", options.Addr),
		slog.Int("db", options.DB),
		slog.Bool("tls", options.TLSConfig != nil),
	)

	return client, nil
}

// Ping verifies that the Redis client is healthy.
func Ping(context stdctx.Context, client *redis.Client) error {
	pingCtx, cancel := stdctx.WithTimeout(context, pingTimeout)
	defer cancel()

	if err := client.Ping(pingCtx).Err(); err != nil {
		return fmt.Errorf("redis: ping failed: %w", err)
	}
	return nil
}
