// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package constants holds the fixed values shared across Church Wallet layers.

Anything an operator may want to tune lives in config instead. What remains
here is protocol detail (header names, cookie scope, Redis key layout) and the
server timing the binaries are built with.
*/
package constants

import "time"

// # Build

const (
	AppName    = "churchwallet-api"
	AppVersion = "0.1.0-dev"
)

// # Lifecycle

const (
	// StartupTimeout bounds datastore connection and migration at boot.
	StartupTimeout = 30 * time.Second

	// ShutdownTimeout is how long in-flight requests get to finish on SIGTERM.
	ShutdownTimeout = 30 * time.Second
)

// # HTTP Server

const (
	DefaultReadHeaderTimeout = 2 * time.Second
	DefaultReadTimeout       = 5 * time.Second
	DefaultWriteTimeout      = 10 * time.Second
	DefaultIdleTimeout       = 2 * time.Minute

	// GlobalRequestTimeout is the handler deadline. Postgres statements share it.
	GlobalRequestTimeout = 30 * time.Second

	// MaxOwnershipBodySize caps how much of a body an ownership guard buffers
	// while looking for the target identifier.
	MaxOwnershipBodySize = 1 << 20
)

// # Per-IP Rate Limit

const (
	DefaultRateLimitRPS   = 100.0
	DefaultRateLimitBurst = 150

	// Idle clients are evicted after RateLimitClientTTL, checked every
	// RateLimitCleanupInterval.
	RateLimitClientTTL       = 3 * time.Minute
	RateLimitCleanupInterval = time.Minute
)

// # Headers

const (
	HeaderAuthorization = "Authorization"
	HeaderOrigin        = "Origin"
	HeaderRetryAfter    = "Retry-After"
	HeaderXForwardedFor = "X-Forwarded-For"
	HeaderXRealIP       = "X-Real-IP"
	HeaderXRequestID    = "X-Request-ID"

	// AuthorizationBearer is compared case-insensitively.
	AuthorizationBearer = "bearer"
)

// # Refresh Cookie

const (
	RefreshTokenCookieName = "refresh_token"

	// RefreshTokenCookiePath keeps the cookie off every route except /auth.
	RefreshTokenCookiePath = "/api/v1/auth"
)

// # Health Payload

const (
	FieldStatus = "status"
	FieldChecks = "checks"
)

// # Redis Keys

const (
	// RedisPrefixRevokedToken + jti marks a refresh token as spent.
	RedisPrefixRevokedToken = "auth:revoked:"

	// RedisPrefixUserCutoff + user id holds the unix second before which
	// every refresh token of that user is refused.
	RedisPrefixUserCutoff = "auth:revoked-before:"

	// RedisKeyDuesLock serializes dues runs across replicas.
	RedisKeyDuesLock = "locks:dues-processor"
)
