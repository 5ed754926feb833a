// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package ctxutil stores and reads the per-request values (request ID,
// logger, identity, access token jti) carried in [context.Context].
package ctxutil

import (
	"context"
	"log/slog"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
)

// Each value has its own unexported key type, so lookups can never collide
// with keys set by other packages.
type (
	requestIDKey     struct{}
	loggerKey        struct{}
	identityKey      struct{}
	accessTokenIDKey struct{}
)

// # Request Tracing

// WithRequestID returns a new context with the provided request ID attached.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// GetRequestID retrieves the request ID from the context, or "".
func GetRequestID(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// # Structured Logging

// WithLogger returns a new context with the provided logger attached.
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// GetLogger retrieves the request logger, falling back to [slog.Default].
func GetLogger(ctx context.Context) *slog.Logger {
	if logger, ok := ctx.Value(loggerKey{}).(*slog.Logger); ok && logger != nil {
		return logger
	}
	return slog.Default()
}

// # Identity & Access

// WithIdentity returns a new context with the resolved identity attached.
func WithIdentity(ctx context.Context, identity *sec.Identity) context.Context {
	return context.WithValue(ctx, identityKey{}, identity)
}

// GetIdentity retrieves the [*sec.Identity] from the [context.Context].
// It returns nil for anonymous requests.
func GetIdentity(ctx context.Context) *sec.Identity {
	identity, _ := ctx.Value(identityKey{}).(*sec.Identity)
	return identity
}

// WithAccessTokenID records the jti of the access token used for the request.
func WithAccessTokenID(ctx context.Context, tokenID string) context.Context {
	return context.WithValue(ctx, accessTokenIDKey{}, tokenID)
}

// GetAccessTokenID returns the jti recorded by [WithAccessTokenID], or "".
func GetAccessTokenID(ctx context.Context) string {
	id, _ := ctx.Value(accessTokenIDKey{}).(string)
	return id
}
