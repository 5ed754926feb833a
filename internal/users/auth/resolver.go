// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"fmt"
	"sync/atomic"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"golang.org/x/sync/singleflight"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
)

// AccountLoader loads an account by ID.
type AccountLoader interface {
	FindByID(context context.Context, id string) (*account.Account, error)
}

/*
IdentityResolver builds the request identity for a verified token subject.

Active identities are cached for the configured TTL; concurrent misses for
the same user share one database lookup. Missing and disabled accounts are
never cached, so re-enabling an account takes effect immediately.

A load that overlaps an [IdentityResolver.Invalidate] returns its result to
its waiters but does not cache it.
*/
type IdentityResolver struct {
	accounts   AccountLoader
	cache      *gocache.Cache
	group      singleflight.Group
	generation atomic.Uint64
}

// loadTimeout bounds a shared lookup, which outlives any single caller.
const loadTimeout = 5 * time.Second

// NewIdentityResolver constructs a resolver whose entries live for ttl.
// A ttl of zero or less disables caching.
func NewIdentityResolver(accounts AccountLoader, ttl time.Duration) *IdentityResolver {
	resolver := &IdentityResolver{accounts: accounts}
	if ttl > 0 {
		resolver.cache = gocache.New(ttl, 2*ttl)
	}
	return resolver
}

/*
ResolveIdentity returns the identity for userID.

Returns:
  - *sec.Identity: The principal (shared, must not be mutated)
  - error: apperr.Unauthenticated for missing or disabled accounts, wrapped
    storage errors otherwise
*/
func (resolver *IdentityResolver) ResolveIdentity(context context.Context, userID sec.UserID) (*sec.Identity, error) {
	key := userID.String()

	if resolver.cache != nil {
		if cached, found := resolver.cache.Get(key); found {
			return cached.(*sec.Identity), nil
		}
	}

	value, err, _ := resolver.group.Do(key, func() (any, error) {
		generation := resolver.generation.Load()

		loadCtx, cancel := detached(context)
		defer cancel()

		loaded, err := resolver.accounts.FindByID(loadCtx, key)
		if err != nil {
			if apperr.HasCode(err, apperr.CodeNotFound) {
				return nil, apperr.Unauthenticated("Account no longer exists")
			}
			return nil, fmt.Errorf("identity_resolver_load_failed: %w", err)
		}
		if !loaded.IsActive {
			return nil, apperr.Unauthenticated("Account is disabled")
		}

		identity := loaded.Identity()
		if resolver.cache != nil && resolver.generation.Load() == generation {
			resolver.cache.SetDefault(key, identity)
		}
		return identity, nil
	})
	if err != nil {
		return nil, err
	}

	return value.(*sec.Identity), nil
}

// Invalidate drops any cached identity for userID and keeps loads already
// in flight from caching theirs.
func (resolver *IdentityResolver) Invalidate(userID sec.UserID) {
	resolver.generation.Add(1)
	resolver.group.Forget(userID.String())
	if resolver.cache != nil {
		resolver.cache.Delete(userID.String())
	}
}

// detached keeps the values of parent but not its cancellation, so one
// caller going away does not fail the others sharing the load.
func detached(parent context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(parent), loadTimeout)
}
