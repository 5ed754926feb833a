// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
)

// # Contracts

// AccountStore is the slice of the account repository auth depends on.
// It is satisfied by [account.PostgresRepository].
type AccountStore interface {
	FindByID(context context.Context, id string) (*account.Account, error)
	FindByEmail(context context.Context, email string) (*account.Account, error)
	FindByPhone(context context.Context, phone string) (*account.Account, error)
	UpdatePassword(context context.Context, id, passwordHash string) error
	TouchLastLogin(context context.Context, id string, at time.Time) error
}

// RevocationStore remembers spent refresh tokens and per-user cutoffs.
type RevocationStore interface {

	/*
		Revoke marks tokenID as spent for ttl.

		Returns:
		  - bool: true if this call revoked the token, false if it already was
		  - error: Storage failures
	*/
	Revoke(context context.Context, tokenID string, ttl time.Duration) (bool, error)

	// RevokeUserBefore refuses every refresh token of userID issued before
	// cutoff. The marker lives for ttl.
	RevokeUserBefore(context context.Context, userID string, cutoff time.Time, ttl time.Duration) error

	// UserCutoff returns the cutoff for userID, or the zero time.
	UserCutoff(context context.Context, userID string) (time.Time, error)
}

// TokenIssuer issues and verifies the JWT pair. It is satisfied by
// [*sec.TokenService].
type TokenIssuer interface {
	IssueAccessToken(userID sec.UserID) (sec.Token, error)
	IssueRefreshToken(userID sec.UserID) (sec.Token, error)
	VerifyRefreshToken(raw string) (sec.Subject, bool)
	RefreshTTL() time.Duration
}

// LoginObserver counts login outcomes. It is satisfied by [*metrics.Metrics].
type LoginObserver interface {
	ObserveLogin(result string)
}
