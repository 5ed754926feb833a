// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

/*
Package auth implements sign-in and session handling for Church Wallet.

Architecture:

  - Service: Login by email or phone, refresh token rotation, logout and
    password changes.
  - Revocations: Redis keeps the jti of every spent refresh token until the
    token would have expired anyway.
  - IdentityResolver: Turns a verified access token subject into the request
    identity, with an in-process cache in front of Postgres.

Tokens themselves are stateless JWTs issued by [sec.TokenService].
*/
package auth

import (
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
)

// # Domain Types

// Session is the token pair handed to a client after login or refresh.
type Session struct {
	AccessToken           string           `json:"accessToken"`
	RefreshToken          string           `json:"refreshToken"`
	AccessTokenExpiresAt  time.Time        `json:"accessTokenExpiresAt"`
	RefreshTokenExpiresAt time.Time        `json:"refreshTokenExpiresAt"`
	User                  *account.Account `json:"user"`
}

// Profile is the payload of GET /auth/me.
type Profile struct {
	User     *account.Account `json:"user"`
	Identity *sec.Identity    `json:"identity"`
}

// # Field Identifiers

const (
	FieldLogin           = "login"
	FieldPassword        = "password"
	FieldRole            = "role"
	FieldRefreshToken    = "refreshToken"
	FieldCurrentPassword = "currentPassword"
	FieldNewPassword     = "newPassword"
	FieldMessage         = "message"
)

// invalidCredentials is the single message for every failed login so that a
// caller cannot tell which part was wrong.
const invalidCredentials = "Invalid login credentials"
