// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package sec provides cryptographic primitives, token management, and the
// role/ownership policy evaluated by the RBAC middleware.
//
// # Architecture
//
// This package isolates security-sensitive code (Hashing, JWT Signing,
// Authorization decisions) from the domain logic. Nothing here performs I/O;
// every function is safe for concurrent use.
package sec

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// # Token Types

// TokenKind distinguishes the two token classes. It is embedded in the
// token as the "typ" claim and checked on verification.
type TokenKind string

const (
	KindAccess  TokenKind = "access"
	KindRefresh TokenKind = "refresh"
)

// Token is a signed, time-boxed credential. Value is opaque to every
// consumer outside this package.
type Token struct {
	Value     string
	ID        string
	ExpiresAt time.Time
}

// Subject is what a successful verification yields.
type Subject struct {
	UserID    UserID
	TokenID   string
	IssuedAt  time.Time
	ExpiresAt time.Time
}

// tokenClaims represents the payload embedded inside both token kinds.
type tokenClaims struct {
	jwt.RegisteredClaims

	UserID string    `json:"id"`
	Kind   TokenKind `json:"typ"`
}

// # Configuration

// TokenConfig is the immutable configuration injected at startup.
type TokenConfig struct {
	AccessSecret  []byte
	RefreshSecret []byte
	AccessTTL     time.Duration
	RefreshTTL    time.Duration
	Issuer        string
}

// Default token lifetimes.
const (
	DefaultAccessTTL  = 15 * time.Minute
	DefaultRefreshTTL = 7 * 24 * time.Hour
)

var (
	errMissingSecret = errors.New("sec: token secrets must not be empty")
	errSharedSecret  = errors.New("sec: access and refresh secrets must differ")
)

// # Token Service

// TokenService issues and verifies HS256 access and refresh tokens.
//
// It holds no mutable state and is safe for concurrent use.
type TokenService struct {
	accessSecret  []byte
	refreshSecret []byte
	accessTTL     time.Duration
	refreshTTL    time.Duration
	issuer        string
	now           func() time.Time
}

// TokenOption customizes a [TokenService].
type TokenOption func(*TokenService)

// WithClock overrides the time source used for issuing and verifying.
func WithClock(now func() time.Time) TokenOption {
	return func(service *TokenService) {
		service.now = now
	}
}

// NewTokenService validates cfg and constructs a [TokenService].
// Zero TTLs fall back to [DefaultAccessTTL] and [DefaultRefreshTTL].
func NewTokenService(cfg TokenConfig, opts ...TokenOption) (*TokenService, error) {
	if len(cfg.AccessSecret) == 0 || len(cfg.RefreshSecret) == 0 {
		return nil, errMissingSecret
	}
	if string(cfg.AccessSecret) == string(cfg.RefreshSecret) {
		return nil, errSharedSecret
	}

	service := &TokenService{
		accessSecret:  append([]byte(nil), cfg.AccessSecret...),
		refreshSecret: append([]byte(nil), cfg.RefreshSecret...),
		accessTTL:     cfg.AccessTTL,
		refreshTTL:    cfg.RefreshTTL,
		issuer:        cfg.Issuer,
		now:           time.Now,
	}
	if service.accessTTL <= 0 {
		service.accessTTL = DefaultAccessTTL
	}
	if service.refreshTTL <= 0 {
		service.refreshTTL = DefaultRefreshTTL
	}

	for _, opt := range opts {
		opt(service)
	}
	return service, nil
}

// AccessTTL returns the configured access token lifetime.
func (service *TokenService) AccessTTL() time.Duration { return service.accessTTL }

// RefreshTTL returns the configured refresh token lifetime.
func (service *TokenService) RefreshTTL() time.Duration { return service.refreshTTL }

// IssueAccessToken creates a short-lived access token for userID.
func (service *TokenService) IssueAccessToken(userID UserID) (Token, error) {
	return service.issue(userID, KindAccess, service.accessSecret, service.accessTTL)
}

// IssueRefreshToken creates a long-lived refresh token for userID.
func (service *TokenService) IssueRefreshToken(userID UserID) (Token, error) {
	return service.issue(userID, KindRefresh, service.refreshSecret, service.refreshTTL)
}

// VerifyAccessToken checks raw against the access secret.
// Any failure (bad signature, expired, malformed) yields ok == false.
func (service *TokenService) VerifyAccessToken(raw string) (Subject, bool) {
	return service.verify(raw, KindAccess, service.accessSecret)
}

// VerifyRefreshToken checks raw against the refresh secret.
// Any failure (bad signature, expired, malformed) yields ok == false.
func (service *TokenService) VerifyRefreshToken(raw string) (Subject, bool) {
	return service.verify(raw, KindRefresh, service.refreshSecret)
}

func (service *TokenService) issue(userID UserID, kind TokenKind, secret []byte, ttl time.Duration) (Token, error) {
	if userID == "" {
		return Token{}, errors.New("sec: user id is required")
	}

	issuedAt := service.now()
	expiresAt := issuedAt.Add(ttl)
	tokenID := uuid.NewString()

	claims := tokenClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        tokenID,
			Subject:   string(userID),
			Issuer:    service.issuer,
			IssuedAt:  jwt.NewNumericDate(issuedAt),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
		UserID: string(userID),
		Kind:   kind,
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	if err != nil {
		return Token{}, fmt.Errorf("sec: failed to sign %s token: %w", kind, err)
	}

	// NumericDate truncates to seconds; report what the token actually carries.
	return Token{Value: signed, ID: tokenID, ExpiresAt: claims.ExpiresAt.Time}, nil
}

func (service *TokenService) verify(raw string, kind TokenKind, secret []byte) (Subject, bool) {
	if raw == "" {
		return Subject{}, false
	}

	parserOptions := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(service.now),
	}
	if service.issuer != "" {
		parserOptions = append(parserOptions, jwt.WithIssuer(service.issuer))
	}

	claims := &tokenClaims{}
	token, err := jwt.ParseWithClaims(raw, claims, func(*jwt.Token) (any, error) {
		return secret, nil
	}, parserOptions...)
	if err != nil || !token.Valid {
		return Subject{}, false
	}

	if claims.Kind != kind || claims.UserID == "" {
		return Subject{}, false
	}

	subject := Subject{
		UserID:    UserID(claims.UserID),
		TokenID:   claims.ID,
		ExpiresAt: claims.ExpiresAt.Time,
	}
	if claims.IssuedAt != nil {
		subject.IssuedAt = claims.IssuedAt.Time
	}
	return subject, true
}
