// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"sync"
	"time"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/platform/validate"
	"github.com/taibuivan/churchwallet/internal/users/account"
)

// timingHash is compared against when the login identifier matches no
// account, so unknown and known logins cost the same bcrypt round.
var timingHash = sync.OnceValue(func() string {
	hash, _ := sec.HashPassword("churchwallet-timing-equalizer")
	return hash
})

// Service implements the authentication use cases.
type Service struct {
	accounts    AccountStore
	revocations RevocationStore
	tokens      TokenIssuer
	observer    LoginObserver
	logger      *slog.Logger
	now         func() time.Time
}

// NewService constructs a new auth [Service]. observer may be nil.
func NewService(
	accounts AccountStore,
	revocations RevocationStore,
	tokens TokenIssuer,
	observer LoginObserver,
	logger *slog.Logger,
) *Service {
	return &Service{
		accounts:    accounts,
		revocations: revocations,
		tokens:      tokens,
		observer:    observer,
		logger:      logger,
		now:         time.Now,
	}
}

// # Authentication Flow

// LoginInput defines the credentials of an authentication attempt.
type LoginInput struct {
	Login    string    // Email or phone number
	Password string    // Plain text
	Role     *sec.Role // Optional role-specific login flow
}

/*
Login validates credentials and issues a token pair.

Description: The login identifier is resolved as an email when it contains
"@" and as a phone number otherwise. When Role is set the account must hold
exactly that role. Every credential failure yields the same 401.

Parameters:
  - context: context.Context
  - input: LoginInput

Returns:
  - *Session: The token pair and the account
  - error: Unauthenticated on bad credentials, role mismatch or disabled account
*/
func (service *Service) Login(context context.Context, input LoginInput) (*Session, error) {
	found, err := service.lookup(context, input.Login)
	if err != nil {
		if !apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, fmt.Errorf("auth_service_lookup_failed: %w", err)
		}
		sec.CheckPasswordHash(input.Password, timingHash())
		service.observe(metrics.LoginFailure)
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	if !sec.CheckPasswordHash(input.Password, found.PasswordHash) {
		service.observe(metrics.LoginFailure)
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	if input.Role != nil && *input.Role != found.Role {
		service.observe(metrics.LoginFailure)
		return nil, apperr.Unauthenticated(invalidCredentials)
	}

	if !found.IsActive {
		service.observe(metrics.LoginDisabled)
		return nil, apperr.Unauthenticated("Account is disabled")
	}

	session, err := service.issue(found)
	if err != nil {
		return nil, err
	}

	if err := service.accounts.TouchLastLogin(context, found.ID, service.now().UTC()); err != nil {
		service.logger.WarnContext(context, "auth_last_login_update_failed",
			slog.String("account_id", found.ID),
			slog.Any("error", err),
		)
	}

	service.observe(metrics.LoginSuccess)
	service.logger.InfoContext(context, "auth_login_succeeded",
		slog.String("account_id", found.ID),
		slog.String("role", found.Role.String()),
	)

	return session, nil
}

func (service *Service) lookup(context context.Context, login string) (*account.Account, error) {
	login = strings.TrimSpace(login)
	if account.IsEmailLogin(login) {
		return service.accounts.FindByEmail(context, account.NormalizeEmail(login))
	}
	return service.accounts.FindByPhone(context, account.NormalizePhone(login))
}

/*
Refresh rotates a refresh token.

Description: The presented token is verified, then atomically revoked; only
the caller that wins the revocation receives a new pair. Replaying a spent
token therefore always fails, as does a token issued before the account's
last password change.

Parameters:
  - context: context.Context
  - raw: string (refresh token)

Returns:
  - *Session: A fresh token pair
  - error: Unauthenticated for invalid, spent, or orphaned tokens
*/
func (service *Service) Refresh(context context.Context, raw string) (*Session, error) {
	subject, ok := service.tokens.VerifyRefreshToken(raw)
	if !ok {
		return nil, apperr.Unauthenticated("Invalid or expired refresh token")
	}

	cutoff, err := service.revocations.UserCutoff(context, subject.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("auth_service_cutoff_failed: %w", err)
	}
	if subject.IssuedAt.Before(cutoff) {
		return nil, apperr.Unauthenticated("Refresh token has been revoked")
	}

	first, err := service.revocations.Revoke(context, subject.TokenID, subject.ExpiresAt.Sub(service.now()))
	if err != nil {
		return nil, fmt.Errorf("auth_service_revoke_failed: %w", err)
	}
	if !first {
		service.logger.WarnContext(context, "auth_refresh_token_replayed",
			slog.String("account_id", subject.UserID.String()),
		)
		return nil, apperr.Unauthenticated("Refresh token has been revoked")
	}

	found, err := service.accounts.FindByID(context, subject.UserID.String())
	if err != nil {
		if apperr.HasCode(err, apperr.CodeNotFound) {
			return nil, apperr.Unauthenticated("Account no longer exists")
		}
		return nil, fmt.Errorf("auth_service_refresh_lookup_failed: %w", err)
	}
	if !found.IsActive {
		return nil, apperr.Unauthenticated("Account is disabled")
	}

	return service.issue(found)
}

/*
Logout revokes a refresh token.

It is idempotent: an empty, invalid, expired or already revoked token is a
successful logout.
*/
func (service *Service) Logout(context context.Context, raw string) error {
	if raw == "" {
		return nil
	}

	subject, ok := service.tokens.VerifyRefreshToken(raw)
	if !ok {
		return nil
	}

	if _, err := service.revocations.Revoke(context, subject.TokenID, subject.ExpiresAt.Sub(service.now())); err != nil {
		return fmt.Errorf("auth_service_logout_failed: %w", err)
	}
	return nil
}

func (service *Service) issue(found *account.Account) (*Session, error) {
	userID := sec.UserID(found.ID)

	access, err := service.tokens.IssueAccessToken(userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_access_token_failed: %w", err)
	}

	refresh, err := service.tokens.IssueRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("auth_service_refresh_token_failed: %w", err)
	}

	return &Session{
		AccessToken:           access.Value,
		RefreshToken:          refresh.Value,
		AccessTokenExpiresAt:  access.ExpiresAt,
		RefreshTokenExpiresAt: refresh.ExpiresAt,
		User:                  found,
	}, nil
}

func (service *Service) observe(result string) {
	if service.observer != nil {
		service.observer.ObserveLogin(result)
	}
}

// # Profile

// Me returns the account behind identity together with its resolved scopes.
func (service *Service) Me(context context.Context, identity *sec.Identity) (*Profile, error) {
	found, err := service.accounts.FindByID(context, identity.UserID.String())
	if err != nil {
		return nil, fmt.Errorf("auth_service_me_failed: %w", err)
	}
	return &Profile{User: found, Identity: identity}, nil
}

/*
ChangePassword replaces the password after verifying the current one.

Parameters:
  - context: context.Context
  - userID: sec.UserID
  - current, next: string

Returns:
  - error: Validation when the current password is wrong or next is too short
*/
func (service *Service) ChangePassword(context context.Context, userID sec.UserID, current, next string) error {
	validator := &validate.Validator{}
	validator.Required(FieldCurrentPassword, current).
		MinLen(FieldNewPassword, next, sec.MinPasswordLength).
		MaxLen(FieldNewPassword, next, sec.MaxPasswordLength).
		Custom(FieldNewPassword, current != "" && current == next, "Must differ from the current password")
	if err := validator.Err(); err != nil {
		return err
	}

	found, err := service.accounts.FindByID(context, userID.String())
	if err != nil {
		return fmt.Errorf("auth_service_change_password_lookup_failed: %w", err)
	}

	if !sec.CheckPasswordHash(current, found.PasswordHash) {
		return validate.RequiredError(FieldCurrentPassword, "Current password is incorrect")
	}

	hash, err := sec.HashPassword(next)
	if errors.Is(err, sec.ErrPasswordTooLong) {
		return validate.RequiredError(FieldNewPassword, "Password is too long")
	}
	if err != nil {
		return fmt.Errorf("auth_service_hash_failed: %w", err)
	}

	if err := service.accounts.UpdatePassword(context, found.ID, hash); err != nil {
		return fmt.Errorf("auth_service_change_password_failed: %w", err)
	}

	// Sessions opened before the change cannot be refreshed any more.
	if err := service.revocations.RevokeUserBefore(context, found.ID, service.now(), service.tokens.RefreshTTL()); err != nil {
		return fmt.Errorf("auth_service_revoke_sessions_failed: %w", err)
	}

	service.logger.InfoContext(context, "auth_password_changed", slog.String("account_id", found.ID))
	return nil
}
