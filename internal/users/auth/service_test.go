// Copyright (c) 2026 Church Wallet. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/taibuivan/churchwallet/internal/platform/apperr"
	"github.com/taibuivan/churchwallet/internal/platform/metrics"
	"github.com/taibuivan/churchwallet/internal/platform/sec"
	"github.com/taibuivan/churchwallet/internal/users/account"
	"github.com/taibuivan/churchwallet/pkg/pointer"
)

// # Mocks

type mockAccounts struct {
	mock.Mock
}

func (m *mockAccounts) FindByID(ctx context.Context, id string) (*account.Account, error) {
	args := m.Called(ctx, id)
	found, _ := args.Get(0).(*account.Account)
	return found, args.Error(1)
}

func (m *mockAccounts) FindByEmail(ctx context.Context, email string) (*account.Account, error) {
	args := m.Called(ctx, email)
	found, _ := args.Get(0).(*account.Account)
	return found, args.Error(1)
}

func (m *mockAccounts) FindByPhone(ctx context.Context, phone string) (*account.Account, error) {
	args := m.Called(ctx, phone)
	found, _ := args.Get(0).(*account.Account)
	return found, args.Error(1)
}

func (m *mockAccounts) UpdatePassword(ctx context.Context, id, passwordHash string) error {
	return m.Called(ctx, id, passwordHash).Error(0)
}

func (m *mockAccounts) TouchLastLogin(ctx context.Context, id string, at time.Time) error {
	return m.Called(ctx, id, at).Error(0)
}

// memoryRevocations is an in-process [RevocationStore].
type memoryRevocations struct {
	mu      sync.Mutex
	revoked map[string]time.Duration
	cutoffs map[string]time.Time
	err     error
}

func newMemoryRevocations() *memoryRevocations {
	return &memoryRevocations{revoked: map[string]time.Duration{}, cutoffs: map[string]time.Time{}}
}

func (store *memoryRevocations) RevokeUserBefore(_ context.Context, userID string, cutoff time.Time, _ time.Duration) error {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return store.err
	}
	store.cutoffs[userID] = cutoff.Truncate(time.Second)
	return nil
}

func (store *memoryRevocations) UserCutoff(_ context.Context, userID string) (time.Time, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return time.Time{}, store.err
	}
	return store.cutoffs[userID], nil
}

func (store *memoryRevocations) Revoke(_ context.Context, tokenID string, ttl time.Duration) (bool, error) {
	store.mu.Lock()
	defer store.mu.Unlock()
	if store.err != nil {
		return false, store.err
	}
	if _, ok := store.revoked[tokenID]; ok {
		return false, nil
	}
	store.revoked[tokenID] = ttl
	return true, nil
}

type recordingObserver struct {
	results []string
}

func (observer *recordingObserver) ObserveLogin(result string) {
	observer.results = append(observer.results, result)
}

// # Fixtures

const (
	userID   = "0192f7a0-0000-7000-8000-000000000001"
	password = "correct-horse"
)

type fixture struct {
	service     *Service
	accounts    *mockAccounts
	revocations *memoryRevocations
	observer    *recordingObserver
	tokens      *sec.TokenService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()

	tokens, err := sec.NewTokenService(sec.TokenConfig{
		AccessSecret:  []byte("access-secret-for-tests"),
		RefreshSecret: []byte("refresh-secret-for-tests"),
		Issuer:        "churchwallet-test",
	})
	require.NoError(t, err)

	f := &fixture{
		accounts:    &mockAccounts{},
		revocations: newMemoryRevocations(),
		observer:    &recordingObserver{},
		tokens:      tokens,
	}
	f.service = NewService(f.accounts, f.revocations, tokens, f.observer, slog.New(slog.NewTextHandler(io.Discard, nil)))
	return f
}

func activeAccount(t *testing.T, role sec.Role) *account.Account {
	t.Helper()
	hash, err := sec.HashPassword(password)
	require.NoError(t, err)
	return &account.Account{
		ID:           userID,
		Email:        pointer.To("admin@church.test"),
		PasswordHash: hash,
		FullName:     "Test Admin",
		Role:         role,
		IsActive:     true,
	}
}

// # Login

/*
TestLogin_ByEmailAndPhone verifies both identifier kinds resolve through the
matching lookup after normalization.
*/
func TestLogin_ByEmailAndPhone(t *testing.T) {
	f := newFixture(t)
	found := activeAccount(t, sec.RoleChurchAdmin)

	f.accounts.On("FindByEmail", mock.Anything, "admin@church.test").Return(found, nil).Once()
	f.accounts.On("FindByPhone", mock.Anything, "+919876543210").Return(found, nil).Once()
	f.accounts.On("TouchLastLogin", mock.Anything, userID, mock.Anything).Return(nil).Twice()

	session, err := f.service.Login(context.Background(), LoginInput{Login: "  Admin@Church.TEST ", Password: password})
	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
	assert.NotEmpty(t, session.RefreshToken)
	assert.Same(t, found, session.User)

	subject, ok := f.tokens.VerifyAccessToken(session.AccessToken)
	require.True(t, ok)
	assert.Equal(t, sec.UserID(userID), subject.UserID)

	_, err = f.service.Login(context.Background(), LoginInput{Login: "+91 98765-43210", Password: password})
	require.NoError(t, err)

	assert.Equal(t, []string{metrics.LoginSuccess, metrics.LoginSuccess}, f.observer.results)
	f.accounts.AssertExpectations(t)
}

/*
TestLogin_Failures verifies every credential failure is the same generic 401.
*/
func TestLogin_Failures(t *testing.T) {
	found := activeAccount(t, sec.RoleUnitAdmin)
	churchAdmin := sec.RoleChurchAdmin

	tests := []struct {
		name   string
		setup  func(*mockAccounts)
		input  LoginInput
		result string
	}{
		{
			name: "unknown_login",
			setup: func(m *mockAccounts) {
				m.On("FindByEmail", mock.Anything, "nobody@church.test").Return(nil, apperr.NotFound("Account"))
			},
			input:  LoginInput{Login: "nobody@church.test", Password: password},
			result: metrics.LoginFailure,
		},
		{
			name: "wrong_password",
			setup: func(m *mockAccounts) {
				m.On("FindByEmail", mock.Anything, "admin@church.test").Return(found, nil)
			},
			input:  LoginInput{Login: "admin@church.test", Password: "wrong-password"},
			result: metrics.LoginFailure,
		},
		{
			name: "role_mismatch",
			setup: func(m *mockAccounts) {
				m.On("FindByEmail", mock.Anything, "admin@church.test").Return(found, nil)
			},
			input:  LoginInput{Login: "admin@church.test", Password: password, Role: &churchAdmin},
			result: metrics.LoginFailure,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(f.accounts)

			session, err := f.service.Login(context.Background(), tt.input)
			require.Error(t, err)
			assert.Nil(t, session)

			appErr := apperr.As(err)
			require.NotNil(t, appErr)
			assert.Equal(t, apperr.CodeUnauthenticated, appErr.Code)
			assert.Equal(t, invalidCredentials, appErr.Message)
			assert.Equal(t, []string{tt.result}, f.observer.results)
			f.accounts.AssertNotCalled(t, "TouchLastLogin", mock.Anything, mock.Anything, mock.Anything)
		})
	}
}

/*
TestLogin_DisabledAccount verifies a correct password on a disabled account
is still refused and counted separately.
*/
func TestLogin_DisabledAccount(t *testing.T) {
	f := newFixture(t)
	found := activeAccount(t, sec.RoleMember)
	found.IsActive = false
	f.accounts.On("FindByEmail", mock.Anything, "admin@church.test").Return(found, nil)

	_, err := f.service.Login(context.Background(), LoginInput{Login: "admin@church.test", Password: password})

	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	assert.Equal(t, []string{metrics.LoginDisabled}, f.observer.results)
}

/*
TestLogin_StorageErrorPropagates verifies database failures are not masked as
credential failures.
*/
func TestLogin_StorageErrorPropagates(t *testing.T) {
	f := newFixture(t)
	f.accounts.On("FindByEmail", mock.Anything, "admin@church.test").Return(nil, errors.New("connection reset"))

	_, err := f.service.Login(context.Background(), LoginInput{Login: "admin@church.test", Password: password})

	require.Error(t, err)
	assert.False(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	assert.Empty(t, f.observer.results)
}

/*
TestLogin_LastLoginFailureIsNotFatal verifies the session is still issued when
the last-login timestamp cannot be written.
*/
func TestLogin_LastLoginFailureIsNotFatal(t *testing.T) {
	f := newFixture(t)
	found := activeAccount(t, sec.RoleChurchAdmin)
	f.accounts.On("FindByEmail", mock.Anything, "admin@church.test").Return(found, nil)
	f.accounts.On("TouchLastLogin", mock.Anything, userID, mock.Anything).Return(errors.New("timeout"))

	session, err := f.service.Login(context.Background(), LoginInput{Login: "admin@church.test", Password: password})

	require.NoError(t, err)
	assert.NotEmpty(t, session.AccessToken)
}

// # Refresh & Logout

/*
TestRefresh_RotatesAndRejectsReplay verifies a refresh token can be spent once.
*/
func TestRefresh_RotatesAndRejectsReplay(t *testing.T) {
	f := newFixture(t)
	found := activeAccount(t, sec.RoleChurchAdmin)
	f.accounts.On("FindByID", mock.Anything, userID).Return(found, nil)

	original, err := f.tokens.IssueRefreshToken(userID)
	require.NoError(t, err)

	rotated, err := f.service.Refresh(context.Background(), original.Value)
	require.NoError(t, err)
	assert.NotEqual(t, original.Value, rotated.RefreshToken)

	_, err = f.service.Refresh(context.Background(), original.Value)
	require.Error(t, err)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))

	// The rotated token is independent and still usable.
	_, err = f.service.Refresh(context.Background(), rotated.RefreshToken)
	require.NoError(t, err)
}

/*
TestRefresh_Rejections verifies the 401 cases of the refresh flow.
*/
func TestRefresh_Rejections(t *testing.T) {
	t.Run("access_token_presented", func(t *testing.T) {
		f := newFixture(t)
		access, err := f.tokens.IssueAccessToken(userID)
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), access.Value)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	})

	t.Run("deleted_account", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("FindByID", mock.Anything, userID).Return(nil, apperr.NotFound("Account"))
		refresh, err := f.tokens.IssueRefreshToken(userID)
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), refresh.Value)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	})

	t.Run("disabled_account", func(t *testing.T) {
		f := newFixture(t)
		found := activeAccount(t, sec.RoleMember)
		found.IsActive = false
		f.accounts.On("FindByID", mock.Anything, userID).Return(found, nil)
		refresh, err := f.tokens.IssueRefreshToken(userID)
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), refresh.Value)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	})

	t.Run("store_unavailable", func(t *testing.T) {
		f := newFixture(t)
		f.revocations.err = errors.New("redis down")
		refresh, err := f.tokens.IssueRefreshToken(userID)
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), refresh.Value)
		require.Error(t, err)
		assert.False(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
	})
}

/*
TestLogout_Idempotent verifies logout revokes the token and tolerates repeats
and garbage.
*/
func TestLogout_Idempotent(t *testing.T) {
	f := newFixture(t)
	refresh, err := f.tokens.IssueRefreshToken(userID)
	require.NoError(t, err)

	require.NoError(t, f.service.Logout(context.Background(), refresh.Value))
	require.NoError(t, f.service.Logout(context.Background(), refresh.Value))
	require.NoError(t, f.service.Logout(context.Background(), "not-a-token"))
	require.NoError(t, f.service.Logout(context.Background(), ""))

	ttl, ok := f.revocations.revoked[refresh.ID]
	require.True(t, ok)
	assert.Greater(t, ttl, time.Duration(0))

	_, err = f.service.Refresh(context.Background(), refresh.Value)
	assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
}

// # Password

/*
TestChangePassword verifies the current password gate and the stored hash.
*/
func TestChangePassword(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		f := newFixture(t)
		found := activeAccount(t, sec.RoleMember)
		f.accounts.On("FindByID", mock.Anything, userID).Return(found, nil)

		var stored string
		f.accounts.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).
			Run(func(args mock.Arguments) { stored = args.String(2) }).
			Return(nil)

		require.NoError(t, f.service.ChangePassword(context.Background(), userID, password, "new-password-123"))
		assert.True(t, sec.CheckPasswordHash("new-password-123", stored))
	})

	t.Run("revokes_earlier_sessions", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("FindByID", mock.Anything, userID).Return(activeAccount(t, sec.RoleMember), nil)
		f.accounts.On("UpdatePassword", mock.Anything, userID, mock.AnythingOfType("string")).Return(nil)

		stolen, err := f.tokens.IssueRefreshToken(userID)
		require.NoError(t, err)

		f.service.now = func() time.Time { return time.Now().Add(time.Minute) }
		require.NoError(t, f.service.ChangePassword(context.Background(), userID, password, "new-password-123"))

		_, err = f.service.Refresh(context.Background(), stolen.Value)
		require.Error(t, err)
		assert.True(t, apperr.HasCode(err, apperr.CodeUnauthenticated))
		assert.Empty(t, f.revocations.revoked)

		later, err := sec.NewTokenService(sec.TokenConfig{
			AccessSecret:  []byte("access-secret-for-tests"),
			RefreshSecret: []byte("refresh-secret-for-tests"),
			Issuer:        "churchwallet-test",
		}, sec.WithClock(func() time.Time { return time.Now().Add(2 * time.Minute) }))
		require.NoError(t, err)
		fresh, err := later.IssueRefreshToken(userID)
		require.NoError(t, err)

		_, err = f.service.Refresh(context.Background(), fresh.Value)
		assert.NoError(t, err)
	})

	t.Run("wrong_current_password", func(t *testing.T) {
		f := newFixture(t)
		f.accounts.On("FindByID", mock.Anything, userID).Return(activeAccount(t, sec.RoleMember), nil)

		err := f.service.ChangePassword(context.Background(), userID, "not-my-password", "new-password-123")

		appErr := apperr.As(err)
		require.NotNil(t, appErr)
		assert.Equal(t, apperr.CodeValidation, appErr.Code)
		require.Len(t, appErr.Details, 1)
		assert.Equal(t, FieldCurrentPassword, appErr.Details[0].Field)
		f.accounts.AssertNotCalled(t, "UpdatePassword", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("weak_new_password", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.ChangePassword(context.Background(), userID, password, "short")

		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
		f.accounts.AssertNotCalled(t, "FindByID", mock.Anything, mock.Anything)
	})

	t.Run("unchanged_password", func(t *testing.T) {
		f := newFixture(t)

		err := f.service.ChangePassword(context.Background(), userID, password, password)

		assert.True(t, apperr.HasCode(err, apperr.CodeValidation))
	})
}

/*
TestMe verifies the profile carries both the stored account and the identity.
*/
func TestMe(t *testing.T) {
	f := newFixture(t)
	found := activeAccount(t, sec.RoleChurchAdmin)
	f.accounts.On("FindByID", mock.Anything, userID).Return(found, nil)
	identity := found.Identity()

	profile, err := f.service.Me(context.Background(), identity)

	require.NoError(t, err)
	assert.Same(t, found, profile.User)
	assert.Same(t, identity, profile.Identity)
}
